package analyzer

import (
	"hexen/internal/ast"
	"hexen/internal/diagnostics"
	"hexen/internal/symbols"
	"hexen/internal/typesystem"
)

func (w *walker) VisitValDeclaration(n *ast.ValDeclaration) interface{} {
	w.analyzeDeclaration(n, n.Name, n.Type, n.Value, symbols.Immutable)
	return nil
}

func (w *walker) VisitMutDeclaration(n *ast.MutDeclaration) interface{} {
	w.analyzeDeclaration(n, n.Name, n.Type, n.Value, symbols.Mutable)
	return nil
}

// analyzeDeclaration implements §4.6: a declaration either carries an
// explicit type annotation (the value, if present, must coerce to it)
// or infers its type from the value (comptime literals default per
// §4.1 DefaultConcrete). `val x: T = undef` is permitted and leaves
// the binding uninitialized until first assignment; `mut x: T = undef`
// likewise. A bare `val x = undef` with no annotation is rejected:
// there is nothing to infer a type from.
func (w *walker) analyzeDeclaration(tok ast.Node, name string, typeAnn ast.TypeAnnotation, value ast.Expression, mut symbols.Mutability) {
	declToken := tok.GetToken()

	if w.symbols.IsDefinedLocally(name) {
		w.diags.Errorf(diagnostics.CodeRedeclaration, declToken, w.file,
			"%q already declared in this scope", name)
		return
	}

	isUndef := false
	if ident, ok := value.(*ast.Identifier); ok && ident.Name == "undef" {
		isUndef = true
	}

	var declaredType typesystem.Type
	if typeAnn != nil {
		declaredType = w.resolveType(typeAnn, tok)
	}

	var valueType typesystem.Type
	if value != nil && !isUndef {
		expected := declaredType
		if typeAnn == nil {
			expected = typesystem.TUnknown
		}
		valueType = w.analyzeExpression(value, expected)
	}

	var finalType typesystem.Type
	switch {
	case typeAnn != nil && isUndef:
		finalType = declaredType
	case typeAnn != nil:
		finalType = declaredType
		if valueType.Kind != typesystem.Unknown && typesystem.Coerce(valueType, declaredType) == typesystem.NoCoercion {
			w.diags.ErrorfSuggest(coercionCode(valueType, declaredType), declToken, w.file,
				suggestionText(value, declaredType),
				"cannot assign value of type %s to %q declared as %s", valueType, name, declaredType)
		}
	case isUndef:
		w.diags.Errorf(diagnostics.CodeMissingInitializer, declToken, w.file,
			"%q needs an explicit type when initialized with undef", name)
		finalType = typesystem.TUnknown
	case value == nil:
		w.diags.Errorf(diagnostics.CodeMissingInitializer, declToken, w.file,
			"%q must have either an explicit type or an initial value", name)
		finalType = typesystem.TUnknown
	default:
		if valueType.Kind == typesystem.Unknown && isDivisionExpr(value) {
			w.diags.Errorf(diagnostics.CodeCannotInferType, declToken, w.file,
				"%q has no target type to resolve the division's float requirement", name)
		}
		finalType = typesystem.DefaultConcrete(valueType)
	}

	w.symbols.Define(&symbols.Symbol{
		Name:        name,
		Type:        finalType,
		Mutability:  mut,
		Initialized: !isUndef,
		DeclToken:   declToken,
	})
}

// VisitAssignStatement implements reassignment to a plain name (§4.6):
// the target must be mut (or a still-uninitialized val receiving its
// one deferred initialization), and the value must coerce to the
// binding's declared type.
func (w *walker) VisitAssignStatement(n *ast.AssignStatement) interface{} {
	sym := w.symbols.Find(n.Name)
	if sym == nil {
		w.diags.Errorf(diagnostics.CodeUndefinedVariable, n.Token, w.file, "undefined variable %q", n.Name)
		w.analyzeExpression(n.Value, typesystem.TUnknown)
		return nil
	}

	sym.Used = true

	if sym.Mutability == symbols.Immutable && sym.Initialized {
		w.diags.Errorf(diagnostics.CodeImmutableAssignment, n.Token, w.file,
			"cannot assign to %q: declared with val", n.Name)
	}

	valueType := w.analyzeExpression(n.Value, sym.Type)
	if valueType.Kind != typesystem.Unknown && typesystem.Coerce(valueType, sym.Type) == typesystem.NoCoercion {
		w.diags.ErrorfSuggest(coercionCode(valueType, sym.Type), n.Token, w.file,
			suggestionText(n.Value, sym.Type),
			"cannot assign value of type %s to %q of type %s", valueType, n.Name, sym.Type)
	}

	w.symbols.MarkInitialized(n.Name)
	return nil
}

// VisitAssignmentStatement handles a compound lvalue target (array
// element or property). Only array-element assignment is a valid
// target today; property access (`.length`) is read-only.
func (w *walker) VisitAssignmentStatement(n *ast.AssignmentStatement) interface{} {
	switch target := n.Target.(type) {
	case *ast.ArrayAccess:
		elemType := w.analyzeExpression(target, typesystem.TUnknown)
		valueType := w.analyzeExpression(n.Value, elemType)
		if elemType.Kind != typesystem.Unknown && valueType.Kind != typesystem.Unknown &&
			typesystem.Coerce(valueType, elemType) == typesystem.NoCoercion {
			w.diags.ErrorfSuggest(coercionCode(valueType, elemType), n.Token, w.file,
				suggestionText(n.Value, elemType),
				"cannot assign value of type %s to array element of type %s", valueType, elemType)
		}
	default:
		w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file, "invalid assignment target")
		w.analyzeExpression(n.Value, typesystem.TUnknown)
	}
	return nil
}

package analyzer

import (
	"hexen/internal/ast"
	"hexen/internal/diagnostics"
	"hexen/internal/symbols"
	"hexen/internal/token"
	"hexen/internal/typesystem"
)

// coercionCode distinguishes a precision-losing numeric conversion
// (§4.6, §7: narrowing int/float pairs that implicit coercion refuses)
// from a genuinely incompatible type mismatch, so the two get
// different diagnostic codes at every coercion-failure call site.
func coercionCode(valueType, target typesystem.Type) diagnostics.Code {
	if typesystem.IsNumeric(valueType) && typesystem.IsNumeric(target) {
		return diagnostics.CodePrecisionLoss
	}
	return diagnostics.CodeTypeMismatch
}

// suggestionText builds the `value:TargetType` fix-it attached to a
// failed coercion in a declaration or assignment (§7), naming the
// source identifier when the value being coerced is a plain variable
// reference.
func suggestionText(value ast.Expression, target typesystem.Type) string {
	if ident, ok := value.(*ast.Identifier); ok {
		return ident.Name + ":" + target.String()
	}
	return "value:" + target.String()
}

// widerOf picks the operand type that the other one implicitly
// coerces toward, for suggesting a target-type annotation on a mixed
// concrete binary operation.
func widerOf(a, b typesystem.Type) typesystem.Type {
	if typesystem.Coerce(a, b) != typesystem.NoCoercion {
		return b
	}
	return a
}

// isDivisionExpr reports whether e is a `/` binary operation — used
// to scope the CannotInferType diagnostic narrowly to the case where a
// target-less declaration's value is division specifically, since
// that operator alone forces a float result that an unannotated
// comptime context cannot resolve.
func isDivisionExpr(e ast.Expression) bool {
	bo, ok := e.(*ast.BinaryOperation)
	return ok && bo.Operator == "/"
}

// loopVarSymbol builds the implicit immutable binding a for-in loop
// introduces for its iteration variable.
func loopVarSymbol(name string, t typesystem.Type, tok token.Token) symbols.Symbol {
	return symbols.Symbol{
		Name:        name,
		Type:        t,
		Mutability:  symbols.Immutable,
		Initialized: true,
		DeclToken:   tok,
	}
}

// namedTypes maps a type-annotation name to its concrete typesystem
// type. Array/range annotations are resolved structurally instead.
var namedTypes = map[string]typesystem.Type{
	"i32":    typesystem.TI32,
	"i64":    typesystem.TI64,
	"usize":  typesystem.TUsize,
	"f32":    typesystem.TF32,
	"f64":    typesystem.TF64,
	"bool":   typesystem.TBool,
	"string": typesystem.TString,
	"void":   typesystem.TVoid,
}

// resolveType converts a parsed TypeAnnotation into a concrete
// typesystem.Type, reporting an unknown-type-name diagnostic (folded
// into type_mismatch, Hexen has no separate "no such type" code) and
// returning Unknown if the name isn't recognized.
func (w *walker) resolveType(ann ast.TypeAnnotation, at ast.Node) typesystem.Type {
	switch t := ann.(type) {
	case nil:
		return typesystem.TUnknown
	case ast.NamedType:
		if resolved, ok := namedTypes[t.Name]; ok {
			return resolved
		}
		w.diags.Errorf(diagnostics.CodeTypeMismatch, at.GetToken(), w.file, "unknown type %q", t.Name)
		return typesystem.TUnknown
	case *ast.ArrayType:
		elem := w.resolveType(t.Element, at)
		dims := make([]int, len(t.Dimensions))
		for i, d := range t.Dimensions {
			if d.Inferred {
				dims[i] = -1
			} else {
				dims[i] = int(d.Size)
			}
		}
		return typesystem.Array(elem, dims)
	case *ast.RangeType:
		var elem typesystem.Type
		if t.Element != nil {
			elem = w.resolveType(t.Element, at)
		} else {
			elem = typesystem.TI32
		}
		return typesystem.Range(elem)
	default:
		return typesystem.TUnknown
	}
}

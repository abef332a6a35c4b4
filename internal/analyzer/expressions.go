package analyzer

import (
	"hexen/internal/ast"
	"hexen/internal/diagnostics"
	"hexen/internal/typesystem"
)

// analyzeExpression is the single recursive entry point for every
// expression node: it stashes `expected` (the target type this
// expression should adapt toward, or Unknown if none) on the walker,
// dispatches through the Visitor double-dispatch (Accept), and returns
// the resolved type. Using a field instead of threading an extra
// parameter through the Visitor interface keeps the interface itself
// a pure structural-dispatch mechanism, matching the closed-union/
// no-dynamic-dispatch-payload design.
func (w *walker) analyzeExpression(e ast.Expression, expected typesystem.Type) typesystem.Type {
	if e == nil {
		return typesystem.TUnknown
	}
	savedExpected, savedCtx := w.expected, w.exprContext
	w.expected = expected
	w.exprContext = true
	result, _ := e.Accept(w).(typesystem.Type)
	w.expected, w.exprContext = savedExpected, savedCtx
	return result
}

func (w *walker) VisitLiteral(n *ast.Literal) interface{} {
	switch n.Value.(type) {
	case string:
		return typesystem.TString
	case bool:
		return typesystem.TBool
	default:
		return typesystem.TUnknown
	}
}

func (w *walker) VisitComptimeInt(n *ast.ComptimeInt) interface{} {
	if w.expected.Kind != typesystem.Unknown && typesystem.Coerce(typesystem.TComptimeInt, w.expected) == typesystem.ComptimeAdapts {
		return w.expected
	}
	return typesystem.TComptimeInt
}

func (w *walker) VisitComptimeFloat(n *ast.ComptimeFloat) interface{} {
	if w.expected.Kind != typesystem.Unknown && typesystem.Coerce(typesystem.TComptimeFloat, w.expected) == typesystem.ComptimeAdapts {
		return w.expected
	}
	return typesystem.TComptimeFloat
}

func (w *walker) VisitIdentifier(n *ast.Identifier) interface{} {
	if n.Name == "undef" {
		return typesystem.TUninitialized
	}

	sym := w.symbols.Find(n.Name)
	if sym == nil {
		w.diags.Errorf(diagnostics.CodeUndefinedVariable, n.Token, w.file, "undefined variable %q", n.Name)
		return typesystem.TUnknown
	}
	if !sym.Initialized {
		w.diags.Errorf(diagnostics.CodeUninitializedUse, n.Token, w.file,
			"use of uninitialized variable %q", n.Name)
	}
	sym.Used = true
	return sym.Type
}

// VisitBinaryOperation implements §4.5: arithmetic operators require
// both operands to resolve to the same concrete numeric type (after
// comptime adaptation against the expected context, or against each
// other when there is none); `/` always yields a float, `\` always
// requires and yields an integer; comparisons yield bool; `&&`/`||`
// require bool operands.
func (w *walker) VisitBinaryOperation(n *ast.BinaryOperation) interface{} {
	switch n.Operator {
	case "&&", "||":
		w.analyzeExpression(n.Left, typesystem.TBool)
		w.analyzeExpression(n.Right, typesystem.TBool)
		return typesystem.TBool
	case "==", "!=", "<", "<=", ">", ">=":
		w.analyzeOperandPair(n, true)
		return typesystem.TBool
	case "/":
		return w.analyzeDivision(n, true)
	case "\\":
		return w.analyzeDivision(n, false)
	default: // + - *
		result := w.analyzeOperandPair(n, false)
		if result.Kind != typesystem.Unknown && !typesystem.IsNumeric(result) {
			w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file,
				"operator %q requires numeric operands, got %s", n.Operator, result)
			return typesystem.TUnknown
		}
		return result
	}
}

// analyzeOperandPair resolves both operands against the expected
// context (if numeric) and requires them to agree on a concrete type,
// returning that type (Unknown if either side already failed).
// Implements §4.5 rules 1-5: same-kind comptime, comptime-adapts-to-
// concrete, and equal-concrete all succeed outright (most of them
// already resolved by passing `expect` down to both operands); mixed
// comptime kinds and mixed different-concrete types succeed only when
// a numeric target in context is reachable from both sides, and
// otherwise raise the kind-specific annotation-needed diagnostic
// rather than a generic type mismatch. Comparisons (isComparison)
// never get that annotation advice — a bool-typed context can't
// resolve an operand-type ambiguity — so their mismatches are
// reported as ComparisonTypeMismatch instead.
func (w *walker) analyzeOperandPair(n *ast.BinaryOperation, isComparison bool) typesystem.Type {
	target := w.expected
	expect := target
	if !typesystem.IsNumeric(expect) {
		expect = typesystem.TUnknown
	}

	leftType := w.analyzeExpression(n.Left, expect)
	rightExpect := expect
	if rightExpect.Kind == typesystem.Unknown && typesystem.IsConcrete(leftType) {
		rightExpect = leftType
	}
	rightType := w.analyzeExpression(n.Right, rightExpect)

	if leftType.Kind == typesystem.Unknown || rightType.Kind == typesystem.Unknown {
		return typesystem.TUnknown
	}

	if leftType.Equal(rightType) {
		return leftType
	}
	if typesystem.Coerce(leftType, rightType) == typesystem.ComptimeAdapts {
		return rightType
	}
	if typesystem.Coerce(rightType, leftType) == typesystem.ComptimeAdapts {
		return leftType
	}

	if typesystem.IsConcrete(leftType) && typesystem.IsConcrete(rightType) {
		if typesystem.IsNumeric(target) &&
			typesystem.Coerce(leftType, target) != typesystem.NoCoercion &&
			typesystem.Coerce(rightType, target) != typesystem.NoCoercion {
			return target
		}
		if isComparison {
			w.diags.Errorf(diagnostics.CodeComparisonTypeMismatch, n.Token, w.file,
				"cannot compare %s and %s", leftType, rightType)
			return typesystem.TUnknown
		}
		w.diags.ErrorfSuggest(diagnostics.CodeMixedConcreteRequiresAnnotation, n.Token, w.file,
			widerOf(leftType, rightType).String(),
			"mixed concrete operand types %s and %s require a target-type annotation", leftType, rightType)
		return typesystem.TUnknown
	}

	if typesystem.IsComptime(leftType) && typesystem.IsComptime(rightType) && !isComparison {
		w.diags.Errorf(diagnostics.CodeMixedComptimeRequiresAnnotation, n.Token, w.file,
			"mixed comptime int and float operands require a target-type annotation")
		return typesystem.TUnknown
	}

	code := diagnostics.CodeTypeMismatch
	if isComparison {
		code = diagnostics.CodeComparisonTypeMismatch
	}
	w.diags.Errorf(code, n.Token, w.file,
		"mismatched operand types %s and %s for %q", leftType, rightType, n.Operator)
	return typesystem.TUnknown
}

// analyzeDivision implements the `/` vs `\` split (§4.5): `/` is
// always float division (its operands adapt toward a float context;
// without one, comptime integer operands stay unresolved and get
// MixedComptimeRequiresAnnotation) and `\` is always integer division
// (a float result is FloatInIntegerDivision; division by a literal
// zero is a hard error).
func (w *walker) analyzeDivision(n *ast.BinaryOperation, isFloat bool) typesystem.Type {
	expect := w.expected
	if isFloat {
		if !typesystem.IsFloat(expect) {
			expect = typesystem.TUnknown
		}
	} else {
		if !typesystem.IsInteger(expect) {
			expect = typesystem.TUnknown
		}
	}

	result := w.analyzeOperandPairWithExpect(n, expect)

	if result.Kind == typesystem.Unknown {
		return result
	}
	if isFloat && !typesystem.IsFloat(result) {
		code := diagnostics.CodeTypeMismatch
		if result.Kind == typesystem.ComptimeInt {
			code = diagnostics.CodeMixedComptimeRequiresAnnotation
		}
		w.diags.Errorf(code, n.Token, w.file,
			"'/' requires float operands, got %s", result)
		return typesystem.TUnknown
	}
	if !isFloat && !typesystem.IsInteger(result) {
		code := diagnostics.CodeTypeMismatch
		if typesystem.IsFloat(result) {
			code = diagnostics.CodeFloatInIntegerDivision
		}
		w.diags.Errorf(code, n.Token, w.file,
			"'\\' requires integer operands, got %s", result)
		return typesystem.TUnknown
	}
	if !isFloat {
		if lit, ok := n.Right.(*ast.ComptimeInt); ok && lit.Value == 0 {
			w.diags.Errorf(diagnostics.CodeDivisionByZero, n.Token, w.file, "division by zero")
			return typesystem.TUnknown
		}
	}
	return result
}

func (w *walker) analyzeOperandPairWithExpect(n *ast.BinaryOperation, expect typesystem.Type) typesystem.Type {
	saved := w.expected
	w.expected = expect
	result := w.analyzeOperandPair(n, false)
	w.expected = saved
	return result
}

func (w *walker) VisitUnaryOperation(n *ast.UnaryOperation) interface{} {
	if n.Operator == "!" {
		w.analyzeExpression(n.Operand, typesystem.TBool)
		return typesystem.TBool
	}
	// unary minus
	operandType := w.analyzeExpression(n.Operand, w.expected)
	if operandType.Kind != typesystem.Unknown && !typesystem.IsNumeric(operandType) {
		w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file,
			"unary '-' requires a numeric operand, got %s", operandType)
		return typesystem.TUnknown
	}
	return operandType
}

// VisitExplicitConversionExpression implements `value:TargetType`
// (§4.1): any numeric-to-numeric conversion is permitted, including
// narrowing ones that plain coercion forbids; non-numeric conversions
// are rejected.
func (w *walker) VisitExplicitConversionExpression(n *ast.ExplicitConversionExpression) interface{} {
	target := w.resolveType(n.TargetType, n)
	valueType := w.analyzeExpression(n.Value, typesystem.TUnknown)

	if valueType.Kind == typesystem.Unknown || target.Kind == typesystem.Unknown {
		return typesystem.TUnknown
	}
	if !typesystem.CanExplicitlyConvert(valueType, target) {
		w.diags.Errorf(diagnostics.CodeInvalidConversion, n.Token, w.file,
			"cannot convert %s to %s", valueType, target)
		return typesystem.TUnknown
	}
	return target
}

// VisitFunctionCall implements §4.11 call-site checking. A callee name
// that resolves to a variable rather than a function is NotAFunction
// (distinct from an outright-undeclared name, UndefinedFunction); an
// argument that fails to coerce to its parameter type is
// ArgTypeMismatch, not the generic TypeMismatch.
func (w *walker) VisitFunctionCall(n *ast.FunctionCall) interface{} {
	sig, ok := w.funcSigs[n.Callee]
	if !ok {
		if sym := w.symbols.Find(n.Callee); sym != nil {
			sym.Used = true
			w.diags.Errorf(diagnostics.CodeNotAFunction, n.Token, w.file, "%q is not a function", n.Callee)
		} else {
			w.diags.Errorf(diagnostics.CodeUndefinedFunction, n.Token, w.file, "undefined function %q", n.Callee)
		}
		for _, arg := range n.Arguments.Arguments {
			w.analyzeExpression(arg, typesystem.TUnknown)
		}
		return typesystem.TUnknown
	}

	args := n.Arguments.Arguments
	if len(args) != len(sig.paramTypes) {
		w.diags.Errorf(diagnostics.CodeArityMismatch, n.Token, w.file,
			"function %q expects %d argument(s), got %d", n.Callee, len(sig.paramTypes), len(args))
	}

	for i, arg := range args {
		var expect typesystem.Type
		if i < len(sig.paramTypes) {
			expect = sig.paramTypes[i]
		}
		argType := w.analyzeExpression(arg, expect)
		if i < len(sig.paramTypes) && argType.Kind != typesystem.Unknown &&
			typesystem.Coerce(argType, sig.paramTypes[i]) == typesystem.NoCoercion {
			w.diags.Errorf(diagnostics.CodeArgTypeMismatch, n.Token, w.file,
				"argument %d to %q: cannot use value of type %s as %s", i+1, n.Callee, argType, sig.paramTypes[i])
		}
	}

	return sig.returnType
}

func (w *walker) VisitArgumentList(n *ast.ArgumentList) interface{} { return nil }

func (w *walker) VisitFunctionCallStatement(n *ast.FunctionCallStatement) interface{} {
	w.analyzeExpression(n.Call, typesystem.TUnknown)
	return nil
}

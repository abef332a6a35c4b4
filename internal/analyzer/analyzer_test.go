package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexen/internal/diagnostics"
	"hexen/internal/lexer"
	"hexen/internal/parser"
)

func analyze(t *testing.T, src string) *diagnostics.List {
	t.Helper()
	p := parser.New(lexer.New(src), "t.hxn")
	prog := p.Parse()
	require.NoError(t, p.Err())
	return New("t.hxn").Analyze(prog).Diagnostics
}

func codesOf(d *diagnostics.List) []string {
	var out []string
	for _, item := range d.Items() {
		out = append(out, string(item.Code))
	}
	return out
}

func TestReturnTypeMismatch(t *testing.T) {
	d := analyze(t, `func f() : i32 = {
	return "nope"
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeReturnTypeMismatch))
}

func TestMissingReturn(t *testing.T) {
	d := analyze(t, `func f() : i32 = {
	val x = 1
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeMissingReturn))
}

func TestBreakOutsideLoop(t *testing.T) {
	d := analyze(t, `func f() : void = {
	break
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeBreakOutsideLoop))
}

func TestDivisionByZero(t *testing.T) {
	d := analyze(t, `func f() : i32 = {
	return 10 \ 0
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeDivisionByZero))
}

func TestForInOverRange(t *testing.T) {
	d := analyze(t, `func sum() : i32 = {
	mut total : i32 = 0
	for i in 0..5 {
		total = total + i
	}
	return total
}`)
	require.Empty(t, d.Items())
}

func TestArrayIndexAndLength(t *testing.T) {
	d := analyze(t, `func first(arr : [3]i32) : i32 = {
	return arr[0]
}

func count(arr : [3]i32) : usize = {
	return arr.length
}`)
	require.Empty(t, d.Items())
}

func TestUndefRequiresExplicitType(t *testing.T) {
	d := analyze(t, `func f() : void = {
	val x = undef
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeMissingInitializer))
}

func TestUninitializedUse(t *testing.T) {
	d := analyze(t, `func f() : i32 = {
	mut x : i32 = undef
	return x
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeUninitializedUse))
}

func TestUnusedVariableWarning(t *testing.T) {
	d := analyze(t, `func f() : void = {
	val unused : i32 = 1
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeUnusedVariable))
}

func TestExplicitConversionNarrowing(t *testing.T) {
	d := analyze(t, `func f() : i32 = {
	val big : i64 = 1000
	return big:i32
}`)
	require.Empty(t, d.Items())
}

func TestImplicitNarrowingRejected(t *testing.T) {
	d := analyze(t, `func f() : i32 = {
	val big : i64 = 1000
	return big
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeReturnTypeMismatch))
}

func TestNarrowingAssignmentSuggestsConversion(t *testing.T) {
	d := analyze(t, `func f() : void = {
	val a : i64 = 1000
	mut b : i32 = 0
	b = a
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodePrecisionLoss))
	found := false
	for _, item := range d.Items() {
		if item.Code == diagnostics.CodePrecisionLoss {
			require.Equal(t, "a:i32", item.Suggestion)
			found = true
		}
	}
	require.True(t, found)
}

func TestMixedConcreteOperandsNeedAnnotation(t *testing.T) {
	d := analyze(t, `func f() : void = {
	val a : i32 = 1
	val b : i64 = 2
	val c = a + b
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeMixedConcreteRequiresAnnotation))
}

func TestMixedComptimeOperandsNeedAnnotation(t *testing.T) {
	d := analyze(t, `func f() : void = {
	val c = 1 + 2.5
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeMixedComptimeRequiresAnnotation))
}

func TestMixedConcreteOperandsResolveWithAnnotation(t *testing.T) {
	d := analyze(t, `func f() : void = {
	val a : i32 = 1
	val b : i64 = 2
	val c : i64 = a + b
}`)
	require.Equal(t, []string{string(diagnostics.CodeUnusedVariable)}, codesOf(d))
}

func TestConditionalExpressionRequiresElse(t *testing.T) {
	d := analyze(t, `func f() : void = {
	val x : i32 = if true {
		-> 1
	}
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeMissingElseBranch))
}

func TestConditionalExpressionBranchMismatch(t *testing.T) {
	d := analyze(t, `func f() : void = {
	val x = if true {
		-> 1
	} else {
		-> "nope"
	}
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeBranchTypeMismatch))
}

func TestConditionalExpressionUnifiesBranches(t *testing.T) {
	d := analyze(t, `func abs(x : i32) : i32 = {
	return if x < 0 {
		-> 0 - x
	} else {
		-> x
	}
}`)
	require.Empty(t, d.Items())
}

func TestForInExpressionCollectsYields(t *testing.T) {
	d := analyze(t, `func doubled() : [5]i32 = {
	return for i in 0..5 {
		-> i * 2
	}
}`)
	require.Empty(t, d.Items())
}

func TestMutParameterIsAssignable(t *testing.T) {
	d := analyze(t, `func increment(mut x : i32) : i32 = {
	x = x + 1
	return x
}`)
	require.Empty(t, d.Items())
}

func TestImmutableParameterRejectsAssignment(t *testing.T) {
	d := analyze(t, `func increment(x : i32) : i32 = {
	x = x + 1
	return x
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeImmutableAssignment))
}

func TestFloatRangeRequiresStep(t *testing.T) {
	d := analyze(t, `func f() : void = {
	for x in 0.0..1.0 {
		continue
	}
}`)
	require.Contains(t, codesOf(d), string(diagnostics.CodeFloatRangeNeedsStep))
}

func TestFloatRangeWithStepAccepted(t *testing.T) {
	d := analyze(t, `func f() : void = {
	for x in 0.0..1.0:0.25 {
		continue
	}
}`)
	require.Equal(t, []string{string(diagnostics.CodeUnusedVariable)}, codesOf(d))
}

func TestRangeMaterializationIntoArray(t *testing.T) {
	d := analyze(t, `func f() : void = {
	val arr : [5]i32 = [0..5]
}`)
	require.Equal(t, []string{string(diagnostics.CodeUnusedVariable)}, codesOf(d))
}

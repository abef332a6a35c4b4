package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexen/internal/ast"
	"hexen/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src), "test.hxn")
	prog := p.Parse()
	require.NoError(t, p.Err())
	return prog
}

func TestParseSimpleFunction(t *testing.T) {
	prog := parse(t, `func add(a : i32, b : i32) : i32 = {
	return a + b
}`)
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params.Params, 2)
	require.Equal(t, ast.NamedType{Name: "i32"}, fn.ReturnType)
	require.Len(t, fn.Body.Statements, 1)

	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryOperation)
	require.True(t, ok)
	require.Equal(t, "+", bin.Operator)
}

func TestParseValAndMutDeclarations(t *testing.T) {
	prog := parse(t, `func main() : void = {
	val x : i32 = 42
	mut y = 3.14
	y = y + 1.0
}`)
	body := prog.Functions[0].Body.Statements
	require.Len(t, body, 3)

	val, ok := body[0].(*ast.ValDeclaration)
	require.True(t, ok)
	require.Equal(t, "x", val.Name)

	mut, ok := body[1].(*ast.MutDeclaration)
	require.True(t, ok)
	require.Equal(t, "y", mut.Name)
	require.Nil(t, mut.Type)

	assign, ok := body[2].(*ast.AssignStatement)
	require.True(t, ok)
	require.Equal(t, "y", assign.Name)
}

func TestParseArrayAndExplicitConversion(t *testing.T) {
	prog := parse(t, `func main() : void = {
	val arr : [3]i32 = [1, 2, 3]
	val x = arr[0]
	val y = x:i64
	val whole = arr[..]
}`)
	body := prog.Functions[0].Body.Statements
	require.Len(t, body, 4)

	decl := body[0].(*ast.ValDeclaration)
	arrType, ok := decl.Type.(*ast.ArrayType)
	require.True(t, ok)
	require.Len(t, arrType.Dimensions, 1)
	require.Equal(t, int64(3), arrType.Dimensions[0].Size)

	idxDecl := body[1].(*ast.ValDeclaration)
	_, ok = idxDecl.Value.(*ast.ArrayAccess)
	require.True(t, ok)

	convDecl := body[2].(*ast.ValDeclaration)
	conv, ok := convDecl.Value.(*ast.ExplicitConversionExpression)
	require.True(t, ok)
	require.Equal(t, ast.NamedType{Name: "i64"}, conv.TargetType)

	copyDecl := body[3].(*ast.ValDeclaration)
	_, ok = copyDecl.Value.(*ast.ArrayCopy)
	require.True(t, ok)
}

func TestParseForInLoopWithRange(t *testing.T) {
	prog := parse(t, `func main() : void = {
	for i in 0..10 {
		continue
	}
	'outer while true {
		break 'outer
	}
}`)
	body := prog.Functions[0].Body.Statements
	require.Len(t, body, 2)

	loop, ok := body[0].(*ast.ForInLoop)
	require.True(t, ok)
	require.Equal(t, "i", loop.VarName)
	rng, ok := loop.Iterable.(*ast.RangeExpr)
	require.True(t, ok)
	require.False(t, rng.Inclusive)

	labeled, ok := body[1].(*ast.LabeledStatement)
	require.True(t, ok)
	require.Equal(t, "outer", labeled.Label)
	while, ok := labeled.Statement.(*ast.WhileLoop)
	require.True(t, ok)
	brk := while.Body.Statements[0].(*ast.BreakStatement)
	require.Equal(t, "outer", brk.Label)
}

func TestParseMutParameter(t *testing.T) {
	prog := parse(t, `func increment(mut x : i32) : i32 = {
	x = x + 1
	return x
}`)
	params := prog.Functions[0].Params.Params
	require.Len(t, params, 1)
	require.True(t, params[0].IsMutable)
	require.Equal(t, "x", params[0].Name)
}

func TestParseExpressionBlockYield(t *testing.T) {
	prog := parse(t, `func abs(x : i32) : i32 = {
	val result = if x < 0 {
		-> 0 - x
	} else {
		-> x
	}
	return result
}`)
	decl := prog.Functions[0].Body.Statements[0].(*ast.ValDeclaration)
	cond, ok := decl.Value.(*ast.ConditionalStatement)
	require.True(t, ok)

	yield, ok := cond.Then.Statements[0].(*ast.YieldStatement)
	require.True(t, ok)
	require.NotNil(t, yield.Value)
}

func TestParseConditionalWithElseIf(t *testing.T) {
	prog := parse(t, `func classify(x : i32) : string = {
	if x < 0 {
		return "negative"
	} else if x == 0 {
		return "zero"
	} else {
		return "positive"
	}
}`)
	stmt := prog.Functions[0].Body.Statements[0].(*ast.ConditionalStatement)
	require.NotNil(t, stmt.Else)
	require.NotNil(t, stmt.Else.If)
	require.NotNil(t, stmt.Else.If.Else.Block)
}

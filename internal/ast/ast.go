// Package ast defines the closed set of syntax tree nodes produced by
// the parser and consumed by the analyzer. Unlike a dynamic-dict tree,
// every node kind here is its own Go struct implementing Node (and
// Statement or Expression where applicable), so the analyzer's visitor
// switches are exhaustiveness-checked by the compiler rather than by
// runtime key lookups.
package ast

import "hexen/internal/token"

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	Accept(v Visitor) interface{}
}

// Statement is implemented by nodes that appear in a block's statement
// list.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by nodes that produce a value.
type Expression interface {
	Node
	expressionNode()
}

// Visitor double-dispatches over the closed node set. The analyzer
// implements Visitor once; every node's Accept calls back into the
// matching Visit method.
type Visitor interface {
	VisitProgram(*Program) interface{}
	VisitFunction(*Function) interface{}
	VisitParameter(*Parameter) interface{}
	VisitParameterList(*ParameterList) interface{}
	VisitBlock(*Block) interface{}
	VisitValDeclaration(*ValDeclaration) interface{}
	VisitMutDeclaration(*MutDeclaration) interface{}
	VisitAssignStatement(*AssignStatement) interface{}
	VisitAssignmentStatement(*AssignmentStatement) interface{}
	VisitReturnStatement(*ReturnStatement) interface{}
	VisitConditionalStatement(*ConditionalStatement) interface{}
	VisitElseClause(*ElseClause) interface{}
	VisitForInLoop(*ForInLoop) interface{}
	VisitWhileLoop(*WhileLoop) interface{}
	VisitBreakStatement(*BreakStatement) interface{}
	VisitContinueStatement(*ContinueStatement) interface{}
	VisitLabeledStatement(*LabeledStatement) interface{}
	VisitFunctionCallStatement(*FunctionCallStatement) interface{}
	VisitYieldStatement(*YieldStatement) interface{}
	VisitLiteral(*Literal) interface{}
	VisitComptimeInt(*ComptimeInt) interface{}
	VisitComptimeFloat(*ComptimeFloat) interface{}
	VisitIdentifier(*Identifier) interface{}
	VisitBinaryOperation(*BinaryOperation) interface{}
	VisitUnaryOperation(*UnaryOperation) interface{}
	VisitExplicitConversionExpression(*ExplicitConversionExpression) interface{}
	VisitFunctionCall(*FunctionCall) interface{}
	VisitArgumentList(*ArgumentList) interface{}
	VisitArrayType(*ArrayType) interface{}
	VisitArrayDimension(*ArrayDimension) interface{}
	VisitArrayLiteral(*ArrayLiteral) interface{}
	VisitArrayAccess(*ArrayAccess) interface{}
	VisitArrayCopy(*ArrayCopy) interface{}
	VisitPropertyAccess(*PropertyAccess) interface{}
	VisitRangeExpr(*RangeExpr) interface{}
	VisitRangeType(*RangeType) interface{}
}

// base embeds the token every node carries and supplies TokenLiteral
// and GetToken so concrete nodes don't repeat them.
type base struct {
	Token token.Token
}

func (b base) TokenLiteral() string   { return b.Token.Lexeme }
func (b base) GetToken() token.Token  { return b.Token }

// ---- Core structure ----

// Program is the root node: a file's top-level function declarations.
type Program struct {
	base
	File      string
	Functions []*Function
}

func (n *Program) Accept(v Visitor) interface{} { return v.VisitProgram(n) }

// Function is a top-level `func name(params) : ReturnType = Block`.
type Function struct {
	base
	Name       string
	Params     *ParameterList
	ReturnType TypeAnnotation
	Body       *Block
}

func (n *Function) Accept(v Visitor) interface{} { return v.VisitFunction(n) }

// Parameter is one entry of a function's parameter list. A `mut`
// parameter (IsMutable) is assignable within the function body, same
// as a local `mut` binding.
type Parameter struct {
	base
	Name      string
	Type      TypeAnnotation
	IsMutable bool
}

func (n *Parameter) Accept(v Visitor) interface{} { return v.VisitParameter(n) }

// ParameterList wraps a function's ordered parameters.
type ParameterList struct {
	base
	Params []*Parameter
}

func (n *ParameterList) Accept(v Visitor) interface{} { return v.VisitParameterList(n) }

// Block is the unified block construct: a statement list that may be
// a function body, a bare statement block, an if/else/loop body, or an
// expression block. The node does not record which; the analyzer
// decides from the context that consumes the block.
type Block struct {
	base
	Statements []Statement
}

func (n *Block) Accept(v Visitor) interface{} { return v.VisitBlock(n) }

// ---- Type annotations ----

// TypeAnnotation is either a bare type name ("i32", "string", ...),
// an *ArrayType, or a *RangeType. It carries no behavior of its own;
// the analyzer resolves it against internal/typesystem.
type TypeAnnotation interface {
	typeAnnotationNode()
}

// NamedType is a plain type-name annotation, e.g. "i32" or "MyArray".
type NamedType struct {
	Name string
}

func (NamedType) typeAnnotationNode() {}

func (*ArrayType) typeAnnotationNode() {}
func (*RangeType) typeAnnotationNode() {}

// ---- Declarations ----

// ValDeclaration declares an immutable binding: `val name : Type = expr`.
type ValDeclaration struct {
	base
	Name  string
	Type  TypeAnnotation // nil if inferred from Value
	Value Expression     // nil if there is no initializer; `undef` is an *Identifier named "undef"
}

func (n *ValDeclaration) Accept(v Visitor) interface{} { return v.VisitValDeclaration(n) }
func (n *ValDeclaration) statementNode()               {}

// MutDeclaration declares a mutable binding: `mut name : Type = expr`.
type MutDeclaration struct {
	base
	Name  string
	Type  TypeAnnotation
	Value Expression
}

func (n *MutDeclaration) Accept(v Visitor) interface{} { return v.VisitMutDeclaration(n) }
func (n *MutDeclaration) statementNode()               {}

// ---- Statements ----

// AssignStatement is a reassignment to an existing mut binding:
// `name = expr`.
type AssignStatement struct {
	base
	Name  string
	Value Expression
}

func (n *AssignStatement) Accept(v Visitor) interface{} { return v.VisitAssignStatement(n) }
func (n *AssignStatement) statementNode()               {}

// AssignmentStatement is a compound-target assignment, e.g. an array
// element or property: `target = expr`, where Target is an lvalue
// expression (ArrayAccess/PropertyAccess; a plain name target is
// parsed as an AssignStatement instead).
type AssignmentStatement struct {
	base
	Target Expression
	Value  Expression
}

func (n *AssignmentStatement) Accept(v Visitor) interface{} { return v.VisitAssignmentStatement(n) }
func (n *AssignmentStatement) statementNode()               {}

// ReturnStatement is `return expr` or a bare `return` (Value == nil).
type ReturnStatement struct {
	base
	Value Expression
}

func (n *ReturnStatement) Accept(v Visitor) interface{} { return v.VisitReturnStatement(n) }
func (n *ReturnStatement) statementNode()               {}

// ConditionalStatement is `if cond { ... } else ...`. It is both a
// Statement and an Expression: used bare, its branches are ordinary
// statement blocks; consumed as a value (the RHS of a declaration, an
// argument, ...), its branches must be expression blocks whose `->`
// values unify (§4.8).
type ConditionalStatement struct {
	base
	Condition Expression
	Then      *Block
	Else      *ElseClause // nil if no else
}

func (n *ConditionalStatement) Accept(v Visitor) interface{} { return v.VisitConditionalStatement(n) }
func (n *ConditionalStatement) statementNode()               {}
func (n *ConditionalStatement) expressionNode()              {}

// ElseClause is either a bare block (`else { ... }`) or a chained
// `else if` (If != nil).
type ElseClause struct {
	base
	Block *Block
	If    *ConditionalStatement
}

func (n *ElseClause) Accept(v Visitor) interface{} { return v.VisitElseClause(n) }

// ForInLoop is `for x in iterable { ... }`, where iterable is a
// RangeExpr or an array-valued expression. Like ConditionalStatement,
// it is both a Statement and an Expression: consumed as a value, its
// body is a loop-body expression block and the loop as a whole
// produces an array of the body's yielded elements (§4.9).
type ForInLoop struct {
	base
	VarName  string
	Iterable Expression
	Body     *Block
	Label    string // "" if unlabeled
}

func (n *ForInLoop) Accept(v Visitor) interface{} { return v.VisitForInLoop(n) }
func (n *ForInLoop) statementNode()               {}
func (n *ForInLoop) expressionNode()              {}

// WhileLoop is `while cond { ... }`.
type WhileLoop struct {
	base
	Condition Expression
	Body      *Block
	Label     string
}

func (n *WhileLoop) Accept(v Visitor) interface{} { return v.VisitWhileLoop(n) }
func (n *WhileLoop) statementNode()               {}

// BreakStatement is `break` or `break 'label`, with an optional value
// for an expression-producing loop (`break value`).
type BreakStatement struct {
	base
	Label string
	Value Expression // nil if bare
}

func (n *BreakStatement) Accept(v Visitor) interface{} { return v.VisitBreakStatement(n) }
func (n *BreakStatement) statementNode()               {}

// ContinueStatement is `continue` or `continue 'label`.
type ContinueStatement struct {
	base
	Label string
}

func (n *ContinueStatement) Accept(v Visitor) interface{} { return v.VisitContinueStatement(n) }
func (n *ContinueStatement) statementNode()               {}

// LabeledStatement wraps a loop with a `'name` prefix label.
type LabeledStatement struct {
	base
	Label     string
	Statement Statement // *ForInLoop or *WhileLoop
}

func (n *LabeledStatement) Accept(v Visitor) interface{} { return v.VisitLabeledStatement(n) }
func (n *LabeledStatement) statementNode()               {}

// FunctionCallStatement is a function call used as a bare statement
// (its value, if any, is discarded).
type FunctionCallStatement struct {
	base
	Call *FunctionCall
}

func (n *FunctionCallStatement) Accept(v Visitor) interface{} { return v.VisitFunctionCallStatement(n) }
func (n *FunctionCallStatement) statementNode()               {}

// YieldStatement is `-> expr`, legal only as the final statement of an
// expression block (§4.7): it supplies the block's (and, transitively,
// the enclosing conditional branch's or loop iteration's) value.
type YieldStatement struct {
	base
	Value Expression
}

func (n *YieldStatement) Accept(v Visitor) interface{} { return v.VisitYieldStatement(n) }
func (n *YieldStatement) statementNode()               {}

// ---- Expressions ----

// Literal is a non-comptime, non-numeric literal: string or bool.
// (Numeric literals are ComptimeInt/ComptimeFloat; see below.)
type Literal struct {
	base
	Value interface{} // string or bool
}

func (n *Literal) Accept(v Visitor) interface{} { return v.VisitLiteral(n) }
func (n *Literal) expressionNode()              {}

// ComptimeInt is an integer literal before context-driven resolution;
// it adapts to whatever concrete integer/float type its context
// requires (§4.3 comptime resolution).
type ComptimeInt struct {
	base
	Value int64
}

func (n *ComptimeInt) Accept(v Visitor) interface{} { return v.VisitComptimeInt(n) }
func (n *ComptimeInt) expressionNode()              {}

// ComptimeFloat is a float literal before context-driven resolution.
type ComptimeFloat struct {
	base
	Value float64
}

func (n *ComptimeFloat) Accept(v Visitor) interface{} { return v.VisitComptimeFloat(n) }
func (n *ComptimeFloat) expressionNode()              {}

// Identifier references a binding by name. The special name "undef"
// is recognized by the analyzer as the uninitialized-value sentinel,
// not looked up in the symbol table.
type Identifier struct {
	base
	Name string
}

func (n *Identifier) Accept(v Visitor) interface{} { return v.VisitIdentifier(n) }
func (n *Identifier) expressionNode()              {}

// BinaryOperation is `left OP right`, where OP is one of
// + - * / \ < <= > >= == != && ||.
type BinaryOperation struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

func (n *BinaryOperation) Accept(v Visitor) interface{} { return v.VisitBinaryOperation(n) }
func (n *BinaryOperation) expressionNode()              {}

// UnaryOperation is a prefix `-expr` or `!expr`.
type UnaryOperation struct {
	base
	Operator string
	Operand  Expression
}

func (n *UnaryOperation) Accept(v Visitor) interface{} { return v.VisitUnaryOperation(n) }
func (n *UnaryOperation) expressionNode()              {}

// ExplicitConversionExpression is `value:TargetType`, lexically tight
// (no whitespace around the colon) so the grammar never confuses it
// with a type-annotation colon.
type ExplicitConversionExpression struct {
	base
	Value      Expression
	TargetType TypeAnnotation
}

func (n *ExplicitConversionExpression) Accept(v Visitor) interface{} {
	return v.VisitExplicitConversionExpression(n)
}
func (n *ExplicitConversionExpression) expressionNode() {}

// FunctionCall is `callee(args...)`.
type FunctionCall struct {
	base
	Callee    string
	Arguments *ArgumentList
}

func (n *FunctionCall) Accept(v Visitor) interface{} { return v.VisitFunctionCall(n) }
func (n *FunctionCall) expressionNode()              {}

// ArgumentList wraps a call's ordered argument expressions.
type ArgumentList struct {
	base
	Arguments []Expression
}

func (n *ArgumentList) Accept(v Visitor) interface{} { return v.VisitArgumentList(n) }

// ArrayType is an annotation like `[4]i32` or `[3][3]f64`.
type ArrayType struct {
	base
	Dimensions []*ArrayDimension
	Element    TypeAnnotation
}

func (n *ArrayType) Accept(v Visitor) interface{} { return v.VisitArrayType(n) }

// ArrayDimension is a single `[N]` or `[]` (inferred-size) dimension.
type ArrayDimension struct {
	base
	Size    int64 // only meaningful when Inferred is false
	Inferred bool
}

func (n *ArrayDimension) Accept(v Visitor) interface{} { return v.VisitArrayDimension(n) }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	base
	Elements []Expression
}

func (n *ArrayLiteral) Accept(v Visitor) interface{} { return v.VisitArrayLiteral(n) }
func (n *ArrayLiteral) expressionNode()              {}

// ArrayAccess is `arr[index]` or a bounded slice `arr[lo..hi]`
// (Index is a RangeExpr in the slice case).
type ArrayAccess struct {
	base
	Array Expression
	Index Expression
}

func (n *ArrayAccess) Accept(v Visitor) interface{} { return v.VisitArrayAccess(n) }
func (n *ArrayAccess) expressionNode()              {}

// ArrayCopy is the full-array slice/copy form `arr[..]`, distinct from
// a bounded range slice: it always yields a fresh copy of every
// element rather than a sub-range view.
type ArrayCopy struct {
	base
	Array Expression
}

func (n *ArrayCopy) Accept(v Visitor) interface{} { return v.VisitArrayCopy(n) }
func (n *ArrayCopy) expressionNode()              {}

// PropertyAccess is `value.property`, currently only `.length` on
// arrays.
type PropertyAccess struct {
	base
	Object   Expression
	Property string
}

func (n *PropertyAccess) Accept(v Visitor) interface{} { return v.VisitPropertyAccess(n) }
func (n *PropertyAccess) expressionNode()              {}

// RangeExpr is `start..end`, `start..=end`, `start..`, `..end`, `..`,
// or any of those with a trailing `:step`.
type RangeExpr struct {
	base
	Start     Expression // nil if unbounded-below
	End       Expression // nil if unbounded-above
	Inclusive bool        // true for ..=
	Step      Expression  // nil if unstepped
}

func (n *RangeExpr) Accept(v Visitor) interface{} { return v.VisitRangeExpr(n) }
func (n *RangeExpr) expressionNode()              {}

// RangeType is the annotation form of a range, e.g. `range<i32>`, used
// when a range is bound to a `val`/`mut` for later materialization.
type RangeType struct {
	base
	Element TypeAnnotation
}

func (n *RangeType) Accept(v Visitor) interface{} { return v.VisitRangeType(n) }

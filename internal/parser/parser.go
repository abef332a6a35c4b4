// Package parser implements Hexen's recursive-descent parser. Per
// spec, parsing is an external collaborator with a narrow surface: it
// exists only to hand the analyzer an AST, reports the first syntax
// error it hits (no error recovery), and uses no parser-generator
// dependency — grounded directly in the teacher's hand-written
// internal/parser, condensed to Hexen's much smaller grammar.
package parser

import (
	"fmt"

	"hexen/internal/ast"
	"hexen/internal/lexer"
	"hexen/internal/token"
)

// Parser turns a token stream into a *ast.Program.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  token.Token
	peek token.Token

	err error
}

// New returns a Parser reading from l. file is recorded on every node
// for diagnostic formatting.
func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

// Err returns the first syntax error encountered, if any.
func (p *Parser) Err() error { return p.err }

func (p *Parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf("%s:%d:%d: %s", p.file, p.cur.Line, p.cur.Column, fmt.Sprintf(format, args...))
	}
}

func (p *Parser) expect(tt token.TokenType) token.Token {
	if p.cur.Type != tt {
		p.fail("expected %s, got %q", token.Name(tt), p.cur.Lexeme)
		return p.cur
	}
	t := p.cur
	p.next()
	return t
}

func (p *Parser) curIs(tt token.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt token.TokenType) bool { return p.peek.Type == tt }

// Parse parses an entire source file into a Program. Callers should
// check Err() after calling Parse; a non-nil error means Parse
// returned as soon as it could no longer make forward progress.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{File: p.file}
	prog.Token = p.cur

	for !p.curIs(token.EOF) && p.err == nil {
		if !p.curIs(token.FUNC) {
			p.fail("expected function declaration, got %q", p.cur.Lexeme)
			break
		}
		fn := p.parseFunction()
		if fn == nil {
			break
		}
		prog.Functions = append(prog.Functions, fn)
	}

	return prog
}

func (p *Parser) parseFunction() *ast.Function {
	fn := &ast.Function{}
	fn.Token = p.cur
	p.next() // consume 'func'

	nameTok := p.expect(token.IDENT)
	fn.Name = nameTok.Lexeme

	p.expect(token.LPAREN)
	fn.Params = p.parseParameterList()
	p.expect(token.RPAREN)

	p.expect(token.COLON)
	fn.ReturnType = p.parseTypeAnnotation()

	p.expect(token.ASSIGN)
	fn.Body = p.parseBlock()

	if p.err != nil {
		return nil
	}
	return fn
}

func (p *Parser) parseParameterList() *ast.ParameterList {
	list := &ast.ParameterList{Token: p.cur}
	if p.curIs(token.RPAREN) {
		return list
	}
	list.Params = append(list.Params, p.parseParameter())
	for p.curIs(token.COMMA) {
		p.next()
		list.Params = append(list.Params, p.parseParameter())
	}
	return list
}

func (p *Parser) parseParameter() *ast.Parameter {
	param := &ast.Parameter{Token: p.cur}
	if p.curIs(token.MUT) {
		param.IsMutable = true
		p.next()
	}
	nameTok := p.expect(token.IDENT)
	param.Name = nameTok.Lexeme
	p.expect(token.COLON)
	param.Type = p.parseTypeAnnotation()
	return param
}

// parseTypeAnnotation parses a bare type name, an array type
// (`[N]Elem` / `[]Elem`, possibly multi-dimensional), or a range type
// (`range<Elem>`).
func (p *Parser) parseTypeAnnotation() ast.TypeAnnotation {
	if p.curIs(token.LBRACKET) {
		at := &ast.ArrayType{Token: p.cur}
		for p.curIs(token.LBRACKET) {
			dim := &ast.ArrayDimension{Token: p.cur}
			p.next()
			if p.curIs(token.RBRACKET) {
				dim.Inferred = true
			} else {
				sizeTok := p.expect(token.INT)
				if v, ok := sizeTok.Literal.(int64); ok {
					dim.Size = v
				}
			}
			p.expect(token.RBRACKET)
			at.Dimensions = append(at.Dimensions, dim)
		}
		at.Element = p.parseTypeAnnotation()
		return at
	}

	if p.curIs(token.IDENT) && p.cur.Lexeme == "range" {
		rt := &ast.RangeType{Token: p.cur}
		p.next()
		// Optional `<Elem>` — lexed as LT ident GT since there is no
		// dedicated generic-bracket token.
		if p.curIs(token.LT) {
			p.next()
			rt.Element = p.parseTypeAnnotation()
			if p.curIs(token.GT) {
				p.next()
			} else {
				p.fail("expected '>' to close range type")
			}
		}
		return rt
	}

	nameTok := p.expect(token.IDENT)
	return ast.NamedType{Name: nameTok.Lexeme}
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.cur}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) && p.err == nil {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		block.Statements = append(block.Statements, stmt)
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.VAL:
		return p.parseValDeclaration()
	case token.MUT:
		return p.parseMutDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseConditionalStatement()
	case token.WHILE:
		return p.parseWhileLoop("")
	case token.FOR:
		return p.parseForInLoop("")
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.APOSTROPHE:
		return p.parseLabeledStatement()
	case token.ARROW:
		return p.parseYieldStatement()
	case token.IDENT:
		return p.parseIdentifierLeadStatement()
	default:
		p.fail("unexpected token %q at start of statement", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseValDeclaration() ast.Statement {
	decl := &ast.ValDeclaration{Token: p.cur}
	p.next()
	nameTok := p.expect(token.IDENT)
	decl.Name = nameTok.Lexeme
	if p.curIs(token.COLON) {
		p.next()
		decl.Type = p.parseTypeAnnotation()
	}
	if p.curIs(token.ASSIGN) {
		p.next()
		decl.Value = p.parseExpression(lowest)
	}
	return decl
}

func (p *Parser) parseMutDeclaration() ast.Statement {
	decl := &ast.MutDeclaration{Token: p.cur}
	p.next()
	nameTok := p.expect(token.IDENT)
	decl.Name = nameTok.Lexeme
	if p.curIs(token.COLON) {
		p.next()
		decl.Type = p.parseTypeAnnotation()
	}
	if p.curIs(token.ASSIGN) {
		p.next()
		decl.Value = p.parseExpression(lowest)
	}
	return decl
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.cur}
	p.next()
	if !p.curIs(token.RBRACE) {
		stmt.Value = p.parseExpression(lowest)
	}
	return stmt
}

func (p *Parser) parseConditionalStatement() *ast.ConditionalStatement {
	stmt := &ast.ConditionalStatement{Token: p.cur}
	p.next()
	stmt.Condition = p.parseExpression(lowest)
	stmt.Then = p.parseBlock()
	if p.curIs(token.ELSE) {
		elseTok := p.cur
		p.next()
		clause := &ast.ElseClause{Token: elseTok}
		if p.curIs(token.IF) {
			clause.If = p.parseConditionalStatement()
		} else {
			clause.Block = p.parseBlock()
		}
		stmt.Else = clause
	}
	return stmt
}

func (p *Parser) parseWhileLoop(label string) ast.Statement {
	loop := &ast.WhileLoop{Token: p.cur, Label: label}
	p.next()
	loop.Condition = p.parseExpression(lowest)
	loop.Body = p.parseBlock()
	return loop
}

func (p *Parser) parseForInLoop(label string) *ast.ForInLoop {
	loop := &ast.ForInLoop{Token: p.cur, Label: label}
	p.next()
	nameTok := p.expect(token.IDENT)
	loop.VarName = nameTok.Lexeme
	p.expect(token.IN)
	loop.Iterable = p.parseExpression(lowest)
	loop.Body = p.parseBlock()
	return loop
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{Token: p.cur}
	p.next()
	if p.curIs(token.APOSTROPHE) {
		p.next()
		labelTok := p.expect(token.IDENT)
		stmt.Label = labelTok.Lexeme
	}
	if !p.curIs(token.RBRACE) && !p.atStatementEnd() {
		stmt.Value = p.parseExpression(lowest)
	}
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	stmt := &ast.ContinueStatement{Token: p.cur}
	p.next()
	if p.curIs(token.APOSTROPHE) {
		p.next()
		labelTok := p.expect(token.IDENT)
		stmt.Label = labelTok.Lexeme
	}
	return stmt
}

// parseYieldStatement parses the unified block's `-> expr` form
// (§4.7), legal only as the final statement of an expression block;
// that constraint is enforced by the analyzer, not the parser.
func (p *Parser) parseYieldStatement() ast.Statement {
	stmt := &ast.YieldStatement{Token: p.cur}
	p.next()
	stmt.Value = p.parseExpression(lowest)
	return stmt
}

func (p *Parser) parseLabeledStatement() ast.Statement {
	stmt := &ast.LabeledStatement{Token: p.cur}
	p.next()
	labelTok := p.expect(token.IDENT)
	stmt.Label = labelTok.Lexeme
	switch p.cur.Type {
	case token.WHILE:
		stmt.Statement = p.parseWhileLoop(stmt.Label)
	case token.FOR:
		stmt.Statement = p.parseForInLoop(stmt.Label)
	default:
		p.fail("expected 'while' or 'for' after label, got %q", p.cur.Lexeme)
	}
	return stmt
}

// atStatementEnd is a weak heuristic deciding whether a bare
// `break`/`continue` is followed by a value expression, whether
// parseExpression keeps consuming operators, and whether a range has
// an end bound; Hexen has no statement terminator token, so a
// following keyword that starts a new statement signals "no value
// here".
func (p *Parser) atStatementEnd() bool {
	switch p.cur.Type {
	case token.VAL, token.MUT, token.RETURN, token.IF, token.WHILE,
		token.FOR, token.BREAK, token.CONTINUE, token.APOSTROPHE, token.RBRACE, token.EOF:
		return true
	}
	return false
}

// parseIdentifierLeadStatement disambiguates the statement forms that
// start with an identifier: a plain reassignment (`name = expr`), a
// compound-target assignment (`name[i] = expr`, `name.prop = expr`),
// or a bare function-call statement (`name(args)`).
func (p *Parser) parseIdentifierLeadStatement() ast.Statement {
	expr := p.parseExpression(lowest)

	if p.curIs(token.ASSIGN) {
		assignTok := p.cur
		p.next()
		value := p.parseExpression(lowest)
		if ident, ok := expr.(*ast.Identifier); ok {
			return &ast.AssignStatement{Token: assignTok, Name: ident.Name, Value: value}
		}
		return &ast.AssignmentStatement{Token: assignTok, Target: expr, Value: value}
	}

	if call, ok := expr.(*ast.FunctionCall); ok {
		return &ast.FunctionCallStatement{Token: call.Token, Call: call}
	}

	p.fail("expression cannot be used as a statement")
	return nil
}

// ---- expressions: precedence-climbing, grounded in the teacher's
// Pratt-style expressions_core.go shape but with a fixed, small
// operator table instead of a configurable one. ----

type precedence int

const (
	lowest precedence = iota
	orPrec
	andPrec
	equality
	comparison
	additive
	multiplicative
	unaryPrec
	postfix
)

func precedenceOf(tt token.TokenType) precedence {
	switch tt {
	case token.OR:
		return orPrec
	case token.AND:
		return andPrec
	case token.EQ, token.NOT_EQ:
		return equality
	case token.LT, token.LTE, token.GT, token.GTE:
		return comparison
	case token.PLUS, token.MINUS:
		return additive
	case token.ASTERISK, token.SLASH, token.BACKSLASH:
		return multiplicative
	case token.COLON:
		return postfix // explicit conversion binds as tight as postfix
	case token.LBRACKET, token.DOT:
		return postfix
	default:
		return lowest
	}
}

func (p *Parser) parseExpression(prec precedence) ast.Expression {
	left := p.parseUnary()

	// A range is recognized right after the first operand regardless of
	// the caller's minimum precedence, since a range is almost always
	// parsed at `lowest` (for-in iterables, array index/slice
	// expressions). Its start is that single operand and its end and
	// step are single unary expressions, so `0..n - 1` parses as
	// `(0..n) - 1`.
	if p.curIs(token.DOT_DOT) || p.curIs(token.DOT_DOT_EQ) {
		left = p.parseRangeExpr(left)
	}

	for !p.atStatementEnd() && prec < precedenceOf(p.cur.Type) {
		switch p.cur.Type {
		case token.LBRACKET:
			left = p.parseArrayAccessOrCopy(left)
		case token.DOT:
			left = p.parsePropertyAccess(left)
		case token.COLON:
			left = p.parseExplicitConversion(left)
		default:
			left = p.parseBinary(left)
		}
	}
	return left
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	opTok := p.cur
	prec := precedenceOf(p.cur.Type)
	p.next()
	right := p.parseExpression(prec)
	return &ast.BinaryOperation{Token: opTok, Operator: opTok.Lexeme, Left: left, Right: right}
}

func (p *Parser) parseUnary() ast.Expression {
	if p.curIs(token.MINUS) || p.curIs(token.BANG) {
		opTok := p.cur
		p.next()
		operand := p.parseExpression(unaryPrec)
		return &ast.UnaryOperation{Token: opTok, Operator: opTok.Lexeme, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parseExplicitConversion(left ast.Expression) ast.Expression {
	colonTok := p.cur
	p.next()
	target := p.parseTypeAnnotation()
	return &ast.ExplicitConversionExpression{Token: colonTok, Value: left, TargetType: target}
}

func (p *Parser) parsePropertyAccess(left ast.Expression) ast.Expression {
	dotTok := p.cur
	p.next()
	nameTok := p.expect(token.IDENT)
	return &ast.PropertyAccess{Token: dotTok, Object: left, Property: nameTok.Lexeme}
}

// parseArrayAccessOrCopy parses `left[index]`, `left[lo..hi]`, or the
// full-array copy form `left[..]`.
func (p *Parser) parseArrayAccessOrCopy(left ast.Expression) ast.Expression {
	brTok := p.cur
	p.next()
	if p.curIs(token.DOT_DOT) && p.peekIs(token.RBRACKET) {
		p.next()
		p.expect(token.RBRACKET)
		return &ast.ArrayCopy{Token: brTok, Array: left}
	}
	index := p.parseExpression(lowest)
	p.expect(token.RBRACKET)
	return &ast.ArrayAccess{Token: brTok, Array: left, Index: index}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Type {
	case token.INT:
		tok := p.cur
		v, _ := tok.Literal.(int64)
		p.next()
		return &ast.ComptimeInt{Token: tok, Value: v}
	case token.FLOAT:
		tok := p.cur
		v, _ := tok.Literal.(float64)
		p.next()
		return &ast.ComptimeFloat{Token: tok, Value: v}
	case token.STRING:
		tok := p.cur
		p.next()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case token.TRUE:
		tok := p.cur
		p.next()
		return &ast.Literal{Token: tok, Value: true}
	case token.FALSE:
		tok := p.cur
		p.next()
		return &ast.Literal{Token: tok, Value: false}
	case token.UNDEF:
		tok := p.cur
		p.next()
		return &ast.Identifier{Token: tok, Name: "undef"}
	case token.LPAREN:
		p.next()
		expr := p.parseExpression(lowest)
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.DOT_DOT:
		return p.parseRangeExpr(nil)
	case token.IF:
		// A conditional used where a value is expected (§4.8); the
		// analyzer decides legality from the ambient block context.
		return p.parseConditionalStatement()
	case token.FOR:
		// A for-in loop used where a value is expected (§4.9).
		return p.parseForInLoop("")
	case token.IDENT:
		return p.parseIdentOrCall()
	default:
		p.fail("unexpected token %q in expression", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Token: p.cur}
	p.next()
	if !p.curIs(token.RBRACKET) {
		lit.Elements = append(lit.Elements, p.parseExpression(lowest))
		for p.curIs(token.COMMA) {
			p.next()
			lit.Elements = append(lit.Elements, p.parseExpression(lowest))
		}
	}
	p.expect(token.RBRACKET)
	return lit
}

func (p *Parser) parseIdentOrCall() ast.Expression {
	tok := p.cur
	p.next()

	var primary ast.Expression = &ast.Identifier{Token: tok, Name: tok.Lexeme}

	if p.curIs(token.LPAREN) {
		p.next()
		args := p.parseArgumentList(tok)
		p.expect(token.RPAREN)
		primary = &ast.FunctionCall{Token: tok, Callee: tok.Lexeme, Arguments: args}
	}

	return primary
}

func (p *Parser) parseArgumentList(tok token.Token) *ast.ArgumentList {
	list := &ast.ArgumentList{Token: tok}
	if p.curIs(token.RPAREN) {
		return list
	}
	list.Arguments = append(list.Arguments, p.parseExpression(lowest))
	for p.curIs(token.COMMA) {
		p.next()
		list.Arguments = append(list.Arguments, p.parseExpression(lowest))
	}
	return list
}

// parseRangeExpr parses the `..`/`..=` suffix of a range expression
// whose start (possibly nil, for `..end`) has already been parsed.
func (p *Parser) parseRangeExpr(start ast.Expression) ast.Expression {
	rangeTok := p.cur
	inclusive := p.curIs(token.DOT_DOT_EQ)
	p.next()

	rng := &ast.RangeExpr{Token: rangeTok, Start: start, Inclusive: inclusive}

	if !p.atStatementEnd() && !p.curIs(token.COLON) && !p.curIs(token.RBRACKET) &&
		!p.curIs(token.RPAREN) && !p.curIs(token.COMMA) && !p.curIs(token.LBRACE) {
		rng.End = p.parseUnary()
	}

	if p.curIs(token.COLON) {
		p.next()
		rng.Step = p.parseUnary()
	}

	return rng
}

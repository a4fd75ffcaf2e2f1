// Package parser consumes the token sequence lexer.Lexer produces and
// builds the statement/expression AST described in spec.md §3–§4.2. It is a
// Pratt (precedence-climbing) parser: prefix parsing handles leaves and
// unary operators, and a precedence-driven loop handles the infix tail.
package parser

import (
	"github.com/axel-lang/axel/lexer"
)

// precedence levels for infix operators, per spec.md §4.2.2's table. Higher
// binds tighter. Any token without an entry here is not an infix operator
// and is treated as having the lowest possible precedence, which stops the
// climbing loop.
const (
	lowest      = 0
	comparePrec = 1
	sumPrec     = 2
	productPrec = 3
)

func precedenceOf(tok lexer.Token) int {
	switch tok.Type {
	case lexer.LT, lexer.GT, lexer.LE, lexer.GE, lexer.EQ, lexer.NEQ:
		return comparePrec
	case lexer.PLUS, lexer.MINUS:
		return sumPrec
	case lexer.STAR, lexer.SLASH:
		return productPrec
	default:
		return lowest
	}
}

var compoundOps = map[lexer.TokenType]byte{
	lexer.PLUS_ASSIGN:  '+',
	lexer.MINUS_ASSIGN: '-',
	lexer.STAR_ASSIGN:  '*',
	lexer.SLASH_ASSIGN: '/',
}

// Parser walks a flat token slice produced by the lexer. It never
// re-lexes: the whole token sequence (ending in EOF) is materialized up
// front, mirroring the teacher's index-based token_vector/current_token
// design.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New tokenizes src and returns a Parser ready to produce statements.
func New(src string) *Parser {
	tokens := lexer.New(src).ConsumeTokens()
	tokens = append(tokens, lexer.NewToken(lexer.EOF, ""))
	return &Parser{tokens: tokens}
}

func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// expect asserts the current token has type tt, consumes it, and advances.
// On mismatch it produces an UnexpectedToken error without advancing.
func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, newParseError(UnexpectedToken, tok.Line, tok.Column,
			"expected %s, got %q", what, tok.Literal)
	}
	p.advance()
	return tok, nil
}

// Parse runs parse_token_line (spec.md §4.2): it consumes statements until
// EOF, returning the first error encountered. Per the "no error recovery"
// failure model, a single failure aborts the whole parse.
func (p *Parser) Parse() ([]Statement, error) {
	var statements []Statement
	for p.current().Type != lexer.EOF {
		if p.current().Type == lexer.COMMENT {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

// parseStatement implements check_statement: dispatch on the leading token
// of a statement.
func (p *Parser) parseStatement() (Statement, error) {
	switch p.current().Type {
	case lexer.VAR:
		return p.parseVarStatement()
	case lexer.CONST:
		return p.parseConstStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.IDENT:
		if op, ok := compoundOps[p.peek().Type]; ok {
			return p.parseCompoundAssignStatement(op)
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseVarStatement implements `var IDENT = EXPR ;` (spec.md §4.2.1).
func (p *Parser) parseVarStatement() (Statement, error) {
	p.advance() // consume 'var'
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpressionUntilSemicolon()
	if err != nil {
		return nil, err
	}
	return &VarStatement{Name: name.Literal, Value: value}, nil
}

// parseConstStatement implements `const IDENT = EXPR ;`; const is
// evaluated identically to var (spec.md §4.3.1).
func (p *Parser) parseConstStatement() (Statement, error) {
	p.advance() // consume 'const'
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpressionUntilSemicolon()
	if err != nil {
		return nil, err
	}
	return &ConstStatement{Name: name.Literal, Value: value}, nil
}

// parseReturnStatement implements `return EXPR ;`.
func (p *Parser) parseReturnStatement() (Statement, error) {
	p.advance() // consume 'return'
	value, err := p.parseExpressionUntilSemicolon()
	if err != nil {
		return nil, err
	}
	return &ReturnStatement{Value: value}, nil
}

// parseExpressionStatement parses an expression statement. Block-form
// expressions (`if`, `fn`) carry their own closing '}' as a terminator, so —
// matching every one of spec.md §8's worked programs, none of which puts a
// ';' after such a block when it is followed by another statement — a
// trailing semicolon is optional for them and consumed only if present.
// Every other expression statement still requires one.
func (p *Parser) parseExpressionStatement() (Statement, error) {
	switch p.current().Type {
	case lexer.IF, lexer.FN:
		value, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if p.current().Type == lexer.SEMICOLON {
			p.advance()
		}
		return &ExpressionStatement{Value: value}, nil
	default:
		value, err := p.parseExpressionUntilSemicolon()
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{Value: value}, nil
	}
}

// parseCompoundAssignStatement implements spec.md §4.2.6: `IDENT OP= RHS;`
// desugars to an AssignExpression wrapped in an ExpressionStatement. The
// semicolon is consumed here, by parseExpressionUntilSemicolon, exactly as
// spec.md describes for parse_loop_expressions.
func (p *Parser) parseCompoundAssignStatement(op byte) (Statement, error) {
	name := p.current().Literal
	p.advance() // consume identifier
	p.advance() // consume compound operator
	rhs, err := p.parseExpressionUntilSemicolon()
	if err != nil {
		return nil, err
	}
	return &ExpressionStatement{Value: &AssignExpression{Name: name, Operator: op, Value: rhs}}, nil
}

// parseExpressionUntilSemicolon is parse_loop_expressions: Pratt-climb an
// expression, then require and consume a terminating semicolon. Reaching
// EOF first is an EndOfInput failure (spec.md §4.2.1).
func (p *Parser) parseExpressionUntilSemicolon() (Expression, error) {
	expr, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if p.current().Type == lexer.EOF {
		tok := p.current()
		return nil, newParseError(EndOfInput, tok.Line, tok.Column, "expected ';', reached end of input")
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseExpression is the precedence-climbing loop: parse a prefix
// expression, then repeatedly fold in infix operators whose precedence
// exceeds minPrec (spec.md §4.2.2).
func (p *Parser) parseExpression(minPrec int) (Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		prec := precedenceOf(tok)
		if prec <= minPrec {
			break
		}
		p.advance() // consume operator
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = &InfixExpression{Left: left, Operator: tok, Right: right}
	}

	return left, nil
}

// parsePrefix implements parse_prefix_expressions (spec.md §4.2.2): leaves
// and unary prefixes.
func (p *Parser) parsePrefix() (Expression, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.INT:
		return p.parseIntegerLiteral()
	case lexer.FLOAT:
		return p.parseFloatLiteral()
	case lexer.STRING:
		p.advance()
		return &StringLiteral{Value: tok.Literal}, nil
	case lexer.TRUE:
		p.advance()
		return &BooleanLiteral{Value: true}, nil
	case lexer.FALSE:
		p.advance()
		return &BooleanLiteral{Value: false}, nil
	case lexer.IDENT:
		return p.parseIdentifierLead()
	case lexer.LPAREN:
		return p.parseGroupedExpression()
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		return p.parseHashMapLiteral()
	case lexer.MINUS:
		p.advance()
		right, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &PrefixExpression{Operator: tok, Right: right}, nil
	case lexer.BANG:
		p.advance()
		right, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &PrefixExpression{Operator: tok, Right: right}, nil
	case lexer.IF:
		return p.parseIfExpression()
	case lexer.FN:
		return p.parseFunctionLiteral()
	default:
		return nil, newParseError(ExpectedExpression, tok.Line, tok.Column,
			"expected an expression, got %q", tok.Literal)
	}
}

func (p *Parser) parseIntegerLiteral() (Expression, error) {
	tok := p.current()
	v, err := parseInt32(tok.Literal)
	if err != nil {
		return nil, newParseError(ExpectedExpression, tok.Line, tok.Column, "invalid integer literal %q", tok.Literal)
	}
	p.advance()
	return &IntegerLiteral{Value: v}, nil
}

func (p *Parser) parseFloatLiteral() (Expression, error) {
	tok := p.current()
	v, err := parseFloat32(tok.Literal)
	if err != nil {
		return nil, newParseError(ExpectedExpression, tok.Line, tok.Column, "invalid float literal %q", tok.Literal)
	}
	p.advance()
	return &FloatLiteral{Value: v}, nil
}

// parseIdentifierLead implements the Identifier case of §4.2.2: an
// identifier followed by '[' is an index expression, followed by '(' is a
// call, otherwise it is a bare identifier reference.
func (p *Parser) parseIdentifierLead() (Expression, error) {
	name := p.current().Literal
	p.advance()

	switch p.current().Type {
	case lexer.LBRACKET:
		p.advance() // consume '['
		index, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return nil, err
		}
		return &IndexExpression{Container: &Identifier{Name: name}, Index: index}, nil
	case lexer.LPAREN:
		return p.parseCallExpression(name)
	default:
		return &Identifier{Name: name}, nil
	}
}

// parseCallExpression implements spec.md §4.2.5: a comma-separated
// argument list, each parsed as a full expression, terminated by ')'.
func (p *Parser) parseCallExpression(name string) (Expression, error) {
	p.advance() // consume '('
	var args []Expression
	if p.current().Type != lexer.RPAREN {
		for {
			arg, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.current().Type != lexer.COMMA {
				break
			}
			p.advance() // consume ','
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return &CallExpression{Name: name, Args: args}, nil
}

// parseGroupedExpression implements the `( expr )` prefix case.
func (p *Parser) parseGroupedExpression() (Expression, error) {
	p.advance() // consume '('
	expr, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseArrayLiteral implements `[ e1, e2, ... ]`.
func (p *Parser) parseArrayLiteral() (Expression, error) {
	p.advance() // consume '['
	var elements []Expression
	if p.current().Type != lexer.RBRACKET {
		for {
			el, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			if p.current().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return &ArrayLiteral{Elements: elements}, nil
}

// parseHashMapLiteral implements `{ k1: v1, k2: v2, ... }` (spec.md §4.2.2).
func (p *Parser) parseHashMapLiteral() (Expression, error) {
	p.advance() // consume '{'
	var keys, values []Expression
	if p.current().Type != lexer.RBRACE {
		for {
			key, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON, "':'"); err != nil {
				return nil, err
			}
			val, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
			values = append(values, val)
			if p.current().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return &HashMapLiteral{Keys: keys, Values: values}, nil
}

// parseIfExpression implements spec.md §4.2.3: `if ( COND ) { THEN }
// [else { ELSE }]`.
func (p *Parser) parseIfExpression() (Expression, error) {
	p.advance() // consume 'if'
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	ifExpr := &IfExpression{Condition: condition, Then: then}

	if p.current().Type == lexer.ELSE {
		p.advance() // consume 'else'
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		ifExpr.Else = elseBlock
	}

	return ifExpr, nil
}

// parseFunctionLiteral implements spec.md §4.2.4: `fn NAME ( PARAMS ) {
// BLOCK }`.
func (p *Parser) parseFunctionLiteral() (Expression, error) {
	p.advance() // consume 'fn'
	name, err := p.expect(lexer.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []string
	if p.current().Type != lexer.RPAREN {
		for {
			param, err := p.expect(lexer.IDENT, "parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Literal)
			if p.current().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FunctionLiteral{Name: name.Literal, Params: params, Body: body}, nil
}

// parseBlock consumes `{ statement* }`.
func (p *Parser) parseBlock() ([]Statement, error) {
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	statements := []Statement{}
	for p.current().Type != lexer.RBRACE {
		if p.current().Type == lexer.EOF {
			tok := p.current()
			return nil, newParseError(EndOfInput, tok.Line, tok.Column, "expected '}', reached end of input")
		}
		if p.current().Type == lexer.COMMENT {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	p.advance() // consume '}'
	return statements, nil
}

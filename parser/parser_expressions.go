/*
File    : simpleScript/parser/parser_expressions.go
Package : parser

Implements the expression grammar as a precedence ladder:

	expr  := or
	or    := and ( '||' and )*
	and   := eq  ( '&&' eq  )*
	eq    := cmp ( ('=='|'!=') cmp )*
	cmp   := add ( ('<'|'>'|'<='|'>=') add )*
	add   := mul ( ('+'|'-') mul )*
	mul   := unary ( ('*'|'/'|'%') unary )*
	unary := ('!'|'-'|'++'|'--') unary | postfix
	postfix := primary ( '++' | '--' )*
	primary := NUMBER | STRING | 'true' | 'false'
	         | '[' (expr (',' expr)*)? ']'
	         | IDENT ( '(' args? ')' )?  ( '[' expr ']' )?
	         | '(' expr ')'

All binary levels are left-associative; unary prefix is right-associative.
*/
package parser

import "github.com/Daniel-Iofin/simpleScript/lexer"

// LOWEST is a readability placeholder for callers of parseExpression; the
// grammar's operator set is fixed and fully spelled out by the ladder
// below, so there is no real precedence table to index into.
const LOWEST = 0

func (p *Parser) parseExpression(_ int) Expression {
	return p.parseOr()
}

// climb implements one level of the left-associative binary ladder: parse
// a left operand (already given), then repeatedly consume any operator in
// ops followed by another operand from next.
func (p *Parser) climb(left Expression, ops []lexer.TokenType, next func() Expression) Expression {
	for matches(p.curToken.Type, ops) && p.err == nil {
		tok := p.curToken
		op := tok.Type
		p.nextToken()
		right := next()
		left = &BinaryExpression{pos: posOf(tok), Operator: op, Left: left, Right: right}
	}
	return left
}

func matches(t lexer.TokenType, ops []lexer.TokenType) bool {
	for _, o := range ops {
		if t == o {
			return true
		}
	}
	return false
}

var (
	mulOps = []lexer.TokenType{lexer.STAR, lexer.SLASH, lexer.PERCENT}
	addOps = []lexer.TokenType{lexer.PLUS, lexer.MINUS}
	cmpOps = []lexer.TokenType{lexer.LESS, lexer.GREATER, lexer.LESS_EQ, lexer.GREATER_EQ}
	eqOps  = []lexer.TokenType{lexer.EQ, lexer.NOT_EQ}
	andOps = []lexer.TokenType{lexer.AND}
	orOps  = []lexer.TokenType{lexer.OR}
)

func (p *Parser) parseOr() Expression  { return p.climb(p.parseAnd(), orOps, p.parseAnd) }
func (p *Parser) parseAnd() Expression { return p.climb(p.parseEq(), andOps, p.parseEq) }
func (p *Parser) parseEq() Expression  { return p.climb(p.parseCmp(), eqOps, p.parseCmp) }
func (p *Parser) parseCmp() Expression { return p.climb(p.parseAdd(), cmpOps, p.parseAdd) }
func (p *Parser) parseAdd() Expression { return p.climb(p.parseMul(), addOps, p.parseMul) }
func (p *Parser) parseMul() Expression { return p.climb(p.parseUnary(), mulOps, p.parseUnary) }

// continueBinaryChain resumes the binary ladder from a value that has
// already been parsed through the postfix level. It is used by the
// assignment/expression-statement disambiguation in parser.go, which must
// parse an IDENT's indexed-access prefix by hand before it knows whether
// the statement is an assignment or a plain expression.
func (p *Parser) continueBinaryChain(left Expression) Expression {
	left = p.climb(left, mulOps, p.parseUnary)
	left = p.climb(left, addOps, p.parseMul)
	left = p.climb(left, cmpOps, p.parseAdd)
	left = p.climb(left, eqOps, p.parseCmp)
	left = p.climb(left, andOps, p.parseEq)
	left = p.climb(left, orOps, p.parseAnd)
	return left
}

// finishExpressionFrom completes parsing an expression statement whose
// leading `IDENT '[' expr ']'` has already been consumed (by
// parsePostfixFrom) and determined NOT to be an index-assignment: applies
// any trailing postfix ++/-- and then the rest of the binary ladder.
func (p *Parser) finishExpressionFrom(left Expression) Expression {
	for (p.curIs(lexer.INCR) || p.curIs(lexer.DECR)) && p.err == nil {
		tok := p.curToken
		p.nextToken()
		left = &IncDecExpression{pos: posOf(tok), Operator: tok.Type, Prefix: false, Operand: left}
	}
	return p.continueBinaryChain(left)
}

// parsePostfixFrom consumes `IDENT '[' expr ']'` given an Identifier node
// for IDENT that has not yet been advanced past, returning the resulting
// IndexExpression with curToken positioned just after ']'.
func (p *Parser) parsePostfixFrom(ident Expression) Expression {
	p.nextToken() // consume IDENT, curToken now '['
	tok := p.curToken
	p.expect(lexer.LBRACKET)
	idx := p.parseExpression(LOWEST)
	p.expect(lexer.RBRACKET)
	return &IndexExpression{pos: posOf(tok), Array: ident, Index: idx}
}

// parseUnary handles prefix '!', '-', '++', '--' (right-associative: each
// applies to the following unary form), falling through to postfix forms.
func (p *Parser) parseUnary() Expression {
	switch p.curToken.Type {
	case lexer.BANG, lexer.MINUS:
		tok := p.curToken
		p.nextToken()
		operand := p.parseUnary()
		return &UnaryExpression{pos: posOf(tok), Operator: tok.Type, Operand: operand}
	case lexer.INCR, lexer.DECR:
		tok := p.curToken
		p.nextToken()
		operand := p.parseUnary()
		return &IncDecExpression{pos: posOf(tok), Operator: tok.Type, Prefix: true, Operand: operand}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix handles trailing '++'/'--' applied to a primary expression.
func (p *Parser) parsePostfix() Expression {
	expr := p.parsePrimary()
	for (p.curIs(lexer.INCR) || p.curIs(lexer.DECR)) && p.err == nil {
		tok := p.curToken
		p.nextToken()
		expr = &IncDecExpression{pos: posOf(tok), Operator: tok.Type, Prefix: false, Operand: expr}
	}
	return expr
}

// parsePrimary handles literals, array literals, identifiers (with
// optional call and/or index suffixes), and parenthesized expressions.
func (p *Parser) parsePrimary() Expression {
	tok := p.curToken
	switch tok.Type {
	case lexer.NUMBER:
		p.nextToken()
		return parseNumberLiteral(tok)
	case lexer.STRING:
		p.nextToken()
		return &StringLiteral{pos: posOf(tok), Value: tok.Literal}
	case lexer.TRUE, lexer.FALSE:
		p.nextToken()
		return &BoolLiteral{pos: posOf(tok), Value: tok.Type == lexer.TRUE}
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.IDENT:
		return p.parseIdentifierExpression()
	case lexer.LPAREN:
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		p.expect(lexer.RPAREN)
		return expr
	default:
		p.fail("unexpected token %q in expression", tok.Literal)
		return nil
	}
}

func (p *Parser) parseArrayLiteral() Expression {
	tok := p.curToken
	p.nextToken() // consume '['
	lit := &ArrayLiteral{pos: posOf(tok)}
	for !p.curIs(lexer.RBRACKET) && p.err == nil {
		lit.Elements = append(lit.Elements, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return lit
}

// parseIdentifierExpression handles `IDENT ( '(' args? ')' )? ( '[' expr ']' )?`.
func (p *Parser) parseIdentifierExpression() Expression {
	tok := p.curToken
	name := tok.Literal
	p.nextToken() // consume IDENT

	var expr Expression = &Identifier{pos: posOf(tok), Name: name}

	if p.curIs(lexer.LPAREN) {
		p.nextToken() // consume '('
		var args []Expression
		for !p.curIs(lexer.RPAREN) && p.err == nil {
			args = append(args, p.parseExpression(LOWEST))
			if p.curIs(lexer.COMMA) {
				p.nextToken()
			} else {
				break
			}
		}
		p.expect(lexer.RPAREN)
		expr = &CallExpression{pos: posOf(tok), Callee: name, Args: args}
	}

	if p.curIs(lexer.LBRACKET) {
		brTok := p.curToken
		p.nextToken() // consume '['
		idx := p.parseExpression(LOWEST)
		p.expect(lexer.RBRACKET)
		expr = &IndexExpression{pos: posOf(brTok), Array: expr, Index: idx}
	}

	return expr
}

/*
File    : simpleScript/parser/ast.go
Package : parser
*/

// Package parser turns a lexer.Token stream into the abstract syntax tree
// the evaluator walks. The tree is a tagged-variant structure: every node
// is either a Statement or an Expression, each carrying the source
// position of its leading token for error reporting.
package parser

import "github.com/Daniel-Iofin/simpleScript/lexer"

// Node is the common capability every AST node provides: its source
// position. Statements and Expressions both embed Pos.
type Node interface {
	Pos() (line, column int)
}

// Statement is any AST node that appears in a statement position
// (program body, block body).
type Statement interface {
	Node
	statementNode()
}

// Expression is any AST node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// pos is embedded in every concrete node to satisfy Node without
// repeating the same two fields and Pos() method everywhere.
type pos struct {
	Line   int
	Column int
}

func (p pos) Pos() (int, int) { return p.Line, p.Column }

func posOf(tok lexer.Token) pos { return pos{Line: tok.Line, Column: tok.Column} }

// Program is the root of every parsed source file: a flat sequence of
// top-level statements, executed in order.
type Program struct {
	Statements []Statement
}

// ---- Statements ----------------------------------------------------------

// LetStatement is `let IDENT = expr;` — declares a binding in the
// current frame, shadowing any outer binding of the same name.
type LetStatement struct {
	pos
	Name  string
	Value Expression
}

func (*LetStatement) statementNode() {}

// AssignStatement is `IDENT = expr;` or one of the compound-assignment
// spellings, which the parser desugars to `IDENT = IDENT op expr;` before
// this node is constructed.
type AssignStatement struct {
	pos
	Name  string
	Value Expression
}

func (*AssignStatement) statementNode() {}

// IndexAssignStatement is `arrayExpr[indexExpr] = expr;` (and the
// compound-assignment desugarings of the same form).
type IndexAssignStatement struct {
	pos
	Array Expression
	Index Expression
	Value Expression
}

func (*IndexAssignStatement) statementNode() {}

// IfStatement is `if (cond) block (else block)?`. Else is nil when absent.
type IfStatement struct {
	pos
	Condition Expression
	Then      *BlockStatement
	Else      *BlockStatement
}

func (*IfStatement) statementNode() {}

// WhileStatement is `while (cond) block`.
type WhileStatement struct {
	pos
	Condition Expression
	Body      *BlockStatement
}

func (*WhileStatement) statementNode() {}

// ForStatement is `for (init?; cond?; post?) block`. Init and Post are
// Statements (LetStatement, AssignStatement, or an expression statement)
// or nil; Condition is an Expression or nil. A missing condition means
// "always true".
type ForStatement struct {
	pos
	Init      Statement
	Condition Expression
	Post      Statement
	Body      *BlockStatement
}

func (*ForStatement) statementNode() {}

// BreakStatement is `break;` — only meaningful inside a loop body;
// anywhere else it surfaces as a RuntimeError during evaluation.
type BreakStatement struct{ pos }

func (*BreakStatement) statementNode() {}

// ContinueStatement is `continue;`.
type ContinueStatement struct{ pos }

func (*ContinueStatement) statementNode() {}

// FunctionDefStatement is `def NAME(params) block` — constructs a function
// value closing over the defining environment and binds it to NAME in
// that same environment, which is what makes recursion work.
type FunctionDefStatement struct {
	pos
	Name   string
	Params []string
	Body   *BlockStatement
}

func (*FunctionDefStatement) statementNode() {}

// ReturnStatement is `return expr?;`. Value is nil for a bare `return;`.
type ReturnStatement struct {
	pos
	Value Expression
}

func (*ReturnStatement) statementNode() {}

// BlockStatement is `{ statement* }`, or a single statement with no
// braces. Both forms produce this same node; the parser is responsible
// for the desugaring.
type BlockStatement struct {
	pos
	Statements []Statement
}

func (*BlockStatement) statementNode() {}

// ExpressionStatement wraps an expression used in statement position
// (`expr;`), discarding nothing — its value is what a block returns if it
// is the last statement.
type ExpressionStatement struct {
	pos
	Expr Expression
}

func (*ExpressionStatement) statementNode() {}

// ---- Expressions ----------------------------------------------------------

// There is deliberately no NullLiteral node: `null` is not a keyword in
// the language, and null values arise only at runtime (statements with
// no expression result, functions that end without a value, built-ins
// such as print).

// NumberLiteral is an integer or float literal. IsFloat records which:
// a literal containing '.' is a float, anything else an integer.
type NumberLiteral struct {
	pos
	IsFloat    bool
	IntValue   int64
	FloatValue float64
	Literal    string
}

func (*NumberLiteral) expressionNode() {}

// StringLiteral is a double-quoted string literal with escapes already
// resolved by the lexer.
type StringLiteral struct {
	pos
	Value string
}

func (*StringLiteral) expressionNode() {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	pos
	Value bool
}

func (*BoolLiteral) expressionNode() {}

// ArrayLiteral is `[expr, expr, ...]`.
type ArrayLiteral struct {
	pos
	Elements []Expression
}

func (*ArrayLiteral) expressionNode() {}

// Identifier is a bare variable reference.
type Identifier struct {
	pos
	Name string
}

func (*Identifier) expressionNode() {}

// CallExpression is `callee(args...)` — the callee is always a bare
// name, not an arbitrary expression.
type CallExpression struct {
	pos
	Callee string
	Args   []Expression
}

func (*CallExpression) expressionNode() {}

// IndexExpression is `arrayExpr[indexExpr]`.
type IndexExpression struct {
	pos
	Array Expression
	Index Expression
}

func (*IndexExpression) expressionNode() {}

// BinaryExpression is any left-associative binary operator application
// (arithmetic, comparison, equality, logical).
type BinaryExpression struct {
	pos
	Operator lexer.TokenType
	Left     Expression
	Right    Expression
}

func (*BinaryExpression) expressionNode() {}

// UnaryExpression is `!expr` or `-expr`.
type UnaryExpression struct {
	pos
	Operator lexer.TokenType
	Operand  Expression
}

func (*UnaryExpression) expressionNode() {}

// IncDecExpression is prefix or postfix `++`/`--`. The grammar accepts
// any postfix chain as the operand, but only a bare Identifier can
// actually be incremented; eval raises the error for anything else.
type IncDecExpression struct {
	pos
	Operator lexer.TokenType // INCR or DECR
	Prefix   bool
	Operand  Expression
}

func (*IncDecExpression) expressionNode() {}

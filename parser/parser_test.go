package parser

import (
	"testing"

	"github.com/Daniel-Iofin/simpleScript/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	p := NewParser(src)
	prog, err := p.Parse()
	require.Nil(t, err, "unexpected parse error: %v", err)
	return prog
}

func TestParseLetStatement(t *testing.T) {
	prog := mustParse(t, `let x = 2;`)
	require.Len(t, prog.Statements, 1)
	let, ok := prog.Statements[0].(*LetStatement)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	num, ok := let.Value.(*NumberLiteral)
	require.True(t, ok)
	assert.False(t, num.IsFloat)
	assert.Equal(t, int64(2), num.IntValue)
}

func TestParseFloatLiteral(t *testing.T) {
	prog := mustParse(t, `let x = 3.5;`)
	let := prog.Statements[0].(*LetStatement)
	num := let.Value.(*NumberLiteral)
	assert.True(t, num.IsFloat)
	assert.Equal(t, 3.5, num.FloatValue)
}

func TestOperatorPrecedence(t *testing.T) {
	// 2 + 3 * 4 must parse as 2 + (3 * 4)
	prog := mustParse(t, `let y = 2 + 3 * 4;`)
	let := prog.Statements[0].(*LetStatement)
	bin := let.Value.(*BinaryExpression)
	assert.Equal(t, lexer.PLUS, bin.Operator)
	_, leftIsNum := bin.Left.(*NumberLiteral)
	assert.True(t, leftIsNum)
	rightBin, ok := bin.Right.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, lexer.STAR, rightBin.Operator)
}

func TestLeftAssociativity(t *testing.T) {
	// 1 - 2 - 3 must parse as (1 - 2) - 3
	prog := mustParse(t, `1 - 2 - 3;`)
	stmt := prog.Statements[0].(*ExpressionStatement)
	outer := stmt.Expr.(*BinaryExpression)
	assert.Equal(t, lexer.MINUS, outer.Operator)
	_, rightIsNum := outer.Right.(*NumberLiteral)
	assert.True(t, rightIsNum)
	_, leftIsBin := outer.Left.(*BinaryExpression)
	assert.True(t, leftIsBin)
}

func TestCompoundAssignmentDesugars(t *testing.T) {
	prog := mustParse(t, `x += 1;`)
	assign := prog.Statements[0].(*AssignStatement)
	bin := assign.Value.(*BinaryExpression)
	assert.Equal(t, lexer.PLUS, bin.Operator)
	ident := bin.Left.(*Identifier)
	assert.Equal(t, "x", ident.Name)
}

func TestIndexAssignment(t *testing.T) {
	prog := mustParse(t, `a[1] = a[0] + a[2];`)
	assign := prog.Statements[0].(*IndexAssignStatement)
	arrIdent := assign.Array.(*Identifier)
	assert.Equal(t, "a", arrIdent.Name)
	_, ok := assign.Value.(*BinaryExpression)
	assert.True(t, ok)
}

func TestIfElse(t *testing.T) {
	prog := mustParse(t, `if (x < 1) { return 1; } else { return 2; }`)
	ifs := prog.Statements[0].(*IfStatement)
	require.NotNil(t, ifs.Then)
	require.NotNil(t, ifs.Else)
}

func TestSingleStatementBlockAllowed(t *testing.T) {
	prog := mustParse(t, `if (1) print(1);`)
	ifs := prog.Statements[0].(*IfStatement)
	require.Len(t, ifs.Then.Statements, 1)
}

func TestForLoopWithAllPartsOptional(t *testing.T) {
	prog := mustParse(t, `for (;;) { break; }`)
	forStmt := prog.Statements[0].(*ForStatement)
	assert.Nil(t, forStmt.Init)
	assert.Nil(t, forStmt.Condition)
	assert.Nil(t, forStmt.Post)
}

func TestForLoopPostIsAssignment(t *testing.T) {
	prog := mustParse(t, `for (let i = 0; i < 5; i = i + 1) { print(i); }`)
	forStmt := prog.Statements[0].(*ForStatement)
	_, ok := forStmt.Post.(*AssignStatement)
	assert.True(t, ok)
}

func TestFunctionDefinitionAndCall(t *testing.T) {
	prog := mustParse(t, `def add(a, b) { return a + b; } print(add(1, 2));`)
	fn := prog.Statements[0].(*FunctionDefStatement)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)

	exprStmt := prog.Statements[1].(*ExpressionStatement)
	call := exprStmt.Expr.(*CallExpression)
	assert.Equal(t, "print", call.Callee)
	require.Len(t, call.Args, 1)
	inner := call.Args[0].(*CallExpression)
	assert.Equal(t, "add", inner.Callee)
}

func TestArrayLiteralAndIndex(t *testing.T) {
	prog := mustParse(t, `let a = [1, 2, 3]; let b = a[1];`)
	let := prog.Statements[0].(*LetStatement)
	arr := let.Value.(*ArrayLiteral)
	require.Len(t, arr.Elements, 3)

	let2 := prog.Statements[1].(*LetStatement)
	idx := let2.Value.(*IndexExpression)
	ident := idx.Array.(*Identifier)
	assert.Equal(t, "a", ident.Name)
}

func TestPrefixAndPostfixIncrement(t *testing.T) {
	prog := mustParse(t, `++x; y++;`)
	pre := prog.Statements[0].(*ExpressionStatement).Expr.(*IncDecExpression)
	assert.True(t, pre.Prefix)
	post := prog.Statements[1].(*ExpressionStatement).Expr.(*IncDecExpression)
	assert.False(t, post.Prefix)
}

func TestUnaryOperators(t *testing.T) {
	prog := mustParse(t, `!true; -5;`)
	not := prog.Statements[0].(*ExpressionStatement).Expr.(*UnaryExpression)
	assert.Equal(t, lexer.BANG, not.Operator)
	neg := prog.Statements[1].(*ExpressionStatement).Expr.(*UnaryExpression)
	assert.Equal(t, lexer.MINUS, neg.Operator)
}

func TestParseErrorOnMissingSemicolon(t *testing.T) {
	p := NewParser(`let x = 1`)
	_, err := p.Parse()
	require.NotNil(t, err)
}

func TestParseErrorOnLexError(t *testing.T) {
	p := NewParser(`let x = 1.2.3;`)
	_, err := p.Parse()
	require.NotNil(t, err)
}

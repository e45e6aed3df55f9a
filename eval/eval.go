/*
File    : simpleScript/eval/eval.go
Package : eval
*/

// Package eval is the tree-walking evaluator: it interprets a
// *parser.Program directly against a chain of *environment.Environment
// frames, without any intermediate compiled form.
package eval

import (
	"bufio"
	"io"
	"math"

	"github.com/Daniel-Iofin/simpleScript/builtin"
	"github.com/Daniel-Iofin/simpleScript/environment"
	"github.com/Daniel-Iofin/simpleScript/function"
	"github.com/Daniel-Iofin/simpleScript/lexer"
	"github.com/Daniel-Iofin/simpleScript/object"
	"github.com/Daniel-Iofin/simpleScript/parser"
)

// Evaluator holds the one piece of state a run needs beyond the AST
// itself: the root environment the built-in table and all top-level
// declarations live in. A REPL session reuses a single Evaluator across
// lines so that declarations persist; a one-shot file run creates one
// and discards it.
type Evaluator struct {
	Root *environment.Environment
}

// New creates an Evaluator with a fresh root environment and registers
// the built-in table into it, wiring `print` and `input` to out/in.
func New(out io.Writer, in *bufio.Reader) *Evaluator {
	root := environment.New()
	builtin.Register(root, out, in)
	return &Evaluator{Root: root}
}

// Run evaluates every top-level statement of prog in order against the
// Evaluator's root environment and returns the value of the last
// statement. A `return` at top level terminates the program early and
// its value becomes the program's final value; a `break` or `continue`
// reaching top level has no loop to consume it and is a RuntimeError.
func (e *Evaluator) Run(prog *parser.Program) object.Object {
	var result object.Object = object.NULL
	for _, stmt := range prog.Statements {
		result = e.evalStatement(stmt, e.Root)
		if object.IsError(result) {
			return result
		}
		switch result.GetType() {
		case object.RETURN_OBJ:
			return result.(*object.ReturnValue).Value
		case object.BREAK_OBJ, object.CONTINUE_OBJ:
			line, col := stmt.Pos()
			return object.NewError(line, col, "'%s' outside of a loop", result.ToString())
		}
	}
	return result
}

// ---- Statements -------------------------------------------------------

func (e *Evaluator) evalStatement(stmt parser.Statement, env *environment.Environment) object.Object {
	switch s := stmt.(type) {
	case *parser.LetStatement:
		val := e.evalExpression(s.Value, env)
		if object.IsError(val) {
			return val
		}
		env.Define(s.Name, val)
		return object.NULL

	case *parser.AssignStatement:
		val := e.evalExpression(s.Value, env)
		if object.IsError(val) {
			return val
		}
		env.Set(s.Name, val)
		return object.NULL

	case *parser.IndexAssignStatement:
		return e.evalIndexAssign(s, env)

	case *parser.IfStatement:
		cond := e.evalExpression(s.Condition, env)
		if object.IsError(cond) {
			return cond
		}
		if builtin.Truthy(cond) {
			return e.evalBlock(s.Then, environment.NewEnclosed(env))
		}
		if s.Else != nil {
			return e.evalBlock(s.Else, environment.NewEnclosed(env))
		}
		return object.NULL

	case *parser.WhileStatement:
		return e.evalWhile(s, env)

	case *parser.ForStatement:
		return e.evalFor(s, env)

	case *parser.BreakStatement:
		return object.BREAK

	case *parser.ContinueStatement:
		return object.CONTINUE

	case *parser.FunctionDefStatement:
		fn := function.New(s.Name, s.Params, s.Body, env)
		env.Define(s.Name, fn)
		return object.NULL

	case *parser.ReturnStatement:
		if s.Value == nil {
			return &object.ReturnValue{Value: object.NULL}
		}
		val := e.evalExpression(s.Value, env)
		if object.IsError(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	case *parser.BlockStatement:
		return e.evalBlock(s, environment.NewEnclosed(env))

	case *parser.ExpressionStatement:
		return e.evalExpression(s.Expr, env)

	default:
		line, col := stmt.Pos()
		return object.NewError(line, col, "unknown statement type %T", stmt)
	}
}

// evalBlock evaluates each statement of block in env in order, stopping
// early (and propagating upward) the moment a RuntimeError or a
// return/break/continue signal appears. A block's value is its last
// statement's value; non-local exits unwind through it untouched.
func (e *Evaluator) evalBlock(block *parser.BlockStatement, env *environment.Environment) object.Object {
	var result object.Object = object.NULL
	for _, stmt := range block.Statements {
		result = e.evalStatement(stmt, env)
		if object.IsError(result) || object.IsControlSignal(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalWhile(s *parser.WhileStatement, env *environment.Environment) object.Object {
	for {
		cond := e.evalExpression(s.Condition, env)
		if object.IsError(cond) {
			return cond
		}
		if !builtin.Truthy(cond) {
			return object.NULL
		}
		result := e.evalBlock(s.Body, environment.NewEnclosed(env))
		if object.IsError(result) {
			return result
		}
		switch result.GetType() {
		case object.BREAK_OBJ:
			return object.NULL
		case object.RETURN_OBJ:
			return result
		case object.CONTINUE_OBJ:
			continue
		}
	}
}

func (e *Evaluator) evalFor(s *parser.ForStatement, env *environment.Environment) object.Object {
	loopEnv := environment.NewEnclosed(env)
	if s.Init != nil {
		init := e.evalStatement(s.Init, loopEnv)
		if object.IsError(init) {
			return init
		}
	}
	for {
		if s.Condition != nil {
			cond := e.evalExpression(s.Condition, loopEnv)
			if object.IsError(cond) {
				return cond
			}
			if !builtin.Truthy(cond) {
				return object.NULL
			}
		}
		result := e.evalBlock(s.Body, environment.NewEnclosed(loopEnv))
		if object.IsError(result) {
			return result
		}
		brk := false
		switch result.GetType() {
		case object.BREAK_OBJ:
			brk = true
		case object.RETURN_OBJ:
			return result
		}
		if brk {
			return object.NULL
		}
		if s.Post != nil {
			post := e.evalStatement(s.Post, loopEnv)
			if object.IsError(post) {
				return post
			}
		}
	}
}

func (e *Evaluator) evalIndexAssign(s *parser.IndexAssignStatement, env *environment.Environment) object.Object {
	arrObj := e.evalExpression(s.Array, env)
	if object.IsError(arrObj) {
		return arrObj
	}
	arr, ok := arrObj.(*object.Array)
	if !ok {
		line, col := s.Pos()
		return object.NewError(line, col, "cannot index into a value of type %s", arrObj.GetType())
	}
	idxObj := e.evalExpression(s.Index, env)
	if object.IsError(idxObj) {
		return idxObj
	}
	idx, ok := idxObj.(*object.Integer)
	if !ok {
		line, col := s.Pos()
		return object.NewError(line, col, "array index must be a number, got %s", idxObj.GetType())
	}
	if idx.Value < 0 || idx.Value >= int64(len(arr.Elements)) {
		line, col := s.Pos()
		return object.NewError(line, col, "index %d out of bounds for array of length %d", idx.Value, len(arr.Elements))
	}
	val := e.evalExpression(s.Value, env)
	if object.IsError(val) {
		return val
	}
	arr.Elements[idx.Value] = val
	return object.NULL
}

// ---- Expressions -------------------------------------------------------

func (e *Evaluator) evalExpression(expr parser.Expression, env *environment.Environment) object.Object {
	switch x := expr.(type) {
	case *parser.NumberLiteral:
		if x.IsFloat {
			return &object.Float{Value: x.FloatValue}
		}
		return &object.Integer{Value: x.IntValue}

	case *parser.StringLiteral:
		return &object.String{Value: x.Value}

	case *parser.BoolLiteral:
		return object.NativeBool(x.Value)

	case *parser.ArrayLiteral:
		elems := make([]object.Object, len(x.Elements))
		for i, el := range x.Elements {
			v := e.evalExpression(el, env)
			if object.IsError(v) {
				return v
			}
			elems[i] = v
		}
		return &object.Array{Elements: elems}

	case *parser.Identifier:
		if val, ok := env.Get(x.Name); ok {
			return val
		}
		line, col := x.Pos()
		return object.NewError(line, col, "undefined variable '%s'", x.Name)

	case *parser.CallExpression:
		return e.evalCall(x, env)

	case *parser.IndexExpression:
		return e.evalIndex(x, env)

	case *parser.UnaryExpression:
		return e.evalUnary(x, env)

	case *parser.BinaryExpression:
		return e.evalBinary(x, env)

	case *parser.IncDecExpression:
		return e.evalIncDec(x, env)

	default:
		line, col := expr.Pos()
		return object.NewError(line, col, "unknown expression type %T", expr)
	}
}

func (e *Evaluator) evalIndex(x *parser.IndexExpression, env *environment.Environment) object.Object {
	arrObj := e.evalExpression(x.Array, env)
	if object.IsError(arrObj) {
		return arrObj
	}
	idxObj := e.evalExpression(x.Index, env)
	if object.IsError(idxObj) {
		return idxObj
	}
	line, col := x.Pos()
	switch container := arrObj.(type) {
	case *object.Array:
		idx, ok := idxObj.(*object.Integer)
		if !ok {
			return object.NewError(line, col, "array index must be a number, got %s", idxObj.GetType())
		}
		if idx.Value < 0 || idx.Value >= int64(len(container.Elements)) {
			return object.NewError(line, col, "index %d out of bounds for array of length %d", idx.Value, len(container.Elements))
		}
		return container.Elements[idx.Value]
	case *object.String:
		idx, ok := idxObj.(*object.Integer)
		if !ok {
			return object.NewError(line, col, "string index must be a number, got %s", idxObj.GetType())
		}
		if idx.Value < 0 || idx.Value >= int64(len(container.Value)) {
			return object.NewError(line, col, "index %d out of bounds for string of length %d", idx.Value, len(container.Value))
		}
		return &object.String{Value: string(container.Value[idx.Value])}
	default:
		return object.NewError(line, col, "cannot index into a value of type %s", arrObj.GetType())
	}
}

func (e *Evaluator) evalCall(x *parser.CallExpression, env *environment.Environment) object.Object {
	callee, ok := env.Get(x.Callee)
	if !ok {
		line, col := x.Pos()
		return object.NewError(line, col, "undefined function '%s'", x.Callee)
	}

	args := make([]object.Object, len(x.Args))
	for i, a := range x.Args {
		v := e.evalExpression(a, env)
		if object.IsError(v) {
			return v
		}
		args[i] = v
	}

	line, col := x.Pos()
	switch fn := callee.(type) {
	case *builtin.Builtin:
		return fn.Fn(line, col, args)
	case *function.Function:
		return e.callFunction(fn, args, line, col)
	default:
		return object.NewError(line, col, "'%s' is not callable", x.Callee)
	}
}

// callFunction binds args to fn's parameters in a fresh frame parented
// to fn's closure environment (not the caller's environment, which is
// what gives closures and recursion their usual lexical-scoping
// behavior), evaluates the body, and unwraps a ReturnValue signal into
// its plain value. A body that runs off the end without an explicit
// `return` yields null.
func (e *Evaluator) callFunction(fn *function.Function, args []object.Object, line, col int) object.Object {
	if len(args) != len(fn.Params) {
		return object.NewError(line, col, "wrong number of arguments to '%s': want %d, got %d", fn.Name, len(fn.Params), len(args))
	}
	callEnv := environment.NewEnclosed(fn.Env)
	for i, param := range fn.Params {
		callEnv.Define(param, args[i])
	}
	result := e.evalBlock(fn.Body, callEnv)
	if object.IsError(result) {
		return result
	}
	switch result.GetType() {
	case object.RETURN_OBJ:
		return result.(*object.ReturnValue).Value
	case object.BREAK_OBJ, object.CONTINUE_OBJ:
		return object.NewError(line, col, "'%s' outside of a loop", result.ToString())
	default:
		return object.NULL
	}
}

func (e *Evaluator) evalUnary(x *parser.UnaryExpression, env *environment.Environment) object.Object {
	val := e.evalExpression(x.Operand, env)
	if object.IsError(val) {
		return val
	}
	line, col := x.Pos()
	switch x.Operator {
	case lexer.BANG:
		return object.NativeBool(!builtin.Truthy(val))
	case lexer.MINUS:
		switch v := val.(type) {
		case *object.Integer:
			return &object.Integer{Value: -v.Value}
		case *object.Float:
			return &object.Float{Value: -v.Value}
		default:
			return object.NewError(line, col, "unary '-' not supported for type %s", val.GetType())
		}
	default:
		return object.NewError(line, col, "unknown unary operator %s", x.Operator)
	}
}

// evalIncDec implements prefix/postfix ++/--. The operand must resolve
// to a plain variable reference at evaluation time, since only a named
// binding can be rebound. Any other operand shape (an index expression,
// a literal, a call result) parses fine but is a RuntimeError raised
// here rather than at parse time.
func (e *Evaluator) evalIncDec(x *parser.IncDecExpression, env *environment.Environment) object.Object {
	ident, ok := x.Operand.(*parser.Identifier)
	if !ok {
		line, col := x.Pos()
		return object.NewError(line, col, "'%s' can only be applied to a variable", x.Operator)
	}
	cur, ok := env.Get(ident.Name)
	if !ok {
		line, col := x.Pos()
		return object.NewError(line, col, "undefined variable '%s'", ident.Name)
	}
	line, col := x.Pos()
	var next object.Object
	switch v := cur.(type) {
	case *object.Integer:
		delta := int64(1)
		if x.Operator == lexer.DECR {
			delta = -1
		}
		next = &object.Integer{Value: v.Value + delta}
	case *object.Float:
		delta := 1.0
		if x.Operator == lexer.DECR {
			delta = -1
		}
		next = &object.Float{Value: v.Value + delta}
	default:
		return object.NewError(line, col, "'%s' not supported for type %s", x.Operator, cur.GetType())
	}
	env.Set(ident.Name, next)
	if x.Prefix {
		return next
	}
	return cur
}

func (e *Evaluator) evalBinary(x *parser.BinaryExpression, env *environment.Environment) object.Object {
	left := e.evalExpression(x.Left, env)
	if object.IsError(left) {
		return left
	}
	right := e.evalExpression(x.Right, env)
	if object.IsError(right) {
		return right
	}
	line, col := x.Pos()

	switch x.Operator {
	case lexer.AND:
		return object.NativeBool(builtin.Truthy(left) && builtin.Truthy(right))
	case lexer.OR:
		return object.NativeBool(builtin.Truthy(left) || builtin.Truthy(right))
	case lexer.EQ:
		return object.NativeBool(valuesEqual(left, right))
	case lexer.NOT_EQ:
		return object.NativeBool(!valuesEqual(left, right))
	case lexer.PLUS:
		if isString(left) || isString(right) {
			return &object.String{Value: left.ToString() + right.ToString()}
		}
		return numericOp(line, col, x.Operator, left, right)
	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return numericOp(line, col, x.Operator, left, right)
	case lexer.LESS, lexer.GREATER, lexer.LESS_EQ, lexer.GREATER_EQ:
		return comparisonOp(line, col, x.Operator, left, right)
	default:
		return object.NewError(line, col, "unknown binary operator %s", x.Operator)
	}
}

func isString(o object.Object) bool { return o.GetType() == object.STRING_OBJ }

// numericOp implements +, -, *, /, % over the integer/float numeric
// tower: two integers stay integers (except division, which is always
// true division and produces a float); any float operand promotes the
// whole operation to float.
func numericOp(line, col int, op lexer.TokenType, left, right object.Object) object.Object {
	li, lIsInt := left.(*object.Integer)
	ri, rIsInt := right.(*object.Integer)
	_, lIsFloat := left.(*object.Float)
	_, rIsFloat := right.(*object.Float)

	if !((lIsInt || lIsFloat) && (rIsInt || rIsFloat)) {
		return object.NewError(line, col, "operator %s not supported between %s and %s", op, left.GetType(), right.GetType())
	}

	if op == lexer.SLASH {
		rv := floatOf(right)
		if rv == 0 {
			return object.NewError(line, col, "Division by zero")
		}
		return &object.Float{Value: floatOf(left) / rv}
	}

	if lIsInt && rIsInt {
		a, b := li.Value, ri.Value
		switch op {
		case lexer.PLUS:
			return &object.Integer{Value: a + b}
		case lexer.MINUS:
			return &object.Integer{Value: a - b}
		case lexer.STAR:
			return &object.Integer{Value: a * b}
		case lexer.PERCENT:
			if b == 0 {
				return object.NewError(line, col, "Modulo by zero")
			}
			return &object.Integer{Value: a % b}
		}
	}

	a, b := floatOf(left), floatOf(right)
	switch op {
	case lexer.PLUS:
		return &object.Float{Value: a + b}
	case lexer.MINUS:
		return &object.Float{Value: a - b}
	case lexer.STAR:
		return &object.Float{Value: a * b}
	case lexer.PERCENT:
		if b == 0 {
			return object.NewError(line, col, "Modulo by zero")
		}
		return &object.Float{Value: math.Mod(a, b)}
	}
	return object.NewError(line, col, "unknown numeric operator %s", op)
}

func comparisonOp(line, col int, op lexer.TokenType, left, right object.Object) object.Object {
	lIsNum := left.GetType() == object.INTEGER_OBJ || left.GetType() == object.FLOAT_OBJ
	rIsNum := right.GetType() == object.INTEGER_OBJ || right.GetType() == object.FLOAT_OBJ
	if lIsNum && rIsNum {
		a, b := floatOf(left), floatOf(right)
		return object.NativeBool(compareFloats(op, a, b))
	}
	ls, lIsStr := left.(*object.String)
	rs, rIsStr := right.(*object.String)
	if lIsStr && rIsStr {
		return object.NativeBool(compareStrings(op, ls.Value, rs.Value))
	}
	return object.NewError(line, col, "operator %s not supported between %s and %s", op, left.GetType(), right.GetType())
}

func compareFloats(op lexer.TokenType, a, b float64) bool {
	switch op {
	case lexer.LESS:
		return a < b
	case lexer.GREATER:
		return a > b
	case lexer.LESS_EQ:
		return a <= b
	case lexer.GREATER_EQ:
		return a >= b
	}
	return false
}

func compareStrings(op lexer.TokenType, a, b string) bool {
	switch op {
	case lexer.LESS:
		return a < b
	case lexer.GREATER:
		return a > b
	case lexer.LESS_EQ:
		return a <= b
	case lexer.GREATER_EQ:
		return a >= b
	}
	return false
}

func floatOf(o object.Object) float64 {
	switch v := o.(type) {
	case *object.Integer:
		return float64(v.Value)
	case *object.Float:
		return v.Value
	}
	return 0
}

// valuesEqual implements `==`: deep value equality for null/boolean/
// integer/float/string, reference identity for arrays and functions.
// Integers and floats compare equal across the numeric tower (2 == 2.0)
// since they are one logical number kind at the language level, matching
// how `+` and friends treat them.
func valuesEqual(a, b object.Object) bool {
	if a.GetType() == object.NULL_OBJ || b.GetType() == object.NULL_OBJ {
		return a.GetType() == b.GetType()
	}
	aNum := a.GetType() == object.INTEGER_OBJ || a.GetType() == object.FLOAT_OBJ
	bNum := b.GetType() == object.INTEGER_OBJ || b.GetType() == object.FLOAT_OBJ
	if aNum && bNum {
		return floatOf(a) == floatOf(b)
	}
	switch av := a.(type) {
	case *object.Boolean:
		bv, ok := b.(*object.Boolean)
		return ok && av.Value == bv.Value
	case *object.String:
		bv, ok := b.(*object.String)
		return ok && av.Value == bv.Value
	case *object.Array:
		bv, ok := b.(*object.Array)
		return ok && av == bv
	default:
		return a == b
	}
}

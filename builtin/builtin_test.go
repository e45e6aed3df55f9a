package builtin

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/Daniel-Iofin/simpleScript/environment"
	"github.com/Daniel-Iofin/simpleScript/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, env *environment.Environment, name string, args ...object.Object) object.Object {
	t.Helper()
	obj, ok := env.Get(name)
	require.True(t, ok, "builtin %q not registered", name)
	b, ok := obj.(*Builtin)
	require.True(t, ok, "%q is not a Builtin", name)
	return b.Fn(1, 1, args)
}

func newEnv() *environment.Environment {
	env := environment.New()
	Register(env, &bytes.Buffer{}, bufio.NewReader(strings.NewReader("")))
	return env
}

func TestLen(t *testing.T) {
	env := newEnv()
	r := call(t, env, "len", &object.String{Value: "hello"})
	assert.Equal(t, int64(5), r.(*object.Integer).Value)

	r = call(t, env, "len", &object.Array{Elements: []object.Object{object.NULL, object.NULL}})
	assert.Equal(t, int64(2), r.(*object.Integer).Value)
}

func TestPushAndPop(t *testing.T) {
	env := newEnv()
	arr := &object.Array{Elements: []object.Object{&object.Integer{Value: 1}}}
	call(t, env, "push", arr, &object.Integer{Value: 2})
	require.Len(t, arr.Elements, 2)

	popped := call(t, env, "pop", arr)
	assert.Equal(t, int64(2), popped.(*object.Integer).Value)
	require.Len(t, arr.Elements, 1)
}

func TestJoin(t *testing.T) {
	env := newEnv()
	arr := &object.Array{Elements: []object.Object{&object.Integer{Value: 1}, &object.Integer{Value: 2}}}
	r := call(t, env, "join", arr, &object.String{Value: "-"})
	assert.Equal(t, "1-2", r.(*object.String).Value)

	r = call(t, env, "join", arr)
	assert.Equal(t, "12", r.(*object.String).Value)
}

func TestSlice(t *testing.T) {
	env := newEnv()
	arr := &object.Array{Elements: []object.Object{
		&object.Integer{Value: 1}, &object.Integer{Value: 2}, &object.Integer{Value: 3},
	}}
	r := call(t, env, "slice", arr, &object.Integer{Value: 1}, &object.Integer{Value: 3})
	s := r.(*object.Array)
	require.Len(t, s.Elements, 2)
	assert.Equal(t, int64(2), s.Elements[0].(*object.Integer).Value)

	whole := call(t, env, "slice", arr).(*object.Array)
	require.Len(t, whole.Elements, 3)

	tail := call(t, env, "slice", arr, &object.Integer{Value: 1}).(*object.Array)
	require.Len(t, tail.Elements, 2)
	assert.Equal(t, int64(2), tail.Elements[0].(*object.Integer).Value)
}

func TestStrIntBoolConversions(t *testing.T) {
	env := newEnv()
	assert.Equal(t, "42", call(t, env, "str", &object.Integer{Value: 42}).(*object.String).Value)
	assert.Equal(t, int64(3), call(t, env, "int", &object.Float{Value: 3.9}).(*object.Integer).Value)
	assert.Equal(t, int64(-3), call(t, env, "int", &object.Float{Value: -3.9}).(*object.Integer).Value)
	assert.Equal(t, object.TRUE, call(t, env, "bool", &object.Integer{Value: 1}))
	assert.Equal(t, object.FALSE, call(t, env, "bool", &object.Integer{Value: 0}))
}

func TestMathHelpers(t *testing.T) {
	env := newEnv()
	assert.Equal(t, int64(5), call(t, env, "abs", &object.Integer{Value: -5}).(*object.Integer).Value)
	assert.Equal(t, 8.0, call(t, env, "pow", &object.Integer{Value: 2}, &object.Integer{Value: 3}).(*object.Float).Value)
	assert.Equal(t, 2.0, call(t, env, "sqrt", &object.Integer{Value: 4}).(*object.Float).Value)
	assert.Equal(t, int64(2), call(t, env, "floor", &object.Float{Value: 2.9}).(*object.Integer).Value)
	assert.Equal(t, int64(3), call(t, env, "ceil", &object.Float{Value: 2.1}).(*object.Integer).Value)
	assert.Equal(t, int64(3), call(t, env, "round", &object.Float{Value: 2.5}).(*object.Integer).Value)
	assert.Equal(t, 1.3, call(t, env, "round", &object.Float{Value: 1.25}, &object.Integer{Value: 1}).(*object.Float).Value)
	assert.Equal(t, int64(1), call(t, env, "min", &object.Integer{Value: 1}, &object.Integer{Value: 2}).(*object.Integer).Value)
	assert.Equal(t, int64(2), call(t, env, "max", &object.Integer{Value: 1}, &object.Integer{Value: 2}).(*object.Integer).Value)
}

func TestStringHelpers(t *testing.T) {
	env := newEnv()
	assert.Equal(t, "ell", call(t, env, "substring", &object.String{Value: "hello"}, &object.Integer{Value: 1}, &object.Integer{Value: 4}).(*object.String).Value)
	assert.Equal(t, "hxllo", call(t, env, "replace", &object.String{Value: "hello"}, &object.String{Value: "e"}, &object.String{Value: "x"}).(*object.String).Value)
	assert.Equal(t, "hello", call(t, env, "tolower", &object.String{Value: "HELLO"}).(*object.String).Value)
	assert.Equal(t, "HELLO", call(t, env, "toupper", &object.String{Value: "hello"}).(*object.String).Value)
	assert.Equal(t, object.TRUE, call(t, env, "startswith", &object.String{Value: "hello"}, &object.String{Value: "he"}))
	assert.Equal(t, object.TRUE, call(t, env, "endswith", &object.String{Value: "hello"}, &object.String{Value: "lo"}))

	split := call(t, env, "split", &object.String{Value: "a,b,c"}, &object.String{Value: ","}).(*object.Array)
	require.Len(t, split.Elements, 3)
	assert.Equal(t, "b", split.Elements[1].(*object.String).Value)
}

func TestRange(t *testing.T) {
	env := newEnv()
	r := call(t, env, "range", &object.Integer{Value: 3}).(*object.Array)
	require.Len(t, r.Elements, 3)
	assert.Equal(t, int64(0), r.Elements[0].(*object.Integer).Value)
	assert.Equal(t, int64(2), r.Elements[2].(*object.Integer).Value)

	r = call(t, env, "range", &object.Integer{Value: 5}, &object.Integer{Value: 0}, &object.Integer{Value: -1}).(*object.Array)
	require.Len(t, r.Elements, 5)
	assert.Equal(t, int64(5), r.Elements[0].(*object.Integer).Value)

	// A negative end yields an empty array, never an error.
	empty := call(t, env, "range", &object.Integer{Value: -3}).(*object.Array)
	assert.Empty(t, empty.Elements)
}

func TestType(t *testing.T) {
	env := newEnv()
	assert.Equal(t, "number", call(t, env, "type", &object.Integer{Value: 1}).(*object.String).Value)
	assert.Equal(t, "string", call(t, env, "type", &object.String{Value: "x"}).(*object.String).Value)
	assert.Equal(t, "array", call(t, env, "type", &object.Array{}).(*object.String).Value)
	assert.Equal(t, "null", call(t, env, "type", object.NULL).(*object.String).Value)
}

func TestArityErrorIsRuntimeError(t *testing.T) {
	env := newEnv()
	r := call(t, env, "len")
	assert.True(t, object.IsError(r))
}

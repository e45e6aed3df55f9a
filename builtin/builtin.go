/*
File    : simpleScript/builtin/builtin.go
Package : builtin
*/

// Package builtin implements the fixed table of host-callable functions
// (print, input, len, str/int/bool, the array and string helpers, the
// math helpers, range, and type) and registers them into the root
// environment once, at evaluator construction. They are regular
// bindings; user code can shadow or rebind any of them.
package builtin

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Daniel-Iofin/simpleScript/environment"
	"github.com/Daniel-Iofin/simpleScript/object"
)

// Func is the Go shape every built-in implements. line/column locate the
// call expression that invoked it, for error reporting; args is already
// evaluated left-to-right by the caller.
type Func func(line, column int, args []object.Object) object.Object

// Builtin is the host-callable Object value a built-in name is bound to.
// At call sites it is indistinguishable from a user-defined function:
// both are looked up by name and called with already-evaluated
// arguments; eval's call dispatch picks the Builtin or Function case.
type Builtin struct {
	Name string
	Fn   Func
}

func (b *Builtin) GetType() object.Type { return object.BUILTIN_OBJ }
func (b *Builtin) ToString() string     { return b.ToObject() }
func (b *Builtin) ToObject() string     { return "<builtin " + b.Name + ">" }

func arityError(line, column int, name string, want string, got int) *object.Error {
	return object.NewError(line, column, "wrong number of arguments to '%s': want %s, got %d", name, want, got)
}

func typeError(line, column int, name string, args ...object.Object) *object.Error {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = string(a.GetType())
	}
	return object.NewError(line, column, "invalid argument type(s) to '%s': %s", name, strings.Join(types, ", "))
}

func asNumber(o object.Object) (float64, bool) {
	switch v := o.(type) {
	case *object.Integer:
		return float64(v.Value), true
	case *object.Float:
		return v.Value, true
	}
	return 0, false
}

func isInt(o object.Object) (int64, bool) {
	if v, ok := o.(*object.Integer); ok {
		return v.Value, true
	}
	return 0, false
}

// Truthy converts an arbitrary value to a condition: null is false, a
// boolean is itself, a number is falsy only at zero, a string is falsy
// only when empty, and every other value (arrays and functions included,
// regardless of contents) is truthy. An empty array `[]` is therefore
// truthy, same as a non-empty one.
func Truthy(o object.Object) bool {
	switch v := o.(type) {
	case *object.Null:
		return false
	case *object.Boolean:
		return v.Value
	case *object.Integer:
		return v.Value != 0
	case *object.Float:
		return v.Value != 0
	case *object.String:
		return v.Value != ""
	default:
		return true
	}
}

// Register binds every built-in name into env. out and in back `print`
// and `input` respectively; the CLI and REPL entry points wire these to
// os.Stdout/os.Stdin, while tests wire them to in-memory buffers.
func Register(env *environment.Environment, out io.Writer, in *bufio.Reader) {
	def := func(name string, fn Func) {
		env.Define(name, &Builtin{Name: name, Fn: fn})
	}

	def("print", biPrint(out))
	def("input", biInput(out, in))
	def("len", biLen)
	def("str", biStr)
	def("int", biInt)
	def("bool", biBool)
	def("push", biPush)
	def("append", biPush)
	def("pop", biPop)
	def("join", biJoin)
	def("slice", biSlice)
	def("abs", biAbs)
	def("pow", biPow)
	def("sqrt", biSqrt)
	def("floor", biFloor)
	def("ceil", biCeil)
	def("round", biRound)
	def("min", biMin)
	def("max", biMax)
	def("substring", biSubstring)
	def("replace", biReplace)
	def("split", biSplit)
	def("tolower", biTolower)
	def("toupper", biToupper)
	def("startswith", biStartswith)
	def("endswith", biEndswith)
	def("range", biRange)
	def("type", biType)
}

// ---- I/O ------------------------------------------------------------------

func biPrint(out io.Writer) Func {
	return func(line, column int, args []object.Object) object.Object {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.ToString()
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return object.NULL
	}
}

func biInput(out io.Writer, in *bufio.Reader) Func {
	return func(line, column int, args []object.Object) object.Object {
		if len(args) > 1 {
			return arityError(line, column, "input", "0 or 1", len(args))
		}
		if len(args) == 1 {
			s, ok := args[0].(*object.String)
			if !ok {
				return typeError(line, column, "input", args...)
			}
			fmt.Fprint(out, s.Value)
		}
		text, err := in.ReadString('\n')
		if err != nil && text == "" {
			return object.NULL
		}
		return &object.String{Value: strings.TrimRight(text, "\r\n")}
	}
}

// ---- Conversions and introspection -----------------------------------------

func biLen(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "len", "1", len(args))
	}
	switch v := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(len(v.Value))}
	case *object.Array:
		return &object.Integer{Value: int64(len(v.Elements))}
	default:
		return typeError(line, column, "len", args...)
	}
}

func biStr(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "str", "1", len(args))
	}
	return &object.String{Value: args[0].ToString()}
}

func biInt(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "int", "1", len(args))
	}
	switch v := args[0].(type) {
	case *object.Integer:
		return v
	case *object.Float:
		return &object.Integer{Value: int64(v.Value)} // truncates toward zero
	case *object.Boolean:
		if v.Value {
			return &object.Integer{Value: 1}
		}
		return &object.Integer{Value: 0}
	case *object.String:
		if n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64); err == nil {
			return &object.Integer{Value: n}
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64); err == nil {
			return &object.Integer{Value: int64(f)}
		}
		return object.NewError(line, column, "cannot convert %q to int", v.Value)
	default:
		return typeError(line, column, "int", args...)
	}
}

func biBool(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "bool", "1", len(args))
	}
	return object.NativeBool(Truthy(args[0]))
}

func biType(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "type", "1", len(args))
	}
	return &object.String{Value: string(args[0].GetType())}
}

// ---- Arrays -----------------------------------------------------------------

func biPush(line, column int, args []object.Object) object.Object {
	if len(args) != 2 {
		return arityError(line, column, "push", "2", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return typeError(line, column, "push", args...)
	}
	arr.Elements = append(arr.Elements, args[1])
	return arr
}

func biPop(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "pop", "1", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return typeError(line, column, "pop", args...)
	}
	if len(arr.Elements) == 0 {
		return object.NewError(line, column, "pop from empty array")
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last
}

// biJoin implements join(arr, sep?); sep defaults to the empty string
// when omitted.
func biJoin(line, column int, args []object.Object) object.Object {
	if len(args) != 1 && len(args) != 2 {
		return arityError(line, column, "join", "1 or 2", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return typeError(line, column, "join", args...)
	}
	sep := ""
	if len(args) == 2 {
		s, ok := args[1].(*object.String)
		if !ok {
			return typeError(line, column, "join", args...)
		}
		sep = s.Value
	}
	parts := make([]string, len(arr.Elements))
	for i, el := range arr.Elements {
		parts[i] = el.ToString()
	}
	return &object.String{Value: strings.Join(parts, sep)}
}

// biSlice implements slice(arr, start?, end?): a half-open range that
// defaults to 0 and len(arr) when either bound is omitted.
func biSlice(line, column int, args []object.Object) object.Object {
	if len(args) < 1 || len(args) > 3 {
		return arityError(line, column, "slice", "1, 2, or 3", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return typeError(line, column, "slice", args...)
	}
	start, end := int64(0), int64(len(arr.Elements))
	if len(args) >= 2 {
		n, ok := isInt(args[1])
		if !ok {
			return typeError(line, column, "slice", args...)
		}
		start = n
	}
	if len(args) == 3 {
		n, ok := isInt(args[2])
		if !ok {
			return typeError(line, column, "slice", args...)
		}
		end = n
	}
	n := int64(len(arr.Elements))
	if start < 0 || end > n || start > end {
		return object.NewError(line, column, "slice index out of bounds")
	}
	elems := make([]object.Object, end-start)
	copy(elems, arr.Elements[start:end])
	return &object.Array{Elements: elems}
}

// ---- Math -------------------------------------------------------------------

func biAbs(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "abs", "1", len(args))
	}
	switch v := args[0].(type) {
	case *object.Integer:
		if v.Value < 0 {
			return &object.Integer{Value: -v.Value}
		}
		return v
	case *object.Float:
		return &object.Float{Value: math.Abs(v.Value)}
	default:
		return typeError(line, column, "abs", args...)
	}
}

func biPow(line, column int, args []object.Object) object.Object {
	if len(args) != 2 {
		return arityError(line, column, "pow", "2", len(args))
	}
	base, ok1 := asNumber(args[0])
	exp, ok2 := asNumber(args[1])
	if !ok1 || !ok2 {
		return typeError(line, column, "pow", args...)
	}
	return &object.Float{Value: math.Pow(base, exp)}
}

func biSqrt(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "sqrt", "1", len(args))
	}
	n, ok := asNumber(args[0])
	if !ok {
		return typeError(line, column, "sqrt", args...)
	}
	if n < 0 {
		return object.NewError(line, column, "sqrt of negative number")
	}
	return &object.Float{Value: math.Sqrt(n)}
}

func biFloor(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "floor", "1", len(args))
	}
	n, ok := asNumber(args[0])
	if !ok {
		return typeError(line, column, "floor", args...)
	}
	return &object.Integer{Value: int64(math.Floor(n))}
}

func biCeil(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "ceil", "1", len(args))
	}
	n, ok := asNumber(args[0])
	if !ok {
		return typeError(line, column, "ceil", args...)
	}
	return &object.Integer{Value: int64(math.Ceil(n))}
}

// biRound implements round(x) and round(x, ndigits). The one-argument
// form rounds to the nearest integer; with ndigits it rounds to that
// many decimal places and stays a float.
func biRound(line, column int, args []object.Object) object.Object {
	if len(args) != 1 && len(args) != 2 {
		return arityError(line, column, "round", "1 or 2", len(args))
	}
	n, ok := asNumber(args[0])
	if !ok {
		return typeError(line, column, "round", args...)
	}
	if len(args) == 1 {
		return &object.Integer{Value: int64(math.Round(n))}
	}
	digits, ok := isInt(args[1])
	if !ok {
		return typeError(line, column, "round", args...)
	}
	scale := math.Pow(10, float64(digits))
	return &object.Float{Value: math.Round(n*scale) / scale}
}

func biMin(line, column int, args []object.Object) object.Object {
	if len(args) < 1 {
		return arityError(line, column, "min", "at least 1", len(args))
	}
	best := args[0]
	bestN, ok := asNumber(best)
	if !ok {
		return typeError(line, column, "min", args...)
	}
	for _, a := range args[1:] {
		n, ok := asNumber(a)
		if !ok {
			return typeError(line, column, "min", args...)
		}
		if n < bestN {
			best, bestN = a, n
		}
	}
	return best
}

func biMax(line, column int, args []object.Object) object.Object {
	if len(args) < 1 {
		return arityError(line, column, "max", "at least 1", len(args))
	}
	best := args[0]
	bestN, ok := asNumber(best)
	if !ok {
		return typeError(line, column, "max", args...)
	}
	for _, a := range args[1:] {
		n, ok := asNumber(a)
		if !ok {
			return typeError(line, column, "max", args...)
		}
		if n > bestN {
			best, bestN = a, n
		}
	}
	return best
}

// ---- Strings ------------------------------------------------------------

func biSubstring(line, column int, args []object.Object) object.Object {
	if len(args) != 3 {
		return arityError(line, column, "substring", "3", len(args))
	}
	s, ok := args[0].(*object.String)
	if !ok {
		return typeError(line, column, "substring", args...)
	}
	start, ok1 := isInt(args[1])
	end, ok2 := isInt(args[2])
	if !ok1 || !ok2 {
		return typeError(line, column, "substring", args...)
	}
	n := int64(len(s.Value))
	if start < 0 || end > n || start > end {
		return object.NewError(line, column, "substring index out of bounds")
	}
	return &object.String{Value: s.Value[start:end]}
}

func biReplace(line, column int, args []object.Object) object.Object {
	if len(args) != 3 {
		return arityError(line, column, "replace", "3", len(args))
	}
	s, ok1 := args[0].(*object.String)
	old, ok2 := args[1].(*object.String)
	replacement, ok3 := args[2].(*object.String)
	if !ok1 || !ok2 || !ok3 {
		return typeError(line, column, "replace", args...)
	}
	return &object.String{Value: strings.ReplaceAll(s.Value, old.Value, replacement.Value)}
}

func biSplit(line, column int, args []object.Object) object.Object {
	if len(args) != 2 {
		return arityError(line, column, "split", "2", len(args))
	}
	s, ok1 := args[0].(*object.String)
	sep, ok2 := args[1].(*object.String)
	if !ok1 || !ok2 {
		return typeError(line, column, "split", args...)
	}
	parts := strings.Split(s.Value, sep.Value)
	elems := make([]object.Object, len(parts))
	for i, p := range parts {
		elems[i] = &object.String{Value: p}
	}
	return &object.Array{Elements: elems}
}

func biTolower(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "tolower", "1", len(args))
	}
	s, ok := args[0].(*object.String)
	if !ok {
		return typeError(line, column, "tolower", args...)
	}
	return &object.String{Value: strings.ToLower(s.Value)}
}

func biToupper(line, column int, args []object.Object) object.Object {
	if len(args) != 1 {
		return arityError(line, column, "toupper", "1", len(args))
	}
	s, ok := args[0].(*object.String)
	if !ok {
		return typeError(line, column, "toupper", args...)
	}
	return &object.String{Value: strings.ToUpper(s.Value)}
}

func biStartswith(line, column int, args []object.Object) object.Object {
	if len(args) != 2 {
		return arityError(line, column, "startswith", "2", len(args))
	}
	s, ok1 := args[0].(*object.String)
	prefix, ok2 := args[1].(*object.String)
	if !ok1 || !ok2 {
		return typeError(line, column, "startswith", args...)
	}
	return object.NativeBool(strings.HasPrefix(s.Value, prefix.Value))
}

func biEndswith(line, column int, args []object.Object) object.Object {
	if len(args) != 2 {
		return arityError(line, column, "endswith", "2", len(args))
	}
	s, ok1 := args[0].(*object.String)
	suffix, ok2 := args[1].(*object.String)
	if !ok1 || !ok2 {
		return typeError(line, column, "endswith", args...)
	}
	return object.NativeBool(strings.HasSuffix(s.Value, suffix.Value))
}

// ---- range ------------------------------------------------------------------

// biRange implements range(end), range(start, end), and
// range(start, end, step): a half-open, step-aware integer range.
// range(-3) and friends produce an empty array, never an error.
func biRange(line, column int, args []object.Object) object.Object {
	var start, end, step int64 = 0, 0, 1
	switch len(args) {
	case 1:
		n, ok := isInt(args[0])
		if !ok {
			return typeError(line, column, "range", args...)
		}
		end = n
	case 2:
		a, ok1 := isInt(args[0])
		b, ok2 := isInt(args[1])
		if !ok1 || !ok2 {
			return typeError(line, column, "range", args...)
		}
		start, end = a, b
	case 3:
		a, ok1 := isInt(args[0])
		b, ok2 := isInt(args[1])
		s, ok3 := isInt(args[2])
		if !ok1 || !ok2 || !ok3 {
			return typeError(line, column, "range", args...)
		}
		start, end, step = a, b, s
	default:
		return arityError(line, column, "range", "1, 2, or 3", len(args))
	}
	if step == 0 {
		return object.NewError(line, column, "range() step must not be zero")
	}
	var elems []object.Object
	if step > 0 {
		for i := start; i < end; i += step {
			elems = append(elems, &object.Integer{Value: i})
		}
	} else {
		for i := start; i > end; i += step {
			elems = append(elems, &object.Integer{Value: i})
		}
	}
	if elems == nil {
		elems = []object.Object{}
	}
	return &object.Array{Elements: elems}
}

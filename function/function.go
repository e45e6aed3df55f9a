/*
File    : simpleScript/function/function.go
Package : function
*/

// Package function defines the user-defined function value: a parsed
// body plus the lexical environment it closes over.
package function

import (
	"strings"

	"github.com/Daniel-Iofin/simpleScript/environment"
	"github.com/Daniel-Iofin/simpleScript/object"
	"github.com/Daniel-Iofin/simpleScript/parser"
)

// Function is the runtime representation of a `def` statement. Function
// equality is reference identity: two distinct Function values are never
// equal, even if their bodies are textually identical.
type Function struct {
	Name   string
	Params []string
	Body   *parser.BlockStatement
	Env    *environment.Environment
}

// New constructs a Function that closes over env — the environment in
// effect at the `def` site, not the one in effect at any future call
// site.
func New(name string, params []string, body *parser.BlockStatement, env *environment.Environment) *Function {
	return &Function{Name: name, Params: params, Body: body, Env: env}
}

func (f *Function) GetType() object.Type { return object.FUNCTION_OBJ }

func (f *Function) ToString() string { return f.ToObject() }

func (f *Function) ToObject() string {
	var b strings.Builder
	b.WriteString("<function ")
	b.WriteString(f.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(f.Params, ", "))
	b.WriteString(")>")
	return b.String()
}

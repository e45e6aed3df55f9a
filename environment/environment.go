/*
File    : simpleScript/environment/environment.go
Package : environment
*/

// Package environment implements the lexically-scoped binding chains the
// evaluator threads through every block, loop, and function call.
package environment

import "github.com/Daniel-Iofin/simpleScript/object"

// Environment is one frame of lexical scope: a table of bindings plus a
// link to the enclosing frame. Function values capture the Environment
// in effect at their `def` site (their closure), not the one in effect
// at the call site.
type Environment struct {
	store  map[string]object.Object
	parent *Environment
}

// New creates a top-level environment with no parent. The evaluator
// creates exactly one of these per program/REPL session and registers
// the built-in table into it before running any user code.
func New() *Environment {
	return &Environment{store: make(map[string]object.Object)}
}

// NewEnclosed creates a child frame for a block, loop body, or function
// call, parented to outer.
func NewEnclosed(outer *Environment) *Environment {
	return &Environment{store: make(map[string]object.Object), parent: outer}
}

// Get resolves name by searching this frame and then each enclosing
// frame in turn, returning (value, true) on the first match or
// (nil, false) if no frame in the chain binds name.
func (e *Environment) Get(name string) (object.Object, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.store[name]; ok {
			return val, true
		}
	}
	return nil, false
}

// Define unconditionally creates or overwrites a binding for name in
// this frame, regardless of whether an outer frame already binds it.
// `let` declarations and function-parameter binding both use Define so
// that shadowing an outer name is always possible.
func (e *Environment) Define(name string, val object.Object) {
	e.store[name] = val
}

// Set rebinds name in place: it walks the chain looking for the nearest
// frame that already binds name and overwrites it there, so assignment
// inside a nested block or loop body mutates the outer variable rather
// than shadowing it. If no frame in the chain binds name yet, Set
// creates the binding in the outermost (root) frame: assigning an
// undeclared name creates it as a top-level variable rather than
// erroring. It reports whether an existing binding was found
// (informational only; Set always succeeds).
func (e *Environment) Set(name string, val object.Object) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.store[name]; ok {
			env.store[name] = val
			return true
		}
	}
	e.root().store[name] = val
	return false
}

func (e *Environment) root() *Environment {
	env := e
	for env.parent != nil {
		env = env.parent
	}
	return env
}

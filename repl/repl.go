/*
File    : simpleScript/repl/repl.go
Package : repl
*/

// Package repl implements the interactive Read-Eval-Print Loop: an
// Evaluator persists across lines so declarations made on one line are
// visible on the next.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Daniel-Iofin/simpleScript/eval"
	"github.com/Daniel-Iofin/simpleScript/object"
	"github.com/Daniel-Iofin/simpleScript/parser"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// Color definitions for REPL output: red for errors, yellow for
// expression results, cyan for informational banner text.
var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
	blueColor   = color.New(color.FgBlue)
)

// Repl holds an interactive session's banner configuration. Start
// creates the one Evaluator instance that survives for the whole session.
type Repl struct {
	Version string
	Prompt  string
	Line    string
}

// NewRepl creates a Repl with the given banner configuration.
func NewRepl(version, prompt, line string) *Repl {
	return &Repl{Version: version, Prompt: prompt, Line: line}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintf(w, "simpleScript %s\n", r.Version)
	cyanColor.Fprintln(w, "Type an expression or statement and press enter.")
	cyanColor.Fprintln(w, "Type '.exit' to quit.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the loop: read a line, parse it, evaluate it against the
// session's Evaluator, print the result or error, repeat. Unlike file
// execution, a RuntimeError does not end the session; the REPL reports
// it and waits for the next line.
func (r *Repl) Start(in io.Reader, out io.Writer) {
	r.printBanner(out)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(in),
		Stdout: out,
	})
	if err != nil {
		redColor.Fprintf(out, "Error: could not start line editor: %v\n", err)
		return
	}
	defer rl.Close()

	evaluator := eval.New(out, bufio.NewReader(in))

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		r.evalLine(out, line, evaluator)
	}
}

func (r *Repl) evalLine(out io.Writer, line string, evaluator *eval.Evaluator) {
	p := parser.NewParser(line)
	prog, syntaxErr := p.Parse()
	if syntaxErr != nil {
		redColor.Fprintf(out, "Syntax Error: %s\n", syntaxErr)
		return
	}

	result := evaluator.Run(prog)
	if result == nil {
		return
	}
	if object.IsError(result) {
		redColor.Fprintf(out, "%s\n", result.ToString())
		return
	}
	if result.GetType() == object.NULL_OBJ {
		return
	}
	yellowColor.Fprintf(out, "%s\n", result.ToObject())
}

/*
File    : simpleScript/cmd/simplescript/main.go
Package : main
*/

// Command simplescript is the CLI entry point: run a source file, or
// drop into the interactive REPL when no file is given. File execution,
// shebang handling, and REPL/CLI I/O plumbing all live here, outside
// the language core.
package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/Daniel-Iofin/simpleScript/eval"
	"github.com/Daniel-Iofin/simpleScript/object"
	"github.com/Daniel-Iofin/simpleScript/parser"
	"github.com/Daniel-Iofin/simpleScript/repl"
	"github.com/fatih/color"
)

const (
	version = "v0.1.0"
	prompt  = "ss >>> "
	line    = "----------------------------------------------------------------"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			showHelp()
			return
		case "--version", "-v":
			showVersion()
			return
		default:
			runFile(os.Args[1])
			return
		}
	}
	repl.NewRepl(version, prompt, line).Start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("simpleScript - a small imperative scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  simplescript                    Start the interactive REPL")
	yellowColor.Println("  simplescript <path-to-file>     Run a simpleScript file")
	yellowColor.Println("  simplescript --help             Show this message")
	yellowColor.Println("  simplescript --version          Show version information")
}

func showVersion() {
	cyanColor.Printf("simpleScript %s\n", version)
}

// runFile reads fileName, trims a leading shebang line if present, and
// runs the remaining source.
func runFile(fileName string) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Error: could not read file '%s': %v\n", fileName, err)
		os.Exit(1)
	}

	source := stripShebang(string(content))

	p := parser.NewParser(source)
	prog, syntaxErr := p.Parse()
	if syntaxErr != nil {
		redColor.Fprintf(os.Stderr, "Syntax Error: %s\n", syntaxErr)
		os.Exit(1)
	}

	evaluator := eval.New(os.Stdout, bufio.NewReader(os.Stdin))
	result := evaluator.Run(prog)

	if object.IsError(result) {
		redColor.Fprintf(os.Stderr, "%s\n", result.ToString())
		os.Exit(1)
	}
}

// stripShebang drops a leading "#!..." line, replacing it with a blank
// line so reported line numbers in the remaining source stay unshifted.
func stripShebang(source string) string {
	if !strings.HasPrefix(source, "#!") {
		return source
	}
	nl := strings.IndexByte(source, '\n')
	if nl == -1 {
		return ""
	}
	return "\n" + source[nl+1:]
}

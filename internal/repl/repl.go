// Package repl implements the interactive Read-Eval-Print Loop for Axel.
// It is the external collaborator spec.md §1 describes: the core
// lexer/parser/eval packages have no notion of a prompt or a session, they
// only ever see one statement-sequence at a time.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/axel-lang/axel/eval"
	"github.com/axel-lang/axel/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a configured interactive session: banner text, version/author/
// license strings, and the prompt to show before each line.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New returns a Repl configured with the given display strings.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBanner writes the startup banner and a short usage hint to writer.
func (r *Repl) PrintBanner(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Axel!")
	cyanColor.Fprintf(writer, "%s\n", "Type an Axel statement and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type 'exit' to quit, 'read' to evaluate a file.")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop against reader/writer until the user exits,
// reaches EOF, or readline itself errors. One Evaluator, and therefore one
// Environment, is shared across every line read in the session (spec.md
// §4.3: this is what makes the REPL stateful).
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBanner(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		redColor.Fprintf(writer, "[READLINE ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	evaluator := eval.New()
	evaluator.Writer = writer

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			writer.Write([]byte("Good Bye!\n"))
			return
		}
		if line == "read" {
			r.handleRead(rl, writer, evaluator)
			continue
		}

		rl.SaveHistory(line)
		r.evalLine(writer, line, evaluator)
	}
}

// handleRead implements the `read` REPL command: prompt for a path, then
// evaluate its contents as if typed directly.
func (r *Repl) handleRead(rl *readline.Instance, writer io.Writer, evaluator *eval.Evaluator) {
	rl.SetPrompt("path> ")
	defer rl.SetPrompt(r.Prompt)

	path, err := rl.Readline()
	if err != nil {
		return
	}
	path = strings.TrimSpace(path)

	source, readErr := readFile(path)
	if readErr != nil {
		redColor.Fprintf(writer, "[FILE ERROR] could not read %q: %v\n", path, readErr)
		return
	}
	r.evalLine(writer, source, evaluator)
}

// evalLine parses and evaluates one chunk of source with panic recovery, so
// a host-trapped fault (e.g. an out-of-range array index, per spec.md
// §4.3.2) prints a diagnostic and returns control to the prompt instead of
// crashing the session.
func (r *Repl) evalLine(writer io.Writer, src string, evaluator *eval.Evaluator) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	stmts, err := parser.New(src).Parse()
	if err != nil {
		redColor.Fprintf(writer, "[PARSE ERROR] %s\n", err)
		return
	}

	result, err := evaluator.EvalProgram(stmts)
	if err != nil {
		redColor.Fprintf(writer, "[EVAL ERROR] %s\n", err)
		return
	}
	yellowColor.Fprintf(writer, "%s\n", result.Inspect())
}

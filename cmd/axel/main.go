// Command axel is the Axel language interpreter: a REPL by default, a file
// runner that then starts the REPL when given a path, and a TCP REPL server
// when given `server <port>`.
package main

import (
	"net"
	"os"

	"github.com/fatih/color"

	"github.com/axel-lang/axel/eval"
	"github.com/axel-lang/axel/internal/repl"
	"github.com/axel-lang/axel/parser"
)

const (
	version = "v0.1.0"
	author  = "axel-lang"
	license = "MIT"
	prompt  = "axel >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
   ▄▄▄▄▄  ▀▄ ▄▀ ▄▄▄▄▄ ▄▄▄▄▄
   █▄▄▄█    █   █▄▄▄▄ █
   █   █  ▄▀ ▀▄ █▄▄▄▄ █▄▄▄▄
`
)

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		switch arg := os.Args[1]; arg {
		case "--help", "-h":
			showHelp()
			return
		case "--version", "-v":
			showVersion()
			return
		case "server":
			if len(os.Args) < 3 {
				redColor.Fprintln(os.Stderr, "[USAGE ERROR] missing port. usage: axel server <port>")
				os.Exit(1)
			}
			startServer(os.Args[2])
			return
		default:
			runFile(arg)
		}
		return
	}

	session := repl.New(banner, version, author, line, license, prompt)
	session.Start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("Axel - a small interpreted language")
	cyanColor.Println()
	cyanColor.Println("USAGE:")
	cyanColor.Println("  axel                  start the interactive REPL")
	cyanColor.Println("  axel <path>           run an Axel source file, then start the REPL")
	cyanColor.Println("  axel server <port>    start a REPL server on the given TCP port")
	cyanColor.Println("  axel --help           show this message")
	cyanColor.Println("  axel --version        show version information")
}

func showVersion() {
	cyanColor.Printf("Axel %s (%s, %s)\n", version, author, license)
}

// runFile evaluates a file once and prints its final value, then drops into
// the REPL (spec.md §6's "Program invocation with one arg" CLI behavior).
// The REPL session runs on its own fresh Evaluator, so bindings made by the
// file are not visible in it.
func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		os.Exit(1)
	}

	stmts, parseErr := parser.New(string(source)).Parse()
	if parseErr != nil {
		redColor.Fprintf(os.Stderr, "[PARSE ERROR] %s\n", parseErr)
		os.Exit(1)
	}

	evaluator := eval.New()
	result, evalErr := evaluator.EvalProgram(stmts)
	if evalErr != nil {
		redColor.Fprintf(os.Stderr, "[EVAL ERROR] %s\n", evalErr)
		os.Exit(1)
	}
	cyanColor.Printf("%s\n", result.Inspect())

	session := repl.New(banner, version, author, line, license, prompt)
	session.Start(os.Stdin, os.Stdout)
}

// startServer listens on port and hands each accepted connection its own
// REPL session (and therefore its own Evaluator/Environment), per spec.md
// §5's "exactly one Environment per Evaluator" invariant.
func startServer(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to listen on :%s: %v\n", port, err)
		os.Exit(1)
	}
	defer listener.Close()
	cyanColor.Printf("axel REPL server listening on :%s\n", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] accept failed: %v\n", err)
			continue
		}
		go handleConn(conn)
	}
}

func handleConn(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("client connected: %s\n", conn.RemoteAddr())
	session := repl.New(banner, version, author, line, license, prompt)
	session.Start(conn, conn)
	cyanColor.Printf("client disconnected: %s\n", conn.RemoteAddr())
}

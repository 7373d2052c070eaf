// Command mlisp is the Mini-LISP interpreter CLI.
//
//	mlisp run [file.lsp]   Run a program from a file or stdin.
//	mlisp repl             Start an interactive session.
//	mlisp version          Print the interpreter version.
//
// `run` writes the program's print output to stdout, followed by the
// mandated `syntax error` / `Type error!` line when the run fails with a
// user-visible error kind. Exit status: 0 on success, 1 on syntax errors,
// 2 on type errors, 3 on other fatal runtime conditions.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	minilisp "github.com/rex20041021/minilisp"
)

const (
	appName     = "mlisp"
	historyFile = ".mlisp_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("Mini-LISP %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", minilisp.Version)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(minilisp.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Mini-LISP %s

Usage:
  %s run [file.lsp]    Run a program (stdin when no file is given).
  %s repl              Start the REPL.
  %s version           Print the interpreter version.

Flags for run and repl:
  -no-type-check       Disable runtime operand type checking.
  -debug               Print a caret-annotated diagnostic to stderr on error.

`, minilisp.Version, appName, appName, appName)
}

// exitCode maps an interpreter error to the process exit status.
func exitCode(err error) int {
	switch e := err.(type) {
	case *minilisp.LexError, *minilisp.ParseError:
		return 1
	case *minilisp.RuntimeError:
		switch e.Kind {
		case minilisp.RunType:
			return 2
		case minilisp.RunRedefine, minilisp.RunArity:
			return 1 // surfaced as syntax errors
		default:
			return 3
		}
	default:
		return 3
	}
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	noCheck := fs.Bool("no-type-check", false, "disable runtime operand type checking")
	debug := fs.Bool("debug", false, "print a caret-annotated diagnostic to stderr on error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var (
		src     []byte
		err     error
		srcName = "<stdin>"
	)
	if fs.NArg() > 0 {
		srcName = fs.Arg(0)
		src, err = os.ReadFile(srcName)
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, srcName, err)
		return 2
	}

	out := bufio.NewWriter(os.Stdout)
	ip := minilisp.NewInterpreter()
	ip.Out = out
	ip.TypeCheck = !*noCheck

	runErr := ip.Run(string(src))
	if runErr != nil {
		// The error line shares stdout with print output and must follow it.
		if msg := minilisp.UserMessage(runErr); msg != "" {
			fmt.Fprintln(out, msg)
		}
	}
	out.Flush()

	if runErr != nil {
		if *debug {
			fmt.Fprintln(os.Stderr, color.RedString("%v",
				minilisp.WrapErrorWithName(runErr, srcName, string(src))))
		}
		return exitCode(runErr)
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	noCheck := fs.Bool("no-type-check", false, "disable runtime operand type checking")
	debug := fs.Bool("debug", false, "show caret-annotated diagnostics instead of one-line errors")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := minilisp.NewInterpreter()
	ip.TypeCheck = !*noCheck

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			if done := replCommand(trimmed); done {
				return 0
			}
			ln.AppendHistory(trimmed)
			continue
		}

		v, err := ip.EvalSource(code)
		if err != nil {
			if *debug {
				err = minilisp.WrapErrorWithSource(err, code)
			}
			fmt.Fprintln(os.Stderr, color.RedString("%v", err))
			continue
		}
		if v.Data != nil {
			fmt.Println(color.CyanString("%s", minilisp.FormatValue(v)))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// replCommand handles ":" commands; it returns true when the REPL should
// exit.
func replCommand(cmd string) bool {
	switch {
	case cmd == ":quit":
		return true
	case cmd == ":help":
		fmt.Println("REPL commands:\n  :quit        Exit the REPL\n  :ast <expr>  Print the parsed form of an expression")
	case strings.HasPrefix(cmd, ":ast"):
		src := strings.TrimSpace(strings.TrimPrefix(cmd, ":ast"))
		prog, err := minilisp.Parse(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("%v", minilisp.WrapErrorWithSource(err, src)))
			return false
		}
		fmt.Println(color.GreenString("%s", minilisp.FormatProgram(prog)))
	default:
		fmt.Println("unknown command. Type :help for commands, :quit to exit.")
	}
	return false
}

// readByParseProbe reads lines until the buffered input parses, or fails
// with a non-incomplete error (which is then reported by the caller's
// evaluation of the same source).
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := minilisp.ParseInteractive(src); perr == nil || !minilisp.IsIncomplete(perr) {
			return src, true
		}
	}
}

// errors.go — user-facing error mapping and caret-snippet rendering.
//
// Two concerns live here:
//
//  1. The language's output contract. UserMessage maps an error to the exact
//     line the interpreter's callers must print on stdout:
//     - lexical and grammar failures (including builtin arity violations,
//     duplicate same-scope defines, and closure arity mismatches) surface
//     as the literal `syntax error`;
//     - operand tag mismatches surface as the literal `Type error!`;
//     - the remaining runtime kinds (unbound identifier, division by zero,
//     calling a non-closure) have no mandated text and map to "".
//
//  2. Diagnostic rendering for humans. WrapErrorWithSource recognizes
//     `*LexError`, `*ParseError`, and `*RuntimeError` and returns an error
//     whose message is a multi-line snippet with a caret under the
//     offending column:
//
//     PARSE ERROR at 2:9: unexpected ')'
//
//        1 | (define x 1)
//        2 | (+ x 1))
//          |         ^
//
//     Other errors are returned unchanged. Line/column are clamped so the
//     caret renders safely on short or empty sources. Output is plain text
//     (no ANSI escapes), suitable for logs and terminals.
package minilisp

import (
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// UserMessage returns the mandated stdout line for err, or "" when the error
// has no user-visible text (the run still terminates with a non-zero status).
func UserMessage(err error) string {
	switch e := err.(type) {
	case *LexError, *ParseError:
		return "syntax error"
	case *RuntimeError:
		switch e.Kind {
		case RunType:
			return "Type error!"
		case RunRedefine, RunArity:
			// Detected during evaluation but reported on the
			// syntax-error surface.
			return "syntax error"
		default:
			return ""
		}
	default:
		return ""
	}
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes lexer, parser, and runtime
// errors and leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("in <name>")
// included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Lexer/parser Col are 0-based; render as 1-based.
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", srcName, e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                         PRIVATE: snippet rendering
////////////////////////////////////////////////////////////////////////////////

// snippet builds a Python-like snippet with a header and a caret. It shows
// at most one previous and one next line when available. Coordinates are
// treated as 1-based and clamped to the source bounds.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

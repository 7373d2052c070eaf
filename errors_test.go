// errors_test.go
package minilisp

import (
	"errors"
	"strings"
	"testing"
)

func Test_UserMessage_Surface_Contract(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&LexError{Line: 1, Col: 0, Msg: "unexpected character"}, "syntax error"},
		{&ParseError{Line: 1, Col: 0, Msg: "unexpected ')'"}, "syntax error"},
		{&RuntimeError{Kind: RunType, Msg: "operand mismatch"}, "Type error!"},
		{&RuntimeError{Kind: RunRedefine, Msg: "duplicate definition"}, "syntax error"},
		{&RuntimeError{Kind: RunArity, Msg: "arity mismatch"}, "syntax error"},
		{&RuntimeError{Kind: RunUnbound, Msg: "unbound variable"}, ""},
		{&RuntimeError{Kind: RunDivZero, Msg: "division by zero"}, ""},
		{&RuntimeError{Kind: RunNotCallable, Msg: "cannot call"}, ""},
		{errors.New("io failure"), ""},
	}
	for _, c := range cases {
		if got := UserMessage(c.err); got != c.want {
			t.Fatalf("UserMessage(%v): want %q, got %q", c.err, c.want, got)
		}
	}
}

func Test_UserMessage_End_To_End(t *testing.T) {
	ip := NewInterpreter()
	err := ip.Run("(+ 1 #t)")
	if err == nil {
		t.Fatalf("want type error, got none")
	}
	if got := UserMessage(err); got != "Type error!" {
		t.Fatalf("want %q, got %q", "Type error!", got)
	}

	err = NewInterpreter().Run("(- 1 2 3)")
	if got := UserMessage(err); got != "syntax error" {
		t.Fatalf("want %q, got %q", "syntax error", got)
	}
}

func Test_WrapErrorWithSource_Parse_Snippet(t *testing.T) {
	src := "(define x 1)\n(+ x 1))\n(define y 2)"
	_, perr := Parse(src)
	if perr == nil {
		t.Fatalf("want parse error, got none")
	}
	wrapped := WrapErrorWithSource(perr, src)
	msg := wrapped.Error()

	for _, want := range []string{
		"PARSE ERROR at 2:8",
		"   1 | (define x 1)",
		"   2 | (+ x 1))",
		"   3 | (define y 2)",
		"^",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("snippet missing %q:\n%s", want, msg)
		}
	}
	// Caret must sit under the 1-based column 8.
	caretLine := ""
	for _, ln := range strings.Split(msg, "\n") {
		if strings.Contains(ln, "^") {
			caretLine = ln
		}
	}
	if !strings.HasSuffix(caretLine, strings.Repeat(" ", 7)+"^") {
		t.Fatalf("caret misplaced: %q", caretLine)
	}
}

func Test_WrapErrorWithName_Runtime_Snippet(t *testing.T) {
	src := "(print-num missing)"
	err := NewInterpreter().Run(src)
	if err == nil {
		t.Fatalf("want unbound error, got none")
	}
	msg := WrapErrorWithName(err, "demo.lsp", src).Error()
	if !strings.Contains(msg, "RUNTIME ERROR in demo.lsp at 1:12") {
		t.Fatalf("unexpected header:\n%s", msg)
	}
	if !strings.Contains(msg, "unbound variable: missing") {
		t.Fatalf("message lost:\n%s", msg)
	}
}

func Test_WrapErrorWithSource_Passthrough(t *testing.T) {
	plain := errors.New("disk on fire")
	if got := WrapErrorWithSource(plain, "src"); got != plain {
		t.Fatalf("unrelated errors must pass through, got %v", got)
	}
}

func Test_Snippet_Clamps_Out_Of_Range_Positions(t *testing.T) {
	e := &RuntimeError{Kind: RunUnbound, Line: 99, Col: 99, Msg: "x"}
	msg := WrapErrorWithSource(e, "one line").Error()
	if !strings.Contains(msg, "one line") {
		t.Fatalf("clamped snippet should still show the source:\n%s", msg)
	}
}

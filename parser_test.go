// parser_test.go
package minilisp

import (
	"strings"
	"testing"
)

func parse(t *testing.T, src string) Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error for %q: %v", src, err)
	}
	return prog
}

func wantParseError(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("want parse error for %q, got none", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError for %q, got %T: %v", src, err, err)
	}
	return pe
}

// wantForm parses src and compares the canonical rendering of its single
// top-level form.
func wantForm(t *testing.T, src, want string) {
	t.Helper()
	prog := parse(t, src)
	if len(prog) != 1 {
		t.Fatalf("want 1 top-level form for %q, got %d", src, len(prog))
	}
	if got := FormatExpr(prog[0]); got != want {
		t.Fatalf("canonical form mismatch for %q:\nwant %s\ngot  %s", src, want, got)
	}
}

func Test_Parser_Literals_And_Identifiers(t *testing.T) {
	wantForm(t, "42", "42")
	wantForm(t, "-7", "-7")
	wantForm(t, "#t", "#t")
	wantForm(t, "#f", "#f")
	wantForm(t, "make-adder", "make-adder")
}

func Test_Parser_Operator_Forms(t *testing.T) {
	wantForm(t, "(+ 1 2 3)", "(+ 1 2 3)")
	wantForm(t, "(- 5)", "(- 5)")
	wantForm(t, "(- 5 2)", "(- 5 2)")
	wantForm(t, "(* 2 (+ 3 4))", "(* 2 (+ 3 4))")
	wantForm(t, "(= 1 1 1)", "(= 1 1 1)")
	wantForm(t, "(and #t #f #t)", "(and #t #f #t)")
	wantForm(t, "(not #f)", "(not #f)")
	wantForm(t, "(print-num (mod 7 2))", "(print-num (mod 7 2))")
}

func Test_Parser_Define_Fun_If_Call(t *testing.T) {
	wantForm(t, "(define x 10)", "(define x 10)")
	wantForm(t, "(if (> x 0) 1 -1)", "(if (> x 0) 1 -1)")
	wantForm(t, "(fun (x y) (+ x y))", "(fun (x y) (+ x y))")
	wantForm(t, "(f 1 2)", "(f 1 2)")
	wantForm(t, "((fun (x) x) 5)", "((fun (x) x) 5)")
	wantForm(t, "((make-adder 3) 4)", "((make-adder 3) 4)")
}

func Test_Parser_Fun_Body_With_Nested_Defines(t *testing.T) {
	src := `(define dist-square
  (fun (x y)
    (define square (fun (x) (* x x)))
    (+ (square x) (square y))))`
	want := "(define dist-square (fun (x y) (define square (fun (x) (* x x))) (+ (square x) (square y))))"
	wantForm(t, src, want)

	prog := parse(t, src)
	fn := prog[0].(*Define).Value.(*Fun)
	if len(fn.Defs) != 1 || fn.Defs[0].Name != "square" {
		t.Fatalf("fun body defines not collected: %#v", fn.Defs)
	}
}

func Test_Parser_Whole_Program_Before_Evaluation(t *testing.T) {
	prog := parse(t, "(define x 1) (print-num x) (define y 2)")
	if len(prog) != 3 {
		t.Fatalf("want 3 top-level forms, got %d", len(prog))
	}
}

func Test_Parser_Arity_Violations(t *testing.T) {
	wantParseError(t, "(- 5 2 1)")
	wantParseError(t, "(-)")
	wantParseError(t, "(+ 1)")
	wantParseError(t, "(* 2)")
	wantParseError(t, "(/ 7)")
	wantParseError(t, "(/ 8 2 2)")
	wantParseError(t, "(mod 7)")
	wantParseError(t, "(> 1)")
	wantParseError(t, "(< 1 2 3)")
	wantParseError(t, "(= 1)")
	wantParseError(t, "(and #t)")
	wantParseError(t, "(or #f)")
	wantParseError(t, "(not #t #f)")
	wantParseError(t, "(print-num 1 2)")
	wantParseError(t, "(print-bool)")
}

func Test_Parser_Malformed_Forms(t *testing.T) {
	wantParseError(t, "(")
	wantParseError(t, ")")
	wantParseError(t, "()")
	wantParseError(t, "(+ 1 2")
	wantParseError(t, "(if #t 1)")        // if needs 3 subexpressions
	wantParseError(t, "(define)")         // missing name
	wantParseError(t, "(define x)")       // missing value
	wantParseError(t, "(define x 1 2)")   // extra form
	wantParseError(t, "(define 5 1)")     // integer in name position
	wantParseError(t, "(define if 1)")    // reserved word
	wantParseError(t, "(define mod 1)")   // operator name
	wantParseError(t, "(fun (x))")        // empty body
	wantParseError(t, "(fun (1) x)")      // bad parameter
	wantParseError(t, "(fun (fun) fun)")  // reserved parameter
	wantParseError(t, "(fun (x) (define y 1))") // body ends with define
	wantParseError(t, "(fun (x) x (define y 1) x)") // non-define before end
}

func Test_Parser_Define_Is_Statement_Only(t *testing.T) {
	wantParseError(t, "(+ (define x 1) 2)")
	wantParseError(t, "(print-num (define x 1))")
	wantParseError(t, "(define x (define y 1))")
	wantParseError(t, "(if (define x 1) 1 2)")
	wantParseError(t, "(f (define x 1))")

	// Statement positions are fine: top level and fun-body prefix.
	parse(t, "(define x 1)")
	parse(t, "(fun () (define x 1) x)")
}

func Test_Parser_Bare_Operator_Is_Not_An_Expression(t *testing.T) {
	wantParseError(t, "+")
	wantParseError(t, "(f +)")
	wantParseError(t, "(define x not)")
}

func Test_Parser_Interactive_Incomplete(t *testing.T) {
	for _, src := range []string{"(define x", "(fun (x)", "(+ 1", "(if #t 1"} {
		_, err := ParseInteractive(src)
		if err == nil {
			t.Fatalf("want incomplete error for %q, got none", src)
		}
		if !IsIncomplete(err) {
			t.Fatalf("want incomplete error for %q, got %v", src, err)
		}
	}

	// Hard errors are not incomplete, even interactively.
	_, err := ParseInteractive("(+ 1 2))")
	if err == nil || IsIncomplete(err) {
		t.Fatalf("want hard error for trailing ')', got %v", err)
	}

	// Non-interactive parses never mark incompleteness.
	_, err = Parse("(define x")
	if err == nil || IsIncomplete(err) {
		t.Fatalf("want plain parse error for unterminated input, got %v", err)
	}
}

func Test_Parser_Error_Positions(t *testing.T) {
	pe := wantParseError(t, "(define x 1)\n(+ 1)")
	if pe.Line != 2 || pe.Col != 0 {
		t.Fatalf("want error at 2:0 (the '(' of the bad form), got %d:%d", pe.Line, pe.Col)
	}
	if !strings.Contains(pe.Msg, "at least 2") {
		t.Fatalf("unexpected message: %q", pe.Msg)
	}
}

// printer_test.go
package minilisp

import "testing"

func Test_FormatValue(t *testing.T) {
	if got := FormatValue(Int(42)); got != "42" {
		t.Fatalf("int: got %q", got)
	}
	if got := FormatValue(Int(-5)); got != "-5" {
		t.Fatalf("negative int: got %q", got)
	}
	if got := FormatValue(Bool(true)); got != "#t" {
		t.Fatalf("true: got %q", got)
	}
	if got := FormatValue(Bool(false)); got != "#f" {
		t.Fatalf("false: got %q", got)
	}
	c := &Closure{Params: []string{"x", "y"}}
	if got := FormatValue(ClosureVal(c)); got != "#<fun (x y)>" {
		t.Fatalf("closure: got %q", got)
	}
}

func Test_FormatProgram_Canonical(t *testing.T) {
	src := `
(define  make-adder
  (fun (x)        ; comment
    (fun (y) (+ x y))))
(print-num ((make-adder 3) 4))
`
	want := "(define make-adder (fun (x) (fun (y) (+ x y))))\n(print-num ((make-adder 3) 4))"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := FormatProgram(prog); got != want {
		t.Fatalf("canonical rendering:\nwant %q\ngot  %q", want, got)
	}
}

func Test_FormatProgram_RoundTrip_Is_Stable(t *testing.T) {
	srcs := []string{
		"(define x 10)",
		"(if (> x 0) (- x) (+ x 1))",
		"(fun (a b) (define m (mod a b)) (if (= m 0) b m))",
		"(print-bool (and #t (or #f #t) (not #f)))",
		"((fun () 1))",
	}
	for _, src := range srcs {
		first, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse %q: %v", src, err)
		}
		once := FormatProgram(first)
		again, err := Parse(once)
		if err != nil {
			t.Fatalf("reparse %q: %v", once, err)
		}
		if twice := FormatProgram(again); twice != once {
			t.Fatalf("formatting not stable:\nonce  %q\ntwice %q", once, twice)
		}
	}
}

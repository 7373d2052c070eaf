// printer.go — textual rendering of values and AST nodes.
//
// FormatValue renders runtime values the way the language prints them
// (`#t`/`#f`, decimal integers); the REPL uses it to echo results.
// FormatExpr renders an AST node back to canonical source form, one
// s-expression per node; round-tripping a parse through FormatExpr is
// stable, which the parser tests rely on.
package minilisp

import (
	"fmt"
	"strconv"
	"strings"
)

func formatBool(b bool) string {
	if b {
		return "#t"
	}
	return "#f"
}

// FormatValue renders v as the language prints it. The zero Value (as
// returned for an empty program) renders as the empty string.
func FormatValue(v Value) string {
	if v.Data == nil {
		return ""
	}
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTBool:
		return formatBool(v.Data.(bool))
	case VTClosure:
		c := v.Data.(*Closure)
		return fmt.Sprintf("#<fun (%s)>", strings.Join(c.Params, " "))
	default:
		return "#<unknown>"
	}
}

// FormatExpr renders e as canonical source text.
func FormatExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

// FormatProgram renders a whole program, one top-level form per line.
func FormatProgram(prog Program) string {
	parts := make([]string, len(prog))
	for i, e := range prog {
		parts[i] = FormatExpr(e)
	}
	return strings.Join(parts, "\n")
}

func writeExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *IntLit:
		b.WriteString(strconv.FormatInt(n.Val, 10))
	case *BoolLit:
		b.WriteString(formatBool(n.Val))
	case *Ident:
		b.WriteString(n.Name)
	case *Define:
		b.WriteString("(define ")
		b.WriteString(n.Name)
		b.WriteByte(' ')
		writeExpr(b, n.Value)
		b.WriteByte(')')
	case *Fun:
		b.WriteString("(fun (")
		b.WriteString(strings.Join(n.Params, " "))
		b.WriteByte(')')
		for _, d := range n.Defs {
			b.WriteByte(' ')
			writeExpr(b, d)
		}
		b.WriteByte(' ')
		writeExpr(b, n.Body)
		b.WriteByte(')')
	case *If:
		b.WriteString("(if ")
		writeExpr(b, n.Cond)
		b.WriteByte(' ')
		writeExpr(b, n.Then)
		b.WriteByte(' ')
		writeExpr(b, n.Else)
		b.WriteByte(')')
	case *Op:
		b.WriteByte('(')
		b.WriteString(n.Kind.String())
		for _, a := range n.Args {
			b.WriteByte(' ')
			writeExpr(b, a)
		}
		b.WriteByte(')')
	case *Call:
		b.WriteByte('(')
		writeExpr(b, n.Callee)
		for _, a := range n.Args {
			b.WriteByte(' ')
			writeExpr(b, a)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "#<unknown %T>", e)
	}
}

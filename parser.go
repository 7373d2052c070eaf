// parser.go — recursive-descent parser for Mini-LISP.
//
// OVERVIEW
// --------
// The parser consumes the token stream produced by the lexer (see lexer.go)
// in a single pass with one token of lookahead and no backtracking, and
// builds the typed AST defined in ast.go. The whole program is parsed before
// any evaluation begins, so a parse error always precedes all output.
//
// Grammar:
//
//	program     := statement*
//	statement   := define | expression
//	define      := '(' 'define' IDENTIFIER expression ')'
//	expression  := INTEGER | BOOLEAN | IDENTIFIER | '(' form ')'
//	form        := 'fun' '(' IDENTIFIER* ')' define* expression
//	             | 'if' expression expression expression
//	             | OPERATOR expression*
//	             | expression expression*        // closure call
//
// `define` is a statement: it is accepted at top level and as a non-final
// function-body form, and rejected anywhere a value is required.
//
// Built-in operator arity is part of the grammar and checked here:
//
//	-            1 or 2 (one argument negates)
//	/  mod  >  < exactly 2
//	not          exactly 1
//	+  *  =      at least 2
//	and  or      at least 2
//	print-num    exactly 1
//	print-bool   exactly 1
//
// Names must start with a letter, and the form keywords and operator names
// are reserved: using one as a define/parameter name is a parse error.
//
// Interactive mode (used by the REPL) surfaces unterminated input at EOF as
// a *ParseError with Incomplete set, so the caller can keep reading lines
// instead of reporting a hard error.
package minilisp

import "fmt"

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// ParseError is a fatal grammar violation. Col is 0-based. Incomplete marks
// errors caused by EOF in interactive mode (more input may complete the form).
type ParseError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err marks interactive input that stopped at
// EOF inside an unterminated form.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Incomplete
}

// Parse tokenizes and parses a complete source string into a Program.
func Parse(src string) (Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseInteractive parses in REPL-friendly mode: unterminated constructs at
// EOF produce a *ParseError with Incomplete=true.
func ParseInteractive(src string) (Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, interactive: true}
	return p.program()
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                             PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

// reserved form heads and operator names; none may be used as a binding name.
var opKeywords = map[string]OpKind{
	"+":          OpAdd,
	"-":          OpSub,
	"*":          OpMul,
	"/":          OpDiv,
	"mod":        OpMod,
	">":          OpGt,
	"<":          OpLt,
	"=":          OpEq,
	"and":        OpAnd,
	"or":         OpOr,
	"not":        OpNot,
	"print-num":  OpPrintNum,
	"print-bool": OpPrintBool,
}

func isReserved(name string) bool {
	if _, ok := opKeywords[name]; ok {
		return true
	}
	switch name {
	case "define", "fun", "if":
		return true
	}
	return false
}

// validName reports whether s is usable as an identifier: letter first,
// not reserved. The lexer already restricts the character set.
func validName(s string) bool {
	return len(s) > 0 && isLetter(s[0]) && !isReserved(s)
}

type parser struct {
	toks        []Token
	i           int
	interactive bool
}

// ───────────────────────── token basics & helpers ─────────────────────────

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF sentinel
	}
	return p.toks[p.i]
}

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) advance() Token {
	t := p.peek()
	if !p.atEnd() {
		p.i++
	}
	return t
}

func (p *parser) errAt(t Token, msg string) error {
	return &ParseError{
		Line:       t.Line,
		Col:        t.Col,
		Msg:        msg,
		Incomplete: p.interactive && t.Type == EOF,
	}
}

func (p *parser) need(tt TokenType, msg string) (Token, error) {
	if p.peek().Type == tt {
		return p.advance(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func pos(t Token) Position { return Position{Line: t.Line, Col: t.Col} }

// ──────────────────────────────── grammar ─────────────────────────────────

func (p *parser) program() (Program, error) {
	var prog Program
	for !p.atEnd() {
		e, err := p.expr(true)
		if err != nil {
			return nil, err
		}
		prog = append(prog, e)
	}
	return prog, nil
}

// expr parses one expression. stmt allows a define form here; it is true
// only at top level and inside a function body prefix.
func (p *parser) expr(stmt bool) (Expr, error) {
	t := p.peek()
	switch t.Type {
	case INT:
		p.advance()
		return &IntLit{Val: t.Literal.(int64), P: pos(t)}, nil
	case BOOL:
		p.advance()
		return &BoolLit{Val: t.Literal.(bool), P: pos(t)}, nil
	case SYMBOL:
		if !validName(t.Lexeme) {
			return nil, p.errAt(t, fmt.Sprintf("unexpected %q in expression position", t.Lexeme))
		}
		p.advance()
		return &Ident{Name: t.Lexeme, P: pos(t)}, nil
	case LPAREN:
		p.advance()
		return p.form(t, stmt)
	case RPAREN:
		return nil, p.errAt(t, "unexpected ')'")
	default: // EOF
		return nil, p.errAt(t, "unexpected end of input")
	}
}

// form parses the contents of a parenthesized form. lp is the already
// consumed '(' token.
func (p *parser) form(lp Token, stmt bool) (Expr, error) {
	head := p.peek()
	if head.Type == SYMBOL {
		switch {
		case head.Lexeme == "define":
			if !stmt {
				return nil, p.errAt(head, "define is only allowed at top level or at the start of a function body")
			}
			return p.defineForm(lp)
		case head.Lexeme == "fun":
			return p.funForm(lp)
		case head.Lexeme == "if":
			return p.ifForm(lp)
		default:
			if kind, ok := opKeywords[head.Lexeme]; ok {
				return p.opForm(lp, kind)
			}
		}
	}
	if head.Type == RPAREN {
		return nil, p.errAt(head, "empty form")
	}
	return p.callForm(lp)
}

func (p *parser) defineForm(lp Token) (Expr, error) {
	p.advance() // 'define'
	name, err := p.need(SYMBOL, "expected name after define")
	if err != nil {
		return nil, err
	}
	if !validName(name.Lexeme) {
		return nil, p.errAt(name, fmt.Sprintf("invalid name %q in define", name.Lexeme))
	}
	value, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after define"); err != nil {
		return nil, err
	}
	return &Define{Name: name.Lexeme, Value: value, P: pos(lp)}, nil
}

func (p *parser) funForm(lp Token) (Expr, error) {
	p.advance() // 'fun'
	if _, err := p.need(LPAREN, "expected '(' before parameter list"); err != nil {
		return nil, err
	}
	var params []string
	for p.peek().Type == SYMBOL {
		t := p.advance()
		if !validName(t.Lexeme) {
			return nil, p.errAt(t, fmt.Sprintf("invalid parameter name %q", t.Lexeme))
		}
		params = append(params, t.Lexeme)
	}
	if _, err := p.need(RPAREN, "expected ')' after parameter list"); err != nil {
		return nil, err
	}

	// Body: one or more forms; all but the last must be defines, the last
	// must be a value expression.
	var body []Expr
	for p.peek().Type != RPAREN {
		if p.atEnd() {
			return nil, p.errAt(p.peek(), "unterminated function body")
		}
		e, err := p.expr(true)
		if err != nil {
			return nil, err
		}
		body = append(body, e)
	}
	p.advance() // ')'
	if len(body) == 0 {
		return nil, p.errAt(lp, "function body is empty")
	}
	defs := make([]*Define, 0, len(body)-1)
	for _, e := range body[:len(body)-1] {
		d, ok := e.(*Define)
		if !ok {
			return nil, p.errAt(lp, "every non-final function-body form must be a define")
		}
		defs = append(defs, d)
	}
	last := body[len(body)-1]
	if _, ok := last.(*Define); ok {
		return nil, p.errAt(lp, "function body must end with a value expression")
	}
	return &Fun{Params: params, Defs: defs, Body: last, P: pos(lp)}, nil
}

func (p *parser) ifForm(lp Token) (Expr, error) {
	p.advance() // 'if'
	cond, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	then, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	els, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after if"); err != nil {
		return nil, err
	}
	return &If{Cond: cond, Then: then, Else: els, P: pos(lp)}, nil
}

func (p *parser) opForm(lp Token, kind OpKind) (Expr, error) {
	p.advance() // operator symbol
	var args []Expr
	for p.peek().Type != RPAREN {
		if p.atEnd() {
			return nil, p.errAt(p.peek(), fmt.Sprintf("unterminated (%s ...) form", kind))
		}
		a, err := p.expr(false)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	p.advance() // ')'
	if err := checkArity(kind, len(args)); err != "" {
		return nil, p.errAt(lp, err)
	}
	return &Op{Kind: kind, Args: args, P: pos(lp)}, nil
}

// checkArity returns an error message for a bad argument count, or "".
func checkArity(kind OpKind, n int) string {
	bad := func(want string) string {
		return fmt.Sprintf("operator %s takes %s argument(s), got %d", kind, want, n)
	}
	switch kind {
	case OpSub:
		if n != 1 && n != 2 {
			return bad("1 or 2")
		}
	case OpDiv, OpMod, OpGt, OpLt:
		if n != 2 {
			return bad("exactly 2")
		}
	case OpNot, OpPrintNum, OpPrintBool:
		if n != 1 {
			return bad("exactly 1")
		}
	case OpAdd, OpMul, OpEq, OpAnd, OpOr:
		if n < 2 {
			return bad("at least 2")
		}
	}
	return ""
}

func (p *parser) callForm(lp Token) (Expr, error) {
	callee, err := p.expr(false)
	if err != nil {
		return nil, err
	}
	var args []Expr
	for p.peek().Type != RPAREN {
		if p.atEnd() {
			return nil, p.errAt(p.peek(), "unterminated call form")
		}
		a, err := p.expr(false)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	p.advance() // ')'
	return &Call{Callee: callee, Args: args, P: pos(lp)}, nil
}

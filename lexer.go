// lexer.go — tokenizer for Mini-LISP source text.
//
// The scanner makes a single left-to-right pass over the source. It skips
// whitespace and ';' line comments, and produces four token classes:
//
//	LPAREN / RPAREN   "(" and ")"
//	INT               optional '-' followed by digits (int64 literal)
//	BOOL              exactly "#t" or "#f"
//	SYMBOL            maximal run of symbol-class characters
//	                  (letters, digits, '-', '+', '*', '/', '=', '<', '>')
//
// A symbol run may not begin with a digit unless the whole run is an integer
// literal. Any other character is a lexical error: tokenization aborts the
// entire run (the parser never sees a partial stream).
//
// Positions: Line is 1-based, Col is 0-based within the line; errors.go
// renders columns as 1-based.
package minilisp

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota
	LPAREN
	RPAREN
	INT    // int64 literal
	BOOL   // #t / #f
	SYMBOL // identifier, keyword, or operator
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case INT:
		return "INT"
	case BOOL:
		return "BOOL"
	case SYMBOL:
		return "SYMBOL"
	default:
		return "UNKNOWN"
	}
}

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // int64 for INT, bool for BOOL
	Line    int
	Col     int
}

// LexError is a fatal tokenization failure. Col is 0-based.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer scans a Mini-LISP source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isSymbolChar reports whether b belongs to the symbol character class.
func isSymbolChar(b byte) bool {
	if isLetter(b) || isDigit(b) {
		return true
	}
	switch b {
	case '-', '+', '*', '/', '=', '<', '>':
		return true
	}
	return false
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case ';':
			for {
				b, ok := l.peek()
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

// scanSymbolRun consumes the maximal run of symbol-class characters and
// returns its text. The first character has already been consumed.
func (l *Lexer) scanSymbolRun() string {
	for {
		b, ok := l.peek()
		if !ok || !isSymbolChar(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// classifyRun turns a symbol run into an INT or SYMBOL token. Runs that
// begin with a digit (or '-' digit) must be integer literals in full.
func (l *Lexer) classifyRun(run string) (Token, error) {
	digits := run
	if run[0] == '-' && len(run) > 1 {
		digits = run[1:]
	}
	if isDigit(digits[0]) {
		for i := 0; i < len(digits); i++ {
			if !isDigit(digits[i]) {
				return Token{}, l.err(fmt.Sprintf("malformed integer literal %q", run))
			}
		}
		n, err := strconv.ParseInt(run, 10, 64)
		if err != nil {
			return Token{}, l.err(fmt.Sprintf("integer literal %q out of range", run))
		}
		return l.addToken(INT, n), nil
	}
	return l.addToken(SYMBOL, run), nil
}

// scanBool handles "#t" / "#f". The '#' has already been consumed.
func (l *Lexer) scanBool() (Token, error) {
	b, ok := l.peek()
	if !ok || (b != 't' && b != 'f') {
		return Token{}, l.err("expected 't' or 'f' after '#'")
	}
	l.advance()
	// "#true" etc. is not a longer boolean; reject trailing symbol chars.
	if nxt, ok := l.peek(); ok && isSymbolChar(nxt) {
		return Token{}, l.err(fmt.Sprintf("malformed boolean literal %q", l.src[l.start:l.cur+1]))
	}
	return l.addToken(BOOL, b == 't'), nil
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespaceAndComments()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF, nil), nil
	}

	ch, _ := l.advance()
	switch {
	case ch == '(':
		return l.addToken(LPAREN, nil), nil
	case ch == ')':
		return l.addToken(RPAREN, nil), nil
	case ch == '#':
		return l.scanBool()
	case isSymbolChar(ch):
		return l.classifyRun(l.scanSymbolRun())
	default:
		return Token{}, l.err(fmt.Sprintf("unexpected character %q", ch))
	}
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}

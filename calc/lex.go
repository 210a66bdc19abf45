package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	// pos is the 1-based rune column of the token in the whole expression.
	pos int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the chunk.
	tokenEOF
	// tokenNum is an unsigned decimal numeral.
	tokenNum
	// tokenText is a run of anything that isn't a digit: an operator, a unit,
	// or garbage.
	tokenText
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenText:
		return "Text"
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

// lexer scans one colon-delimited chunk of an expression. Colons never reach
// the lexer.
type lexer struct {
	src *strings.Reader
	buf strings.Builder
	// col is the column of the next rune.
	col int
}

// lex creates a lexer over chunk, which starts at column col of the
// expression.
func lex(chunk string, col int) *lexer {
	return &lexer{
		src: strings.NewReader(chunk),
		col: col,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads the last rune read. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// rest returns the text of the chunk that hasn't been scanned yet.
func (l *lexer) rest() string {
	var b strings.Builder
	for {
		r, err := l.readRune()
		if err != nil {
			return b.String()
		}
		b.WriteRune(r)
	}
}

// next scans the next token from the chunk. Once the chunk is exhausted,
// every call returns an EOF token.
func (l *lexer) next() (lexToken, error) {
	defer l.buf.Reset()
	tok := lexToken{pos: l.col}
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			tok.kind = tokenEOF
			return tok, nil
		}
		return tok, err
	}
	l.unreadRune()
	if isDigit(r) {
		if err := l.scanNum(tok.pos); err != nil {
			return tok, err
		}
		tok.text = l.buf.String()
		tok.kind = tokenNum
		return tok, nil
	}
	l.scanText()
	tok.text = l.buf.String()
	tok.kind = tokenText
	return tok, nil
}

// scanNum scans digits and dots, then checks that they form digit+ or
// digit+ "." digit+.
func (l *lexer) scanNum(pos int) error {
	var dot, frac, bad bool
	for {
		r, err := l.readRune()
		if err != nil {
			break
		}
		if r == '.' {
			bad = bad || dot
			dot = true
		} else if isDigit(r) {
			frac = frac || dot
		} else {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	if bad || (dot && !frac) {
		s := l.buf.String()
		return &NumberError{
			Col:  pos,
			Text: s,
			Err:  &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax},
		}
	}
	return nil
}

// scanText scans up to the next digit or the end of the chunk.
func (l *lexer) scanText() {
	for {
		r, err := l.readRune()
		if err != nil {
			return
		}
		if isDigit(r) {
			l.unreadRune()
			return
		}
		l.buf.WriteRune(r)
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

package calc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Calculation = Value { ':' Segment }
// Segment = Operator Value
// Value = num Unit
// num = digit { digit } [ '.' digit { digit } ]
// Unit = '' | 'px' | '%'
// Operator = '+' | '-' | '*' | '/' | '%' | '^'

// Calculation is a parsed dimension expression: a base value followed by
// segments which apply to it in order.
type Calculation struct {
	base Value
	segs []Segment
}

// New creates a calculation from its parts.
func New(base Value, segs ...Segment) *Calculation {
	return &Calculation{
		base: base,
		segs: append([]Segment(nil), segs...),
	}
}

// Parse parses a dimension expression. The source must be exactly an
// expression; surrounding whitespace is an error. Every error is an
// InputError.
func Parse(src string) (*Calculation, error) {
	chunks := strings.Split(src, ":")
	base, err := parseBase(src, chunks[0])
	if err != nil {
		return nil, err
	}
	c := Calculation{base: base}
	if len(chunks) > 1 {
		c.segs = make([]Segment, 0, len(chunks)-1)
	}
	// Segment columns start after the colon.
	col := utf8.RuneCountInString(chunks[0]) + 2
	for _, chunk := range chunks[1:] {
		seg, err := parseSegment(chunk, col)
		if err != nil {
			return nil, err
		}
		c.segs = append(c.segs, seg)
		col += utf8.RuneCountInString(chunk) + 1
	}
	return &c, nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(src string) *Calculation {
	c, err := Parse(src)
	if err != nil {
		panic("calc: MustParse(" + strconv.Quote(src) + "): " + err.Error())
	}
	return c
}

// parseBase parses the text before the first colon.
func parseBase(src, chunk string) (Value, error) {
	l := lex(chunk, 1)
	tok, err := l.next()
	if err != nil {
		return Value{}, err
	}
	if tok.kind != tokenNum {
		return Value{}, &SyntaxError{Col: 1, Text: src}
	}
	return parseValue(l, tok)
}

// parseSegment parses the text between a colon and the next one, or the end.
func parseSegment(chunk string, col int) (Segment, error) {
	if chunk == "" {
		return Segment{}, &SegmentError{Col: col}
	}
	r, sz := utf8.DecodeRuneInString(chunk)
	op, ok := operation(r)
	if !ok {
		return Segment{}, &OperatorError{Col: col, Operator: string(r)}
	}
	l := lex(chunk[sz:], col+1)
	tok, err := l.next()
	if err != nil {
		return Segment{}, err
	}
	if tok.kind != tokenNum {
		return Segment{}, &SegmentError{Col: col, Segment: chunk}
	}
	v, err := parseValue(l, tok)
	if err != nil {
		return Segment{}, err
	}
	return Segment{Op: op, Value: v}, nil
}

// parseValue converts a scanned numeral and parses the unit that follows it.
// The unit is everything left in the chunk.
func parseValue(l *lexer, num lexToken) (Value, error) {
	f, err := strconv.ParseFloat(num.text, 32)
	if err != nil {
		return Value{}, &NumberError{Col: num.pos, Text: num.text, Err: err}
	}
	tok, err := l.next()
	if err != nil {
		return Value{}, err
	}
	if tok.kind == tokenEOF {
		return Value{Magnitude: float32(f), Unit: None}, nil
	}
	text := tok.text + l.rest()
	u, ok := unit(text)
	if !ok {
		return Value{}, &UnitError{Col: tok.pos, Unit: text}
	}
	return Value{Magnitude: float32(f), Unit: u}, nil
}

// Base returns the value the calculation starts from.
func (c *Calculation) Base() Value {
	return c.base
}

// Segments returns a copy of the calculation's segments.
func (c *Calculation) Segments() []Segment {
	return append([]Segment(nil), c.segs...)
}

// Len returns the number of segments.
func (c *Calculation) Len() int {
	return len(c.segs)
}

// String returns the canonical source text of the calculation. Parsing the
// result gives an equal calculation.
func (c *Calculation) String() string {
	var b strings.Builder
	b.WriteString(c.base.String())
	for _, s := range c.segs {
		b.WriteByte(':')
		b.WriteString(s.String())
	}
	return b.String()
}

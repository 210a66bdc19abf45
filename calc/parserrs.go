package calc

import "strconv"

// SyntaxError is an error indicating that an expression does not start with a
// number. It implements InputError.
type SyntaxError struct {
	// Col is the position of the error.
	Col int
	// Text is the whole expression.
	Text string
}

func (err *SyntaxError) Error() string {
	if err.Text == "" {
		return errpos(err.Col, "invalid syntax: empty expression")
	}
	return errpos(err.Col, "invalid syntax: "+strconv.Quote(err.Text)+" does not start with a number")
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// SegmentError is an error indicating a colon-delimited segment that is not
// an operator followed by a number and a unit. It implements InputError.
type SegmentError struct {
	// Col is the position of the start of the segment.
	Col int
	// Segment is the text of the segment, without its colon.
	Segment string
}

func (err *SegmentError) Error() string {
	return errpos(err.Col, "invalid segment "+strconv.Quote(err.Segment))
}

func (err *SegmentError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating a segment that starts with a character
// other than one of Operators. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the character that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator)+", expected one of "+Operators)
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// UnitError is an error indicating text after a number that is not a unit. It
// implements InputError.
type UnitError struct {
	// Col is the position of the unit.
	Col int
	// Unit is the text that was not understood.
	Unit string
}

func (err *UnitError) Error() string {
	return errpos(err.Col, "invalid unit "+strconv.Quote(err.Unit)+", expected % or px")
}

func (err *UnitError) Pos() int {
	return err.Col
}

// NumberError is an error indicating a numeral that could not be converted to
// a float32, either because it is malformed or because it is out of range. It
// implements InputError and unwraps to the *strconv.NumError.
type NumberError struct {
	// Col is the position of the numeral.
	Col int
	// Text is the numeral.
	Text string
	// Err is the conversion error.
	Err error
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "failed to parse "+strconv.Quote(err.Text)+" as a number: "+err.Err.Error())
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*SegmentError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*UnitError)(nil)
	_ InputError = (*NumberError)(nil)
)

package calc

import "strconv"

// Unit is the unit attached to a number in an expression.
type Unit int8

const (
	// None is a bare number. It evaluates the same as Pixel.
	None Unit = iota
	// Pixel is a number followed by "px".
	Pixel
	// Percent is a number followed by "%", taken of the basis.
	Percent
)

// unitstrs contains the unit tokens, indexed by Unit.
var unitstrs = [...]string{None: "", Pixel: "px", Percent: "%"}

// String returns the unit as it is written in expressions.
func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitstrs) {
		return "Unit(" + strconv.Itoa(int(u)) + ")"
	}
	return unitstrs[u]
}

// unit converts a unit token. ok is false if the token is not a unit.
func unit(s string) (u Unit, ok bool) {
	switch s {
	case "":
		return None, true
	case "px":
		return Pixel, true
	case "%":
		return Percent, true
	}
	return None, false
}

// Value is a number with its unit.
type Value struct {
	Magnitude float32
	Unit      Unit
}

// Resolve converts the value to pixels. Percentages are taken of basis; other
// units ignore it.
func (v Value) Resolve(basis float32) float32 {
	if v.Unit == Percent {
		return v.Magnitude / 100 * basis
	}
	return v.Magnitude
}

// String returns the value as it would be written in an expression.
func (v Value) String() string {
	return strconv.FormatFloat(float64(v.Magnitude), 'f', -1, 32) + v.Unit.String()
}

// Operation is an operator applied by a segment.
type Operation int8

const (
	// Add is "+".
	Add Operation = iota
	// Subtract is "-".
	Subtract
	// Multiply is "*".
	Multiply
	// Divide is "/".
	Divide
	// Remainder is "%", with the sign of the dividend.
	Remainder
	// Exponent is "^", raising the running result to the segment's value.
	Exponent
)

// Operators contains the runes which are operators, indexed by Operation.
const Operators = "+-*/%^"

// String returns the operator character.
func (op Operation) String() string {
	if op < 0 || int(op) >= len(Operators) {
		return "Operation(" + strconv.Itoa(int(op)) + ")"
	}
	return Operators[op : op+1]
}

// operation converts an operator rune. ok is false for any rune outside
// Operators.
func operation(r rune) (op Operation, ok bool) {
	switch r {
	case '+':
		return Add, true
	case '-':
		return Subtract, true
	case '*':
		return Multiply, true
	case '/':
		return Divide, true
	case '%':
		return Remainder, true
	case '^':
		return Exponent, true
	}
	return 0, false
}

// Segment is one chained step of a calculation.
type Segment struct {
	Op    Operation
	Value Value
}

// String returns the segment as it is written after its colon.
func (s Segment) String() string {
	return s.Op.String() + s.Value.String()
}

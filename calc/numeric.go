package calc

import (
	"reflect"
	"strconv"
	"strings"
)

// Numeric is a configuration value that is either a plain number or a
// calculation. The zero Numeric is the number 0.
type Numeric struct {
	num  float32
	calc *Calculation
}

// Number creates a Numeric holding a plain number.
func Number(v float32) Numeric {
	return Numeric{num: v}
}

// Calc creates a Numeric holding a calculation. A nil calculation gives the
// number 0.
func Calc(c *Calculation) Numeric {
	return Numeric{calc: c}
}

// Calculation returns the calculation n holds, if any.
func (n Numeric) Calculation() (*Calculation, bool) {
	return n.calc, n.calc != nil
}

// Resolve returns the plain number, or evaluates the calculation against
// basis.
func (n Numeric) Resolve(basis float32) float32 {
	if n.calc != nil {
		return n.calc.Evaluate(basis)
	}
	return n.num
}

func (n Numeric) String() string {
	if n.calc != nil {
		return strconv.Quote(n.calc.String())
	}
	return strconv.FormatFloat(float64(n.num), 'g', -1, 32)
}

// DecodeNumeric converts a raw configuration scalar to a Numeric. Integers and
// floats of any width become numbers. Strings are trimmed and parsed as
// expressions, and a parse failure returns the parser's InputError. Anything
// else is a *TypeError.
func DecodeNumeric(raw interface{}) (Numeric, error) {
	if n, ok := raw.(Numeric); ok {
		return n, nil
	}
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float32(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float32(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(float32(v.Float())), nil
	case reflect.String:
		c, err := Parse(strings.TrimSpace(v.String()))
		if err != nil {
			return Numeric{}, err
		}
		return Calc(c), nil
	}
	return Numeric{}, &TypeError{Value: raw}
}

// TypeError is an error indicating a configuration value that is neither a
// number nor a string.
type TypeError struct {
	// Value is the value that could not be converted.
	Value interface{}
}

func (err *TypeError) Error() string {
	t := "nil"
	if err.Value != nil {
		t = reflect.TypeOf(err.Value).String()
	}
	return "expected a number or an expression string, got " + t
}

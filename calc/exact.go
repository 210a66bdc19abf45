package calc

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// EvaluateExact evaluates the calculation to prec bits of precision, starting
// from the float32 magnitudes in the calculation. Unlike Evaluate, operations
// which have no real result (0/0, remainder by zero, a negative base raised to
// a fractional power, or any arithmetic on infinities that is undefined) are reported as
// a *DomainError. basis must not be nil.
func (c *Calculation) EvaluateExact(basis *big.Float, prec uint) (r *big.Float, err error) {
	seg := 0
	defer func() {
		if e := recover(); e != nil {
			nan, ok := e.(big.ErrNaN)
			if !ok {
				panic(e)
			}
			d := &DomainError{Segment: seg, Msg: nan.Error()}
			if seg > 0 {
				d.Op = c.segs[seg-1].Op.String()
			}
			r, err = nil, d
		}
	}()
	r = c.base.resolveExact(basis, prec)
	for i, s := range c.segs {
		seg = i + 1
		v := s.Value.resolveExact(basis, prec)
		if err := s.applyExact(r, v); err != nil {
			err.Segment = seg
			return nil, err
		}
	}
	return r, nil
}

// resolveExact is the arbitrary precision counterpart to Resolve.
func (v Value) resolveExact(basis *big.Float, prec uint) *big.Float {
	r := new(big.Float).SetPrec(prec).SetFloat64(float64(v.Magnitude))
	if v.Unit == Percent {
		r.Quo(r, big.NewFloat(100))
		r.Mul(r, basis)
	}
	return r
}

// applyExact sets r to the result of applying the segment's operator to r and
// v. Undefined additions, subtractions and multiplications panic with
// big.ErrNaN, which EvaluateExact recovers.
func (s Segment) applyExact(r, v *big.Float) *DomainError {
	switch s.Op {
	case Add:
		r.Add(r, v)
	case Subtract:
		r.Sub(r, v)
	case Multiply:
		r.Mul(r, v)
	case Divide:
		// Guard against invalid divisions, 0/0 or inf/inf.
		if r.Sign() == 0 && v.Sign() == 0 || r.IsInf() && v.IsInf() {
			return &DomainError{X: v, Op: s.Op.String()}
		}
		r.Quo(r, v)
	case Remainder:
		if v.Sign() == 0 || r.IsInf() {
			return &DomainError{X: v, Op: s.Op.String()}
		}
		if v.IsInf() {
			// r is finite, so it's already the remainder.
			return nil
		}
		// Both operands are finite, so the remainder is computed exactly
		// and rounded once.
		x, _ := r.Rat(nil)
		y, _ := v.Rat(nil)
		q := new(big.Rat).Quo(x, y)
		n := new(big.Int).Quo(q.Num(), q.Denom())
		x.Sub(x, y.Mul(y, new(big.Rat).SetInt(n)))
		r.SetRat(x)
	case Exponent:
		switch {
		case r.IsInf() || v.IsInf():
			return &DomainError{X: r, Op: s.Op.String()}
		case v.Sign() == 0:
			r.SetInt64(1)
		case r.Sign() == 0:
			if v.Sign() < 0 {
				r.SetInf(false)
			}
		case r.Sign() < 0:
			// Only integer powers of negative bases are real.
			if !v.IsInt() {
				return &DomainError{X: r, Op: s.Op.String()}
			}
			n, _ := v.Int(nil)
			r.Neg(r)
			bigfloat.Pow(r, r, v)
			if n.Bit(0) == 1 {
				r.Neg(r)
			}
		default:
			bigfloat.Pow(r, r, v)
		}
	default:
		panic("calc: invalid operation " + s.Op.String())
	}
	return nil
}

// DomainError is an error returned from EvaluateExact when an operation has
// no real result. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain operand, if known.
	X *big.Float
	// Segment is the 1-based index of the segment whose operation failed.
	Segment int
	// Op is the operator of that segment.
	Op string
	// Msg is the message of the underlying big.ErrNaN, if any.
	Msg string
}

func (err DomainError) Error() string {
	r := "undefined result"
	if err.X != nil {
		r = err.X.String() + " outside domain"
	}
	if err.Op != "" {
		r += " of " + err.Op
	}
	if err.Segment > 0 {
		r += " (segment " + strconv.Itoa(err.Segment) + ")"
	}
	if err.Msg != "" {
		r += ": " + err.Msg
	}
	return r
}

func (err DomainError) Unwrap() error {
	return big.ErrNaN{}
}

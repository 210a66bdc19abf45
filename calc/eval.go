package calc

import "math"

// Evaluate resolves the calculation against basis, the length that
// percentages are taken of. The base and every segment are resolved against
// the same basis, then the segments apply to the running result from left to
// right. Division by zero and other undefined operations produce infinities
// and NaNs rather than errors.
func (c *Calculation) Evaluate(basis float32) float32 {
	r := c.base.Resolve(basis)
	for _, s := range c.segs {
		r = s.apply(r, basis)
	}
	return r
}

// apply applies the segment to the running result r.
func (s Segment) apply(r, basis float32) float32 {
	v := s.Value.Resolve(basis)
	switch s.Op {
	case Add:
		return r + v
	case Subtract:
		return r - v
	case Multiply:
		return r * v
	case Divide:
		return r / v
	case Remainder:
		// fmod is exact, so computing it in float64 loses nothing.
		return float32(math.Mod(float64(r), float64(v)))
	case Exponent:
		return float32(math.Pow(float64(r), float64(v)))
	default:
		panic("calc: invalid operation " + s.Op.String())
	}
}

// Package bar places and draws bamboo bars.
package bar

import (
	"fmt"
	"math"

	"github.com/safinsingh/bamboo/conf"
)

// Size is the size of a screen in pixels.
type Size struct {
	Width, Height uint16
}

// Geometry is the placement of a bar window on its screen.
type Geometry struct {
	X, Y          int16
	Width, Height uint16
	Border        uint16
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d%+d%+d border %d", g.Width, g.Height, g.X, g.Y, g.Border)
}

// LayoutError is an error indicating a bar field whose resolved value cannot
// be used as a window dimension or position.
type LayoutError struct {
	Field string
	Value float64
}

func (err *LayoutError) Error() string {
	return fmt.Sprintf("%s resolves to %v, which is out of range", err.Field, err.Value)
}

// Layout resolves a bar's dimensions against a screen. Horizontal fields are
// resolved against the screen width and vertical ones against its height.
// Resolved values are rounded to the nearest pixel, halves away from zero.
func Layout(b *conf.Bar, screen Size) (Geometry, error) {
	sw, sh := float32(screen.Width), float32(screen.Height)
	w, err := pixels("width", b.Width.Resolve(sw), 1, math.MaxUint16)
	if err != nil {
		return Geometry{}, err
	}
	h, err := pixels("height", b.Height.Resolve(sh), 1, math.MaxUint16)
	if err != nil {
		return Geometry{}, err
	}
	border, err := pixels("border-width", b.BorderWidth.Resolve(sw), 0, math.MaxUint16)
	if err != nil {
		return Geometry{}, err
	}
	offx, err := pixels("offset-x", b.OffsetX.Resolve(sw), math.MinInt16, math.MaxInt16)
	if err != nil {
		return Geometry{}, err
	}
	offy, err := pixels("offset-y", b.OffsetY.Resolve(sh), math.MinInt16, math.MaxInt16)
	if err != nil {
		return Geometry{}, err
	}

	x := offx
	if b.Center {
		x += (int(screen.Width) - w) / 2
	}
	y := offy
	if b.Bottom {
		y += int(screen.Height) - h
	}
	if x < math.MinInt16 || x > math.MaxInt16 {
		return Geometry{}, &LayoutError{Field: "x", Value: float64(x)}
	}
	if y < math.MinInt16 || y > math.MaxInt16 {
		return Geometry{}, &LayoutError{Field: "y", Value: float64(y)}
	}
	g := Geometry{
		X:      int16(x),
		Y:      int16(y),
		Width:  uint16(w),
		Height: uint16(h),
		Border: uint16(border),
	}
	return g, nil
}

// pixels rounds v and checks that it lies in [lo, hi].
func pixels(field string, v float32, lo, hi float64) (int, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &LayoutError{Field: field, Value: f}
	}
	r := math.Round(f)
	if r < lo || r > hi {
		return 0, &LayoutError{Field: field, Value: f}
	}
	return int(r), nil
}

package bar

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color converts a "#rrggbb" or "#rgb" color to a 24-bit TrueColor pixel.
func Color(hex string) (uint32, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}

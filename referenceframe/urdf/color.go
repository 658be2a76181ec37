package urdf

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/robotsim/utils"
)

// Color is a display color with opacity, all channels in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

// ParseRGBA parses a URDF "r g b a" attribute.
func ParseRGBA(s string) (Color, error) {
	channels, err := utils.SpaceDelimitedStringToFloatSlice(s, 4)
	if err != nil {
		return Color{}, err
	}
	for _, c := range channels {
		if c < 0 || c > 1 {
			return Color{}, errors.Errorf("color channel %v out of range [0, 1] in %q", c, s)
		}
	}
	return Color{
		Color: colorful.Color{R: channels[0], G: channels[1], B: channels[2]},
		A:     channels[3],
	}, nil
}

// RGBA32 returns the channels in the layout baked into mesh vertices.
func (c Color) RGBA32() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func (c Color) String() string {
	return fmt.Sprintf("%s a=%.2f", c.Hex(), c.A)
}

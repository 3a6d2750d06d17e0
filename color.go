package raymaze

import (
	"image/color"
	"math"
)

// maxRescaledChannel is what the brightest channel of an over-bright color is scaled back down to.
const maxRescaledChannel = 254.9

// RGB represents an 8-bit-per-channel color. Math on colors is always done by widening to float64 and clamping before
// narrowing back to 8 bits, so a channel can never wrap around.
// RGB satisfies image/color.Color, so it can be drawn into any image.Image directly.
type RGB struct {
	R, G, B uint8
}

// NewRGB returns a new RGB color.
func NewRGB(r, g, b uint8) RGB {
	return RGB{r, g, b}
}

// Black is the zero RGB, which is also the background color of a render.
var Black = RGB{}

// IsBlack returns true if all three channels are zero.
func (c RGB) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Scale multiplies the color by the factor given. If any channel would go over 255, all three channels are scaled down by the
// same amount so that the brightest lands just under 255; this keeps the hue intact instead of clipping one channel.
// Negative factors are treated as zero.
func (c RGB) Scale(factor float64) RGB {

	r := float64(c.R) * factor
	g := float64(c.G) * factor
	b := float64(c.B) * factor

	if m := math.Max(r, math.Max(g, b)); m > 255 {
		k := maxRescaledChannel / m
		r *= k
		g *= k
		b *= k
	}

	return RGB{clampChannel(r), clampChannel(g), clampChannel(b)}

}

// AddSaturating returns the sum of both colors, with each channel clamped to 255.
func (c RGB) AddSaturating(other RGB) RGB {
	return RGB{
		saturatingAdd(c.R, other.R),
		saturatingAdd(c.G, other.G),
		saturatingAdd(c.B, other.B),
	}
}

// Blend adds the other color on top of this one at the given weight (e.g. 0.25 for a quarter), saturating each channel.
func (c RGB) Blend(other RGB, weight float64) RGB {
	return RGB{
		clampChannel(float64(c.R) + float64(other.R)*weight),
		clampChannel(float64(c.G) + float64(other.G)*weight),
		clampChannel(float64(c.B) + float64(other.B)*weight),
	}
}

// RGBA implements image/color.Color. The color is always fully opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// averageRGB returns the channel-wise integer average of the given colors.
func averageRGB(colors ...RGB) RGB {
	if len(colors) == 0 {
		return Black
	}
	var r, g, b int
	for _, c := range colors {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(colors)
	return RGB{uint8(r / n), uint8(g / n), uint8(b / n)}
}

func saturatingAdd(a, b uint8) uint8 {
	if s := int(a) + int(b); s < 255 {
		return uint8(s)
	}
	return 255
}

// clampChannel narrows a widened channel value back to 8 bits, flooring it and clamping it to [0, 255]. NaN becomes 0.
func clampChannel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

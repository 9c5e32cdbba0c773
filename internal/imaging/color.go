package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = fully opaque
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes one pixel for threshold tuning.
type ColorResult struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Hex  string    `json:"hex"`
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`

	// Brightness is (R+G+B)/3, the value compared against the segmentation
	// threshold.
	Brightness float64 `json:"brightness"`
}

// SampleColor reports the color and brightness at a pixel coordinate.
//
// Coordinates are relative to the image origin, so (0,0) is always the
// top-left pixel. Components are the non-premultiplied 8-bit values the
// segmenter sees.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bounds.Dx(), bounds.Dy())
	}

	r, g, b, a := nrgbaAt(img, bounds.Min.X+x, bounds.Min.Y+y)
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorResult{
		X:          x,
		Y:          y,
		Hex:        c.Hex(),
		RGBA:       RGBAColor{R: r, G: g, B: b, A: a},
		HSL:        HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Brightness: math.Round(float64(int(r)+int(g)+int(b))/3*100) / 100,
	}, nil
}

// nrgbaAt returns non-premultiplied 8-bit components.
func nrgbaAt(img image.Image, x, y int) (r, g, b, a uint8) {
	if n, ok := img.(*image.NRGBA); ok {
		c := n.NRGBAAt(x, y)
		return c.R, c.G, c.B, c.A
	}
	pr, pg, pb, pa := img.At(x, y).RGBA()
	if pa == 0 {
		return 0, 0, 0, 0
	}
	return uint8(pr * 0xffff / pa >> 8), uint8(pg * 0xffff / pa >> 8), uint8(pb * 0xffff / pa >> 8), uint8(pa >> 8)
}

package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/foot-shape-mcp/internal/footshape"
)

const (
	centroidRadius = 6
	landmarkRadius = 5
)

// OverlayStyle is the palette used by Overlay.
type OverlayStyle struct {
	Box      colorful.Color
	Centroid colorful.Color
	Slice    colorful.Color
	Landmark colorful.Color
	Mask     colorful.Color

	// MaskOpacity is the blend factor of the mask tint, 0 to 1.
	MaskOpacity float64
}

// StyleFromHex builds a palette from "#rrggbb" strings.
func StyleFromHex(box, centroid, slice, landmark, mask string, opacity float64) (OverlayStyle, error) {
	var style OverlayStyle
	for _, c := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"box", box, &style.Box},
		{"centroid", centroid, &style.Centroid},
		{"slice", slice, &style.Slice},
		{"landmark", landmark, &style.Landmark},
		{"mask", mask, &style.Mask},
	} {
		parsed, err := colorful.Hex(c.hex)
		if err != nil {
			return OverlayStyle{}, fmt.Errorf("invalid %s color %q: %w", c.name, c.hex, err)
		}
		*c.dst = parsed
	}
	if opacity < 0 || opacity > 1 {
		return OverlayStyle{}, fmt.Errorf("mask opacity must be between 0 and 1, got %v", opacity)
	}
	style.MaskOpacity = opacity
	return style, nil
}

// OverlayResult contains the annotated image
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// OverlayOptions selects what Overlay draws besides the box, slices and
// centroid.
type OverlayOptions struct {
	ShowMask  bool
	Landmarks footshape.LandmarkSet
}

// Overlay draws the analysis of img on a copy of it: the bounding box, the
// two toe-slice dividers, a ring at the centroid, optionally the mask tint,
// and a dot per landmark. img must be the image the analysis ran on.
func Overlay(img image.Image, a *footshape.Analysis, style OverlayStyle, opts OverlayOptions) (*OverlayResult, error) {
	out := imaging.Clone(img)

	if seg := a.Segmentation; seg != nil {
		if opts.ShowMask && seg.Mask != nil {
			tintMask(out, seg.Mask, style.Mask, style.MaskOpacity)
		}

		box := seg.Box
		drawRect(out, box, style.Box)

		span := box.Width() + 1
		for i := 1; i < 3; i++ {
			x := box.MinX + i*span/3
			drawVLine(out, x, box.MinY, box.MaxY, style.Slice)
		}

		drawRing(out, seg.Centroid.X, seg.Centroid.Y, centroidRadius, style.Centroid)
	}

	for _, p := range opts.Landmarks {
		drawDisc(out, p.X, p.Y, landmarkRadius, style.Landmark)
	}

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &OverlayResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

func tintMask(img *image.NRGBA, mask *footshape.FootMask, tint colorful.Color, opacity float64) {
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if !mask.At(x, y) {
				continue
			}
			px := img.NRGBAAt(x, y)
			base := colorful.Color{R: float64(px.R) / 255, G: float64(px.G) / 255, B: float64(px.B) / 255}
			r, g, b := base.BlendRgb(tint, opacity).Clamped().RGB255()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
}

func setPixel(img *image.NRGBA, x, y int, c colorful.Color) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	r, g, b := c.Clamped().RGB255()
	img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
}

func drawVLine(img *image.NRGBA, x, y1, y2 int, c colorful.Color) {
	for y := y1; y <= y2; y++ {
		setPixel(img, x, y, c)
	}
}

func drawHLine(img *image.NRGBA, x1, x2, y int, c colorful.Color) {
	for x := x1; x <= x2; x++ {
		setPixel(img, x, y, c)
	}
}

func drawRect(img *image.NRGBA, box footshape.BoundingBox, c colorful.Color) {
	drawHLine(img, box.MinX, box.MaxX, box.MinY, c)
	drawHLine(img, box.MinX, box.MaxX, box.MaxY, c)
	drawVLine(img, box.MinX, box.MinY, box.MaxY, c)
	drawVLine(img, box.MaxX, box.MinY, box.MaxY, c)
}

// drawRing draws a one-pixel circle outline.
func drawRing(img *image.NRGBA, cx, cy float64, r int, c colorful.Color) {
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	rf := float64(r)
	for dy := -r - 1; dy <= r+1; dy++ {
		for dx := -r - 1; dx <= r+1; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if math.Abs(d-rf) <= 0.5 {
				setPixel(img, x0+dx, y0+dy, c)
			}
		}
	}
}

func drawDisc(img *image.NRGBA, cx, cy float64, r int, c colorful.Color) {
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(img, x0+dx, y0+dy, c)
			}
		}
	}
}

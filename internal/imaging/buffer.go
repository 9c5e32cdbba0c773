package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/foot-shape-mcp/internal/footshape"
)

// PrepareOptions controls how a photo is turned into an analysis buffer.
type PrepareOptions struct {
	// MaxWidth downsizes wider images to this width, keeping aspect ratio.
	// Narrower images are never upscaled. 0 keeps the original size.
	MaxWidth int

	// BlurRadius applies a Gaussian blur before thresholding to suppress
	// sensor noise and skin texture. 0 disables it.
	BlurRadius float64
}

// PrepareImage returns the image the analysis runs on, as a fresh NRGBA with
// its origin at (0,0). Overlays and crops must use this image so that
// coordinates line up with the analysis results.
func PrepareImage(img image.Image, opts PrepareOptions) *image.NRGBA {
	var out image.Image = img
	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		out = imaging.Resize(out, opts.MaxWidth, 0, imaging.Lanczos)
	}
	if opts.BlurRadius > 0 {
		out = blur.Gaussian(out, opts.BlurRadius)
	}
	return imaging.Clone(out)
}

// ToBuffer wraps a prepared image as an engine buffer without copying.
// The caller must not modify img while the buffer is in use.
func ToBuffer(img *image.NRGBA) footshape.ImageBuffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if img.Stride == w*4 && b.Min == (image.Point{}) {
		return footshape.ImageBuffer{Width: w, Height: h, Pix: img.Pix[:w*h*4]}
	}

	pix := make([]uint8, 0, w*h*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		pix = append(pix, img.Pix[off:off+w*4]...)
	}
	return footshape.ImageBuffer{Width: w, Height: h, Pix: pix}
}

// PrepareBuffer is PrepareImage followed by ToBuffer.
func PrepareBuffer(img image.Image, opts PrepareOptions) footshape.ImageBuffer {
	return ToBuffer(PrepareImage(img, opts))
}

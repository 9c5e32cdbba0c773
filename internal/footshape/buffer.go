package footshape

import "fmt"

// ImageBuffer is a row-major RGBA pixel buffer, 4 bytes per pixel.
//
// The layout matches image.NRGBA.Pix for an image whose stride equals
// Width*4, so buffers can be built directly from decoded images.
type ImageBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// Validate reports ErrInvalidBuffer when the dimensions are negative or the
// pixel slice length is not Width*Height*4.
func (b ImageBuffer) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidBuffer, b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrInvalidBuffer, b.Width, b.Height, want, len(b.Pix))
	}
	return nil
}

// brightness returns (R+G+B)/3 of the pixel starting at byte offset i.
func (b ImageBuffer) brightness(i int) float64 {
	return float64(int(b.Pix[i])+int(b.Pix[i+1])+int(b.Pix[i+2])) / 3
}

// FootMask flags each pixel as foot (true) or background (false).
type FootMask struct {
	Width  int
	Height int
	bits   []bool
}

// NewFootMask returns an all-background mask.
func NewFootMask(width, height int) *FootMask {
	return &FootMask{Width: width, Height: height, bits: make([]bool, width*height)}
}

// At reports whether (x, y) is foot. Out-of-range coordinates are background.
func (m *FootMask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set marks (x, y) as foot or background. Out-of-range coordinates are ignored.
func (m *FootMask) Set(x, y int, foot bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.bits[y*m.Width+x] = foot
}

// BoundingBox is the smallest axis-aligned rectangle containing every foot
// pixel. Max coordinates are inclusive.
type BoundingBox struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	MinY int `json:"min_y"`
	MaxY int `json:"max_y"`
}

// Width is MaxX-MinX. A single-column foot has width 0.
func (b BoundingBox) Width() int { return b.MaxX - b.MinX }

// Length is MaxY-MinY.
func (b BoundingBox) Length() int { return b.MaxY - b.MinY }

// Centroid is the mean position of all foot pixels.
type Centroid struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segmentation is the output of Segment and FromAlphaMask.
type Segmentation struct {
	Mask     *FootMask   `json:"-"`
	Box      BoundingBox `json:"bounding_box"`
	Centroid Centroid    `json:"centroid"`
	Count    int         `json:"pixel_count"`

	// Threshold is the brightness or alpha level that separated foot from
	// background.
	Threshold float64 `json:"threshold"`
}

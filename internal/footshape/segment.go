package footshape

import (
	"fmt"
	"math"
)

// Default segmentation constants. They are resolution- and lighting-dependent
// and are kept as literal values.
const (
	DefaultFixedThreshold = 230.0
	DefaultAdaptiveFactor = 0.9
	DefaultAlphaThreshold = 128
)

// ThresholdMode selects how the brightness threshold is chosen.
type ThresholdMode int

const (
	// FixedThreshold marks a pixel as foot when its brightness is below a
	// constant level.
	FixedThreshold ThresholdMode = iota
	// AdaptiveThreshold uses a fraction of the image's mean brightness.
	AdaptiveThreshold
)

func (m ThresholdMode) String() string {
	switch m {
	case FixedThreshold:
		return "fixed"
	case AdaptiveThreshold:
		return "adaptive"
	default:
		return fmt.Sprintf("ThresholdMode(%d)", int(m))
	}
}

// ParseThresholdMode accepts "fixed" or "adaptive". The empty string means fixed.
func ParseThresholdMode(s string) (ThresholdMode, error) {
	switch s {
	case "", "fixed":
		return FixedThreshold, nil
	case "adaptive":
		return AdaptiveThreshold, nil
	default:
		return 0, fmt.Errorf("unknown threshold mode: %s", s)
	}
}

// SegmentOptions configures Segment.
type SegmentOptions struct {
	Mode ThresholdMode

	// FixedThreshold is the brightness level for FixedThreshold mode.
	// Zero means DefaultFixedThreshold.
	FixedThreshold float64

	// AdaptiveFactor scales the mean brightness in AdaptiveThreshold mode.
	// Zero means DefaultAdaptiveFactor.
	AdaptiveFactor float64
}

func (o SegmentOptions) withDefaults() SegmentOptions {
	if o.FixedThreshold == 0 {
		o.FixedThreshold = DefaultFixedThreshold
	}
	if o.AdaptiveFactor == 0 {
		o.AdaptiveFactor = DefaultAdaptiveFactor
	}
	return o
}

// Segment builds a foot mask from img by brightness thresholding.
//
// Brightness is (R+G+B)/3 and a pixel is foot iff its brightness is strictly
// below the threshold; the background is assumed brighter than the foot.
// In AdaptiveThreshold mode a first pass computes the mean brightness and the
// threshold becomes AdaptiveFactor*mean. The mask, bounding box and centroid
// are accumulated in the same pass that assigns mask bits.
//
// Uniformly bright or dark images are valid input. The only failure for a
// well-formed buffer is ErrDetectionFailure when no pixel is below threshold.
func Segment(img ImageBuffer, opts SegmentOptions) (*Segmentation, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	threshold := opts.FixedThreshold
	if opts.Mode == AdaptiveThreshold {
		threshold = opts.AdaptiveFactor * meanBrightness(img)
	}

	acc := newAccumulator(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if img.brightness((y*img.Width+x)*4) < threshold {
				acc.add(x, y)
			}
		}
	}
	return acc.result(threshold)
}

// FromAlphaMask feeds an externally computed segmentation through the same
// extraction as Segment. A pixel is foot iff its alpha is strictly greater
// than alphaThreshold; colour channels are ignored.
func FromAlphaMask(mask ImageBuffer, alphaThreshold uint8) (*Segmentation, error) {
	if err := mask.Validate(); err != nil {
		return nil, err
	}

	acc := newAccumulator(mask.Width, mask.Height)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Pix[(y*mask.Width+x)*4+3] > alphaThreshold {
				acc.add(x, y)
			}
		}
	}
	return acc.result(float64(alphaThreshold))
}

func meanBrightness(img ImageBuffer) float64 {
	n := img.Width * img.Height
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += img.brightness(i * 4)
	}
	return sum / float64(n)
}

// accumulator gathers mask bits, sums and extents in one pass.
type accumulator struct {
	mask       *FootMask
	sumX, sumY float64
	count      int
	box        BoundingBox
}

func newAccumulator(width, height int) *accumulator {
	return &accumulator{
		mask: NewFootMask(width, height),
		box: BoundingBox{
			MinX: math.MaxInt, MaxX: math.MinInt,
			MinY: math.MaxInt, MaxY: math.MinInt,
		},
	}
}

func (a *accumulator) add(x, y int) {
	a.mask.bits[y*a.mask.Width+x] = true
	a.sumX += float64(x)
	a.sumY += float64(y)
	a.count++
	a.box.MinX = min(a.box.MinX, x)
	a.box.MaxX = max(a.box.MaxX, x)
	a.box.MinY = min(a.box.MinY, y)
	a.box.MaxY = max(a.box.MaxY, y)
}

func (a *accumulator) result(threshold float64) (*Segmentation, error) {
	if a.count == 0 {
		return nil, ErrDetectionFailure
	}
	return &Segmentation{
		Mask: a.mask,
		Box:  a.box,
		Centroid: Centroid{
			X: a.sumX / float64(a.count),
			Y: a.sumY / float64(a.count),
		},
		Count:     a.count,
		Threshold: threshold,
	}, nil
}

package footshape

import (
	"fmt"
	"sort"
)

// SquareTolerance is the largest gap between the two most advanced toe slices
// that still counts as an even (square) leading edge.
const SquareTolerance = 0.03

// ToeCategory is the toe-pattern classification.
type ToeCategory int

const (
	ToeUnknown ToeCategory = iota
	// ToeEgyptian: big toe longest.
	ToeEgyptian
	// ToeGreek: second toe longest.
	ToeGreek
	// ToeSquare: leading toes about even.
	ToeSquare
	// ToeOuter: the little-toe side reaches furthest. Residual case with no
	// named anatomical type.
	ToeOuter
)

func (c ToeCategory) String() string {
	switch c {
	case ToeEgyptian:
		return "egyptian"
	case ToeGreek:
		return "greek"
	case ToeSquare:
		return "square"
	case ToeOuter:
		return "outer"
	case ToeUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("ToeCategory(%d)", int(c))
	}
}

// Label is the human-readable description of the category.
func (c ToeCategory) Label() string {
	switch c {
	case ToeEgyptian:
		return "Egyptian (big toe longest)"
	case ToeGreek:
		return "Greek (second toe longest)"
	case ToeSquare:
		return "Square (toes about even)"
	case ToeOuter:
		return "Outer-leaning (little-toe side longest)"
	default:
		return "Judgment impossible"
	}
}

func (c ToeCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Toe slice indexes, left to right.
const (
	SliceLeft = iota
	SliceCenter
	SliceRight
	numSlices
)

// ToeSliceProfile holds one advance value per vertical third of the bounding
// box. 0 means foot pixels touch the top (toe) edge; 1 means the slice holds
// no foot pixel at all.
type ToeSliceProfile [numSlices]float64

// ToeShapeResult is the output of EstimateToeShape.
type ToeShapeResult struct {
	Category ToeCategory     `json:"category"`
	Label    string          `json:"label"`
	Profile  ToeSliceProfile `json:"profile"`

	// Diff is the second-smallest advance minus the smallest.
	Diff float64 `json:"diff"`

	// Degenerate is set when the bounding box has no length or is too
	// narrow to give every slice a column.
	Degenerate bool `json:"degenerate"`
}

// EstimateToeShape classifies the toe pattern from the leading edge of the
// foot mask inside box.
//
// The box is split into three equal-width vertical slices. For each column of
// a slice the first foot row is found scanning down from the top edge; the
// slice's advance is the smallest such row, measured from box.MinY and
// normalized by the box length. A slice without foot pixels gets advance 1.
//
// The tolerance check runs before the position check: if the two smallest
// advances differ by less than SquareTolerance the result is ToeSquare no
// matter which slice leads. Otherwise the leading slice decides: left is
// ToeEgyptian, center ToeGreek, right ToeOuter. A box with zero length, or
// fewer columns than slices, yields ToeUnknown without measuring anything.
func EstimateToeShape(mask *FootMask, box BoundingBox) ToeShapeResult {
	width, length := box.Width(), box.Length()
	span := width + 1
	if mask == nil || span < numSlices || length <= 0 {
		return ToeShapeResult{
			Category:   ToeUnknown,
			Label:      ToeUnknown.Label(),
			Profile:    ToeSliceProfile{1, 1, 1},
			Degenerate: true,
		}
	}

	var profile ToeSliceProfile
	for i := 0; i < numSlices; i++ {
		x0 := box.MinX + i*span/numSlices
		x1 := box.MinX + (i+1)*span/numSlices
		profile[i] = sliceAdvance(mask, box, x0, x1)
	}

	category, diff := classifyProfile(profile)
	return ToeShapeResult{
		Category: category,
		Label:    category.Label(),
		Profile:  profile,
		Diff:     diff,
	}
}

// sliceAdvance scans columns [x0, x1) from the top of box downwards.
func sliceAdvance(mask *FootMask, box BoundingBox, x0, x1 int) float64 {
	best := -1
	for x := x0; x < x1; x++ {
		for y := box.MinY; y <= box.MaxY; y++ {
			if best >= 0 && y >= best {
				break
			}
			if mask.At(x, y) {
				best = y
				break
			}
		}
	}
	if best < 0 {
		return 1
	}
	advance := float64(best-box.MinY) / float64(box.Length())
	return min(max(advance, 0), 1)
}

func classifyProfile(profile ToeSliceProfile) (ToeCategory, float64) {
	sorted := profile
	sort.Float64s(sorted[:])
	diff := sorted[1] - sorted[0]
	if diff < SquareTolerance {
		return ToeSquare, diff
	}

	lead := SliceLeft
	for i := SliceCenter; i < numSlices; i++ {
		if profile[i] < profile[lead] {
			lead = i
		}
	}
	switch lead {
	case SliceLeft:
		return ToeEgyptian, diff
	case SliceCenter:
		return ToeGreek, diff
	default:
		return ToeOuter, diff
	}
}

package footshape

import "fmt"

// Landmark classification thresholds.
const (
	LandmarkNarrowBelow = 0.36
	LandmarkWideAbove   = 0.40

	// LandmarkToeThreshold is in raw pixels, so it only makes sense for a
	// consistent image scale.
	LandmarkToeThreshold = 5.0
)

// Centroid position thresholds, as fractions of the bounding box.
const (
	PositionLowBelow  = 0.4
	PositionHighAbove = 0.6
)

// WidthCategory is the coarse width class used by advice.
type WidthCategory int

const (
	WidthNormal WidthCategory = iota
	WidthNarrow
	WidthWide
)

func (c WidthCategory) String() string {
	switch c {
	case WidthNarrow:
		return "narrow"
	case WidthNormal:
		return "normal"
	case WidthWide:
		return "wide"
	default:
		return fmt.Sprintf("WidthCategory(%d)", int(c))
	}
}

func (c WidthCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// WidthClass is a width category with its label and source ratio. Label may
// carry a "very" qualifier that Category does not.
type WidthClass struct {
	Category WidthCategory `json:"category"`
	Label    string        `json:"label"`
	Ratio    float64       `json:"ratio"`
}

type widthBand struct {
	below     float64
	inclusive bool
	label     string
	category  WidthCategory
}

// widthBands are checked in order; the first band whose upper edge admits the
// ratio wins. Edges: <0.33, [0.33,0.37), [0.37,0.42], (0.42,0.47], >0.47.
var widthBands = []widthBand{
	{below: 0.33, label: "very narrow", category: WidthNarrow},
	{below: 0.37, label: "narrow", category: WidthNarrow},
	{below: 0.42, inclusive: true, label: "normal", category: WidthNormal},
	{below: 0.47, inclusive: true, label: "wide", category: WidthWide},
}

// ClassifyWidthRatio classifies a bounding-box width/length ratio.
func ClassifyWidthRatio(ratio float64) WidthClass {
	for _, b := range widthBands {
		if ratio < b.below || (b.inclusive && ratio == b.below) {
			return WidthClass{Category: b.category, Label: b.label, Ratio: ratio}
		}
	}
	return WidthClass{Category: WidthWide, Label: "very wide", Ratio: ratio}
}

// ClassifyBoxWidth classifies box.Width()/box.Length(), dividing by 1 for a
// zero-length box.
func ClassifyBoxWidth(box BoundingBox) WidthClass {
	return ClassifyWidthRatio(float64(box.Width()) / safeDenominator(float64(box.Length())))
}

// ClassifyLandmarkWidth classifies Width/LengthRef with the landmark bands.
func ClassifyLandmarkWidth(m LandmarkMetrics) WidthClass {
	ratio := m.WidthRatio()
	c := WidthNormal
	switch {
	case ratio < LandmarkNarrowBelow:
		c = WidthNarrow
	case ratio > LandmarkWideAbove:
		c = WidthWide
	}
	return WidthClass{Category: c, Label: c.String(), Ratio: ratio}
}

// ClassifyLandmarkToe compares heel-to-big-toe with heel-to-second-toe.
func ClassifyLandmarkToe(m LandmarkMetrics) ToeCategory {
	diff := m.ToeDiff()
	switch {
	case diff > LandmarkToeThreshold:
		return ToeEgyptian
	case diff < -LandmarkToeThreshold:
		return ToeGreek
	default:
		return ToeSquare
	}
}

// Position is a centroid tendency along one axis.
type Position int

const (
	PositionUnknown Position = iota
	PositionMid
	// PositionLow is rear-weighted vertically and inner horizontally.
	PositionLow
	// PositionHigh is front-weighted vertically and outer horizontally.
	PositionHigh
)

// VerticalClass describes the centroid's position along the foot length.
type VerticalClass struct {
	Position Position `json:"-"`
	Label    string   `json:"category"`
	Norm     float64  `json:"norm"`
}

// HorizontalClass describes the centroid's position across the foot width.
type HorizontalClass struct {
	Position Position `json:"-"`
	Label    string   `json:"category"`
	Norm     float64  `json:"norm"`
}

func classifyNorm(norm float64) Position {
	switch {
	case norm < PositionLowBelow:
		return PositionLow
	case norm > PositionHighAbove:
		return PositionHigh
	default:
		return PositionMid
	}
}

// ClassifyVertical classifies (c.Y-MinY)/Length.
func ClassifyVertical(c Centroid, box BoundingBox) VerticalClass {
	norm := (c.Y - float64(box.MinY)) / safeDenominator(float64(box.Length()))
	p := classifyNorm(norm)
	return VerticalClass{Position: p, Label: verticalLabel(p), Norm: norm}
}

// ClassifyHorizontal classifies (c.X-MinX)/Width.
func ClassifyHorizontal(c Centroid, box BoundingBox) HorizontalClass {
	norm := (c.X - float64(box.MinX)) / safeDenominator(float64(box.Width()))
	p := classifyNorm(norm)
	return HorizontalClass{Position: p, Label: horizontalLabel(p), Norm: norm}
}

func verticalLabel(p Position) string {
	switch p {
	case PositionLow:
		return "rear-weighted"
	case PositionHigh:
		return "front-weighted"
	case PositionMid:
		return "mid"
	default:
		return "not measured"
	}
}

func horizontalLabel(p Position) string {
	switch p {
	case PositionLow:
		return "inner"
	case PositionHigh:
		return "outer"
	case PositionMid:
		return "mid"
	default:
		return "not measured"
	}
}

// ToeClass is the toe classification with its source measurement.
type ToeClass struct {
	Category ToeCategory `json:"category"`
	Label    string      `json:"label"`

	// Diff is the slice-advance gap for mask inputs or the pixel length
	// difference for landmark inputs.
	Diff float64 `json:"diff"`
}

// ClassificationResult is the fully populated outcome of one analysis.
type ClassificationResult struct {
	Width      WidthClass      `json:"width"`
	Toe        ToeClass        `json:"toe"`
	Vertical   VerticalClass   `json:"vertical"`
	Horizontal HorizontalClass `json:"horizontal"`
}

// ClassifySegmentation classifies a mask-based measurement.
func ClassifySegmentation(seg *Segmentation, toe ToeShapeResult) ClassificationResult {
	return ClassificationResult{
		Width:      ClassifyBoxWidth(seg.Box),
		Toe:        ToeClass{Category: toe.Category, Label: toe.Category.Label(), Diff: toe.Diff},
		Vertical:   ClassifyVertical(seg.Centroid, seg.Box),
		Horizontal: ClassifyHorizontal(seg.Centroid, seg.Box),
	}
}

// ClassifyLandmarks classifies a landmark measurement. Landmarks carry no
// centroid, so both position classes are PositionUnknown.
func ClassifyLandmarks(m LandmarkMetrics) ClassificationResult {
	toe := ClassifyLandmarkToe(m)
	return ClassificationResult{
		Width:      ClassifyLandmarkWidth(m),
		Toe:        ToeClass{Category: toe, Label: toe.Label(), Diff: m.ToeDiff()},
		Vertical:   VerticalClass{Position: PositionUnknown, Label: verticalLabel(PositionUnknown)},
		Horizontal: HorizontalClass{Position: PositionUnknown, Label: horizontalLabel(PositionUnknown)},
	}
}

// safeDenominator substitutes 1 for 0 so ratios never become NaN or Inf.
func safeDenominator(d float64) float64 {
	if d == 0 {
		return 1
	}
	return d
}

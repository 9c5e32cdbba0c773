package footshape

import (
	"fmt"
	"math"
)

// Landmark names one of the six anatomical points.
type Landmark int

// Landmarks in the order an operator taps them.
const (
	Heel Landmark = iota
	BigToe
	SecondToe
	LittleToe
	WidthLeft
	WidthRight
	NumLandmarks
)

var landmarkNames = [NumLandmarks]string{
	Heel:       "heel",
	BigToe:     "big_toe",
	SecondToe:  "second_toe",
	LittleToe:  "little_toe",
	WidthLeft:  "width_left",
	WidthRight: "width_right",
}

func (l Landmark) String() string {
	if l < 0 || l >= NumLandmarks {
		return fmt.Sprintf("Landmark(%d)", int(l))
	}
	return landmarkNames[l]
}

// ParseLandmark is the inverse of Landmark.String.
func ParseLandmark(s string) (Landmark, error) {
	for i, name := range landmarkNames {
		if name == s {
			return Landmark(i), nil
		}
	}
	return 0, fmt.Errorf("unknown landmark: %s", s)
}

// Point is a 2-D coordinate in image pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkSet holds labelled points. A valid set has all six landmarks.
type LandmarkSet map[Landmark]Point

// LandmarksFromSequence assigns points to landmarks in tap order
// (heel, big toe, second toe, little toe, width left, width right).
// Extra points are ignored; missing ones are left absent so that
// FromLandmarks reports them.
func LandmarksFromSequence(points []Point) LandmarkSet {
	set := make(LandmarkSet, NumLandmarks)
	for i, p := range points {
		if Landmark(i) >= NumLandmarks {
			break
		}
		set[Landmark(i)] = p
	}
	return set
}

// Missing returns the landmarks absent from the set, in tap order.
func (s LandmarkSet) Missing() []Landmark {
	var missing []Landmark
	for l := Heel; l < NumLandmarks; l++ {
		if _, ok := s[l]; !ok {
			missing = append(missing, l)
		}
	}
	return missing
}

// LandmarkMetrics are the pixel distances derived from a LandmarkSet.
type LandmarkMetrics struct {
	// LengthRef is heel to big toe, the foot length reference.
	LengthRef    float64 `json:"length_ref"`
	HeelToSecond float64 `json:"heel_to_second"`
	HeelToLittle float64 `json:"heel_to_little"`
	Width        float64 `json:"width"`
}

// WidthRatio is Width/LengthRef, dividing by 1 when LengthRef is zero.
func (m LandmarkMetrics) WidthRatio() float64 {
	return m.Width / safeDenominator(m.LengthRef)
}

// ToeDiff is LengthRef minus the heel to second toe distance, in pixels.
// Positive means the big toe reaches further.
func (m LandmarkMetrics) ToeDiff() float64 {
	return m.LengthRef - m.HeelToSecond
}

// FromLandmarks computes the four reference distances. It rejects incomplete
// sets but performs no plausibility checks; a zero LengthRef is returned as is.
func FromLandmarks(points LandmarkSet) (*LandmarkMetrics, error) {
	if missing := points.Missing(); len(missing) > 0 {
		return nil, &IncompleteLandmarksError{Missing: missing}
	}

	heel := points[Heel]
	return &LandmarkMetrics{
		LengthRef:    distance(heel, points[BigToe]),
		HeelToSecond: distance(heel, points[SecondToe]),
		HeelToLittle: distance(heel, points[LittleToe]),
		Width:        distance(points[WidthLeft], points[WidthRight]),
	}, nil
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

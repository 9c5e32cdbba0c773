package footshape

import (
	"errors"
	"math"
	"testing"
)

func referenceLandmarks() LandmarkSet {
	return LandmarkSet{
		Heel:       {X: 0, Y: 0},
		BigToe:     {X: 0, Y: 100},
		SecondToe:  {X: 0, Y: 90},
		LittleToe:  {X: 0, Y: 80},
		WidthLeft:  {X: -20, Y: 50},
		WidthRight: {X: 20, Y: 50},
	}
}

func TestFromLandmarks(t *testing.T) {
	m, err := FromLandmarks(referenceLandmarks())
	if err != nil {
		t.Fatalf("FromLandmarks failed: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"LengthRef", m.LengthRef, 100},
		{"HeelToSecond", m.HeelToSecond, 90},
		{"HeelToLittle", m.HeelToLittle, 80},
		{"Width", m.Width, 40},
		{"ToeDiff", m.ToeDiff(), 10},
		{"WidthRatio", m.WidthRatio(), 0.40},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s: got %.3f, want %.3f", c.name, c.got, c.want)
		}
	}

	if got := ClassifyLandmarkToe(*m); got != ToeEgyptian {
		t.Errorf("toe: got %s, want egyptian", got)
	}
	if got := ClassifyLandmarkWidth(*m); got.Category != WidthNormal {
		t.Errorf("width: got %s (ratio %.4f), want normal", got.Category, got.Ratio)
	}
}

func TestFromLandmarks_Diagonal(t *testing.T) {
	set := referenceLandmarks()
	set[BigToe] = Point{X: 30, Y: 40}
	m, err := FromLandmarks(set)
	if err != nil {
		t.Fatalf("FromLandmarks failed: %v", err)
	}
	if math.Abs(m.LengthRef-50) > 1e-9 {
		t.Errorf("LengthRef: got %.3f, want 50", m.LengthRef)
	}
}

func TestFromLandmarks_Incomplete(t *testing.T) {
	set := referenceLandmarks()
	delete(set, SecondToe)
	delete(set, WidthRight)

	_, err := FromLandmarks(set)
	if !errors.Is(err, ErrIncompleteLandmarks) {
		t.Fatalf("expected ErrIncompleteLandmarks, got %v", err)
	}

	var incomplete *IncompleteLandmarksError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *IncompleteLandmarksError, got %T", err)
	}
	want := []Landmark{SecondToe, WidthRight}
	if len(incomplete.Missing) != len(want) {
		t.Fatalf("Missing: got %v, want %v", incomplete.Missing, want)
	}
	for i := range want {
		if incomplete.Missing[i] != want[i] {
			t.Errorf("Missing[%d]: got %s, want %s", i, incomplete.Missing[i], want[i])
		}
	}
}

func TestFromLandmarks_ZeroLength(t *testing.T) {
	set := referenceLandmarks()
	set[BigToe] = set[Heel]

	m, err := FromLandmarks(set)
	if err != nil {
		t.Fatalf("degenerate geometry must not be rejected: %v", err)
	}
	if m.LengthRef != 0 {
		t.Errorf("LengthRef: got %.3f, want 0", m.LengthRef)
	}
	ratio := m.WidthRatio()
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		t.Errorf("WidthRatio must be finite, got %v", ratio)
	}
	if ratio != 40 {
		t.Errorf("WidthRatio: got %.3f, want 40 (divide by 1)", ratio)
	}
}

func TestLandmarksFromSequence(t *testing.T) {
	points := []Point{{0, 0}, {0, 100}, {0, 90}, {0, 80}, {-20, 50}, {20, 50}, {99, 99}}
	set := LandmarksFromSequence(points)

	if len(set) != int(NumLandmarks) {
		t.Fatalf("len: got %d, want %d", len(set), NumLandmarks)
	}
	if set[WidthRight] != (Point{20, 50}) {
		t.Errorf("WidthRight: got %+v", set[WidthRight])
	}

	short := LandmarksFromSequence(points[:4])
	_, err := FromLandmarks(short)
	if !errors.Is(err, ErrIncompleteLandmarks) {
		t.Errorf("expected ErrIncompleteLandmarks, got %v", err)
	}
}

func TestParseLandmark(t *testing.T) {
	for l := Heel; l < NumLandmarks; l++ {
		got, err := ParseLandmark(l.String())
		if err != nil {
			t.Fatalf("ParseLandmark(%s) failed: %v", l, err)
		}
		if got != l {
			t.Errorf("ParseLandmark(%s): got %s", l, got)
		}
	}
	if _, err := ParseLandmark("ankle"); err == nil {
		t.Error("expected error for unknown landmark")
	}
}

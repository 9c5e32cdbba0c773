package footshape

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

// footBuffer draws a dark, roughly foot-shaped block on a white background:
// a 9-wide body whose left third reaches the top.
func footBuffer() ImageBuffer {
	img := createBuffer(20, 30, 255, 255)
	setGray(img, 5, 8, 13, 27, 30)
	setGray(img, 5, 2, 7, 7, 30)
	setGray(img, 8, 5, 10, 7, 30)
	return img
}

func TestEngine_AnalyzeFixed(t *testing.T) {
	e := New(DefaultOptions())
	got, err := e.Analyze(ImageInput(footBuffer(), FixedThreshold))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if got.Kind != KindFixedThreshold {
		t.Errorf("Kind: got %s", got.Kind)
	}
	if got.Segmentation == nil || got.Toe == nil {
		t.Fatal("mask analysis must carry segmentation and toe shape")
	}
	if got.Landmarks != nil {
		t.Error("mask analysis must not carry landmark metrics")
	}

	wantBox := BoundingBox{MinX: 5, MaxX: 13, MinY: 2, MaxY: 27}
	if got.Segmentation.Box != wantBox {
		t.Errorf("Box: got %+v, want %+v", got.Segmentation.Box, wantBox)
	}
	if got.Toe.Category != ToeEgyptian {
		t.Errorf("Toe: got %s (profile %v), want egyptian", got.Toe.Category, got.Toe.Profile)
	}
	if got.Classification.Toe.Category != got.Toe.Category {
		t.Error("classification toe must match the estimator")
	}
	// 8/25 = 0.32
	if got.Classification.Width.Label != "very narrow" {
		t.Errorf("Width: got %q, want very narrow", got.Classification.Width.Label)
	}
	if len(got.Advice.Fit) != 2 || len(got.Advice.PlayStyle) != 2 {
		t.Errorf("Advice: got %+v", got.Advice)
	}
}

func TestEngine_AnalyzeAdaptive(t *testing.T) {
	e := New(DefaultOptions())
	got, err := e.Analyze(ImageInput(footBuffer(), AdaptiveThreshold))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got.Kind != KindAdaptiveThreshold {
		t.Errorf("Kind: got %s", got.Kind)
	}
	if got.Segmentation.Threshold >= DefaultFixedThreshold {
		t.Errorf("adaptive threshold should be below the fixed one, got %.2f", got.Segmentation.Threshold)
	}
}

func TestEngine_AnalyzeMask(t *testing.T) {
	mask := createBuffer(12, 12, 0, 0)
	setAlpha(mask, 2, 2, 9, 9, 255)

	e := New(DefaultOptions())
	got, err := e.Analyze(MaskInput(mask, 10))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got.Kind != KindExternalMask {
		t.Errorf("Kind: got %s", got.Kind)
	}
	if got.Segmentation.Count != 64 {
		t.Errorf("Count: got %d, want 64", got.Segmentation.Count)
	}
	if got.Toe.Category != ToeSquare {
		t.Errorf("Toe: got %s, want square", got.Toe.Category)
	}

	// Without an override the engine option applies: 255 is not > 255.
	strict := New(Options{AlphaThreshold: 255})
	_, err = strict.Analyze(Input{Kind: KindExternalMask, Image: mask})
	if !errors.Is(err, ErrDetectionFailure) {
		t.Errorf("expected ErrDetectionFailure, got %v", err)
	}
}

func TestEngine_AnalyzeLandmarks(t *testing.T) {
	e := New(DefaultOptions())
	got, err := e.Analyze(LandmarkInput(referenceLandmarks()))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got.Segmentation != nil || got.Toe != nil {
		t.Error("landmark analysis must not carry mask results")
	}
	if got.Classification.Toe.Category != ToeEgyptian {
		t.Errorf("Toe: got %s, want egyptian", got.Classification.Toe.Category)
	}
	if got.Classification.Width.Category != WidthNormal {
		t.Errorf("Width: got %s, want normal", got.Classification.Width.Category)
	}
}

func TestEngine_Errors(t *testing.T) {
	e := New(DefaultOptions())

	tests := []struct {
		name     string
		in       Input
		wantErr  error
		wantKind string
	}{
		{"bright image", ImageInput(createBuffer(5, 5, 255, 255), FixedThreshold), ErrDetectionFailure, KindDetectionFailure},
		{"empty mask", MaskInput(createBuffer(5, 5, 0, 0), 128), ErrDetectionFailure, KindDetectionFailure},
		{"partial landmarks", LandmarkInput(LandmarkSet{Heel: {}}), ErrIncompleteLandmarks, KindIncompleteLandmarks},
		{"bad buffer", ImageInput(ImageBuffer{Width: 3, Height: 3}, FixedThreshold), ErrInvalidBuffer, KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Analyze(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got := ErrorKind(err); got != tt.wantKind {
				t.Errorf("ErrorKind: got %s, want %s", got, tt.wantKind)
			}
		})
	}

	if _, err := e.Analyze(Input{Kind: InputKind(99)}); err == nil {
		t.Error("expected error for unknown input kind")
	}
}

func TestEngine_Idempotent(t *testing.T) {
	e := New(DefaultOptions())
	inputs := []Input{
		ImageInput(footBuffer(), FixedThreshold),
		ImageInput(footBuffer(), AdaptiveThreshold),
		LandmarkInput(referenceLandmarks()),
	}

	for _, in := range inputs {
		t.Run(in.Kind.String(), func(t *testing.T) {
			first, err := e.Analyze(in)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			second, err := e.Analyze(in)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if !reflect.DeepEqual(first.Classification, second.Classification) {
				t.Errorf("Classification differs:\n%+v\n%+v", first.Classification, second.Classification)
			}
			if !reflect.DeepEqual(first.Advice, second.Advice) {
				t.Errorf("Advice differs:\n%+v\n%+v", first.Advice, second.Advice)
			}
		})
	}
}

func TestEngine_Concurrent(t *testing.T) {
	e := New(DefaultOptions())
	want, err := e.Analyze(ImageInput(footBuffer(), FixedThreshold))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Analyze(ImageInput(footBuffer(), FixedThreshold))
			if err != nil {
				t.Errorf("Analyze failed: %v", err)
				return
			}
			if !reflect.DeepEqual(got.Classification, want.Classification) {
				t.Error("concurrent result differs")
			}
		}()
	}
	wg.Wait()
}

package footshape

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDetectionFailure means segmentation classified zero pixels as foot.
	// Callers usually recover by asking for a better photo.
	ErrDetectionFailure = errors.New("foot region not detected")

	// ErrIncompleteLandmarks means fewer than six labelled points were supplied.
	ErrIncompleteLandmarks = errors.New("incomplete landmark set")

	// ErrInvalidBuffer means an ImageBuffer's pixel slice does not match its
	// declared dimensions.
	ErrInvalidBuffer = errors.New("invalid image buffer")
)

// IncompleteLandmarksError lists the landmarks missing from a LandmarkSet.
type IncompleteLandmarksError struct {
	Missing []Landmark
}

func (e *IncompleteLandmarksError) Error() string {
	names := make([]string, len(e.Missing))
	for i, l := range e.Missing {
		names[i] = l.String()
	}
	return fmt.Sprintf("%s: missing %s", ErrIncompleteLandmarks, strings.Join(names, ", "))
}

func (e *IncompleteLandmarksError) Is(target error) bool {
	return target == ErrIncompleteLandmarks
}

// Error kinds reported to the presentation layer.
const (
	KindDetectionFailure    = "detection_failure"
	KindIncompleteLandmarks = "incomplete_landmarks"
	KindInvalidInput        = "invalid_input"
)

// ErrorKind maps an engine error to a stable kind string. Errors that did not
// originate in the engine map to KindInvalidInput.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrDetectionFailure):
		return KindDetectionFailure
	case errors.Is(err, ErrIncompleteLandmarks):
		return KindIncompleteLandmarks
	default:
		return KindInvalidInput
	}
}

package footshape

import "fmt"

// InputKind selects the analysis pipeline.
type InputKind int

const (
	KindFixedThreshold InputKind = iota
	KindAdaptiveThreshold
	KindExternalMask
	KindLandmarks
)

func (k InputKind) String() string {
	switch k {
	case KindFixedThreshold:
		return "fixed_threshold"
	case KindAdaptiveThreshold:
		return "adaptive_threshold"
	case KindExternalMask:
		return "external_mask"
	case KindLandmarks:
		return "landmarks"
	default:
		return fmt.Sprintf("InputKind(%d)", int(k))
	}
}

func (k InputKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Input is one analysis request. Image is read for the threshold and mask
// kinds, Landmarks for KindLandmarks.
type Input struct {
	Kind      InputKind
	Image     ImageBuffer
	Landmarks LandmarkSet

	// AlphaThreshold overrides the engine's alpha threshold for
	// KindExternalMask when non-nil.
	AlphaThreshold *uint8
}

// ImageInput analyses a photo with the given threshold mode.
func ImageInput(img ImageBuffer, mode ThresholdMode) Input {
	if mode == AdaptiveThreshold {
		return Input{Kind: KindAdaptiveThreshold, Image: img}
	}
	return Input{Kind: KindFixedThreshold, Image: img}
}

// MaskInput analyses an external alpha mask.
func MaskInput(mask ImageBuffer, alphaThreshold uint8) Input {
	return Input{Kind: KindExternalMask, Image: mask, AlphaThreshold: &alphaThreshold}
}

// LandmarkInput analyses six labelled points.
func LandmarkInput(points LandmarkSet) Input {
	return Input{Kind: KindLandmarks, Landmarks: points}
}

// Options tunes the engine. Zero FixedThreshold and AdaptiveFactor fall back
// to the package defaults; AlphaThreshold is used as given.
type Options struct {
	FixedThreshold float64
	AdaptiveFactor float64
	AlphaThreshold uint8
}

// DefaultOptions returns the literal constants.
func DefaultOptions() Options {
	return Options{
		FixedThreshold: DefaultFixedThreshold,
		AdaptiveFactor: DefaultAdaptiveFactor,
		AlphaThreshold: DefaultAlphaThreshold,
	}
}

// Engine runs the full measure, classify and advise chain. It holds only
// immutable options and is safe for concurrent use.
type Engine struct {
	opts Options
}

// New creates an engine.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Analysis is the result of one Engine.Analyze call. Segmentation and Toe are
// set for mask-based kinds, Landmarks for KindLandmarks.
type Analysis struct {
	Kind           InputKind            `json:"kind"`
	Segmentation   *Segmentation        `json:"segmentation,omitempty"`
	Toe            *ToeShapeResult      `json:"toe_shape,omitempty"`
	Landmarks      *LandmarkMetrics     `json:"landmarks,omitempty"`
	Classification ClassificationResult `json:"classification"`
	Advice         AdviceBundle         `json:"advice"`
}

// Analyze runs the pipeline selected by in.Kind.
func (e *Engine) Analyze(in Input) (*Analysis, error) {
	switch in.Kind {
	case KindFixedThreshold, KindAdaptiveThreshold:
		mode := FixedThreshold
		if in.Kind == KindAdaptiveThreshold {
			mode = AdaptiveThreshold
		}
		seg, err := Segment(in.Image, SegmentOptions{
			Mode:           mode,
			FixedThreshold: e.opts.FixedThreshold,
			AdaptiveFactor: e.opts.AdaptiveFactor,
		})
		if err != nil {
			return nil, err
		}
		return analyzeSegmentation(in.Kind, seg), nil

	case KindExternalMask:
		threshold := e.opts.AlphaThreshold
		if in.AlphaThreshold != nil {
			threshold = *in.AlphaThreshold
		}
		seg, err := FromAlphaMask(in.Image, threshold)
		if err != nil {
			return nil, err
		}
		return analyzeSegmentation(in.Kind, seg), nil

	case KindLandmarks:
		metrics, err := FromLandmarks(in.Landmarks)
		if err != nil {
			return nil, err
		}
		c := ClassifyLandmarks(*metrics)
		return &Analysis{
			Kind:           in.Kind,
			Landmarks:      metrics,
			Classification: c,
			Advice:         Compose(c),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported input kind: %s", in.Kind)
	}
}

func analyzeSegmentation(kind InputKind, seg *Segmentation) *Analysis {
	toe := EstimateToeShape(seg.Mask, seg.Box)
	c := ClassifySegmentation(seg, toe)
	return &Analysis{
		Kind:           kind,
		Segmentation:   seg,
		Toe:            &toe,
		Classification: c,
		Advice:         Compose(c),
	}
}

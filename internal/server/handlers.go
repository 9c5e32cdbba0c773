package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"github.com/google/uuid"

	"github.com/ironsheep/foot-shape-mcp/internal/footshape"
	"github.com/ironsheep/foot-shape-mcp/internal/imaging"
)

// modeMask selects external-mask analysis in foot_overlay and foot_crop.
const modeMask = "mask"

const defaultCropPadding = 10

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "foot_analyze_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolErrorData is the data member of a failed tools/call response.
// Kind is one of footshape.KindDetectionFailure,
// footshape.KindIncompleteLandmarks or footshape.KindInvalidInput.
type ToolErrorData struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and a ToolErrorData payload.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		data := ToolErrorData{Kind: footshape.ErrorKind(err), Message: err.Error()}
		if s.cfg.Debug() {
			log.Printf("Tool %s failed (%s): %v", params.Name, data.Kind, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", data)
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	// Foot Analysis
	case "foot_analyze_image":
		return s.handleFootAnalyzeImage(args)
	case "foot_analyze_mask":
		return s.handleFootAnalyzeMask(args)
	case "foot_analyze_landmarks":
		return s.handleFootAnalyzeLandmarks(args)

	// Debug Helpers
	case "foot_overlay":
		return s.handleFootOverlay(args)
	case "foot_crop":
		return s.handleFootCrop(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments. Missing arguments decode as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// prepare loads path through the cache and applies capture scaling. Blur is
// only wanted before thresholding; masks are used as drawn.
func (s *Server) prepare(path string, blur bool) (*image.NRGBA, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	opts := imaging.PrepareOptions{MaxWidth: s.cfg.Loader.MaxWidth}
	if blur {
		opts.BlurRadius = s.cfg.Loader.BlurRadius
	}
	return imaging.PrepareImage(img, opts), nil
}

// analyzeFile runs the engine on an image file and returns the analysis
// together with the prepared image it ran on.
func (s *Server) analyzeFile(path, mode string, threshold *float64, alpha *int) (*footshape.Analysis, *image.NRGBA, error) {
	if mode == modeMask {
		a, err := alphaThreshold(alpha, uint8(s.cfg.Segmentation.AlphaThreshold))
		if err != nil {
			return nil, nil, err
		}
		prepared, err := s.prepare(path, false)
		if err != nil {
			return nil, nil, err
		}
		analysis, err := s.engine.Analyze(footshape.MaskInput(imaging.ToBuffer(prepared), a))
		if err != nil {
			return nil, nil, err
		}
		return analysis, prepared, nil
	}

	m := s.cfg.ThresholdMode()
	if mode != "" {
		parsed, err := footshape.ParseThresholdMode(mode)
		if err != nil {
			return nil, nil, err
		}
		m = parsed
	}

	engine := s.engine
	if threshold != nil {
		if *threshold <= 0 || *threshold > 255 {
			return nil, nil, fmt.Errorf("threshold must be in (0, 255], got %v", *threshold)
		}
		opts := s.cfg.EngineOptions()
		opts.FixedThreshold = *threshold
		engine = footshape.New(opts)
	}

	prepared, err := s.prepare(path, true)
	if err != nil {
		return nil, nil, err
	}
	analysis, err := engine.Analyze(footshape.ImageInput(imaging.ToBuffer(prepared), m))
	if err != nil {
		return nil, nil, err
	}
	return analysis, prepared, nil
}

func alphaThreshold(v *int, def uint8) (uint8, error) {
	if v == nil {
		return def, nil
	}
	if *v < 0 || *v > 254 {
		return 0, fmt.Errorf("alpha_threshold must be between 0 and 254, got %d", *v)
	}
	return uint8(*v), nil
}

// parseNamedLandmarks converts {"heel": {...}, ...} into a LandmarkSet.
func parseNamedLandmarks(points map[string]footshape.Point) (footshape.LandmarkSet, error) {
	set := make(footshape.LandmarkSet, len(points))
	for name, p := range points {
		l, err := footshape.ParseLandmark(name)
		if err != nil {
			return nil, err
		}
		set[l] = p
	}
	return set, nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

type imageLoadResult struct {
	*imaging.ImageInfo
	AnalysisWidth  int `json:"analysis_width"`
	AnalysisHeight int `json:"analysis_height"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	prepared, err := s.prepare(a.Path, false)
	if err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	return &imageLoadResult{
		ImageInfo:      info,
		AnalysisWidth:  prepared.Bounds().Dx(),
		AnalysisHeight: prepared.Bounds().Dy(),
	}, nil
}

// === Foot Analysis Handlers ===

// analysisResult is an Analysis plus the request context it ran in.
// AnalysisID correlates a result with debug log lines.
type analysisResult struct {
	AnalysisID     string `json:"analysis_id"`
	Path           string `json:"path,omitempty"`
	AnalysisWidth  int    `json:"analysis_width,omitempty"`
	AnalysisHeight int    `json:"analysis_height,omitempty"`
	*footshape.Analysis
}

func (s *Server) newAnalysisResult(path string, img *image.NRGBA, a *footshape.Analysis) *analysisResult {
	r := &analysisResult{
		AnalysisID: uuid.New().String(),
		Path:       path,
		Analysis:   a,
	}
	if img != nil {
		r.AnalysisWidth = img.Bounds().Dx()
		r.AnalysisHeight = img.Bounds().Dy()
	}
	if s.cfg.Debug() {
		log.Printf("Analysis %s: %s %s, width %s, toe %s", r.AnalysisID, a.Kind, path,
			a.Classification.Width.Label, a.Classification.Toe.Category)
	}
	return r
}

type footAnalyzeImageArgs struct {
	Path      string   `json:"path"`
	Mode      string   `json:"mode"`
	Threshold *float64 `json:"threshold"`
}

func (s *Server) handleFootAnalyzeImage(args json.RawMessage) (interface{}, error) {
	var a footAnalyzeImageArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == modeMask {
		return nil, fmt.Errorf("mode %q is not a threshold mode; use foot_analyze_mask", a.Mode)
	}
	analysis, img, err := s.analyzeFile(a.Path, a.Mode, a.Threshold, nil)
	if err != nil {
		return nil, err
	}
	return s.newAnalysisResult(a.Path, img, analysis), nil
}

type footAnalyzeMaskArgs struct {
	Path           string `json:"path"`
	AlphaThreshold *int   `json:"alpha_threshold"`
}

func (s *Server) handleFootAnalyzeMask(args json.RawMessage) (interface{}, error) {
	var a footAnalyzeMaskArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	analysis, img, err := s.analyzeFile(a.Path, modeMask, nil, a.AlphaThreshold)
	if err != nil {
		return nil, err
	}
	return s.newAnalysisResult(a.Path, img, analysis), nil
}

type footAnalyzeLandmarksArgs struct {
	Points   map[string]footshape.Point `json:"points"`
	Sequence []footshape.Point          `json:"sequence"`
}

func (s *Server) handleFootAnalyzeLandmarks(args json.RawMessage) (interface{}, error) {
	var a footAnalyzeLandmarksArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) > 0 && len(a.Sequence) > 0 {
		return nil, fmt.Errorf("give either points or sequence, not both")
	}

	set := footshape.LandmarksFromSequence(a.Sequence)
	if len(a.Points) > 0 {
		var err error
		if set, err = parseNamedLandmarks(a.Points); err != nil {
			return nil, err
		}
	}

	analysis, err := s.engine.Analyze(footshape.LandmarkInput(set))
	if err != nil {
		return nil, err
	}
	return s.newAnalysisResult("", nil, analysis), nil
}

// === Debug Helper Handlers ===

type footOverlayArgs struct {
	Path     string                     `json:"path"`
	Mode     string                     `json:"mode"`
	ShowMask bool                       `json:"show_mask"`
	Points   map[string]footshape.Point `json:"points"`
}

func (s *Server) handleFootOverlay(args json.RawMessage) (interface{}, error) {
	var a footOverlayArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	points, err := parseNamedLandmarks(a.Points)
	if err != nil {
		return nil, err
	}
	analysis, img, err := s.analyzeFile(a.Path, a.Mode, nil, nil)
	if err != nil {
		return nil, err
	}
	return imaging.Overlay(img, analysis, s.style, imaging.OverlayOptions{
		ShowMask:  a.ShowMask,
		Landmarks: points,
	})
}

type footCropArgs struct {
	Path    string  `json:"path"`
	Mode    string  `json:"mode"`
	Padding *int    `json:"padding"`
	Scale   float64 `json:"scale"`
}

func (s *Server) handleFootCrop(args json.RawMessage) (interface{}, error) {
	var a footCropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	padding := defaultCropPadding
	if a.Padding != nil {
		padding = *a.Padding
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	analysis, img, err := s.analyzeFile(a.Path, a.Mode, nil, nil)
	if err != nil {
		return nil, err
	}
	return imaging.CropToFoot(img, analysis.Segmentation.Box, padding, a.Scale)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.prepare(a.Path, true)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

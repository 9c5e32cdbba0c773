package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

var modeProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"fixed", "adaptive", "mask"},
	"description": "Segmentation mode. fixed and adaptive threshold a photo of a foot on a bright background; mask reads the alpha channel of a cut-out. Defaults to the configured mode.",
}

var pointProperty = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"x": map[string]interface{}{"type": "number"},
		"y": map[string]interface{}{"type": "number"},
	},
	"required": []string{"x", "y"},
}

var landmarkPointsProperty = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"heel":        pointProperty,
		"big_toe":     pointProperty,
		"second_toe":  pointProperty,
		"little_toe":  pointProperty,
		"width_left":  pointProperty,
		"width_right": pointProperty,
	},
	"description": "Landmarks by name, in image pixel coordinates",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has an alpha channel. analysis_width and analysis_height give the size after capture scaling, which is the coordinate space of every foot_* result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Foot Analysis
		{
			Name:        "foot_analyze_image",
			Description: "Segment a foot photo taken from above (toes at the top, foot darker than the background) and return the bounding box, centroid, toe-shape profile, width/toe/balance classification and football boot advice.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"fixed", "adaptive"},
						"description": "fixed compares brightness against a constant threshold (default 230); adaptive uses 0.9 times the mean brightness",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Optional fixed brightness threshold (0-255] overriding the configured value",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "foot_analyze_mask",
			Description: "Analyse an externally produced foot mask. Pixels whose alpha is above the threshold are foot.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"alpha_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Optional alpha threshold 0-254 (default 128)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "foot_analyze_landmarks",
			Description: "Classify a foot from six manually placed landmarks: heel, big_toe, second_toe, little_toe, width_left, width_right. Give either points (by name) or sequence (in that order).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": landmarkPointsProperty,
					"sequence": map[string]interface{}{
						"type":        "array",
						"items":       pointProperty,
						"description": "Points in tap order: heel, big toe, second toe, little toe, width left, width right",
					},
				},
			},
		},

		// Debug Helpers
		{
			Name:        "foot_overlay",
			Description: "Render the analysis on top of the image as a base64 PNG: bounding box, toe-slice dividers, centroid ring, optional mask tint and landmark dots.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"mode": modeProperty,
					"show_mask": map[string]interface{}{
						"type":        "boolean",
						"description": "Tint the detected foot pixels",
						"default":     false,
					},
					"points": landmarkPointsProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "foot_crop",
			Description: "Crop the detected foot region, plus padding, and return it as a base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"mode": modeProperty,
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels added around the bounding box (default 10)",
						"default":     10,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color and (R+G+B)/3 brightness at a pixel of the capture-scaled image. Use it to pick a segmentation threshold.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

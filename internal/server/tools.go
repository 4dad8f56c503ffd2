package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema of the image path argument shared by most tools.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// cropProperty returns the schema of a crop rectangle argument.
func cropProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x":      map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
			"y":      map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
			"width":  map[string]interface{}{"type": "integer", "description": "Crop width in pixels"},
			"height": map[string]interface{}{"type": "integer", "description": "Crop height in pixels"},
		},
		"required": []string{"x", "y", "width", "height"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and alpha. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file after EXIF orientation is applied.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Heuristics
		{
			Name:        "image_sample_heuristics",
			Description: "Evaluate the per-pixel crop heuristics at one point: luma (detail proxy), HSL saturation and skin-tone likelihood. Skin is null for pure black pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_importance",
			Description: "Compute the importance weight of a pixel relative to a crop. Pixels outside the crop weigh -0.5; inside, weight peaks near the center and the rule-of-thirds lines and drops sharply at the edges.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"crop": cropProperty("Crop rectangle the weight is relative to"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Pixel X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Pixel Y coordinate (0-based)",
					},
					"rule_of_thirds": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply the rule-of-thirds boost (defaults to the server configuration)",
					},
				},
				"required": []string{"crop", "x", "y"},
			},
		},
		{
			Name:        "image_importance_map",
			Description: "Render the importance weights of a crop over a canvas as a base64 PNG: red where pixels are penalized, green where they are boosted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"crop": cropProperty("Crop rectangle to visualize"),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas width, at most 16384 (defaults to the crop's right edge)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas height, at most 16384 (defaults to the crop's bottom edge)",
					},
				},
				"required": []string{"crop"},
			},
		},

		// Crop Search
		{
			Name:        "image_score_crop",
			Description: "Score one crop of an image. Returns the detail, skin and saturation sums and the area-normalized total used to rank crops.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Crop width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Crop height in pixels",
					},
				},
				"required": []string{"path", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "image_find_crops",
			Description: "Search an image for crops with the aspect ratio of width x height and return the best ones, highest total first, in source image coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width. The aspect ratio shapes the candidate crops; the size also sets the analysis resolution, which can change scores and ranking",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height. The aspect ratio shapes the candidate crops; the size also sets the analysis resolution, which can change scores and ranking",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of crops to return (negative for all)",
						"default":     5,
					},
				},
				"required": []string{"path", "width", "height"},
			},
		},
		{
			Name:        "image_smart_crop",
			Description: "Find the best crop for width x height and return it as a base64-encoded PNG resized to that size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Output width in pixels (at most 16384)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Output height in pixels (at most 16384)",
					},
					"keep_original_size": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the crop at source resolution instead of resizing it",
						"default":     false,
					},
				},
				"required": []string{"path", "width", "height"},
			},
		},

		// Visualization
		{
			Name:        "image_analysis_map",
			Description: "Return the feature map the crop search scores as a base64 PNG: red is skin, green is detail and blue is saturation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop_overlay",
			Description: "Draw the best crops for width x height on the image and return it as a base64 PNG. The best crop is drawn in the given color, runners-up dimmed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width. The aspect ratio shapes the crops; the size also sets the analysis resolution",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height. The aspect ratio shapes the crops; the size also sets the analysis resolution",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of crops to draw",
						"default":     3,
					},
					"show_thirds": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the rule-of-thirds lines of the best crop",
						"default":     false,
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as #RRGGBB",
						"default":     "#00FF00",
					},
				},
				"required": []string{"path", "width", "height"},
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

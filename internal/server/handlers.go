package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/smartcrop-mcp/internal/imaging"
	"github.com/ironsheep/smartcrop-mcp/internal/scoring"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_smart_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.safeExecuteTool(ctx, params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			s.logger.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the analyzer, scoring or imaging function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Heuristics
	case "image_sample_heuristics":
		return s.handleImageSampleHeuristics(args)
	case "image_importance":
		return s.handleImageImportance(args)
	case "image_importance_map":
		return s.handleImageImportanceMap(args)

	// Crop Search
	case "image_score_crop":
		return s.handleImageScoreCrop(args)
	case "image_find_crops":
		return s.handleImageFindCrops(ctx, args)
	case "image_smart_crop":
		return s.handleImageSmartCrop(ctx, args)

	// Visualization
	case "image_analysis_map":
		return s.handleImageAnalysisMap(args)
	case "image_crop_overlay":
		return s.handleImageCropOverlay(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// safeExecuteTool runs executeTool and turns a panic in a tool into an error,
// so one bad call cannot take the server down.
func (s *Server) safeExecuteTool(ctx context.Context, name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("tool %s panicked: %v", name, r)
			result, err = nil, fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()
	return s.executeTool(ctx, name, args)
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments. Missing arguments decode as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Heuristics Handlers ===

type imageSampleHeuristicsArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleHeuristics(args json.RawMessage) (interface{}, error) {
	var a imageSampleHeuristicsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleHeuristics(img, a.X, a.Y, s.heuristics)
}

type imageImportanceArgs struct {
	Crop         scoring.Crop `json:"crop"`
	X            int          `json:"x"`
	Y            int          `json:"y"`
	RuleOfThirds *bool        `json:"rule_of_thirds"`
}

// ImportanceResult is the weight of one pixel relative to a crop.
type ImportanceResult struct {
	Crop       scoring.Crop `json:"crop"`
	X          int          `json:"x"`
	Y          int          `json:"y"`
	Inside     bool         `json:"inside"`
	Importance float64      `json:"importance"`
}

func (s *Server) handleImageImportance(args json.RawMessage) (interface{}, error) {
	var a imageImportanceArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Crop.Empty() {
		return nil, fmt.Errorf("invalid crop %v: width and height must be positive", a.Crop)
	}

	h := s.heuristics
	if a.RuleOfThirds != nil {
		h.RuleOfThirds = *a.RuleOfThirds
	}

	return &ImportanceResult{
		Crop:       a.Crop,
		X:          a.X,
		Y:          a.Y,
		Inside:     a.X >= a.Crop.X && a.X < a.Crop.X+a.Crop.Width && a.Y >= a.Crop.Y && a.Y < a.Crop.Y+a.Crop.Height,
		Importance: h.Importance(a.Crop, a.X, a.Y),
	}, nil
}

type imageImportanceMapArgs struct {
	Crop   scoring.Crop `json:"crop"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
}

func (s *Server) handleImageImportanceMap(args json.RawMessage) (interface{}, error) {
	var a imageImportanceMapArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = a.Crop.X + a.Crop.Width
	}
	if a.Height == 0 {
		a.Height = a.Crop.Y + a.Crop.Height
	}
	return imaging.ImportanceMap(a.Crop, a.Width, a.Height, s.heuristics)
}

// === Crop Search Handlers ===

type imageScoreCropArgs struct {
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageScoreCrop(args json.RawMessage) (interface{}, error) {
	var a imageScoreCropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	crop := scoring.Crop{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	if crop.Empty() {
		return nil, fmt.Errorf("invalid crop %v: width and height must be positive", crop)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	analysis := s.analyzer.Analyze(img)
	return &scoring.ScoredCrop{
		Crop:  crop,
		Score: s.analyzer.ScoreCrop(analysis, crop),
	}, nil
}

type imageFindCropsArgs struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Limit  int    `json:"limit"`
}

// FindCropsResult lists the best crops of an image, best first.
type FindCropsResult struct {
	ImageWidth  int                  `json:"image_width"`
	ImageHeight int                  `json:"image_height"`
	Candidates  int                  `json:"candidates"`
	Crops       []scoring.ScoredCrop `json:"crops"`
}

func (s *Server) handleImageFindCrops(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageFindCropsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Limit == 0 {
		a.Limit = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	crops, err := s.analyzer.FindCrops(ctx, img, a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	res := &FindCropsResult{
		ImageWidth:  b.Dx(),
		ImageHeight: b.Dy(),
		Candidates:  len(crops),
		Crops:       crops,
	}
	if a.Limit > 0 && len(crops) > a.Limit {
		res.Crops = crops[:a.Limit]
	}
	return res, nil
}

type imageSmartCropArgs struct {
	Path         string `json:"path"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	KeepOriginal bool   `json:"keep_original_size"`
}

// SmartCropResult is the best crop of an image and its rendering.
type SmartCropResult struct {
	scoring.ScoredCrop
	Image *imaging.ImageResult `json:"image"`
}

func (s *Server) handleImageSmartCrop(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSmartCropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if !a.KeepOriginal {
		if err := imaging.CheckSize(a.Width, a.Height); err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	best, err := s.analyzer.FindBestCrop(ctx, img, a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	outW, outH := a.Width, a.Height
	if a.KeepOriginal {
		outW, outH = 0, 0
	}
	rendered, err := imaging.RenderCrop(img, best.Crop, outW, outH)
	if err != nil {
		return nil, err
	}
	return &SmartCropResult{ScoredCrop: best, Image: rendered}, nil
}

// === Visualization Handlers ===

func (s *Server) handleImageAnalysisMap(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeAnalysis(s.analyzer.Analyze(img))
}

type imageCropOverlayArgs struct {
	Path       string `json:"path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Count      int    `json:"count"`
	ShowThirds bool   `json:"show_thirds"`
	Color      string `json:"color"`
}

func (s *Server) handleImageCropOverlay(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageCropOverlayArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count <= 0 {
		a.Count = 3
	}
	if a.Color == "" {
		a.Color = "#00FF00"
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	scored, err := s.analyzer.FindCrops(ctx, img, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	if len(scored) > a.Count {
		scored = scored[:a.Count]
	}

	crops := make([]scoring.Crop, len(scored))
	for i, sc := range scored {
		crops[i] = sc.Crop
	}
	return imaging.CropOverlay(img, crops, a.ShowThirds, a.Color)
}

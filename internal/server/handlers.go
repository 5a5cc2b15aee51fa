package server

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/zoolt/imagemanip/internal/csscolor"
	"github.com/zoolt/imagemanip/internal/geometry"
	"github.com/zoolt/imagemanip/internal/imaging"
	"github.com/zoolt/imagemanip/internal/recipe"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "image_manipulate").
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

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", zap.String("tool", params.Name), zap.Error(err))
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Source Information
	case "image_info":
		return s.handleImageInfo(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_colors":
		return s.handleImageSampleColors(args)

	// Planning Helpers
	case "image_fit_preview":
		return s.handleImageFitPreview(args)
	case "image_parse_color":
		return s.handleImageParseColor(args)

	// Manipulation
	case "image_manipulate":
		return s.handleImageManipulate(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
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

// === Source Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (a imagePathArgs) validate() error {
	if a.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return s.info.Info(a.Path)
}

// DimensionsResult is returned by image_dimensions.
type DimensionsResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	info, err := s.info.Info(a.Path)
	if err != nil {
		return nil, err
	}
	return DimensionsResult{
		Width:       info.Width,
		Height:      info.Height,
		AspectRatio: float64(info.Width) / float64(info.Height),
	}, nil
}

type imageSampleColorsArgs struct {
	Path   string          `json:"path"`
	Points []imaging.Point `json:"points"`
}

func (s *Server) handleImageSampleColors(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := (imagePathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 {
		return nil, fmt.Errorf("at least one point is required")
	}
	samples, err := imaging.SampleFile(a.Path, a.Points)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"samples": samples}, nil
}

// === Planning Handlers ===

type imageFitPreviewArgs struct {
	Path         string  `json:"path"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Mode         string  `json:"mode"`
	TargetWidth  float64 `json:"target_width"`
	TargetHeight float64 `json:"target_height"`
}

// FitPreviewResult is returned by image_fit_preview.
type FitPreviewResult struct {
	SourceWidth  int             `json:"source_width"`
	SourceHeight int             `json:"source_height"`
	Mode         string          `json:"mode"`
	Layout       geometry.Layout `json:"layout"`
}

func (s *Server) handleImageFitPreview(args json.RawMessage) (interface{}, error) {
	var a imageFitPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == "" {
		a.Mode = geometry.Contain.String()
	}
	mode, err := geometry.ParseFitMode(a.Mode)
	if err != nil {
		return nil, err
	}

	if a.Path != "" {
		info, err := s.info.Info(a.Path)
		if err != nil {
			return nil, err
		}
		a.Width, a.Height = info.Width, info.Height
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("source size must be positive, got %dx%d", a.Width, a.Height)
	}

	return FitPreviewResult{
		SourceWidth:  a.Width,
		SourceHeight: a.Height,
		Mode:         mode.String(),
		Layout:       geometry.Resolve(a.Width, a.Height, a.TargetWidth, a.TargetHeight, mode),
	}, nil
}

type imageParseColorArgs struct {
	Color string `json:"color"`
}

// ColorResult is returned by image_parse_color.
type ColorResult struct {
	R        uint8  `json:"r"`
	G        uint8  `json:"g"`
	B        uint8  `json:"b"`
	A        uint8  `json:"a"`
	Hex      string `json:"hex"`
	HasAlpha bool   `json:"has_alpha"`
}

func (s *Server) handleImageParseColor(args json.RawMessage) (interface{}, error) {
	var a imageParseColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := csscolor.Parse(a.Color)
	if err != nil {
		return nil, err
	}
	return ColorResult{
		R:        c.R,
		G:        c.G,
		B:        c.B,
		A:        c.A,
		Hex:      c.Hex(),
		HasAlpha: c.HasAlpha(),
	}, nil
}

// === Manipulation Handlers ===

// ManipulateResult is returned by image_manipulate.
type ManipulateResult struct {
	Destination string            `json:"destination"`
	Info        imaging.ImageInfo `json:"info"`
}

func (s *Server) handleImageManipulate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(args, &raw); err != nil {
		return nil, err
	}
	r, err := recipe.FromMap(raw)
	if err != nil {
		return nil, err
	}
	if err := r.Run(ctx, s.opts...); err != nil {
		return nil, err
	}

	dest := r.Destination
	if dest == "" {
		dest = r.Source
	}
	info, err := s.info.Info(dest)
	if err != nil {
		return nil, err
	}
	return ManipulateResult{Destination: dest, Info: info}, nil
}

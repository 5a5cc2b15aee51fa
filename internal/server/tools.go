package server

import "github.com/zoolt/imagemanip/internal/geometry"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func fitModes() []string {
	modes := make([]string, len(geometry.Modes))
	for i, m := range geometry.Modes {
		modes[i] = m.String()
	}
	return modes
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source Information
		{
			Name:        "image_info",
			Description: "Read the header of an image file and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		{
			Name:        "image_sample_colors",
			Description: "Read the colors at one or more pixel coordinates. Useful to check padding and background colors of a manipulated image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Coordinates to sample, each {x, y, label}",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},

		// Planning Helpers
		{
			Name:        "image_fit_preview",
			Description: "Compute how a source would be resized by a fit mode without touching any pixels. Returns the rendered size, padding, canvas size and offset.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Image file to read the source size from. Alternative to width and height.",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Source width, used when no path is given",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Source height, used when no path is given",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        fitModes(),
						"description": "Fit mode (default contain)",
						"default":     "contain",
					},
					"target_width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width; 0 derives it from the height",
					},
					"target_height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height; 0 derives it from the width",
					},
				},
				"required": []string{"mode"},
			},
		},
		{
			Name:        "image_parse_color",
			Description: "Resolve a CSS color keyword or a 3, 6 or 8 digit hex color into RGBA components.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Color such as \"lightslategray\", \"0fa\", \"#0033AE\" or \"EE0033AE\"",
					},
				},
				"required": []string{"color"},
			},
		},

		// Manipulation
		{
			Name:        "image_manipulate",
			Description: "Apply a chain of operations to an image and save the result. Returns the output path, format and dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": pathProperty(),
					"destination": map[string]interface{}{
						"type":        "string",
						"description": "Output path; the extension selects the format. Empty overwrites the source.",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Force the output format (jpg, png, gif, bmp, webp, tiff)",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG/WebP quality 0-100 (default 90)",
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Background color for padding",
					},
					"fit": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"mode":   map[string]interface{}{"type": "string", "enum": fitModes()},
							"width":  map[string]interface{}{"type": "integer"},
							"height": map[string]interface{}{"type": "integer"},
						},
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height",
					},
					"steps": map[string]interface{}{
						"type":        "array",
						"description": "Ordered operations, e.g. [{\"blur\": 20}, \"sepia\", {\"flip\": \"horizontal\"}]",
					},
					"optimize": map[string]interface{}{
						"description": "true for the default optimizers, or an object mapping tool names to argument lists",
					},
				},
				"required": []string{"source"},
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

// Package server implements the MCP (Model Context Protocol) server that
// exposes image manipulation as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Source Information:
//   - image_info: Header dimensions, format and file size
//   - image_dimensions: Width, height and aspect ratio
//   - image_sample_colors: Colors at pixel coordinates
//
// Planning Helpers:
//   - image_fit_preview: Resolve a fit mode without touching pixels
//   - image_parse_color: Resolve a CSS color into RGBA
//
// Manipulation:
//   - image_manipulate: Apply a recipe and save the result
//
// image_manipulate takes the same document as a recipe file, so
//
//	{"source": "/in.jpg", "destination": "/out.webp", "width": 400,
//	 "steps": [{"blur": 20}, "sepia"]}
//
// behaves exactly like the equivalent YAML recipe.
//
// # Header Caching
//
// Image headers are cached by path, modification time and size, so repeated
// lookups of an unchanged file skip the decoder. Pixel data is never cached.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server

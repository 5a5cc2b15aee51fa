// Package imaging is the raster layer of the pipeline.
//
// It decodes and encodes files, implements the pixel primitives the engine
// dispatches to (resample, crop, rotate, mirror, gamma and the tone and
// convolution filters), composites onto background canvases, and tracks
// raster ownership. Everything here works with standard Go image.Image types
// and uses a coordinate system where (0,0) is the top-left corner.
//
// # Ownership
//
// A pipeline run creates one Arena. Decoded and derived rasters are adopted
// into it as Handles; an operation that produces a new raster replaces the
// current handle, retiring the previous one exactly once. Using or releasing
// a retired handle returns ErrReleased.
//
// # Formats
//
// Decoding supports JPEG, PNG, GIF, BMP, WebP and TIFF. The decoder is
// chosen by extension first and by content sniffing otherwise. Encoding
// supports the same set; WebP is encoded lossy with the requested quality.
//
// # Filters
//
// The filters reproduce the classic GD semantics:
//   - brightness adds a constant in [-255, 255] to each channel
//   - contrast in [-100, 100], where negative values increase contrast
//   - colorize adds a per-channel constant
//   - pixelate averages blocks of the given size
//   - gaussian-blur and smooth are 3x3 normalized convolutions
//
// # Inspection
//
// InfoCache answers size and format questions from file headers alone.
// SampleColors reads individual pixels, which is how padding and background
// colors of a result are checked.
//
// # Thread Safety
//
// InfoCache is safe for concurrent use. Arena and Handle are owned by a
// single run and must not be shared. The primitives are stateless and never
// modify their input.
package imaging

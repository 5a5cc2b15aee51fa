package manip

import (
	"fmt"

	"github.com/zoolt/imagemanip/internal/csscolor"
	"github.com/zoolt/imagemanip/internal/geometry"
)

// FitMode is re-exported from geometry so callers only need this package.
type FitMode = geometry.FitMode

const (
	FitContain = geometry.Contain
	FitMax     = geometry.Max
	FitFill    = geometry.Fill
	FitStretch = geometry.Stretch
	FitCrop    = geometry.Crop
)

// FlipAxis selects the mirror direction of a Flip.
type FlipAxis int

const (
	FlipHorizontal FlipAxis = iota + 1
	FlipVertical
	FlipBoth
)

func (a FlipAxis) String() string {
	switch a {
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	case FlipBoth:
		return "both"
	}
	return fmt.Sprintf("FlipAxis(%d)", int(a))
}

// Valid reports whether a is one of the three flip directions.
func (a FlipAxis) Valid() bool {
	return a == FlipHorizontal || a == FlipVertical || a == FlipBoth
}

// ParseFlipAxis accepts "horizontal"/"h", "vertical"/"v" and "both".
func ParseFlipAxis(s string) (FlipAxis, error) {
	switch s {
	case "horizontal", "h":
		return FlipHorizontal, nil
	case "vertical", "v":
		return FlipVertical, nil
	case "both":
		return FlipBoth, nil
	}
	return 0, InvalidParameter("flip", s, "horizontal", "vertical", "both")
}

// FilterMethod names a tone or convolution filter of the raster layer.
type FilterMethod string

const (
	FilterBrightness   FilterMethod = "brightness"
	FilterContrast     FilterMethod = "contrast"
	FilterGrayscale    FilterMethod = "grayscale"
	FilterColorize     FilterMethod = "colorize"
	FilterPixelate     FilterMethod = "pixelate"
	FilterGaussianBlur FilterMethod = "gaussian-blur"
	FilterSmooth       FilterMethod = "smooth"
)

// Op is a single manipulation. The set of implementations is closed; the
// engine switches over them exhaustively.
type Op interface {
	Name() string
	isOp()
}

// Scale resamples the raster according to a fit mode. A dimension <= 0 is
// unset and derived from the other.
type Scale struct {
	Mode   FitMode
	Width  float64
	Height float64
}

// Crop cuts a Width x Height rectangle anchored at Gravity.
type Crop struct {
	Width   int
	Height  int
	Gravity string
}

// GravityCenter is the only supported crop anchor.
const GravityCenter = "center"

// Blur is the fast multi-pass blur, expanded by PlanBlur at apply time.
type Blur struct {
	Intensity int
}

// Filter applies Method Iterations times with up to four integer arguments.
type Filter struct {
	Method     FilterMethod
	Args       []int
	Iterations int
}

// Arg returns the i-th argument (0-based) or def when it is absent.
func (f Filter) Arg(i, def int) int {
	if i < len(f.Args) {
		return f.Args[i]
	}
	return def
}

// Gamma applies gamma correction with the given output gamma.
type Gamma struct {
	Value float64
}

// Orientation rotates counter-clockwise by Degrees (90, 180 or 270).
type Orientation struct {
	Degrees int
}

// Flip mirrors the raster along Axis.
type Flip struct {
	Axis FlipAxis
}

// Quality records the encoder quality; it never touches pixels.
type Quality struct {
	Value int
}

// OptimizeOptions maps an optimizer tool name to its argument list. An empty
// map selects the default tool chain.
type OptimizeOptions map[string][]string

// Optimize requests a post-save optimizer pass; it never touches pixels.
type Optimize struct {
	Options OptimizeOptions
}

func (Scale) Name() string       { return "scale" }
func (Crop) Name() string        { return "crop" }
func (Blur) Name() string        { return "blur" }
func (f Filter) Name() string    { return "filter:" + string(f.Method) }
func (Gamma) Name() string       { return "gamma" }
func (Orientation) Name() string { return "orientation" }
func (Flip) Name() string        { return "flip" }
func (Quality) Name() string     { return "quality" }
func (Optimize) Name() string    { return "optimize" }

func (Scale) isOp()       {}
func (Crop) isOp()        {}
func (Blur) isOp()        {}
func (Filter) isOp()      {}
func (Gamma) isOp()       {}
func (Orientation) isOp() {}
func (Flip) isOp()        {}
func (Quality) isOp()     {}
func (Optimize) isOp()    {}

// Chain is an ordered list of operations. Order is significant.
type Chain []Op

// Has reports whether the chain contains an op with the given name.
func (c Chain) Has(name string) bool {
	for _, op := range c {
		if op.Name() == name {
			return true
		}
	}
	return false
}

// Names lists the op names in order, mostly for logging.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, op := range c {
		names[i] = op.Name()
	}
	return names
}

// Plan is the finalized output of a Builder, consumed once by the engine.
type Plan struct {
	Chain      Chain
	Background csscolor.Color
	// Format overrides the output extension when non-empty.
	Format string
}

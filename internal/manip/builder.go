package manip

import (
	"math"
	"strconv"
	"strings"

	"github.com/zoolt/imagemanip/internal/csscolor"
)

// Builder accumulates a validated Chain.
//
// Every method checks its arguments before touching any state; on failure it
// returns an *InvalidManipulationError and the builder is left exactly as it
// was. Width and Height do not append to the chain: they overwrite a single
// pending target which Build turns into one Scale op at the front.
type Builder struct {
	chain Chain

	mode      FitMode
	width     float64
	height    float64
	hasWidth  bool
	hasHeight bool

	background csscolor.Color
	format     string
}

// NewBuilder returns an empty builder with the Contain fit mode and a white
// background.
func NewBuilder() *Builder {
	return &Builder{
		mode:       FitContain,
		background: csscolor.White,
	}
}

// Width sets the pending target width.
func (b *Builder) Width(width int) error {
	if width < 0 {
		return ValueNotInRange("width", width, 0, "inf")
	}
	b.width = float64(width)
	b.hasWidth = true
	return nil
}

// Height sets the pending target height.
func (b *Builder) Height(height int) error {
	if height < 0 {
		return ValueNotInRange("height", height, 0, "inf")
	}
	b.height = float64(height)
	b.hasHeight = true
	return nil
}

// Fit sets the fit mode, then the height, then the width. All three are
// validated before any of them is applied.
func (b *Builder) Fit(mode FitMode, width, height int) error {
	if !mode.Valid() {
		valid := make([]interface{}, 0, 5)
		for _, m := range []FitMode{FitContain, FitMax, FitFill, FitStretch, FitCrop} {
			valid = append(valid, m)
		}
		return InvalidParameter("fit", mode, valid...)
	}
	if height < 0 {
		return ValueNotInRange("height", height, 0, "inf")
	}
	if width < 0 {
		return ValueNotInRange("width", width, 0, "inf")
	}
	b.mode = mode
	b.height, b.hasHeight = float64(height), true
	b.width, b.hasWidth = float64(width), true
	return nil
}

// Crop cuts a centered width x height rectangle.
func (b *Builder) Crop(width, height int) error {
	if width < 0 {
		return ValueNotInRange("crop width", width, 0, "inf")
	}
	if height < 0 {
		return ValueNotInRange("crop height", height, 0, "inf")
	}
	b.chain = append(b.chain, Crop{Width: width, Height: height, Gravity: GravityCenter})
	return nil
}

// Blur appends the fast blur with intensity in [0, 100].
func (b *Builder) Blur(amount int) error {
	if amount < 0 || amount > 100 {
		return ValueNotInRange("blur", amount, 0, 100)
	}
	b.chain = append(b.chain, Blur{Intensity: amount})
	return nil
}

// Pixelate appends a pixelate filter with block size in [0, 100].
func (b *Builder) Pixelate(amount int) error {
	if amount < 0 || amount > 100 {
		return ValueNotInRange("pixelate", amount, 0, 100)
	}
	b.chain = append(b.chain, filter(FilterPixelate, amount))
	return nil
}

// Brightness appends a brightness filter. amount in [-100, 100] is rescaled
// to the filter's [-255, 255] range.
func (b *Builder) Brightness(amount int) error {
	if amount < -100 || amount > 100 {
		return ValueNotInRange("brightness", amount, -100, 100)
	}
	b.chain = append(b.chain, filter(FilterBrightness, int(math.Round(float64(amount*255)/100))))
	return nil
}

// Contrast appends a contrast filter with amount in [-100, 100].
func (b *Builder) Contrast(amount int) error {
	if amount < -100 || amount > 100 {
		return ValueNotInRange("contrast", amount, -100, 100)
	}
	b.chain = append(b.chain, filter(FilterContrast, amount))
	return nil
}

// Greyscale appends a grayscale filter.
func (b *Builder) Greyscale() error {
	b.chain = append(b.chain, filter(FilterGrayscale))
	return nil
}

// Sepia appends grayscale, a slight darkening and a warm colorize.
func (b *Builder) Sepia() error {
	b.chain = append(b.chain,
		filter(FilterGrayscale),
		filter(FilterBrightness, -30),
		filter(FilterColorize, 90, 55, 30),
	)
	return nil
}

// Gamma appends gamma correction with value in [0.1, 9.99].
func (b *Builder) Gamma(value float64) error {
	if math.IsNaN(value) || value < 0.1 || value > 9.99 {
		return ValueNotInRange("gamma", value, 0.1, 9.99)
	}
	b.chain = append(b.chain, Gamma{Value: value})
	return nil
}

// Orientation appends an explicit rotation of 90, 180 or 270 degrees. An
// explicit rotation disables EXIF auto-orientation.
func (b *Builder) Orientation(degrees int) error {
	switch degrees {
	case 90, 180, 270:
	default:
		return InvalidParameter("orientation", degrees, 90, 180, 270)
	}
	b.chain = append(b.chain, Orientation{Degrees: degrees})
	return nil
}

// Flip appends a mirror along axis.
func (b *Builder) Flip(axis FlipAxis) error {
	if !axis.Valid() {
		return InvalidParameter("flip", axis, FlipHorizontal, FlipVertical, FlipBoth)
	}
	b.chain = append(b.chain, Flip{Axis: axis})
	return nil
}

// Background sets the color used for padding and alpha canvases.
func (b *Builder) Background(color string) error {
	c, err := csscolor.Parse(color)
	if err != nil {
		return InvalidParameter("background", color, "css color")
	}
	b.background = c
	return nil
}

// Quality records the encoder quality in [0, 100].
func (b *Builder) Quality(quality int) error {
	if quality < 0 || quality > 100 {
		return ValueNotInRange("quality", quality, 0, 100)
	}
	b.chain = append(b.chain, Quality{Value: quality})
	return nil
}

// Format forces the output format regardless of the destination extension.
// Unsupported formats are reported when saving.
func (b *Builder) Format(format string) error {
	b.format = strings.ToLower(strings.TrimPrefix(format, "."))
	return nil
}

// Optimize requests an optimizer pass after saving.
func (b *Builder) Optimize(options OptimizeOptions) error {
	b.chain = append(b.chain, Optimize{Options: options})
	return nil
}

// Build finalizes the chain. When a target width or height was set a single
// Scale op is placed first so the engine can shrink before anything else.
func (b *Builder) Build() Plan {
	chain := make(Chain, 0, len(b.chain)+1)
	if b.hasWidth || b.hasHeight {
		chain = append(chain, Scale{Mode: b.mode, Width: b.width, Height: b.height})
	}
	chain = append(chain, b.chain...)

	return Plan{
		Chain:      chain,
		Background: b.background,
		Format:     b.format,
	}
}

// ParseOrientation converts a textual orientation into degrees. The literal
// "auto" is rejected: auto-orientation happens implicitly when no explicit
// rotation is requested.
func ParseOrientation(s string) (int, error) {
	degrees, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, InvalidParameter("orientation", s, 90, 180, 270)
	}
	return degrees, nil
}

func filter(method FilterMethod, args ...int) Filter {
	return Filter{Method: method, Args: args, Iterations: 1}
}

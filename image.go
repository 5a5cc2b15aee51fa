package imagemanip

import (
	"bytes"
	"context"
	"image"

	"github.com/zoolt/imagemanip/internal/engine"
	"github.com/zoolt/imagemanip/internal/manip"
)

// Image is a source image plus the operations to apply to it.
//
// Methods return the receiver so calls can be chained. An Image is not safe
// for concurrent use.
type Image struct {
	source  engine.Source
	builder *manip.Builder
	engine  *engine.Engine
	err     error
}

// Load prepares the image at path. The file is not read until Save or
// Dimensions.
func Load(path string, opts ...Option) *Image {
	return newImage(engine.Source{Path: path}, opts)
}

// LoadBytes prepares an encoded image held in memory. Its format is
// detected from the content.
func LoadBytes(data []byte, opts ...Option) *Image {
	if data == nil {
		data = []byte{}
	}
	return newImage(engine.Source{Data: data}, opts)
}

func newImage(src engine.Source, opts []Option) *Image {
	return &Image{
		source:  src,
		builder: manip.NewBuilder(),
		engine:  newEngine(opts),
	}
}

// Err returns the first validation error, if any.
func (i *Image) Err() error {
	return i.err
}

func (i *Image) do(fn func(b *manip.Builder) error) *Image {
	if i.err == nil {
		i.err = fn(i.builder)
	}
	return i
}

// Width sets the target width; the height follows the ratio unless set.
func (i *Image) Width(width int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Width(width) })
}

// Height sets the target height; the width follows the ratio unless set.
func (i *Image) Height(height int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Height(height) })
}

// Fit sets the fit mode together with the target box.
func (i *Image) Fit(mode FitMode, width, height int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Fit(mode, width, height) })
}

// Crop cuts a centered width x height rectangle.
func (i *Image) Crop(width, height int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Crop(width, height) })
}

// Blur blurs with an intensity in [0, 100].
func (i *Image) Blur(amount int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Blur(amount) })
}

// Pixelate replaces blocks of amount pixels, in [0, 100], with their average.
func (i *Image) Pixelate(amount int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Pixelate(amount) })
}

// Brightness adjusts brightness by amount in [-100, 100].
func (i *Image) Brightness(amount int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Brightness(amount) })
}

// Contrast adjusts contrast by amount in [-100, 100].
func (i *Image) Contrast(amount int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Contrast(amount) })
}

// Greyscale removes all color.
func (i *Image) Greyscale() *Image {
	return i.do((*manip.Builder).Greyscale)
}

// Sepia applies a warm brownish tone.
func (i *Image) Sepia() *Image {
	return i.do((*manip.Builder).Sepia)
}

// Gamma applies gamma correction with value in [0.1, 9.99].
func (i *Image) Gamma(value float64) *Image {
	return i.do(func(b *manip.Builder) error { return b.Gamma(value) })
}

// Orientation rotates counter-clockwise by 90, 180 or 270 degrees and turns
// off EXIF auto-orientation.
func (i *Image) Orientation(degrees int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Orientation(degrees) })
}

// Flip mirrors the image.
func (i *Image) Flip(axis FlipAxis) *Image {
	return i.do(func(b *manip.Builder) error { return b.Flip(axis) })
}

// Background sets the color used for padding, e.g. "fff", "#0033AE",
// "EE0033AE" or "lightslategray".
func (i *Image) Background(color string) *Image {
	return i.do(func(b *manip.Builder) error { return b.Background(color) })
}

// Quality sets the JPEG and WebP encoder quality in [0, 100].
func (i *Image) Quality(quality int) *Image {
	return i.do(func(b *manip.Builder) error { return b.Quality(quality) })
}

// Format forces the output format regardless of the destination extension.
func (i *Image) Format(format string) *Image {
	return i.do(func(b *manip.Builder) error { return b.Format(format) })
}

// Optimize runs the external optimizers over the saved file.
func (i *Image) Optimize(options OptimizeOptions) *Image {
	return i.do(func(b *manip.Builder) error { return b.Optimize(options) })
}

// Sharpen is accepted for compatibility and does nothing.
func (i *Image) Sharpen(amount int) *Image { return i }

// Watermark is accepted for compatibility and does nothing.
func (i *Image) Watermark(path string) *Image { return i }

// ManualCrop is accepted for compatibility and does nothing.
func (i *Image) ManualCrop(width, height, x, y int) *Image { return i }

// FocalCrop is accepted for compatibility and does nothing.
func (i *Image) FocalCrop(width, height, x, y int) *Image { return i }

// Border is accepted for compatibility and does nothing.
func (i *Image) Border(width int, color string) *Image { return i }

// DevicePixelRatio is accepted for compatibility and does nothing.
func (i *Image) DevicePixelRatio(ratio float64) *Image { return i }

// Dimensions returns the size of the source image, before any operation.
func (i *Image) Dimensions() (width, height int, err error) {
	if i.source.Data != nil {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(i.source.Data))
		if err != nil {
			return 0, 0, manip.InvalidType("<bytes>", err)
		}
		return cfg.Width, cfg.Height, nil
	}
	info, err := sharedInfoCache().Info(i.source.Path)
	if err != nil {
		return 0, 0, err
	}
	return info.Width, info.Height, nil
}

// Save renders the image to dest. An empty dest overwrites the source file.
func (i *Image) Save(dest string) error {
	return i.SaveContext(context.Background(), dest)
}

// SaveContext is Save with a context that can abort rendering between
// operations.
func (i *Image) SaveContext(ctx context.Context, dest string) error {
	if i.err != nil {
		return i.err
	}
	return i.engine.Execute(ctx, i.source, i.builder.Build(), dest)
}

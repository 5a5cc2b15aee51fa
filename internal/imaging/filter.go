package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ErrUnknownFilter is returned by ApplyFilter for an unregistered method.
var ErrUnknownFilter = errors.New("unknown filter")

type filterFunc func(img image.Image, args []int) image.Image

// filters follow the classic GD filter semantics so chains stay comparable
// with images produced by older pipelines.
var filters = map[string]filterFunc{
	"brightness": func(img image.Image, args []int) image.Image {
		return Brightness(img, arg(args, 0, 0))
	},
	"contrast": func(img image.Image, args []int) image.Image {
		return Contrast(img, arg(args, 0, 0))
	},
	"grayscale": func(img image.Image, _ []int) image.Image {
		return imaging.Grayscale(img)
	},
	"colorize": func(img image.Image, args []int) image.Image {
		return Colorize(img, arg(args, 0, 0), arg(args, 1, 0), arg(args, 2, 0))
	},
	"pixelate": func(img image.Image, args []int) image.Image {
		return Pixelate(img, arg(args, 0, 1))
	},
	"gaussian-blur": func(img image.Image, _ []int) image.Image {
		return GaussianBlur(img)
	},
	"smooth": func(img image.Image, args []int) image.Image {
		return Smooth(img, arg(args, 0, 1))
	},
}

// ApplyFilter runs the named filter iterations times (at least once).
func ApplyFilter(img image.Image, method string, args []int, iterations int) (image.Image, error) {
	fn, ok := filters[method]
	if !ok {
		return nil, errors.Wrap(ErrUnknownFilter, method)
	}
	if iterations < 1 {
		iterations = 1
	}
	for i := 0; i < iterations; i++ {
		img = fn(img, args)
	}
	return img, nil
}

// Brightness adds level in [-255, 255] to every color channel.
func Brightness(img image.Image, level int) *image.RGBA {
	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		c.R = clamp(int(c.R) + level)
		c.G = clamp(int(c.G) + level)
		c.B = clamp(int(c.B) + level)
		return c
	})
}

// Contrast changes contrast by level in [-100, 100]. Negative levels
// increase contrast, positive levels flatten the image towards grey.
func Contrast(img image.Image, level int) *image.RGBA {
	factor := math.Pow((100-float64(level))/100, 2)
	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		c.R = clamp(int(math.Round(((float64(c.R)/255-0.5)*factor + 0.5) * 255)))
		c.G = clamp(int(math.Round(((float64(c.G)/255-0.5)*factor + 0.5) * 255)))
		c.B = clamp(int(math.Round(((float64(c.B)/255-0.5)*factor + 0.5) * 255)))
		return c
	})
}

// Colorize adds r, g and b to the respective channels.
func Colorize(img image.Image, r, g, b int) *image.RGBA {
	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		c.R = clamp(int(c.R) + r)
		c.G = clamp(int(c.G) + g)
		c.B = clamp(int(c.B) + b)
		return c
	})
}

// Pixelate replaces each size x size block with a single color. Sizes below
// 2 leave the image unchanged.
func Pixelate(img image.Image, size int) image.Image {
	if size < 2 {
		return img
	}
	b := img.Bounds()
	w := int(math.Ceil(float64(b.Dx()) / float64(size)))
	h := int(math.Ceil(float64(b.Dy()) / float64(size)))
	small := imaging.Resize(img, w, h, imaging.Box)
	return imaging.Resize(small, b.Dx(), b.Dy(), imaging.NearestNeighbor)
}

// GaussianBlur runs one pass of the 3x3 gaussian kernel.
func GaussianBlur(img image.Image) *image.RGBA {
	return convolve(img, []float64{
		1, 2, 1,
		2, 4, 2,
		1, 2, 1,
	})
}

// Smooth runs the 3x3 smoothing kernel whose center carries weight.
func Smooth(img image.Image, weight int) *image.RGBA {
	return convolve(img, []float64{
		1, 1, 1,
		1, float64(weight), 1,
		1, 1, 1,
	})
}

func convolve(img image.Image, values []float64) *image.RGBA {
	k := convolution.NewKernel(3, 3)
	copy(k.Matrix, values)
	return convolution.Convolve(img, k.Normalized(), &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: true})
}

func arg(args []int, i, def int) int {
	if i < len(args) {
		return args[i]
	}
	return def
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

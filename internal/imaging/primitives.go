package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/zoolt/imagemanip/internal/csscolor"
	"github.com/zoolt/imagemanip/internal/geometry"
)

// Resample renders img at the layout's size and places it on the layout's
// canvas. Padding and uncovered areas take the background color; overflow
// is cut evenly.
func Resample(img image.Image, layout geometry.Layout, bg csscolor.Color) *image.NRGBA {
	rendered := imaging.Resize(img, layout.Width, layout.Height, imaging.Lanczos)
	if !layout.NeedsCanvas() && layout.OffsetX == 0 && layout.OffsetY == 0 {
		return rendered
	}
	return Composite(rendered, layout.CanvasWidth, layout.CanvasHeight, layout.OffsetX, layout.OffsetY, bg)
}

// Rotate turns img counter-clockwise by 90, 180 or 270 degrees.
func Rotate(img image.Image, degrees int) (*image.NRGBA, error) {
	switch degrees {
	case 90:
		return imaging.Rotate90(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 270:
		return imaging.Rotate270(img), nil
	}
	return nil, errors.Errorf("unsupported rotation %d", degrees)
}

// Mirror flips img horizontally, vertically, or both.
func Mirror(img image.Image, horizontal, vertical bool) *image.NRGBA {
	out := imaging.Clone(img)
	if horizontal {
		out = imaging.FlipH(out)
	}
	if vertical {
		out = imaging.FlipV(out)
	}
	return out
}

// Gamma applies gamma correction. Values above 1 lighten the image.
func Gamma(img image.Image, gamma float64) *image.NRGBA {
	return imaging.AdjustGamma(img, gamma)
}

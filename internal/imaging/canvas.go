package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/zoolt/imagemanip/internal/csscolor"
)

// Canvas returns a width x height raster filled with bg. A background
// without alpha is painted opaque; one with alpha uses it as the fill
// opacity.
func Canvas(width, height int, bg csscolor.Color) *image.NRGBA {
	return imaging.New(width, height, bg.NRGBA())
}

// Composite draws img onto a fresh canvas at offset (x, y). Parts of img
// outside the canvas are cut; uncovered parts keep the background.
func Composite(img image.Image, width, height, x, y int, bg csscolor.Color) *image.NRGBA {
	return imaging.Overlay(Canvas(width, height, bg), img, image.Pt(x, y), 1.0)
}

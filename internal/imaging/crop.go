package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Crop extracts the region (x1,y1)-(x2,y2) from img. The region must lie
// inside the image bounds and be non-empty.
func Crop(img image.Image, x1, y1, x2, y2 int) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, errors.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, errors.New("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, image.Rect(x1, y1, x2, y2)), nil
}

// CropCenter cuts a width x height rectangle centered on img. A side larger
// than the image is clamped to the image; a zero side is an error.
func CropCenter(img image.Image, width, height int) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if width > bounds.Dx() {
		width = bounds.Dx()
	}
	if height > bounds.Dy() {
		height = bounds.Dy()
	}

	x1 := bounds.Min.X + (bounds.Dx()-width)/2
	y1 := bounds.Min.Y + (bounds.Dy()-height)/2
	return Crop(img, x1, y1, x1+width, y1+height)
}

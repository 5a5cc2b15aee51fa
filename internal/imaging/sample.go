package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point is a pixel coordinate with an optional label echoed in the result.
type Point struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// RGBA holds 8-bit non-premultiplied components; A=255 is opaque.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSL is a color in hue (degrees), saturation and lightness (percent).
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// Sample is the color found at one point.
//
// Components are non-premultiplied, so a half transparent red padding pixel
// reads as R=255 A=128. Hex carries the alpha byte only when the pixel is
// not fully opaque.
type Sample struct {
	Point
	RGBA RGBA   `json:"rgba"`
	Hex  string `json:"hex"`
	HSL  HSL    `json:"hsl"`
}

// SampleColors reads the color at every point, in input order. Any point
// outside the image fails the whole call and no partial result is returned.
func SampleColors(img image.Image, points []Point) ([]Sample, error) {
	bounds := img.Bounds()
	samples := make([]Sample, 0, len(points))
	for _, p := range points {
		if !image.Pt(p.X, p.Y).In(bounds) {
			return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", p.X, p.Y, bounds.Dx(), bounds.Dy())
		}
		samples = append(samples, sampleAt(img, p))
	}
	return samples, nil
}

// SampleFile decodes the image at path and samples it.
func SampleFile(path string, points []Point) ([]Sample, error) {
	img, _, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return SampleColors(img, points)
}

func sampleAt(img image.Image, p Point) Sample {
	c := color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA)

	hex := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	if c.A != 0xff {
		hex += fmt.Sprintf("%02X", c.A)
	}

	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return Sample{
		Point: p,
		RGBA:  RGBA{R: c.R, G: c.G, B: c.B, A: c.A},
		Hex:   hex,
		HSL: HSL{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

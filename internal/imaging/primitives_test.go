package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoolt/imagemanip/internal/csscolor"
	"github.com/zoolt/imagemanip/internal/geometry"
)

var red = color.NRGBA{255, 0, 0, 255}

func TestResample_Contain(t *testing.T) {
	layout := geometry.Resolve(340, 280, 330, 280, geometry.Contain)
	out := Resample(solidImage(340, 280, red), layout, csscolor.White)
	assert.Equal(t, image.Pt(330, 272), out.Bounds().Size())
}

func TestResample_FillPadsWithBackground(t *testing.T) {
	bg := csscolor.MustParse("0000ff")
	layout := geometry.Resolve(340, 280, 200, 200, geometry.Fill)
	out := Resample(solidImage(340, 280, red), layout, bg)

	require.Equal(t, image.Pt(200, 200), out.Bounds().Size())
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, out.NRGBAAt(100, 2), "top padding")
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, out.NRGBAAt(100, 197), "bottom padding")
	assert.Equal(t, red, out.NRGBAAt(100, 100))
}

func TestResample_FillAlphaBackground(t *testing.T) {
	bg := csscolor.Color{R: 0, G: 0, B: 255, A: 128}
	layout := geometry.Resolve(340, 280, 200, 200, geometry.Fill)
	out := Resample(solidImage(340, 280, red), layout, bg)

	assert.Equal(t, color.NRGBA{0, 0, 255, 128}, out.NRGBAAt(100, 2))
}

func TestResample_CropCutsOverflow(t *testing.T) {
	layout := geometry.Resolve(340, 280, 200, 200, geometry.Crop)
	out := Resample(solidImage(340, 280, red), layout, csscolor.MustParse("0000ff"))

	require.Equal(t, image.Pt(200, 200), out.Bounds().Size())
	for _, p := range []image.Point{{0, 0}, {199, 0}, {0, 199}, {199, 199}} {
		assert.Equal(t, red, out.NRGBAAt(p.X, p.Y), "corner %v", p)
	}
}

func TestRotate_CounterClockwise(t *testing.T) {
	img := solidImage(4, 2, color.White)
	img.SetNRGBA(3, 0, red)

	out, err := Rotate(img, 90)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 4), out.Bounds().Size())
	assert.Equal(t, red, out.NRGBAAt(0, 0))

	out, err = Rotate(img, 180)
	require.NoError(t, err)
	assert.Equal(t, red, out.NRGBAAt(0, 1))

	out, err = Rotate(img, 270)
	require.NoError(t, err)
	assert.Equal(t, red, out.NRGBAAt(1, 3))

	_, err = Rotate(img, 45)
	assert.Error(t, err)
}

func TestMirror(t *testing.T) {
	img := solidImage(4, 2, color.White)
	img.SetNRGBA(0, 0, red)

	assert.Equal(t, red, Mirror(img, true, false).NRGBAAt(3, 0))
	assert.Equal(t, red, Mirror(img, false, true).NRGBAAt(0, 1))
	assert.Equal(t, red, Mirror(img, true, true).NRGBAAt(3, 1))
	assert.Equal(t, red, img.NRGBAAt(0, 0), "input must not change")
}

func TestGamma_Identity(t *testing.T) {
	img := solidImage(2, 2, color.NRGBA{100, 150, 200, 255})
	out := Gamma(img, 1.0)
	assert.Equal(t, color.NRGBA{100, 150, 200, 255}, out.NRGBAAt(1, 1))
}

func TestGamma_Lightens(t *testing.T) {
	img := solidImage(2, 2, color.NRGBA{100, 100, 100, 255})
	out := Gamma(img, 2.0)
	assert.Greater(t, out.NRGBAAt(0, 0).R, uint8(100))
}

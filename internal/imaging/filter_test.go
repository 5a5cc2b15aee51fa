package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestBrightness(t *testing.T) {
	img := solidImage(3, 3, color.NRGBA{100, 200, 10, 255})

	assert.Equal(t, color.RGBA{150, 250, 60, 255}, rgbaAt(Brightness(img, 50), 1, 1))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(Brightness(img, 255), 1, 1))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgbaAt(Brightness(img, -255), 1, 1))
}

func TestContrast(t *testing.T) {
	img := solidImage(3, 3, color.NRGBA{100, 200, 50, 255})

	assert.Equal(t, color.RGBA{100, 200, 50, 255}, rgbaAt(Contrast(img, 0), 0, 0), "level 0 is the identity")
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, rgbaAt(Contrast(img, 100), 0, 0), "level 100 flattens to grey")

	more := rgbaAt(Contrast(img, -50), 0, 0)
	assert.Less(t, more.R, uint8(100))
	assert.Greater(t, more.G, uint8(200))
}

func TestColorize(t *testing.T) {
	img := solidImage(2, 2, color.NRGBA{100, 100, 250, 255})
	assert.Equal(t, color.RGBA{190, 155, 255, 255}, rgbaAt(Colorize(img, 90, 55, 30), 0, 0))
}

func TestPixelate(t *testing.T) {
	img := quadrantImage(8, 8)
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})

	out := Pixelate(img, 4)
	assert.Equal(t, image.Pt(8, 8), out.Bounds().Size())

	first := rgbaAt(out, 0, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, first, rgbaAt(out, x, y), "block pixel (%d,%d)", x, y)
		}
	}

	assert.Same(t, image.Image(img), Pixelate(img, 1))
	assert.Same(t, image.Image(img), Pixelate(img, 0))
}

func TestConvolutionKeepsUniformInterior(t *testing.T) {
	img := solidImage(5, 5, color.NRGBA{80, 120, 160, 255})

	assert.Equal(t, color.RGBA{80, 120, 160, 255}, rgbaAt(GaussianBlur(img), 2, 2))
	assert.Equal(t, color.RGBA{80, 120, 160, 255}, rgbaAt(Smooth(img, 8), 2, 2))
}

func TestGaussianBlur_Spreads(t *testing.T) {
	img := solidImage(5, 5, color.Black)
	img.SetNRGBA(2, 2, color.NRGBA{255, 255, 255, 255})

	out := GaussianBlur(img)
	center := rgbaAt(out, 2, 2)
	neighbor := rgbaAt(out, 1, 2)
	assert.Less(t, center.R, uint8(255))
	assert.Greater(t, neighbor.R, uint8(0))
	assert.Equal(t, uint8(0), rgbaAt(out, 0, 0).R)
}

func TestApplyFilter(t *testing.T) {
	img := solidImage(3, 3, color.NRGBA{100, 100, 100, 255})

	out, err := ApplyFilter(img, "brightness", []int{10}, 3)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{130, 130, 130, 255}, rgbaAt(out, 1, 1))

	out, err = ApplyFilter(img, "grayscale", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{100, 100, 100, 255}, rgbaAt(out, 1, 1))

	_, err = ApplyFilter(img, "emboss", nil, 1)
	assert.True(t, errors.Is(err, ErrUnknownFilter))
}

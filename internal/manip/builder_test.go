package manip

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoolt/imagemanip/internal/csscolor"
)

func requireInvalid(t *testing.T, err error, param string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidManipulation), "want ErrInvalidManipulation, got %v", err)

	var inv *InvalidManipulationError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, param, inv.Param)
	assert.NotEmpty(t, inv.Valid)
}

func TestBuilder_RangeValidation(t *testing.T) {
	tests := []struct {
		name  string
		call  func(b *Builder) error
		param string
	}{
		{"blur below", func(b *Builder) error { return b.Blur(-1) }, "blur"},
		{"blur above", func(b *Builder) error { return b.Blur(101) }, "blur"},
		{"pixelate above", func(b *Builder) error { return b.Pixelate(101) }, "pixelate"},
		{"brightness below", func(b *Builder) error { return b.Brightness(-101) }, "brightness"},
		{"brightness above", func(b *Builder) error { return b.Brightness(101) }, "brightness"},
		{"contrast above", func(b *Builder) error { return b.Contrast(101) }, "contrast"},
		{"gamma below", func(b *Builder) error { return b.Gamma(0.09) }, "gamma"},
		{"gamma above", func(b *Builder) error { return b.Gamma(10) }, "gamma"},
		{"negative width", func(b *Builder) error { return b.Width(-1) }, "width"},
		{"negative height", func(b *Builder) error { return b.Height(-5) }, "height"},
		{"negative crop width", func(b *Builder) error { return b.Crop(-1, 10) }, "crop width"},
		{"negative crop height", func(b *Builder) error { return b.Crop(10, -1) }, "crop height"},
		{"orientation 0", func(b *Builder) error { return b.Orientation(0) }, "orientation"},
		{"orientation 45", func(b *Builder) error { return b.Orientation(45) }, "orientation"},
		{"orientation 360", func(b *Builder) error { return b.Orientation(360) }, "orientation"},
		{"flip zero", func(b *Builder) error { return b.Flip(0) }, "flip"},
		{"flip four", func(b *Builder) error { return b.Flip(4) }, "flip"},
		{"fit mode", func(b *Builder) error { return b.Fit("blabla", 500, 300) }, "fit"},
		{"fit negative height", func(b *Builder) error { return b.Fit(FitMax, 10, -1) }, "height"},
		{"background", func(b *Builder) error { return b.Background("invalidcolor") }, "background"},
		{"quality", func(b *Builder) error { return b.Quality(101) }, "quality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			before := b.Build()

			requireInvalid(t, tt.call(b), tt.param)
			assert.Equal(t, before, b.Build(), "builder must be unchanged after a rejected call")
		})
	}
}

func TestBuilder_AcceptsDomainBounds(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Blur(0))
	require.NoError(t, b.Blur(100))
	require.NoError(t, b.Brightness(-100))
	require.NoError(t, b.Contrast(100))
	require.NoError(t, b.Gamma(0.1))
	require.NoError(t, b.Gamma(9.99))
	require.NoError(t, b.Pixelate(0))
	require.NoError(t, b.Orientation(90))
	require.NoError(t, b.Orientation(180))
	require.NoError(t, b.Orientation(270))
	require.NoError(t, b.Flip(FlipBoth))
	require.NoError(t, b.Quality(0))
	require.NoError(t, b.Crop(0, 0))

	assert.Len(t, b.Build().Chain, 13)
}

func TestBuilder_BrightnessRescaled(t *testing.T) {
	tests := map[int]int{100: 255, -100: -255, 50: 128, -30: -77, 0: 0}
	for in, want := range tests {
		b := NewBuilder()
		require.NoError(t, b.Brightness(in))
		chain := b.Build().Chain
		require.Len(t, chain, 1)
		f := chain[0].(Filter)
		assert.Equal(t, FilterBrightness, f.Method)
		assert.Equal(t, want, f.Arg(0, 0), "brightness(%d)", in)
	}
}

func TestBuilder_ScaleSynthesizedFirst(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Blur(10))
	require.NoError(t, b.Width(5))
	require.NoError(t, b.Greyscale())
	require.NoError(t, b.Width(500))

	chain := b.Build().Chain
	require.Len(t, chain, 3)
	assert.Equal(t, Scale{Mode: FitContain, Width: 500}, chain[0])
	assert.Equal(t, "blur", chain[1].Name())
	assert.Equal(t, "filter:grayscale", chain[2].Name())
}

func TestBuilder_NoScaleWithoutTarget(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Greyscale())
	chain := b.Build().Chain
	require.Len(t, chain, 1)
	assert.False(t, chain.Has("scale"))
}

func TestBuilder_Fit(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Fit(FitFill, 200, 100))
	require.NoError(t, b.Height(150))

	chain := b.Build().Chain
	require.Len(t, chain, 1)
	assert.Equal(t, Scale{Mode: FitFill, Width: 200, Height: 150}, chain[0])
}

func TestBuilder_FitZeroSetsBothTargets(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Fit(FitMax, 0, 0))

	chain := b.Build().Chain
	require.Len(t, chain, 1)
	assert.Equal(t, Scale{Mode: FitMax}, chain[0])
}

func TestBuilder_FitRejectedLeavesModeUntouched(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Width(100))
	requireInvalid(t, b.Fit(FitStretch, -1, 100), "width")

	chain := b.Build().Chain
	assert.Equal(t, Scale{Mode: FitContain, Width: 100}, chain[0])
}

func TestBuilder_Sepia(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Sepia())
	assert.Equal(t, Chain{
		Filter{Method: FilterGrayscale, Iterations: 1},
		Filter{Method: FilterBrightness, Args: []int{-30}, Iterations: 1},
		Filter{Method: FilterColorize, Args: []int{90, 55, 30}, Iterations: 1},
	}, b.Build().Chain)
}

func TestBuilder_BackgroundAndFormat(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, csscolor.White, b.Build().Background)

	require.NoError(t, b.Background("#EE0033AE"))
	require.NoError(t, b.Format(".PNG"))

	plan := b.Build()
	assert.Equal(t, csscolor.Color{R: 238, G: 0, B: 51, A: 174}, plan.Background)
	assert.Equal(t, "png", plan.Format)
}

func TestBuilder_MarkersKeepOrder(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Quality(30))
	require.NoError(t, b.Optimize(OptimizeOptions{"jpegoptim": {"--strip-all"}}))
	require.NoError(t, b.Flip(FlipVertical))

	assert.Equal(t, []string{"quality", "optimize", "flip"}, b.Build().Chain.Names())
}

func TestInvalidParameter_Message(t *testing.T) {
	err := NewBuilder().Orientation(45)
	var inv *InvalidManipulationError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "[90 180 270]", inv.Valid)
	assert.Equal(t, "invalid manipulation: `orientation` got `45`, valid values are [90 180 270]", err.Error())
}

func TestParseOrientation(t *testing.T) {
	deg, err := ParseOrientation("90")
	require.NoError(t, err)
	assert.Equal(t, 90, deg)

	_, err = ParseOrientation("auto")
	requireInvalid(t, err, "orientation")

	_, err = ParseOrientation("blabla")
	requireInvalid(t, err, "orientation")
}

func TestParseFlipAxis(t *testing.T) {
	for s, want := range map[string]FlipAxis{"h": FlipHorizontal, "horizontal": FlipHorizontal, "v": FlipVertical, "vertical": FlipVertical, "both": FlipBoth} {
		got, err := ParseFlipAxis(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFlipAxis("diagonal")
	requireInvalid(t, err, "flip")
}

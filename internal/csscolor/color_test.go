package csscolor

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Color
	}{
		{"hex3", "0fa", Color{R: 0, G: 255, B: 170, A: 0}},
		{"hex6", "0033AE", Color{R: 0, G: 51, B: 174, A: 0}},
		{"hex8", "EE0033AE", Color{R: 238, G: 0, B: 51, A: 174}},
		{"css name", "lightslategray", Color{R: 119, G: 136, B: 153, A: 0}},
		{"leading hash", "#ff0000", Color{R: 255}},
		{"hash with name", "#white", Color{R: 255, G: 255, B: 255}},
		{"lowercase hex6", "0033ae", Color{R: 0, G: 51, B: 174}},
		{"blanchedalmond", "blanchedalmond", Color{R: 255, G: 235, B: 205}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	invalid := []string{
		"invalidcolor",
		"",
		"#",
		"12",
		"12345",
		"1234567",
		"ggg",
		"LightSlateGray", // names are case-sensitive
		"zz0000",
	}

	for _, s := range invalid {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			assert.Error(t, err, "Parse(%q) should fail", s)
		})
	}
}

func TestParse_ErrorCarriesStack(t *testing.T) {
	for _, s := range []string{"12345", "ggg"} {
		_, err := Parse(s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid color")

		_, ok := err.(interface{ StackTrace() errors.StackTrace })
		assert.True(t, ok, "Parse(%q) error should carry a stack trace", s)
	}
}

func TestParse_AllNamesResolve(t *testing.T) {
	require.GreaterOrEqual(t, len(names), 140)
	for name := range names {
		_, err := Parse(name)
		assert.NoError(t, err, name)
	}
}

func TestColor_NRGBA(t *testing.T) {
	opaque := Color{R: 10, G: 20, B: 30}
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, opaque.NRGBA())
	assert.False(t, opaque.HasAlpha())

	translucent := Color{R: 10, G: 20, B: 30, A: 128}
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 128}, translucent.NRGBA())
	assert.True(t, translucent.HasAlpha())
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#0033AE", Color{R: 0, G: 51, B: 174}.Hex())
	assert.Equal(t, "#EE0033AE", Color{R: 238, G: 0, B: 51, A: 174}.Hex())
	assert.Equal(t, "#FFFFFF", White.String())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
	assert.Equal(t, White, MustParse("fff"))
}

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoolt/imagemanip/internal/manip"
)

// solidImage returns an opaque width x height image filled with c.
func solidImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writePNG encodes img as PNG into dir/name and returns the path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Format
		ok   bool
	}{
		{"jpg", JPEG, true},
		{".JPEG", JPEG, true},
		{"pjpg", JPEG, true},
		{".png", PNG, true},
		{"gif", GIF, true},
		{"bmp", BMP, true},
		{"webp", WebP, true},
		{"tif", TIFF, true},
		{"tiff", TIFF, true},
		{"xbm", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := FormatFromExtension(tt.ext)
		assert.Equal(t, tt.ok, ok, "ext %q", tt.ext)
		assert.Equal(t, tt.want, got, "ext %q", tt.ext)
	}
}

func TestDecode_Missing(t *testing.T) {
	_, _, err := Decode(filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, manip.ErrFileNotFound))

	var fnf *manip.FileNotFoundError
	require.True(t, errors.As(err, &fnf))
	assert.True(t, fnf.Missing())
}

func TestDecode_InvalidType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text"), 0o644))

	_, _, err := Decode(path)
	require.Error(t, err)

	var fnf *manip.FileNotFoundError
	require.True(t, errors.As(err, &fnf))
	assert.False(t, fnf.Missing())
}

func TestDecode_SniffsMislabelledFile(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "actually-png.jpg", solidImage(6, 4, color.NRGBA{255, 0, 0, 255}))

	img, format, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, PNG, format)
	assert.Equal(t, 6, img.Bounds().Dx())
}

func TestDecode_NoExtension(t *testing.T) {
	path := writePNG(t, t.TempDir(), "upload", solidImage(3, 7, color.White))

	img, format, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, PNG, format)
	assert.Equal(t, 7, img.Bounds().Dy())
}

func TestDecodeBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(5, 5, color.Black)))

	img, format, err := DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, PNG, format)
	assert.Equal(t, 5, img.Bounds().Dx())

	_, _, err = DecodeBytes([]byte("GIF87a but not really"))
	assert.True(t, errors.Is(err, manip.ErrFileNotFound))
}

func TestOutputFormat(t *testing.T) {
	f, err := OutputFormat("", "/tmp/out.webp")
	require.NoError(t, err)
	assert.Equal(t, WebP, f)

	f, err = OutputFormat("png", "/tmp/out.jpg")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	_, err = OutputFormat("xyz", "/tmp/out.jpg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, manip.ErrFileNotFound))
	assert.Contains(t, err.Error(), "xyz")

	_, err = OutputFormat("", "/tmp/no-extension")
	assert.True(t, errors.Is(err, manip.ErrFileNotFound))
}

func TestEncodeFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := solidImage(12, 8, color.NRGBA{0, 128, 255, 255})

	for _, format := range []Format{JPEG, PNG, GIF, BMP, WebP, TIFF} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(dir, "out."+string(format))
			require.NoError(t, EncodeFile(path, src, format, DefaultQuality))

			img, decoded, err := Decode(path)
			require.NoError(t, err)
			assert.Equal(t, format, decoded)
			assert.Equal(t, image.Pt(12, 8), img.Bounds().Size())
		})
	}
}

func TestEncode_QualityAffectsJPEGSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			src.Set(x, y, color.NRGBA{uint8(x * 4), uint8(y * 4), uint8((x * y) % 256), 255})
		}
	}

	var low, high bytes.Buffer
	require.NoError(t, Encode(&low, src, JPEG, 10))
	require.NoError(t, Encode(&high, src, JPEG, 95))
	assert.Less(t, low.Len(), high.Len())
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, solidImage(1, 1, color.White), Format("xbm"), DefaultQuality)
	assert.True(t, errors.Is(err, manip.ErrFileNotFound))
}

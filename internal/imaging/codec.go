package imaging

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	xwebp "golang.org/x/image/webp"

	"github.com/zoolt/imagemanip/internal/manip"
)

// Format identifies a raster encoding. The values match the names returned
// by image.DecodeConfig.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	WebP Format = "webp"
	TIFF Format = "tiff"
)

// DefaultQuality is used for lossy encoders when no quality was requested.
const DefaultQuality = 90

var extensions = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"pjpg": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"bmp":  BMP,
	"webp": WebP,
	"tif":  TIFF,
	"tiff": TIFF,
}

var mimeTypes = map[string]Format{
	"image/jpeg": JPEG,
	"image/png":  PNG,
	"image/gif":  GIF,
	"image/bmp":  BMP,
	"image/webp": WebP,
	"image/tiff": TIFF,
}

var decoders = map[Format]func(io.Reader) (image.Image, error){
	JPEG: jpeg.Decode,
	PNG:  png.Decode,
	GIF:  gif.Decode,
	BMP:  bmp.Decode,
	WebP: xwebp.Decode,
	TIFF: tiff.Decode,
}

// FormatFromExtension maps a file extension, with or without the leading
// dot and in any case, to a Format.
func FormatFromExtension(ext string) (Format, bool) {
	f, ok := extensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return f, ok
}

// FormatFromPath maps the extension of path to a Format.
func FormatFromPath(path string) (Format, bool) {
	return FormatFromExtension(filepath.Ext(path))
}

// SniffFormat detects the format from the leading bytes of data.
func SniffFormat(data []byte) (Format, bool) {
	f, ok := mimeTypes[http.DetectContentType(data)]
	return f, ok
}

// Decode reads and decodes the image at path.
//
// The decoder is chosen from the file extension; when the extension is
// unknown, or the chosen decoder rejects the data, the content is sniffed.
// A missing file yields a FileNotFoundError that reports Missing; a file
// whose type cannot be determined or decoded yields one with an invalid
// type.
func Decode(path string) (image.Image, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", manip.NonExisting(path)
		}
		return nil, "", manip.InvalidType(path, err)
	}

	if format, ok := FormatFromPath(path); ok {
		img, err := decoders[format](bytes.NewReader(data))
		if err == nil {
			return img, format, nil
		}
		if sniffed, ok := SniffFormat(data); !ok || sniffed == format {
			return nil, "", manip.InvalidType(path, errors.Wrapf(err, "decode %s", format))
		}
	}

	return decodeSniffed(path, data)
}

// DecodeBytes decodes an in-memory image, detecting its format from content.
func DecodeBytes(data []byte) (image.Image, Format, error) {
	return decodeSniffed("<bytes>", data)
}

func decodeSniffed(label string, data []byte) (image.Image, Format, error) {
	format, ok := SniffFormat(data)
	if !ok {
		return nil, "", manip.InvalidType(label, errors.Errorf("unrecognized content type %q", http.DetectContentType(data)))
	}
	img, err := decoders[format](bytes.NewReader(data))
	if err != nil {
		return nil, "", manip.InvalidType(label, errors.Wrapf(err, "decode %s", format))
	}
	return img, format, nil
}

// OutputFormat resolves the encoder for an explicit format name, or for the
// extension of dest when name is empty.
func OutputFormat(name, dest string) (Format, error) {
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(dest), ".")
	}
	f, ok := FormatFromExtension(name)
	if !ok {
		return "", manip.NoRenderer(strings.ToLower(name))
	}
	return f, nil
}

// Encode writes img to w. quality in [0, 100] applies to JPEG and WebP;
// callers without a preference pass DefaultQuality. PNG is written with the
// best compression level.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	switch format {
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case PNG:
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	case GIF:
		return imaging.Encode(w, img, imaging.GIF)
	case BMP:
		return imaging.Encode(w, img, imaging.BMP)
	case TIFF:
		return imaging.Encode(w, img, imaging.TIFF)
	case WebP:
		return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	}
	return manip.NoRenderer(string(format))
}

// EncodeFile encodes img into a new file at path, replacing any existing
// file.
func EncodeFile(path string, img image.Image, format Format, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := Encode(f, img, format, quality); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return errors.Wrap(f.Close(), "close output")
}

// Package orient maps EXIF orientation tags onto explicit rotations.
package orient

import (
	"io"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/zoolt/imagemanip/internal/manip"
)

// Resolve maps an EXIF orientation code read from a file to the rotation
// that puts the image upright. It returns ok=false when no rotation is
// needed (code 1). Mirrored codes (2, 4, 5, 7) and anything else, 0
// included, are rejected.
func Resolve(code int) (op manip.Orientation, ok bool, err error) {
	switch code {
	case 1:
		return manip.Orientation{}, false, nil
	case 3:
		return manip.Orientation{Degrees: 180}, true, nil
	case 6:
		return manip.Orientation{Degrees: 270}, true, nil
	case 8:
		return manip.Orientation{Degrees: 90}, true, nil
	}
	return manip.Orientation{}, false, manip.InvalidParameter("exif rotation", code, 1, 3, 6, 8)
}

// ReadTag extracts the orientation tag from a JPEG stream. present is false
// when the stream has no readable EXIF data or no orientation tag.
func ReadTag(r io.Reader) (code int, present bool) {
	x, err := exif.Decode(r)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return 0, false
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0, false
	}
	code, err = tag.Int(0)
	if err != nil {
		return 0, false
	}
	return code, true
}

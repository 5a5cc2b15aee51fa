package imaging

import (
	"image"

	"github.com/pkg/errors"
)

// ErrReleased is returned when a Handle is used or released after it was
// retired.
var ErrReleased = errors.New("raster handle already released")

// Arena tracks the rasters owned by a single pipeline run.
//
// Every decoded or derived image enters the run through Adopt and leaves it
// through Handle.Release. Live reports how many handles are still held, which
// lets a run assert that each transform retired its input. An Arena is not
// safe for concurrent use; each run creates its own.
type Arena struct {
	live int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Adopt takes ownership of img and returns a live handle for it.
func (a *Arena) Adopt(img image.Image) *Handle {
	a.live++
	return &Handle{arena: a, img: img}
}

// Live returns the number of handles that have not been released.
func (a *Arena) Live() int {
	return a.live
}

// Handle owns one raster inside an Arena.
type Handle struct {
	arena    *Arena
	img      image.Image
	released bool
}

// Image returns the owned raster.
func (h *Handle) Image() (image.Image, error) {
	if h.released {
		return nil, ErrReleased
	}
	return h.img, nil
}

// Size returns the raster dimensions, or 0x0 once released.
func (h *Handle) Size() (width, height int) {
	if h.released {
		return 0, 0
	}
	b := h.img.Bounds()
	return b.Dx(), b.Dy()
}

// Release retires the handle. Releasing twice is an error.
func (h *Handle) Release() error {
	if h.released {
		return ErrReleased
	}
	h.released = true
	h.img = nil
	h.arena.live--
	return nil
}

// Replace adopts img into the same arena and retires h. The returned handle
// is the only one the caller should keep.
func (h *Handle) Replace(img image.Image) (*Handle, error) {
	if h.released {
		return nil, ErrReleased
	}
	next := h.arena.Adopt(img)
	if err := h.Release(); err != nil {
		return nil, err
	}
	return next, nil
}

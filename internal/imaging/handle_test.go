package imaging

import (
	"image"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AdoptAndRelease(t *testing.T) {
	arena := NewArena()
	h := arena.Adopt(image.NewNRGBA(image.Rect(0, 0, 30, 20)))
	assert.Equal(t, 1, arena.Live())

	w, ht := h.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 20, ht)

	require.NoError(t, h.Release())
	assert.Equal(t, 0, arena.Live())

	_, err := h.Image()
	assert.True(t, errors.Is(err, ErrReleased))
	assert.True(t, errors.Is(h.Release(), ErrReleased), "double release must fail")
	assert.Equal(t, 0, arena.Live())
}

func TestHandle_Replace(t *testing.T) {
	arena := NewArena()
	first := arena.Adopt(image.NewNRGBA(image.Rect(0, 0, 10, 10)))

	second, err := first.Replace(image.NewNRGBA(image.Rect(0, 0, 5, 4)))
	require.NoError(t, err)
	assert.Equal(t, 1, arena.Live())

	w, h := second.Size()
	assert.Equal(t, 5, w)
	assert.Equal(t, 4, h)

	_, err = first.Image()
	assert.True(t, errors.Is(err, ErrReleased))

	_, err = first.Replace(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	assert.True(t, errors.Is(err, ErrReleased))
	assert.Equal(t, 1, arena.Live())
}

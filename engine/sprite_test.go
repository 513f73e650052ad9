package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpritesRejectDegenerate(t *testing.T) {
	_, err := NewRectSprite(0, 0, 0, 10, Color{})
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = NewRectSprite(0, 0, 10, -1, Color{})
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = NewCircleSprite(5, 5, 0)
	assert.ErrorIs(t, err, ErrInvalidRadius)
	_, err = NewCursor(0, Color{})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestRectSpriteMoves(t *testing.T) {
	s, err := NewRectSprite(100, 100, 10, 10, Color{255, 0, 0, 255})
	require.NoError(t, err)

	s.Update(InputSnapshot{Keys: [4]uint{KeyLeft: 1, KeyDown: 2}})
	assert.Equal(t, 96, s.X)
	assert.Equal(t, 108, s.Y)

	s.Update(InputSnapshot{Keys: [4]uint{KeyRight: 3, KeyUp: 5}})
	assert.Equal(t, 108, s.X)
	assert.Equal(t, 88, s.Y)
}

func TestRectSpriteCanLeaveBuffer(t *testing.T) {
	s, err := NewRectSprite(0, 0, 4, 4, Color{255, 255, 255, 255})
	require.NoError(t, err)
	s.Update(InputSnapshot{Keys: [4]uint{KeyLeft: 10, KeyUp: 10}})

	fb := NewFrameBuffer(8, 8)
	assert.NotPanics(t, func() { s.Render(fb) })
	assert.Equal(t, make([]byte, len(fb.Pix)), fb.Pix)
}

func TestCircleSpriteRenders(t *testing.T) {
	s, err := NewCircleSprite(8, 8, 4)
	require.NoError(t, err)
	fb := NewFrameBuffer(16, 16)
	s.Render(fb)
	assert.Equal(t, Color{255, 255, 255, 255}, fb.At(8, 8))
	assert.Equal(t, Color{}, fb.At(0, 0))
}

func TestCursorFollowsPointer(t *testing.T) {
	c, err := NewCursor(4, Color{0, 255, 0, 255})
	require.NoError(t, err)
	fb := NewFrameBuffer(16, 16)
	c.Update(InputSnapshot{})
	c.Render(fb)
	assert.Equal(t, make([]byte, len(fb.Pix)), fb.Pix, "hidden until a pointer arrives")

	c.Update(InputSnapshot{PointerX: 10, PointerY: 6, Pointer: true, Keys: [4]uint{9, 9, 9, 9}})
	assert.Equal(t, 10, c.X)
	assert.Equal(t, 6, c.Y)

	c.Render(fb)
	assert.Equal(t, uint8(253), fb.At(8, 4).G)
	assert.Equal(t, uint8(253), fb.At(11, 7).G)
	assert.Equal(t, Color{}, fb.At(12, 8))
}

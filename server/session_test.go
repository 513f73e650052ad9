package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssrarena/engine"
)

func testConfig() Config {
	return Config{
		Width:         8,
		Height:        6,
		TickRate:      200,
		InboundQueue:  2,
		OutboundQueue: 4,
		CORSOrigins:   []string{"*"},
		StaticDir:     ".",
		PreviewWidth:  4,
	}
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)
	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.Equal(t, "idle", s.Snapshot()["state"])

	_, ok := s.LastFrame()
	assert.False(t, ok)
}

func TestNewSessionInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = 0
	_, err := NewSession(cfg)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestSessionOnInputDropsWhenFull(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)

	s.OnInput([]byte{1, 0})
	s.OnInput([]byte{2, 0})
	s.OnInput([]byte{3, 0})

	snap := s.metrics.Snapshot()
	assert.EqualValues(t, 2, snap["inputs_accepted"])
	assert.EqualValues(t, 1, snap["chan_full_discarded"])
}

func TestSessionProducesFramesUntilClosed(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)
	s.Start()

	select {
	case m := <-s.Output().Messages():
		require.Equal(t, engine.MessageFrame, m.Kind)
		require.Len(t, m.Pix, 8*6*4)
		assert.Equal(t, []byte{126, 0, 0, 255}, m.Pix[:4])
	case <-time.After(time.Second):
		t.Fatal("no frame produced")
	}

	s.Close()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("engine still running after close")
	}
	assert.Equal(t, "stopped", s.Snapshot()["state"])
}

func TestSessionLastFrame(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)

	pix := make([]byte, 8*6*4)
	copy(pix[4*9:], []byte{1, 2, 3, 255}) // (1,1)
	s.recordFrame(pix)

	img, ok := s.LastFrame()
	require.True(t, ok)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
	c := img.NRGBAAt(1, 1)
	assert.Equal(t, []uint8{1, 2, 3, 255}, []uint8{c.R, c.G, c.B, c.A})
	assert.EqualValues(t, 1, s.metrics.Snapshot()["frames_written"])
	assert.EqualValues(t, len(pix), s.metrics.Snapshot()["bytes_written"])
}

func TestSessionManager(t *testing.T) {
	m := NewSessionManager()
	a, err := NewSession(testConfig())
	require.NoError(t, err)
	b, err := NewSession(testConfig())
	require.NoError(t, err)
	b.CreatedAt = a.CreatedAt.Add(time.Millisecond)

	m.Add(b)
	m.Add(a)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []*Session{a, b}, m.List())

	got, ok := m.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	m.Remove(a.ID)
	_, ok = m.Get(a.ID)
	assert.False(t, ok)

	m.CloseAll()
	assert.True(t, b.Output().Closed())
}

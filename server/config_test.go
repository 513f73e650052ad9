package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "FRAME_WIDTH", "FRAME_HEIGHT", "TICK_RATE", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.NoError(t, cfg.EngineConfig().Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("FRAME_WIDTH", "320")
	t.Setenv("TICK_RATE", "fast")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg := LoadConfig()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 320, cfg.EngineConfig().Width)
}

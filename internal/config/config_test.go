package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, 2000, DefaultReadLimit())
	assert.Equal(t, 2000, MaxLineLength())
	assert.Equal(t, 256, ChunkLines())
	assert.Equal(t, 10*time.Second, MeasureTimeout())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOUPE_READ_LIMIT", "100")
	t.Setenv("LOUPE_CHUNK_LINES", "32")
	t.Setenv("LOUPE_MEASURE_TIMEOUT_SECS", "3")

	assert.Equal(t, 100, DefaultReadLimit())
	assert.Equal(t, 32, ChunkLines())
	assert.Equal(t, 3*time.Second, MeasureTimeout())
}

func TestInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("LOUPE_READ_LIMIT", "not-a-number")
	t.Setenv("LOUPE_CHUNK_LINES", "-4")

	assert.Equal(t, 2000, DefaultReadLimit())
	assert.Equal(t, 256, ChunkLines())
}

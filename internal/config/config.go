// Package config holds tunables for the file-reading engine.
// All values have sensible defaults and can be overridden through
// LOUPE_* environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultReadLimit returns the default soft cap on returned lines.
// Controlled by the LOUPE_READ_LIMIT environment variable.
func DefaultReadLimit() int {
	return intEnv("LOUPE_READ_LIMIT", 2000)
}

// MaxLineLength returns the per-line character cap applied when
// formatting output. Longer lines are cut with a trailing ellipsis.
func MaxLineLength() int {
	return intEnv("LOUPE_MAX_LINE_CHARS", 2000)
}

// ChunkLines returns the number of lines buffered per chunk by the
// budgeted reader before the chunk is measured.
func ChunkLines() int {
	return intEnv("LOUPE_CHUNK_LINES", 256)
}

// MeasureTimeout returns the bound on a single chunk measurement.
// A token counter that does not answer within this window fails the
// read instead of hanging it.
func MeasureTimeout() time.Duration {
	secs := intEnv("LOUPE_MEASURE_TIMEOUT_SECS", 10)
	return time.Duration(secs) * time.Second
}

func intEnv(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

package lineview

import (
	"fmt"

	"github.com/rand/loupe/internal/config"
)

// ReadSlice returns a contiguous window of lines starting at a 0-based
// offset. Negative offsets clamp to 0. An offset past the end of the
// input produces a soft error result (ReturnedLines == 0, explanatory
// content), not a Go error, so callers inspect one shape for both
// success and failure.
func ReadSlice(text string, offset, limit int) Result {
	records := Parse(text)
	total := len(records)

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = config.DefaultReadLimit()
	}

	if offset >= total {
		return Result{
			Content: fmt.Sprintf(
				"Offset %d is past the end of the file (%d lines). Use an offset below %d.",
				offset, total, total),
			TotalLines: total,
		}
	}

	end := offset + limit
	if end > total {
		end = total
	}
	window := records[offset:end]

	numbers := make([]int, len(window))
	for i, rec := range window {
		numbers[i] = rec.Number
	}

	return Result{
		Content:       formatNumbered(window),
		Ranges:        mergeLineRanges(numbers),
		TotalLines:    total,
		ReturnedLines: len(window),
		Truncated:     end < total,
	}
}

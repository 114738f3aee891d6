package lineview

import (
	"fmt"
	"strings"

	"github.com/rand/loupe/internal/config"
)

// Range is a 1-based inclusive line range.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Result is the shared output of ReadSlice and ReadIndentation.
type Result struct {
	// Content is the line-numbered text. On validation failures it holds
	// a human-readable message instead and ReturnedLines is 0.
	Content string `json:"content"`

	// Ranges lists the returned lines as ordered, disjoint inclusive
	// ranges, merged when contiguous.
	Ranges []Range `json:"included_ranges"`

	TotalLines    int  `json:"total_lines"`
	ReturnedLines int  `json:"returned_lines"`
	Truncated     bool `json:"was_truncated"`
}

// NextOffset returns the 0-based offset a caller should pass to continue
// reading after this result, or -1 when nothing was returned. A line
// number is one past its own offset, so the offset of the line after the
// last included one equals that line's number.
func (r Result) NextOffset() int {
	if len(r.Ranges) == 0 {
		return -1
	}
	return r.Ranges[len(r.Ranges)-1].End
}

// formatNumbered renders records with right-aligned 1-based line numbers
// and a " | " separator. Width follows the largest included line number.
// Individual lines longer than the configured cap are cut with an
// ellipsis.
func formatNumbered(records []LineRecord) string {
	if len(records) == 0 {
		return ""
	}
	width := len(fmt.Sprintf("%d", records[len(records)-1].Number))
	maxLen := config.MaxLineLength()

	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		content := rec.Content
		if len(content) > maxLen {
			content = content[:maxLen] + "..."
		}
		fmt.Fprintf(&b, "%*d | %s", width, rec.Number, content)
	}
	return b.String()
}

// mergeLineRanges collapses an ascending list of line numbers into
// inclusive ranges, merging consecutive numbers.
func mergeLineRanges(numbers []int) []Range {
	if len(numbers) == 0 {
		return nil
	}
	ranges := []Range{{Start: numbers[0], End: numbers[0]}}
	for _, n := range numbers[1:] {
		last := &ranges[len(ranges)-1]
		if n == last.End+1 {
			last.End = n
			continue
		}
		ranges = append(ranges, Range{Start: n, End: n})
	}
	return ranges
}

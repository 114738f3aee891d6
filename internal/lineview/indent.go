package lineview

import (
	"fmt"

	"github.com/rand/loupe/internal/config"
)

// IndentOptions controls ReadIndentation.
type IndentOptions struct {
	// AnchorLine is the 1-based line the expansion grows around.
	AnchorLine int

	// MaxLevels is how many indent units the window may rise above the
	// anchor's effective indent. 0 means unlimited (the floor is indent 0).
	MaxLevels int

	// IncludeSiblings admits additional blocks at the floor indent instead
	// of stopping after the first one per direction.
	IncludeSiblings bool

	// IncludeHeader lets comment lines at the floor indent bypass the
	// sibling rule. Applies to upward expansion only: headers and license
	// banners sit above code, not below.
	IncludeHeader bool

	// Limit is the soft cap on returned lines. 0 uses the configured
	// default.
	Limit int

	// MaxLines, when set, is a hard cap applied on top of Limit.
	MaxLines int
}

// ReadIndentation returns a syntactically coherent window around the
// anchor line, grown in both directions until it would cross below the
// floor indent. Out-of-range anchors produce a soft error result, not a
// Go error, mirroring ReadSlice.
func ReadIndentation(text string, opts IndentOptions) Result {
	records := Parse(text)
	total := len(records)

	if opts.AnchorLine < 1 || opts.AnchorLine > total {
		return Result{
			Content: fmt.Sprintf(
				"Anchor line %d is out of range: the file has %d lines.",
				opts.AnchorLine, total),
			TotalLines: total,
		}
	}

	effective := EffectiveIndents(records)
	anchorIdx := opts.AnchorLine - 1
	anchorIndent := effective[anchorIdx]

	minIndent := 0
	if opts.MaxLevels > 0 {
		minIndent = anchorIndent - opts.MaxLevels
		if minIndent < 0 {
			minIndent = 0
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = config.DefaultReadLimit()
	}
	if opts.MaxLines > 0 && opts.MaxLines < limit {
		limit = opts.MaxLines
	}
	if limit > total {
		limit = total
	}

	if limit == 1 {
		window := records[anchorIdx : anchorIdx+1]
		return Result{
			Content:       formatNumbered(window),
			Ranges:        []Range{{Start: opts.AnchorLine, End: opts.AnchorLine}},
			TotalLines:    total,
			ReturnedLines: 1,
			Truncated:     total > 1,
		}
	}

	// Bidirectional expansion: two cursors and two floor counters, all
	// local to this call. lo..hi is the admitted window (inclusive).
	lo, hi := anchorIdx, anchorIdx
	up, down := anchorIdx-1, anchorIdx+1
	upLive, downLive := up >= 0, down < total
	upFloorSeen, downFloorSeen := false, false
	size := 1

	admitUp := func() {
		lo = up
		up--
		size++
		if up < 0 {
			upLive = false
		}
	}
	admitDown := func() {
		hi = down
		down++
		size++
		if down >= total {
			downLive = false
		}
	}

	for size < limit && (upLive || downLive) {
		if upLive {
			switch eff := effective[up]; {
			case eff < minIndent:
				upLive = false
			case eff == minIndent && !opts.IncludeSiblings:
				switch {
				case !upFloorSeen:
					upFloorSeen = true
					admitUp()
				case opts.IncludeHeader && isComment(records[up].Content):
					admitUp()
				default:
					upLive = false
				}
			default:
				admitUp()
			}
		}
		if size >= limit {
			break
		}
		if downLive {
			switch eff := effective[down]; {
			case eff < minIndent:
				downLive = false
			case eff == minIndent && !opts.IncludeSiblings:
				if downFloorSeen {
					downLive = false
				} else {
					downFloorSeen = true
					admitDown()
				}
			case eff < anchorIndent && !opts.IncludeSiblings:
				// Below the anchor, a lower-indent line can only open a
				// sibling block, never an enclosing one.
				downLive = false
			default:
				admitDown()
			}
		}
	}

	// Trim blank edges, never past the anchor itself.
	for lo < anchorIdx && records[lo].Blank {
		lo++
	}
	for hi > anchorIdx && records[hi].Blank {
		hi--
	}

	window := records[lo : hi+1]
	numbers := make([]int, len(window))
	for i, rec := range window {
		numbers[i] = rec.Number
	}

	truncated := (size >= limit || upLive || downLive) && len(window) < total

	return Result{
		Content:       formatNumbered(window),
		Ranges:        mergeLineRanges(numbers),
		TotalLines:    total,
		ReturnedLines: len(window),
		Truncated:     truncated,
	}
}

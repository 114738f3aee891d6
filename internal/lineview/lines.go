// Package lineview implements line-oriented views over in-memory text:
// contiguous slices and indentation-scoped blocks grown around an anchor
// line. It is language-agnostic and works purely from indentation; nothing
// here touches the filesystem or keeps state between calls.
package lineview

import "strings"

// tabWidth is the space-equivalent width of a tab when measuring
// indentation. indentUnit is the column count of one indent level.
const (
	tabWidth   = 4
	indentUnit = 4
)

// LineRecord is one physical line of the input.
type LineRecord struct {
	// Number is the 1-based line number.
	Number int

	// Content is the raw line without its trailing newline.
	Content string

	// Indent is the indentation depth in indent units. Tabs count as
	// tabWidth spaces before the column total is floored to units, so
	// mixed tab/space files get one consistent scale.
	Indent int

	// Blank reports whether the line is empty or whitespace-only.
	Blank bool

	// BlockStart reports whether the line looks like it opens a block
	// (ends in ":", "{", "=> {", "then" or "do").
	BlockStart bool
}

// Parse splits text into line records. It splits on "\n" only; callers
// must normalize CRLF input first. Empty input still yields exactly one
// blank record.
func Parse(text string) []LineRecord {
	raw := strings.Split(text, "\n")
	records := make([]LineRecord, len(raw))
	for i, line := range raw {
		records[i] = LineRecord{
			Number:     i + 1,
			Content:    line,
			Indent:     measureIndent(line),
			Blank:      strings.TrimSpace(line) == "",
			BlockStart: isBlockStart(line),
		}
	}
	return records
}

// EffectiveIndents returns the indent level attributed to each record for
// expansion purposes: a line's own indent, or for blank lines the nearest
// preceding non-blank indent (0 when no such line exists).
func EffectiveIndents(records []LineRecord) []int {
	effective := make([]int, len(records))
	previous := 0
	for i, rec := range records {
		if !rec.Blank {
			previous = rec.Indent
		}
		effective[i] = previous
	}
	return effective
}

func measureIndent(line string) int {
	cols := 0
	for _, r := range line {
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += tabWidth
		default:
			return cols / indentUnit
		}
	}
	return cols / indentUnit
}

func isBlockStart(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	if trimmed == "" {
		return false
	}
	switch {
	case strings.HasSuffix(trimmed, ":"),
		strings.HasSuffix(trimmed, "{"):
		return true
	case trimmed == "then" || strings.HasSuffix(trimmed, " then"):
		return true
	case trimmed == "do" || strings.HasSuffix(trimmed, " do"):
		return true
	}
	return false
}

// isComment reports whether a line starts (after indentation) with a
// common comment marker. Used by the header bypass in ReadIndentation.
func isComment(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, prefix := range []string{"#", "//", "/*", "*", "--", ";"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

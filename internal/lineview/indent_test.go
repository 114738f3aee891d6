package lineview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pyClass = `import os

class Foo:
    def a(self):
        x = 1
        return x

    def b(self):
        return 2
`

func TestReadIndentation_EnclosingClassWithoutSiblings(t *testing.T) {
	// Anchor inside a's body: the window climbs to the class header but
	// stops before the sibling method defined after the anchor's method.
	result := ReadIndentation(pyClass, IndentOptions{AnchorLine: 5})

	require.Equal(t, []Range{{Start: 3, End: 6}}, result.Ranges)
	assert.Contains(t, result.Content, "class Foo:")
	assert.Contains(t, result.Content, "return x")
	assert.NotContains(t, result.Content, "def b")
	assert.NotContains(t, result.Content, "import os")
	assert.Equal(t, 4, result.ReturnedLines)
	assert.False(t, result.Truncated)
}

func TestReadIndentation_SiblingsIncluded(t *testing.T) {
	result := ReadIndentation(pyClass, IndentOptions{
		AnchorLine:      5,
		IncludeSiblings: true,
	})

	assert.Contains(t, result.Content, "import os")
	assert.Contains(t, result.Content, "def b")
}

func TestReadIndentation_LimitOne(t *testing.T) {
	result := ReadIndentation(pyClass, IndentOptions{AnchorLine: 5, Limit: 1})

	assert.Equal(t, 1, result.ReturnedLines)
	assert.Equal(t, []Range{{Start: 5, End: 5}}, result.Ranges)
	assert.Contains(t, result.Content, "x = 1")
	assert.True(t, result.Truncated)
}

func TestReadIndentation_UnlimitedLevelsCoversFile(t *testing.T) {
	total := len(Parse(pyClass))
	result := ReadIndentation(pyClass, IndentOptions{
		AnchorLine:      5,
		IncludeSiblings: true,
		Limit:           total,
	})

	// Trailing blank edges are trimmed, but every non-blank line is in.
	require.NotEmpty(t, result.Ranges)
	assert.Equal(t, 1, result.Ranges[0].Start)
	for _, line := range strings.Split(pyClass, "\n") {
		if strings.TrimSpace(line) != "" {
			assert.Contains(t, result.Content, line)
		}
	}
}

func TestReadIndentation_AnchorOutOfRange(t *testing.T) {
	for _, anchor := range []int{0, -1, 99} {
		result := ReadIndentation(pyClass, IndentOptions{AnchorLine: anchor})
		assert.Equal(t, 0, result.ReturnedLines, "anchor %d", anchor)
		assert.Contains(t, result.Content, "out of range")
		assert.False(t, result.Truncated)
	}
}

func TestReadIndentation_MaxLevelsBoundsClimb(t *testing.T) {
	text := `class Foo:
    def a(self):
        x = 1
        y = 2
`
	result := ReadIndentation(text, IndentOptions{AnchorLine: 3, MaxLevels: 1})

	// One level above the anchor reaches the def line but not the class.
	assert.Equal(t, []Range{{Start: 2, End: 4}}, result.Ranges)
	assert.NotContains(t, result.Content, "class Foo:")
}

func TestReadIndentation_OneFloorBlockPerDirection(t *testing.T) {
	text := "a = 1\nb = 2\nc = 3\nd = 4\ne = 5"
	result := ReadIndentation(text, IndentOptions{AnchorLine: 3})

	// One top-level neighbor is admitted in each direction; a block
	// admitted going up does not use up the downward allowance.
	assert.Equal(t, []Range{{Start: 2, End: 4}}, result.Ranges)
}

func TestReadIndentation_HeaderBypassIsUpwardOnly(t *testing.T) {
	text := `import os
// adds things up
func add() {
	return 1
}
// trailing note
x = 1
`
	result := ReadIndentation(text, IndentOptions{
		AnchorLine:    4,
		IncludeHeader: true,
	})

	// Upward: the comment above the function bypasses the one-block
	// rule, but the non-comment import above it does not.
	assert.Contains(t, result.Content, "adds things up")
	assert.NotContains(t, result.Content, "import os")

	// Downward the bypass deliberately does not apply: after the closing
	// brace consumed the downward floor allowance, the trailing comment
	// is excluded even though it is a comment.
	assert.Contains(t, result.Content, "}")
	assert.NotContains(t, result.Content, "trailing note")
	assert.NotContains(t, result.Content, "x = 1")
}

func TestReadIndentation_MaxLinesCap(t *testing.T) {
	result := ReadIndentation(pyClass, IndentOptions{
		AnchorLine:      5,
		IncludeSiblings: true,
		Limit:           100,
		MaxLines:        3,
	})

	assert.Equal(t, 3, result.ReturnedLines)
	assert.True(t, result.Truncated)
}

func TestReadIndentation_BlankEdgesTrimmed(t *testing.T) {
	text := "\nx = 1\n\n"
	result := ReadIndentation(text, IndentOptions{
		AnchorLine:      2,
		IncludeSiblings: true,
	})

	assert.Equal(t, []Range{{Start: 2, End: 2}}, result.Ranges)
	assert.Equal(t, 1, result.ReturnedLines)
}

func TestReadIndentation_BlankAnchorUsesInheritedIndent(t *testing.T) {
	text := `class A:
    def f(self):
        x = 1

        y = 2
class B:
    pass`
	result := ReadIndentation(text, IndentOptions{AnchorLine: 4, MaxLevels: 1})

	// The blank anchor inherits indent 2, so the floor sits at 1 and the
	// window covers the method but neither class header.
	assert.Equal(t, []Range{{Start: 2, End: 5}}, result.Ranges)
	assert.NotContains(t, result.Content, "class A")
	assert.NotContains(t, result.Content, "class B")
}

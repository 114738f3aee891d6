package tools

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"charm.land/fantasy"
	"github.com/rand/loupe/internal/budgetread"
	"github.com/rand/loupe/internal/lineview"
)

const ViewToolName = "view"

//go:embed view.md
var viewDescription []byte

type ViewParams struct {
	Path string `json:"path" description:"Path of the file to read"`
	Mode string `json:"mode,omitempty" description:"Read mode: slice (default), indentation, or budget"`

	// Slice mode
	Offset int `json:"offset,omitempty" description:"0-based line offset to start from (slice mode)"`
	Limit  int `json:"limit,omitempty" description:"Maximum number of lines to return"`

	// Indentation mode
	AnchorLine      int  `json:"anchor_line,omitempty" description:"1-based line to grow the block around (indentation mode)"`
	MaxLevels       int  `json:"max_levels,omitempty" description:"How many indent levels the block may rise above the anchor; 0 = unlimited"`
	IncludeSiblings bool `json:"include_siblings,omitempty" description:"Include additional blocks at the outermost indent"`
	IncludeHeader   bool `json:"include_header,omitempty" description:"Include comment headers above the block"`
	MaxLines        int  `json:"max_lines,omitempty" description:"Hard cap on returned lines"`

	// Budget mode
	BudgetTokens int `json:"budget_tokens,omitempty" description:"Token budget for the read (budget mode)"`
}

// ViewMetadata is attached to responses so the caller can page and build
// truncation notices without re-parsing the content.
type ViewMetadata struct {
	Ranges     []lineview.Range `json:"included_ranges,omitempty"`
	TotalLines int              `json:"total_lines,omitempty"`
	Returned   int              `json:"returned_lines,omitempty"`
	Truncated  bool             `json:"was_truncated,omitempty"`
	NextOffset int              `json:"next_offset,omitempty"`
	TokenCount int              `json:"token_count,omitempty"`
	Complete   bool             `json:"complete,omitempty"`
}

// NewViewTool builds the file-viewing agent tool. Access control and
// binary/image detection are the agent runtime's job; this tool only
// ever sees text files.
func NewViewTool(reader *budgetread.Reader) fantasy.AgentTool {
	return fantasy.NewAgentTool(
		ViewToolName,
		string(viewDescription),
		func(ctx context.Context, params ViewParams, call fantasy.ToolCall) (fantasy.ToolResponse, error) {
			if params.Path == "" {
				return fantasy.NewTextErrorResponse("path is required"), nil
			}

			switch params.Mode {
			case "", "slice", "indentation":
				raw, err := os.ReadFile(params.Path)
				if err != nil {
					return fantasy.NewTextErrorResponse(fmt.Sprintf("cannot read %s: %v", params.Path, err)), nil
				}
				text := strings.ReplaceAll(string(raw), "\r\n", "\n")

				var result lineview.Result
				if params.Mode == "indentation" {
					result = lineview.ReadIndentation(text, lineview.IndentOptions{
						AnchorLine:      params.AnchorLine,
						MaxLevels:       params.MaxLevels,
						IncludeSiblings: params.IncludeSiblings,
						IncludeHeader:   params.IncludeHeader,
						Limit:           params.Limit,
						MaxLines:        params.MaxLines,
					})
				} else {
					result = lineview.ReadSlice(text, params.Offset, params.Limit)
				}

				if result.ReturnedLines == 0 {
					return fantasy.NewTextErrorResponse(result.Content), nil
				}
				output := result.Content
				if result.Truncated {
					output += fmt.Sprintf(
						"\n\n... (showing %d of %d lines; continue from offset %d)",
						result.ReturnedLines, result.TotalLines, result.NextOffset())
				}
				return fantasy.WithResponseMetadata(
					fantasy.NewTextResponse(output),
					ViewMetadata{
						Ranges:     result.Ranges,
						TotalLines: result.TotalLines,
						Returned:   result.ReturnedLines,
						Truncated:  result.Truncated,
						NextOffset: result.NextOffset(),
					},
				), nil

			case "budget":
				if params.BudgetTokens < 0 {
					return fantasy.NewTextErrorResponse("budget_tokens must not be negative"), nil
				}
				result, err := reader.ReadFile(ctx, params.Path, params.BudgetTokens)
				if err != nil {
					return fantasy.NewTextErrorResponse(err.Error()), nil
				}
				output := result.Content
				if !result.Complete {
					output += fmt.Sprintf(
						"\n\n... (%d lines, ~%d tokens; file has more content)",
						result.LineCount, result.TokenCount)
				}
				return fantasy.WithResponseMetadata(
					fantasy.NewTextResponse(output),
					ViewMetadata{
						TotalLines: result.LineCount,
						Returned:   result.LineCount,
						TokenCount: result.TokenCount,
						Complete:   result.Complete,
					},
				), nil

			default:
				return fantasy.NewTextErrorResponse(
					fmt.Sprintf("unknown mode %q: use slice, indentation, or budget", params.Mode)), nil
			}
		})
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rand/loupe/internal/budgetread"
	"github.com/rand/loupe/internal/lineview"
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Read a file as a slice, an indentation block, or under a token budget",
	Example: `
# First 40 lines, numbered
loupe view main.go --limit 40

# Continue from where the last read stopped
loupe view main.go --offset 40 --limit 40

# The code block around line 120, with its enclosing headers
loupe view main.go --anchor 120

# Only one level above the anchor, siblings included
loupe view main.go --anchor 120 --max-levels 1 --siblings

# As much of the file as fits in 2000 tokens
loupe view big.log --budget 2000
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		anchor, _ := cmd.Flags().GetInt("anchor")
		budget, _ := cmd.Flags().GetInt("budget")
		offset, _ := cmd.Flags().GetInt("offset")
		limit, _ := cmd.Flags().GetInt("limit")
		maxLevels, _ := cmd.Flags().GetInt("max-levels")
		maxLines, _ := cmd.Flags().GetInt("max-lines")
		siblings, _ := cmd.Flags().GetBool("siblings")
		header, _ := cmd.Flags().GetBool("header")

		// Cancel on SIGINT or SIGTERM
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
		defer cancel()

		if budget > 0 {
			counter, err := budgetread.TiktokenCounter()
			if err != nil {
				slog.Warn("tokenizer unavailable, using character estimate", "error", err)
				counter = budgetread.EstimateCounter
			}
			reader := budgetread.New(budgetread.Options{Counter: counter})
			result, err := reader.ReadFile(ctx, path, budget)
			if err != nil {
				return err
			}
			fmt.Println(result.Content)
			if !result.Complete {
				fmt.Fprintf(os.Stderr, "-- %d lines, ~%d tokens; file has more content --\n",
					result.LineCount, result.TokenCount)
			}
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text := strings.ReplaceAll(string(raw), "\r\n", "\n")

		var result lineview.Result
		if anchor > 0 {
			result = lineview.ReadIndentation(text, lineview.IndentOptions{
				AnchorLine:      anchor,
				MaxLevels:       maxLevels,
				IncludeSiblings: siblings,
				IncludeHeader:   header,
				Limit:           limit,
				MaxLines:        maxLines,
			})
		} else {
			result = lineview.ReadSlice(text, offset, limit)
		}

		if result.ReturnedLines == 0 {
			return fmt.Errorf("%s", result.Content)
		}
		fmt.Println(result.Content)
		if result.Truncated {
			fmt.Fprintf(os.Stderr, "-- showing %d of %d lines; continue with --offset %d --\n",
				result.ReturnedLines, result.TotalLines, result.NextOffset())
		}
		return nil
	},
}

func init() {
	viewCmd.Flags().Int("offset", 0, "0-based line offset to start from")
	viewCmd.Flags().Int("limit", 0, "Maximum lines to return (0 = default)")
	viewCmd.Flags().Int("anchor", 0, "Read the indentation block around this 1-based line")
	viewCmd.Flags().Int("max-levels", 0, "Indent levels the block may rise above the anchor (0 = unlimited)")
	viewCmd.Flags().Int("max-lines", 0, "Hard cap on returned lines")
	viewCmd.Flags().Bool("siblings", false, "Include sibling blocks at the outermost indent")
	viewCmd.Flags().Bool("header", false, "Include comment headers above the block")
	viewCmd.Flags().Int("budget", 0, "Read as many lines as fit this many tokens")

	rootCmd.AddCommand(viewCmd)
}

package budgetread

import (
	"context"
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// TiktokenCounter returns a Counter backed by the cl100k_base encoding,
// a close-enough approximation for all current providers.
func TiktokenCounter() (Counter, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("tiktoken: get encoding: %w", err)
	}
	return func(_ context.Context, text string) (int, error) {
		return len(enc.Encode(text, nil, nil)), nil
	}, nil
}

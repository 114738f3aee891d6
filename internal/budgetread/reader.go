package budgetread

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rand/loupe/internal/config"
)

// ErrMeasureTimeout is returned when the token counter does not answer
// within the configured bound. The read fails instead of hanging on a
// stuck tokenizer.
var ErrMeasureTimeout = errors.New("budgetread: token measurement timed out")

// maxLineBytes bounds a single scanned line.
const maxLineBytes = 10 * 1024 * 1024

// Result is the outcome of a budgeted read. Content is raw text with no
// line numbers; callers add their own presentation.
type Result struct {
	Content    string `json:"content"`
	TokenCount int    `json:"token_count"`
	LineCount  int    `json:"line_count"`

	// Complete is false iff the source has more lines than were returned.
	Complete bool `json:"complete"`
}

// Options configures a Reader. Zero values fall back to the package
// defaults from internal/config.
type Options struct {
	// ChunkLines is how many lines are buffered before a measurement.
	ChunkLines int

	// Counter measures chunk text. Defaults to EstimateCounter.
	Counter Counter

	// MeasureTimeout bounds a single measurement.
	MeasureTimeout time.Duration

	Logger *slog.Logger
}

// Reader performs single-pass, early-exiting budgeted reads. A Reader is
// stateless between calls and safe for concurrent use.
type Reader struct {
	chunkLines int
	counter    Counter
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a Reader, filling defaults for unset options.
func New(opts Options) *Reader {
	if opts.ChunkLines <= 0 {
		opts.ChunkLines = config.ChunkLines()
	}
	if opts.Counter == nil {
		opts.Counter = EstimateCounter
	}
	if opts.MeasureTimeout <= 0 {
		opts.MeasureTimeout = config.MeasureTimeout()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Reader{
		chunkLines: opts.ChunkLines,
		counter:    opts.Counter,
		timeout:    opts.MeasureTimeout,
		logger:     opts.Logger,
	}
}

// ReadFile opens path and reads as many whole lines as fit the budget.
// A missing file is the one genuine error path; budget and tokenizer
// conditions all surface through the Result.
func (r *Reader) ReadFile(ctx context.Context, path string, budget int) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("budgetread: open %s: %w", path, err)
	}
	defer f.Close()
	return r.Read(ctx, f, budget)
}

// state of the streaming read loop.
type state int

const (
	stateAccumulating state = iota
	stateChunkReady
	stateMeasuring
	stateBisecting
	stateDone
)

// Read streams src line by line under the budget. Line intake pauses
// while a chunk is being measured; once a chunk overflows, no further
// input is consumed.
func (r *Reader) Read(ctx context.Context, src io.Reader, budget int) (Result, error) {
	if budget <= 0 {
		return Result{}, nil
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		committed  []string
		buf        []string
		tokens     int
		complete   bool
		finalChunk bool
		st         = stateAccumulating
		chunks     int
	)

	for st != stateDone {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		switch st {
		case stateAccumulating:
			if len(buf) >= r.chunkLines {
				st = stateChunkReady
				break
			}
			if scanner.Scan() {
				buf = append(buf, scanner.Text())
				break
			}
			if err := scanner.Err(); err != nil {
				return Result{}, fmt.Errorf("budgetread: read: %w", err)
			}
			if len(buf) == 0 {
				complete = true
				st = stateDone
				break
			}
			// Flush the trailing partial chunk through the same path.
			finalChunk = true
			st = stateChunkReady

		case stateChunkReady:
			st = stateMeasuring

		case stateMeasuring:
			chunks++
			n, err := r.measure(ctx, strings.Join(buf, "\n"))
			if err != nil {
				return Result{}, err
			}
			if tokens+n > budget {
				st = stateBisecting
				break
			}
			committed = append(committed, buf...)
			tokens += n
			buf = buf[:0]
			if finalChunk {
				complete = true
				st = stateDone
			} else {
				st = stateAccumulating
			}

		case stateBisecting:
			admit, admitTokens, err := r.bisect(ctx, buf, budget-tokens)
			if err != nil {
				return Result{}, err
			}
			committed = append(committed, buf[:admit]...)
			tokens += admitTokens
			complete = false
			st = stateDone
		}
	}

	r.logger.Debug("budgeted read finished",
		"lines", len(committed), "tokens", tokens, "chunks", chunks, "complete", complete)

	return Result{
		Content:    strings.Join(committed, "\n"),
		TokenCount: tokens,
		LineCount:  len(committed),
		Complete:   complete,
	}, nil
}

// bisect finds the longest prefix of lines whose measured cost fits in
// remaining, returning the admitted line count and its cost. Zero lines
// fit when even the first line is over budget.
func (r *Reader) bisect(ctx context.Context, lines []string, remaining int) (int, int, error) {
	lo, hi := 0, len(lines)
	fit := 0
	for lo < hi {
		mid := (lo + hi + 1) / 2
		n, err := r.measure(ctx, strings.Join(lines[:mid], "\n"))
		if err != nil {
			return 0, 0, err
		}
		if n <= remaining {
			lo = mid
			fit = n
		} else {
			hi = mid - 1
		}
	}
	return lo, fit, nil
}

// measure runs the counter with a bounded wait. Counter errors degrade
// to the character estimate; only a stuck counter or context
// cancellation fail the read.
func (r *Reader) measure(ctx context.Context, text string) (int, error) {
	mctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type measured struct {
		n   int
		err error
	}
	ch := make(chan measured, 1)
	go func() {
		n, err := r.counter(mctx, text)
		ch <- measured{n, err}
	}()

	select {
	case m := <-ch:
		if m.err != nil {
			r.logger.Debug("token counter failed, using character estimate", "error", m.err)
			return estimateTokens(text), nil
		}
		return m.n, nil
	case <-mctx.Done():
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w (after %s)", ErrMeasureTimeout, r.timeout)
	}
}

package synth

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultRecordCount is the number of rows generated when the caller has no preference.
const DefaultRecordCount = 1_000_000

// DefaultOutputPath is where rows go when no path is given.
const DefaultOutputPath = "synthetic_orders.csv"

const (
	writeBufferSize = 1 << 20
	// rows between cancellation checks, CSV flushes and progress reports
	batchSize = 4096
)

// Progress receives row counts as they are written. *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
}

// Result describes a completed generation run. It is only produced once the
// output file has been flushed and closed.
type Result struct {
	Path     string
	Rows     int
	Bytes    int64
	Duration time.Duration
}

type runConfig struct {
	synth    *Synthesizer
	progress Progress
}

// RunOption configures Generate
type RunOption func(*runConfig)

// WithSynthesizer generates rows with s instead of a fresh entropy-seeded synthesizer.
func WithSynthesizer(s *Synthesizer) RunOption {
	return func(c *runConfig) {
		c.synth = s
	}
}

// WithProgress reports written rows to p.
func WithProgress(p Progress) RunOption {
	return func(c *runConfig) {
		c.progress = p
	}
}

// Generate writes a header and count synthetic orders to path, creating or
// truncating it. The file is closed on every return path; a nil error means
// every row reached the file and the handle was closed without error.
func Generate(ctx context.Context, path string, count int, opts ...RunOption) (*Result, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}

	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.synth == nil {
		s, err := NewSynthesizer()
		if err != nil {
			return nil, err
		}
		cfg.synth = s
	}

	start := time.Now()

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenOutput, err)
	}

	cw := &countingWriter{w: f}
	bw := bufio.NewWriterSize(cw, writeBufferSize)

	rows, err := WriteRows(ctx, bw, cfg.synth, count, cfg.progress)
	if err == nil {
		if ferr := bw.Flush(); ferr != nil {
			err = fmt.Errorf("%w: %w", ErrWriteOutput, ferr)
		}
	}

	closeErr := f.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrCloseOutput, closeErr)
	}

	res := &Result{
		Path:     path,
		Rows:     rows,
		Bytes:    cw.n,
		Duration: time.Since(start),
	}

	log.Printf("[SYNTH] Wrote %s rows to %s (%s) in %v",
		humanize.Comma(int64(res.Rows)), res.Path, humanize.Bytes(uint64(res.Bytes)), res.Duration.Round(time.Millisecond))

	return res, nil
}

// WriteRows streams the header and count orders from s to w as CSV and
// returns the number of data rows written. Memory use does not grow with count.
//
// Fields are quoted only when they contain a comma, quote or line break, so
// output from the built-in catalog is never quoted.
func WriteRows(ctx context.Context, w io.Writer, s *Synthesizer, count int, progress Progress) (int, error) {
	out := csv.NewWriter(w)

	if err := out.Write(Header); err != nil {
		return 0, fmt.Errorf("%w: header: %w", ErrWriteOutput, err)
	}

	fields := make([]string, len(Header))
	pending := 0

	flush := func(written int) error {
		out.Flush()
		if err := out.Error(); err != nil {
			return fmt.Errorf("%w: after %d rows: %w", ErrWriteOutput, written, err)
		}
		if progress != nil && pending > 0 {
			_ = progress.Add(pending)
		}
		pending = 0
		return nil
	}

	for i := 0; i < count; i++ {
		if i%batchSize == 0 {
			if i > 0 {
				if err := flush(i); err != nil {
					return i, err
				}
			}
			if err := ctx.Err(); err != nil {
				return i, fmt.Errorf("generation stopped after %d rows: %w", i, err)
			}
		}

		order, err := s.Next()
		if err != nil {
			return i, err
		}

		if err := out.Write(order.Fields(fields)); err != nil {
			return i, fmt.Errorf("%w: row %d: %w", ErrWriteOutput, i+1, err)
		}
		pending++
	}

	if err := flush(count); err != nil {
		return count, err
	}

	return count, nil
}

// countingWriter tracks bytes handed to the file
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

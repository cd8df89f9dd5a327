package scanner

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bitfsorg/tariscan-go/network"
	"github.com/bitfsorg/tariscan-go/transaction"
)

// Result is the outcome of scanning one output of a batch. Payment is nil
// when the output is not ours or Err is set.
type Result struct {
	Index   int
	Payment *RecoveredPayment
	Err     error
}

// Matched reports whether the output was recovered.
func (r Result) Matched() bool {
	return r.Payment != nil
}

// ScanBatch scans every output with km, at most WithWorkers outputs at a
// time. Each output is independent: an invalid output records its error in
// its Result and does not stop the others. When ctx is cancelled no further
// outputs are started; the ones not started carry ctx's error and ScanBatch
// returns it.
func (s *Scanner) ScanBatch(ctx context.Context, outputs []*transaction.TransactionOutput, km KeyMaterial) ([]Result, error) {
	results := make([]Result, len(outputs))
	started := make([]bool, len(outputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, out := range outputs {
		if gctx.Err() != nil {
			break
		}
		started[i] = true
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Index: i, Err: err}
				return err
			}
			p, err := s.Scan(out, km)
			results[i] = Result{Index: i, Payment: p, Err: err}
			if err != nil {
				s.logger.Warn("output skipped", "index", i, "error", err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		for i := range results {
			if !started[i] {
				results[i] = Result{Index: i, Err: err}
			}
		}
		return results, err
	}

	s.logger.Info("batch scanned", "outputs", len(outputs), "matched", countMatched(results))
	return results, nil
}

// ScanSource fetches outputs from src and scans them with ScanBatch.
func (s *Scanner) ScanSource(ctx context.Context, src network.OutputSource, km KeyMaterial) ([]Result, error) {
	outputs, err := src.Outputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanner: fetch outputs: %w", err)
	}
	return s.ScanBatch(ctx, outputs, km)
}

// Matches returns the recovered payments of a batch in output order.
func Matches(results []Result) []*RecoveredPayment {
	var out []*RecoveredPayment
	for _, r := range results {
		if r.Payment != nil {
			out = append(out, r.Payment)
		}
	}
	return out
}

// InvalidInputs returns the results that failed with ErrInvalidInput.
func InvalidInputs(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if errors.Is(r.Err, ErrInvalidInput) {
			out = append(out, r)
		}
	}
	return out
}

func countMatched(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Matched() {
			n++
		}
	}
	return n
}

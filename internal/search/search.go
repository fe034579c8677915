// internal/search/search.go
//
// Best-guess search: evaluate every candidate guess against the current
// candidate solutions and keep the one with the most expected information.
//
// Execution model:
//   - Guesses are dealt round-robin into one batch per worker (guess i goes
//     to batch i mod workers) before any work starts.
//   - Each worker keeps its own best (guess, bits) and shares only an atomic
//     progress counter.
//   - A supervising loop polls that counter every Options.Interval and hands
//     a Progress snapshot to Options.Reporter. Reporting never affects the result.
//   - Per-worker bests are reduced after all workers are joined.
//
// Ties keep the guess that appears first in the guess set, for any worker count.

package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/solver/internal/codec"
	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
)

// ErrNoCandidates is returned when the guess set is empty.
var ErrNoCandidates = errors.New("search: no candidate guesses")

// DefaultInterval is the progress polling interval when Options.Interval is unset.
const DefaultInterval = time.Second

// Evaluation is a guess and its expected information in bits.
type Evaluation struct {
	Guess codec.WordID
	Bits  float64
}

// Options tunes a search.
type Options struct {
	Workers  int           // goroutines to use; values below 1 mean 1
	Interval time.Duration // progress polling interval
	Reporter Reporter      // optional progress sink

	// Context cancels the search early; nil means context.Background.
	Context context.Context
}

// best is a worker's running maximum. pos is the guess's index in the guess set.
type best struct {
	Evaluation
	pos int
	ok  bool
}

// offer replaces b when e is strictly better, or equal but earlier.
func (b *best) offer(e Evaluation, pos int) {
	if !b.ok || e.Bits > b.Bits || (e.Bits == b.Bits && pos < b.pos) {
		*b = best{Evaluation: e, pos: pos, ok: true}
	}
}

// BestGuess returns the guess in guesses with the highest expected information
// over solutions. solutions must not be empty.
func BestGuess(sc candidates.Scorer, solutions, guesses candidates.Set, opts Options) (Evaluation, error) {
	if len(guesses) == 0 {
		return Evaluation{}, ErrNoCandidates
	}
	if len(solutions) == 0 {
		return Evaluation{}, fmt.Errorf("search: %w", entropy.ErrEmptySet)
	}
	workers := max(opts.Workers, 1)

	batches := make([][]int, workers)
	for i := range guesses {
		batches[i%workers] = append(batches[i%workers], i)
	}

	var done atomic.Int64
	locals := make([]best, workers)
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	g, ctx := errgroup.WithContext(parent)
	for w := range workers {
		g.Go(func() error {
			var local best
			for _, pos := range batches[w] {
				if ctx.Err() != nil {
					return nil
				}
				bits, err := entropy.ExpectedInformation(sc, guesses[pos], solutions)
				if err != nil {
					return fmt.Errorf("evaluate %s: %w", guesses[pos], err)
				}
				local.offer(Evaluation{Guess: guesses[pos], Bits: bits}, pos)
				done.Add(1)
			}
			locals[w] = local
			return nil
		})
	}

	if err := supervise(g, &done, len(guesses), opts); err != nil {
		return Evaluation{}, err
	}
	if err := parent.Err(); err != nil {
		return Evaluation{}, fmt.Errorf("search: %w", err)
	}

	var result best
	for _, l := range locals {
		if l.ok {
			result.offer(l.Evaluation, l.pos)
		}
	}
	return result.Evaluation, nil
}

// supervise waits for g, polling done for progress reports while it runs.
func supervise(g *errgroup.Group, done *atomic.Int64, total int, opts Options) error {
	if opts.Reporter == nil {
		return g.Wait()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	finished := make(chan error, 1)
	go func() { finished <- g.Wait() }()

	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case err := <-finished:
			if err == nil {
				opts.Reporter.Report(snapshot(int(done.Load()), total, time.Since(start)))
			}
			return err
		case <-ticker.C:
			opts.Reporter.Report(snapshot(int(done.Load()), total, time.Since(start)))
		}
	}
}

package search

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Progress is a point-in-time view of a running search.
type Progress struct {
	Done      int
	Total     int
	Elapsed   time.Duration
	Estimated time.Duration // linear extrapolation of the total duration
	Remaining time.Duration
}

// Fraction is Done/Total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Done) / float64(p.Total)
}

func snapshot(done, total int, elapsed time.Duration) Progress {
	p := Progress{Done: done, Total: total, Elapsed: elapsed}
	if done > 0 {
		p.Estimated = time.Duration(float64(elapsed) / p.Fraction())
		p.Remaining = p.Estimated - elapsed
	}
	return p
}

// Reporter receives progress snapshots from the supervising loop.
type Reporter interface {
	Report(Progress)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Progress)

// Report calls f.
func (f ReporterFunc) Report(p Progress) { f(p) }

// LogReporter writes one log line per snapshot.
func LogReporter(logger zerolog.Logger) Reporter {
	return ReporterFunc(func(p Progress) {
		logger.Info().
			Str("done", fmt.Sprintf("%.1f%%", p.Fraction()*100)).
			Int("evaluated", p.Done).
			Int("total", p.Total).
			Dur("elapsed", p.Elapsed).
			Dur("estimated", p.Estimated).
			Dur("remaining", p.Remaining).
			Msg("search progress")
	})
}

// BarReporter draws a terminal progress bar on w.
type BarReporter struct {
	bar         *progressbar.ProgressBar
	description string
}

// NewBarReporter sizes a bar for total guesses.
func NewBarReporter(w io.Writer, total int, description string) *BarReporter {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
	return &BarReporter{bar: bar, description: description}
}

// Report moves the bar to p.Done and shows the remaining-time estimate.
func (b *BarReporter) Report(p Progress) {
	if p.Done > 0 && p.Done < p.Total {
		b.bar.Describe(fmt.Sprintf("%s (%s left)", b.description, p.Remaining.Round(time.Second)))
	}
	_ = b.bar.Set(p.Done)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// listLimit caps how many remaining candidates -best prints.
const listLimit = 20

// errFlagParse marks errors the flag package has already reported.
var errFlagParse = errors.New("flag parse")

type cliOptions struct {
	build   string // word list to score
	out     string // table file written by -build
	best    bool
	observe []candidates.Constraint
	pool    string // "vocabulary" or "candidates"
	guesses string // explicit comma-separated guess pool; overrides pool
}

// flagExitCode reports a parseFlags error on stderr and picks the exit status:
// 0 for -h, 2 otherwise.
func flagExitCode(err error, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if !errors.Is(err, errFlagParse) {
		fmt.Fprintf(stderr, "solver: %v\n", err)
	}
	return 2
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions
	var observe string
	fs := flag.NewFlagSet("solver", flag.ContinueOnError)
	fs.StringVar(&opts.build, "build", "", "score the word list at `path` and write a table (requires -out)")
	fs.StringVar(&opts.out, "out", "", "table file written by -build")
	fs.BoolVar(&opts.best, "best", false, "print the best next guess and exit")
	fs.StringVar(&observe, "observe", "", "comma-separated guess:OUTCOME pairs applied before -best, e.g. tares:WMWWC")
	fs.StringVar(&opts.pool, "pool", "vocabulary", "guess pool for -best: vocabulary or candidates")
	fs.StringVar(&opts.guesses, "guesses", "", "comma-separated guess pool for -best; overrides -pool")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %w", errFlagParse, err)
	}

	if opts.build != "" && opts.out == "" {
		return opts, errors.New("-build requires -out")
	}
	if opts.pool != "vocabulary" && opts.pool != "candidates" {
		return opts, fmt.Errorf("-pool must be vocabulary or candidates, got %q", opts.pool)
	}
	for _, part := range strings.Split(observe, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := candidates.ParseConstraint(part)
		if err != nil {
			return opts, err
		}
		opts.observe = append(opts.observe, c)
	}
	return opts, nil
}

// runBuild scores opts.build and writes the table to opts.out.
func runBuild(opts cliOptions, cfg config.Config, progress io.Writer) error {
	list, err := words.ReadWordFile(opts.build)
	if err != nil {
		return err
	}
	if list.Skipped > 0 {
		log.Warn().Int("skipped", list.Skipped).Str("path", opts.build).Msg("word list has invalid lines")
	}

	bar := progressbar.NewOptions(len(list.Words),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("scoring"),
		progressbar.OptionShowCount(),
	)
	tbl, err := table.Build(list.Words, cfg.SearchWorkers, func() { _ = bar.Add(1) })
	if err != nil {
		return err
	}
	_ = bar.Finish()

	if err := tbl.WriteFile(opts.out); err != nil {
		return err
	}
	log.Info().Str("out", opts.out).Int("words", tbl.Len()).Str("fingerprint", tbl.Fingerprint()).Msg("wrote score table")
	return nil
}

// runBest prints the best guess after applying opts.observe.
func runBest(opts cliOptions, cfg config.Config, out, progress io.Writer) error {
	tbl, err := loadTable(cfg)
	if err != nil {
		return err
	}
	remaining, err := candidates.Apply(tbl, tbl.Vocabulary(), opts.observe...)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return errors.New("no candidates are consistent with the observations")
	}

	var pool candidates.Set
	switch {
	case opts.guesses != "":
		if pool, err = candidates.OfWords(tbl, opts.guesses); err != nil {
			return err
		}
		if len(pool) == 0 {
			return errors.New("-guesses names no words")
		}
	case opts.pool == "candidates":
		pool = remaining
	default:
		pool = tbl.Vocabulary()
	}

	best, err := search.BestGuess(tbl, remaining, pool, search.Options{
		Workers:  cfg.SearchWorkers,
		Interval: cfg.ProgressInterval,
		Reporter: search.NewBarReporter(progress, len(pool), "best guess"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "best guess: %s (%.4f bits, %d candidates)\n", best.Guess, best.Bits, len(remaining))
	if remaining.Contains(best.Guess) {
		fmt.Fprintln(out, "the guess is a possible answer")
	}
	if len(remaining) <= listLimit {
		fmt.Fprintf(out, "candidates: %s\n", strings.Join(remaining.Words(), " "))
	}
	return nil
}

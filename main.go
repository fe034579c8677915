// main.go
//
// Entry point for the Wordle entropy solver.
//
// Modes (see cli.go):
//   - default: serve the session API over HTTP.
//   - -build:  score a word list and write a table file.
//   - -best:   one-shot best-guess search from the command line.
//
// The score table comes from SCORE_TABLE_PATH when set; otherwise it is built
// in memory from WORDS_FILE, or from the embedded word list.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg)

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(flagExitCode(err, os.Stderr))
	}

	switch {
	case opts.build != "":
		err = runBuild(opts, cfg, os.Stderr)
	case opts.best:
		err = runBest(opts, cfg, os.Stdout, os.Stderr)
	default:
		err = serve(cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("solver exited")
	}
}

// setupLogging applies LOG_LEVEL and LOG_FORMAT to the global logger.
func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// loadTable resolves the score table source in priority order.
func loadTable(cfg config.Config) (*table.Table, error) {
	if cfg.ScoreTablePath != "" {
		tbl, err := table.LoadFile(cfg.ScoreTablePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.ScoreTablePath).Int("words", tbl.Len()).Str("fingerprint", tbl.Fingerprint()).Msg("loaded score table")
		return tbl, nil
	}

	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		return nil, fmt.Errorf("load word list: %w", err)
	}
	if list.Skipped > 0 {
		log.Warn().Int("skipped", list.Skipped).Msg("word list has invalid lines")
	}
	tbl, err := table.Build(list.Words, cfg.SearchWorkers, nil)
	if err != nil {
		return nil, err
	}
	log.Info().Int("words", tbl.Len()).Str("fingerprint", tbl.Fingerprint()).Msg("built score table")
	return tbl, nil
}

// openStore picks the SQLite store when DB_PATH is set, else the memory store.
func openStore(cfg config.Config) (store.Store, func(), error) {
	if cfg.DBPath == "" {
		return store.NewMemoryStore(), func() {}, nil
	}
	db, err := openDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.Info().Str("path", cfg.DBPath).Msg("using sqlite session store")
	return store.NewSQLStore(db), func() { _ = db.Close() }, nil
}

func serve(cfg config.Config) error {
	tbl, err := loadTable(cfg)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := httpserver.New(cfg, tbl, st)
	log.Info().Str("port", cfg.Port).Int("workers", cfg.SearchWorkers).Msg("starting solver")
	return srv.Start(":" + cfg.Port)
}

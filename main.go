package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/quordle/apps/go-solver/assets"
	"github.com/robalobadob/quordle/apps/go-solver/internal/config"
	"github.com/robalobadob/quordle/apps/go-solver/internal/storage"
	"github.com/robalobadob/quordle/apps/go-solver/internal/words"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Config is loaded once before any
// subcommand runs and shared through cfg.
func newRootCmd() *cobra.Command {
	cfg := config.Default()
	root := &cobra.Command{
		Use:           "quordle-solver",
		Short:         "Suggests words for the four boards of a Quordle game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			setupLogging(cfg)
			return nil
		},
	}
	root.AddCommand(
		newServeCmd(&cfg),
		newSuggestCmd(&cfg),
		newImportWordsCmd(&cfg),
	)
	return root
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openers returns the configured opening words, falling back to the
// embedded list.
func openers(cfg config.Config) []string {
	if len(cfg.Openers) > 0 {
		return cfg.Openers
	}
	ws, err := assets.Openers()
	if err != nil {
		log.Warn().Err(err).Msg("read embedded openers")
		return nil
	}
	return ws
}

// loadVocabulary picks the first configured source: WORDS_DB, WORDS_URL,
// WORDS_FILE, then the embedded list.
func loadVocabulary(ctx context.Context, cfg config.Config) (*words.Vocabulary, error) {
	opt := words.WithWordLength(cfg.WordLength)
	switch {
	case cfg.WordsDB != "":
		db, err := storage.Open(cfg.WordsDB)
		if err != nil {
			return nil, &words.LoadError{Source: "sqlite", Err: err}
		}
		defer db.Close()
		if err := storage.Migrate(ctx, db); err != nil {
			return nil, &words.LoadError{Source: "sqlite", Err: err}
		}
		return words.Load(ctx, words.SQL(db), opt)
	case cfg.WordsURL != "":
		return words.Load(ctx, words.URL(cfg.WordsURL, nil), opt)
	case cfg.WordsFile != "":
		return words.Load(ctx, words.File(cfg.WordsFile), opt)
	}
	return words.Load(ctx, words.Embedded(), opt)
}

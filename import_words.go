package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/quordle/apps/go-solver/internal/config"
	"github.com/robalobadob/quordle/apps/go-solver/internal/storage"
	"github.com/robalobadob/quordle/apps/go-solver/internal/words"
)

func newImportWordsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-words FILE",
		Short: "Replace the word table of the SQLite database with FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, _ := cmd.Flags().GetString("db")
			if dsn == "" {
				dsn = cfg.WordsDB
			}
			if dsn == "" {
				return fmt.Errorf("import-words: no database; set WORDS_DB or --db")
			}

			vocab, err := words.Load(cmd.Context(), words.File(args[0]), words.WithWordLength(cfg.WordLength))
			if err != nil {
				return err
			}

			db, err := storage.Open(dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := storage.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			n, err := words.Replace(cmd.Context(), db, vocab.Words())
			if err != nil {
				return err
			}
			log.Info().Str("db", dsn).Int("words", n).Msg("word list imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d words into %s\n", n, dsn)
			return nil
		},
	}
	cmd.Flags().String("db", "", "SQLite database path (overrides WORDS_DB)")
	return cmd
}

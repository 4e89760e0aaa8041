package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/quordle/apps/go-solver/internal/board"
	"github.com/robalobadob/quordle/apps/go-solver/internal/config"
	"github.com/robalobadob/quordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/quordle/apps/go-solver/internal/solver"
)

func newSuggestCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [ROW...]",
		Short: "Suggest words for one board from its feedback rows",
		Long: `Each ROW is a guess and its colours, e.g. crane:xggxg
(g = green, y = yellow, x or . = grey). With no rows an opening word is printed.`,
		Example: "  quordle-solver suggest crane:xggxg trace:xggxg",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			strict, _ := cmd.Flags().GetBool("strict")
			all, _ := cmd.Flags().GetBool("all")

			rows := make([][]feedback.Cell, 0, len(args))
			for _, a := range args {
				row, err := feedback.ParseRow(a)
				if err != nil {
					return err
				}
				rows = append(rows, row)
			}

			vocab, err := loadVocabulary(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			mode := solver.ParseGreyMode(cfg.GreyMode)
			if strict {
				mode = solver.GreyStrict
			}
			if limit <= 0 {
				limit = cfg.SuggestionLimit
			}
			opts := []board.Option{
				board.WithLimit(limit),
				board.WithFilterOptions(solver.Options{Grey: mode}),
			}
			if ws := openers(*cfg); len(ws) > 0 {
				opts = append(opts, board.WithOpeners(ws))
			}
			ev := board.NewEvaluator(vocab, opts...)

			c, blank := feedback.Extract(rows)
			out := cmd.OutOrStdout()
			if all && !blank {
				cands := ev.Candidates(c)
				fmt.Fprintf(out, "%d candidates\n", len(cands))
				fmt.Fprintln(out, strings.Join(cands, "\n"))
				return nil
			}
			res, err := ev.Evaluate(0, c, blank)
			if err != nil {
				return err
			}
			if len(res.Suggestions) == 0 {
				fmt.Fprintln(out, "no candidates")
				return nil
			}
			fmt.Fprintln(out, strings.Join(res.Suggestions, "\n"))
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "Maximum suggestions (defaults to SUGGESTION_LIMIT)")
	cmd.Flags().Bool("strict", false, "Exclude grey-only letters from the whole word")
	cmd.Flags().Bool("all", false, "Print every candidate with a count")
	return cmd
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shodan/internal/ark"
	"shodan/internal/logging"
	"shodan/internal/omdb"
	"shodan/internal/weighting"
)

type lookupOutput struct {
	Metadata weighting.Metadata `json:"metadata"`
	Result   weighting.Result   `json:"result"`
	Verdict  *ark.Verdict       `json:"verdict,omitempty"`
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var format string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "lookup TITLE",
		Short: "Fetch a title from OMDb, score it, and judge it against the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireOMDbKey(); err != nil {
				return err
			}
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "lookup")

			fetcher, err := ctx.newFetcher(cfg)
			if err != nil {
				return err
			}
			movie, err := fetcher.Fetch(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, omdb.ErrNotFound) {
					logger.Info("title not found", logging.String("title", args[0]), logging.Error(err))
				} else {
					logging.ErrorWithContext(logger, "omdb lookup failed", "omdb_lookup_failed",
						logging.String("title", args[0]),
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "check omdb.api_key and network access with 'shodan status'"))
				}
				return fmt.Errorf("lookup %q: %w", args[0], err)
			}
			md := movie.Metadata(format)
			result := engine.Score(md)
			logger.Debug("scored lookup",
				logging.String("title", md.Title),
				logging.String(logging.FieldTier, string(result.Tier)),
				logging.Float64("weight", result.Score))

			out := lookupOutput{Metadata: md, Result: result}
			if result.Tier != weighting.TierShadow {
				err := ctx.withStore(func(store *ark.Store) error {
					verdict, err := ark.Judge(cmd.Context(), store, md.Title, result.Score, cfg.Weighting.PeerTolerance)
					if err != nil {
						return err
					}
					out.Verdict = &verdict
					return nil
				})
				if err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			colorize := shouldColorize(w)
			fmt.Fprintln(w, renderFields("Data retrieved", [][2]string{
				{"Title", md.Title},
				{"Creator", md.Creator},
				{"Year", md.Year},
				{"Origin", md.Country},
				{"Genre", md.Genre},
				{"Awards", md.Awards},
			}))
			printLines(w, resultLines(result, colorize))
			if out.Verdict != nil {
				printLines(w, verdictLines(*out.Verdict, colorize))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", omdb.DefaultFormat, "Format to score the title as")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

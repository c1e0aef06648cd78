package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shodan/internal/weighting"
)

type scoreOutput struct {
	Metadata  weighting.Metadata   `json:"metadata"`
	Result    weighting.Result     `json:"result"`
	Breakdown *weighting.Breakdown `json:"breakdown,omitempty"`
}

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var md weighting.Metadata
	var jsonOutput bool
	var explain bool

	cmd := &cobra.Command{
		Use:   "score TITLE",
		Short: "Score a title from metadata supplied on the command line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			md.Title = strings.TrimSpace(args[0])
			result, breakdown := engine.Explain(md)

			if jsonOutput {
				out := scoreOutput{Metadata: md, Result: result}
				if result.Tier == weighting.TierComputed {
					out.Breakdown = &breakdown
				}
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			colorize := shouldColorize(w)
			fmt.Fprintln(w, md.Title)
			printLines(w, resultLines(result, colorize))
			if explain && result.Tier == weighting.TierComputed {
				fmt.Fprintln(w, renderBreakdown(breakdown))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&md.Creator, "creator", "", "Director, author, or studio")
	flags.StringVar(&md.Year, "year", "", "Release year")
	flags.StringVar(&md.Country, "country", "", "Country of origin")
	flags.StringVar(&md.Format, "format", "", "Physical or digital format (e.g. Blu-Ray)")
	flags.StringVar(&md.Genre, "genre", "", "Genre text")
	flags.StringVar(&md.Plot, "plot", "", "Plot summary")
	flags.StringVar(&md.Actors, "actors", "", "Cast list")
	flags.StringVar(&md.Awards, "awards", "", "Awards summary (e.g. \"Won 2 Oscars. Another 48 wins & 112 nominations.\")")
	flags.BoolVar(&jsonOutput, "json", false, "Output as JSON")
	flags.BoolVar(&explain, "explain", false, "Itemize the computed score")
	return cmd
}

func renderBreakdown(b weighting.Breakdown) string {
	resonance := formatDelta(b.Resonance)
	if len(b.ResonanceMatches) > 0 {
		resonance += " (" + strings.Join(b.ResonanceMatches, ", ")
		if b.ResonanceCapped {
			resonance += "; capped"
		}
		resonance += ")"
	}
	rows := [][]string{
		{"Base", formatDelta(b.Base)},
		{"Durability", formatDelta(b.Durability)},
		{"Creator", formatDelta(b.Creator)},
		{"Performer", formatDelta(b.Performer)},
		{"Resonance", resonance},
		{"Awards", formatDelta(b.Awards)},
		{"Origin", formatDelta(b.Origin)},
		{"Format", formatDelta(b.Format)},
		{"Raw", strings.TrimPrefix(formatDelta(b.Raw), "+")},
	}
	return renderTable("Breakdown", []string{"Component", "Delta"}, rows, []columnAlignment{alignLeft, alignRight})
}

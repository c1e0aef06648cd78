package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"shodan/internal/canon"
	"shodan/internal/config"
	"shodan/internal/textutil"
	"shodan/internal/weighting"
)

func newCanonCommand(ctx *commandContext) *cobra.Command {
	canonCmd := &cobra.Command{
		Use:   "canon",
		Short: "Inspect and scaffold the canon document",
	}

	canonCmd.AddCommand(newCanonCheckCommand(ctx))
	canonCmd.AddCommand(newCanonListCommand(ctx))
	canonCmd.AddCommand(newCanonInitCommand(ctx))

	return canonCmd
}

type canonCheckOutput struct {
	Title string         `json:"title"`
	Key   string         `json:"key"`
	Tier  weighting.Tier `json:"tier"`
	Match string         `json:"override_match"`
	Score *float64       `json:"score,omitempty"`
	Label string         `json:"label,omitempty"`
}

func newCanonCheckCommand(ctx *commandContext) *cobra.Command {
	var year string
	var creator string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check TITLE",
		Short: "Report which canon tier a title resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			registry := engine.Registry()
			title := strings.TrimSpace(args[0])

			out := canonCheckOutput{Title: title, Key: textutil.CanonicalKey(title), Tier: weighting.TierComputed}
			entry, match := registry.ResolveOverride(title, year, creator)
			out.Match = match.String()
			switch match {
			case canon.MatchCorroborated:
				out.Tier = weighting.TierOverride
				out.Score = &entry.Score
			case canon.MatchNone:
				if shadow, ok := registry.LookupShadow(title); ok {
					out.Tier = weighting.TierShadow
					out.Label = shadow.Label
				}
			}

			if jsonOutput {
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Key:   %s\n", out.Key)
			switch out.Tier {
			case weighting.TierOverride:
				fmt.Fprintf(w, "Tier:  %s (%s)\n", out.Tier, formatWeight(*out.Score))
			case weighting.TierShadow:
				fmt.Fprintf(w, "Tier:  %s (%s)\n", out.Tier, out.Label)
			default:
				fmt.Fprintf(w, "Tier:  %s\n", out.Tier)
				if match == canon.MatchRejected {
					fmt.Fprintf(w, "Note:  override %q requires year %q and creator %q\n", entry.Key, entry.RequiredYear, entry.RequiredCreator)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "Release year used for corroboration")
	cmd.Flags().StringVar(&creator, "creator", "", "Creator used for corroboration")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

type canonListOutput struct {
	Stats      canon.Stats            `json:"stats"`
	Creators   []string               `json:"creators"`
	Performers []string               `json:"performers"`
	Overrides  []canon.OverrideEntry  `json:"overrides"`
	Shadows    []canon.ShadowEntry    `json:"shadows"`
	Resonance  []canon.ResonanceEntry `json:"resonance"`
}

func newCanonListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every canon table",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			registry := engine.Registry()
			out := canonListOutput{
				Stats:      registry.Stats(),
				Creators:   registry.Creators().Names(),
				Performers: registry.Performers().Names(),
				Overrides:  registry.Overrides(),
				Shadows:    registry.Shadows(),
				Resonance:  registry.Resonance().Entries(),
			}
			if jsonOutput {
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			if out.Stats == (canon.Stats{}) {
				fmt.Fprintln(w, "Canon is empty; scoring runs on heuristics only")
				return nil
			}

			overrideRows := make([][]string, 0, len(out.Overrides))
			for _, o := range out.Overrides {
				overrideRows = append(overrideRows, []string{o.Key, formatWeight(o.Score), o.RequiredYear, o.RequiredCreator, o.Title})
			}
			fmt.Fprintln(w, renderTable("Overrides", []string{"Key", "Score", "Year", "Creator", "Title"}, overrideRows,
				[]columnAlignment{alignLeft, alignRight}))

			shadowRows := make([][]string, 0, len(out.Shadows))
			for _, s := range out.Shadows {
				shadowRows = append(shadowRows, []string{s.Key, s.Label})
			}
			fmt.Fprintln(w, renderTable("Shadows", []string{"Key", "Label"}, shadowRows, nil))

			resonanceRows := make([][]string, 0, len(out.Resonance))
			for i, r := range out.Resonance {
				resonanceRows = append(resonanceRows, []string{fmt.Sprint(i + 1), r.Keyword, formatDelta(r.Delta)})
			}
			fmt.Fprintln(w, renderTable("Resonance (scan order)", []string{"#", "Keyword", "Delta"}, resonanceRows,
				[]columnAlignment{alignRight, alignLeft, alignRight}))

			fmt.Fprintf(w, "Creators:   %s\n", strings.Join(out.Creators, ", "))
			fmt.Fprintf(w, "Performers: %s\n", strings.Join(out.Performers, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCanonInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the sample canon document",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				target = cfg.Paths.CanonPath
				if target == "" {
					return errors.New("paths.canon_path is empty; pass --path")
				}
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve canon path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("canon document already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check canon path: %w", err)
				}
			}
			if canon.FormatForPath(target) != canon.FormatTOML {
				return errors.New("sample canon is TOML; choose a .toml destination")
			}

			if err := canon.WriteSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample canon to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the canon document")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing canon document")
	return cmd
}

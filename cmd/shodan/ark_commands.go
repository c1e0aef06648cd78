package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"shodan/internal/ark"
	"shodan/internal/logging"
)

func newArkCommand(ctx *commandContext) *cobra.Command {
	arkCmd := &cobra.Command{
		Use:   "ark",
		Short: "Maintain the archive of scored artifacts",
	}

	arkCmd.AddCommand(newArkIngestCommand(ctx))
	arkCmd.AddCommand(newArkInjectCommand(ctx))
	arkCmd.AddCommand(newArkMergeCommand(ctx))
	arkCmd.AddCommand(newArkListCommand(ctx))
	arkCmd.AddCommand(newArkExportCommand(ctx))
	arkCmd.AddCommand(newArkClearCommand(ctx))

	return arkCmd
}

func newArkIngestCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ingest FILE.csv",
		Short: "Score a CSV catalog export and archive every new title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
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

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer file.Close()

			return ctx.withLockedStore(func(store *ark.Store) error {
				start, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				report, err := ark.IngestCSV(cmd.Context(), file, engine, ark.IngestOptions{
					StartIndex: start,
					Workers:    cfg.Weighting.IngestWorkers,
					Format:     strings.TrimSpace(format),
					Logger:     logger,
				})
				if err != nil {
					return err
				}
				merged, err := ark.Merge(cmd.Context(), store, report.Records)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"Ingested %d rows: %d archived, %d already present, %d untitled (run %s)\n",
					report.Rows, len(merged.Inserted), merged.Skipped, report.Skipped, report.RunID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Format for rows without a format column")
	return cmd
}

func newArkInjectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inject",
		Short: "Archive every titled canon override as a manual entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			return ctx.withLockedStore(func(store *ark.Store) error {
				start, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				records := ark.InjectOverrides(engine.Registry(), start)
				merged, err := ark.Merge(cmd.Context(), store, records)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Injected %d manual entries (%d already present)\n", len(merged.Inserted), merged.Skipped)
				return nil
			})
		},
	}
}

func newArkMergeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "merge FILE.json",
		Short: "Merge an exported archive document into the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open archive document: %w", err)
			}
			defer file.Close()
			doc, err := ark.ReadDocument(file)
			if err != nil {
				return err
			}
			if doc.Meta.TotalArtifacts != 0 && doc.Meta.TotalArtifacts != len(doc.Canon) {
				logging.WarnWithContext(logger, "archive document count mismatch", "ark_merge_count_mismatch",
					logging.String("path", args[0]),
					logging.Int("declared", doc.Meta.TotalArtifacts),
					logging.Int("actual", len(doc.Canon)),
					logging.String(logging.FieldImpact, "merging the records actually present"))
			}
			return ctx.withLockedStore(func(store *ark.Store) error {
				merged, err := ark.Merge(cmd.Context(), store, doc.Canon)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Merged %d records (%d already present)\n", len(merged.Inserted), merged.Skipped)
				return nil
			})
		},
	}
}

func newArkListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *ark.Store) error {
				records, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					if records == nil {
						records = []ark.Record{}
					}
					return writeJSON(cmd, records)
				}
				w := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(w, "Archive is empty")
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{rec.ID, rec.Title, rec.Year, formatWeight(rec.Weight), rec.Kind, strings.Join(rec.Tags, ",")})
				}
				fmt.Fprintln(w, renderTable("", []string{"ID", "Title", "Year", "Weight", "Type", "Tags"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newArkExportCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the archive document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			meta := ark.MetaFromConfig(cfg)
			return ctx.withStore(func(store *ark.Store) error {
				target := strings.TrimSpace(output)
				if target == "-" {
					return ark.Export(cmd.Context(), store, cmd.OutOrStdout(), meta)
				}
				if target == "" {
					target = cfg.Ark.ExportPath
				}
				doc, err := ark.WriteFile(cmd.Context(), store, target, meta)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d artifacts to %s\n", doc.Meta.TotalArtifacts, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (\"-\" for stdout; default ark.export_path)")
	return cmd
}

func newArkClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every archived record",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withLockedStore(func(store *ark.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				logging.NewComponentLogger(logger, "ark").Info("archive cleared",
					logging.String("path", store.Path()),
					logging.Int64("removed", removed))
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d records\n", removed)
				return nil
			})
		},
	}
}

package ark

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"shodan/internal/logging"
	"shodan/internal/weighting"
)

// Scorer is the scoring surface ingest depends on.
type Scorer interface {
	Score(md weighting.Metadata) weighting.Result
}

// IngestOptions tunes CSV ingest.
type IngestOptions struct {
	// StartIndex is the first ARCHIVE- index, normally the archive size.
	StartIndex int
	// Workers bounds concurrent scoring. Values below one mean one.
	Workers int
	// Format is used when a row has no format column.
	Format string
	Logger *slog.Logger
}

// IngestReport summarizes one ingest run.
type IngestReport struct {
	RunID   string
	Rows    int
	Skipped int
	Records []Record
}

// column aliases, matched case-insensitively against the header row.
var columnAliases = map[string][]string{
	"title":   {"title"},
	"creator": {"director", "creator"},
	"year":    {"year"},
	"country": {"country"},
	"format":  {"format"},
	"genre":   {"genre"},
	"plot":    {"plot"},
	"actors":  {"actors"},
	"awards":  {"awards"},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IngestCSV reads a catalog export, scores every titled row, and returns
// the resulting records in row order. Rows without a title are skipped.
// Records are not persisted; callers pass them to Merge.
func IngestCSV(ctx context.Context, r io.Reader, scorer Scorer, opts IngestOptions) (IngestReport, error) {
	report := IngestReport{RunID: uuid.NewString()}
	if scorer == nil {
		return report, errors.New("ingest: scorer required")
	}
	logger := logging.NewComponentLogger(opts.Logger, "ingest").With(logging.String(logging.FieldRunID, report.RunID))
	started := time.Now()

	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return report, errors.New("ingest: csv has no header row")
		}
		return report, fmt.Errorf("read csv header: %w", err)
	}
	columns := mapColumns(header)
	if _, ok := columns["title"]; !ok {
		return report, fmt.Errorf("ingest: csv header has no title column (got %s)", strings.Join(header, ", "))
	}

	var rows []weighting.Metadata
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read csv row %d: %w", report.Rows+1, err)
		}
		report.Rows++
		md := columns.metadata(fields)
		if md.Title == "" {
			report.Skipped++
			logger.Debug("skipping untitled row", logging.Int("row", report.Rows))
			continue
		}
		if md.Format == "" {
			md.Format = opts.Format
		}
		rows = append(rows, md)
	}

	results, err := scoreAll(ctx, scorer, rows, opts.Workers)
	if err != nil {
		logging.ErrorWithContext(logger, "csv ingest aborted", "ark_ingest_aborted",
			logging.Int("rows", len(rows)),
			logging.Error(err))
		return report, err
	}

	report.Records = make([]Record, len(rows))
	for i, md := range rows {
		res := results[i]
		rec := Record{
			ID:      FormatID(PrefixArchive, opts.StartIndex+i),
			Title:   md.Title,
			Creator: md.Creator,
			Year:    md.Year,
			Format:  md.Format,
			Kind:    KindCinemaAnalog,
			Weight:  res.Score,
			Status:  StatusArchived,
			Tags:    []string{TagCriterion},
			Notes:   res.Label,
		}
		report.Records[i] = rec
		logger.Debug("scored row",
			logging.String("id", rec.ID),
			logging.String("title", rec.Title),
			logging.String(logging.FieldTier, string(res.Tier)),
			logging.Float64("weight", rec.Weight))
	}

	logger.Info("csv ingest complete",
		logging.Int("rows", report.Rows),
		logging.Int("scored", len(report.Records)),
		logging.Int("skipped", report.Skipped),
		logging.Duration("elapsed", time.Since(started)))
	return report, nil
}

func scoreAll(ctx context.Context, scorer Scorer, rows []weighting.Metadata, workers int) ([]weighting.Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]weighting.Result, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, md := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scorer.Score(md)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score rows: %w", err)
	}
	return results, nil
}

type columnIndex map[string]int

func mapColumns(header []string) columnIndex {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, exists := positions[name]; !exists {
			positions[name] = i
		}
	}
	columns := make(columnIndex, len(columnAliases))
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := positions[alias]; ok {
				columns[field] = i
				break
			}
		}
	}
	return columns
}

func (c columnIndex) get(fields []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func (c columnIndex) metadata(fields []string) weighting.Metadata {
	return weighting.Metadata{
		Title:   c.get(fields, "title"),
		Creator: c.get(fields, "creator"),
		Year:    c.get(fields, "year"),
		Country: c.get(fields, "country"),
		Format:  c.get(fields, "format"),
		Genre:   c.get(fields, "genre"),
		Plot:    c.get(fields, "plot"),
		Actors:  c.get(fields, "actors"),
		Awards:  c.get(fields, "awards"),
	}
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

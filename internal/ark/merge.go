package ark

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// MergeReport counts the outcome of a merge.
type MergeReport struct {
	Inserted []Record
	Skipped  int
}

// Merge inserts the records whose canonical key and year are not already
// archived. Duplicates within records are collapsed to their first
// occurrence, so merging the same input twice inserts nothing the second
// time.
func Merge(ctx context.Context, store *Store, records []Record) (MergeReport, error) {
	var report MergeReport
	existing, err := store.List(ctx)
	if err != nil {
		return report, err
	}
	seen := make(map[string]struct{}, len(existing)+len(records))
	for _, rec := range existing {
		seen[rec.identity()] = struct{}{}
	}

	pending := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Key() == "" {
			report.Skipped++
			continue
		}
		id := rec.identity()
		if _, dup := seen[id]; dup {
			report.Skipped++
			continue
		}
		seen[id] = struct{}{}
		pending = append(pending, rec)
	}

	inserted, err := store.Insert(ctx, pending...)
	if err != nil {
		return report, err
	}
	report.Inserted = inserted
	return report, nil
}

// ReadDocument decodes an archive document.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(skipBOM(r)).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode archive document: %w", err)
	}
	return doc, nil
}

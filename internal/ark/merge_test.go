package ark_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"shodan/internal/ark"
	"shodan/internal/testsupport"
)

func TestMergeIsIdempotent(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	records := []ark.Record{
		{ID: "ARCHIVE-0000", Title: "Akira", Year: "1988", Weight: 10},
		{ID: "ARCHIVE-0001", Title: "AKIRA!", Year: "1988", Weight: 9},
		{ID: "ARCHIVE-0002", Title: "Akira", Year: "2026", Weight: 6},
		{ID: "ARCHIVE-0003", Title: "?!", Weight: 5},
	}
	first, err := ark.Merge(ctx, store, records)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(first.Inserted) != 2 || first.Skipped != 2 {
		t.Fatalf("first merge: inserted=%d skipped=%d", len(first.Inserted), first.Skipped)
	}

	second, err := ark.Merge(ctx, store, records)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(second.Inserted) != 0 || second.Skipped != 4 {
		t.Fatalf("second merge: inserted=%d skipped=%d", len(second.Inserted), second.Skipped)
	}
	if count, _ := store.Count(ctx); count != 2 {
		t.Fatalf("expected 2 records, got %d", count)
	}
}

func TestExportRoundTripsThroughMerge(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	source := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.MustInsert(t, source,
		ark.Record{ID: "ARCHIVE-0000", Title: "Stalker", Creator: "Andrei Tarkovsky", Year: "1979", Format: "Blu-Ray", Kind: ark.KindCinemaAnalog, Weight: 9.5, Tags: []string{ark.TagCriterion}},
		ark.Record{ID: "DIGITAL-0001", Title: "Tekken 3", Format: ark.FormatDigitalROM, Kind: "GAME_FIGHTING", Weight: 9, Tags: []string{ark.TagKimProtocol, ark.TagManualEntry}, Notes: "The Frame Data of Reality."},
	)

	var buf bytes.Buffer
	meta := ark.Meta{Operator: "Operator", Version: "2.0", Protocol: "Kim Protocol"}
	if err := ark.Export(ctx, source, &buf, meta); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"shodan_weight": 9.5`)) || !bytes.Contains(buf.Bytes(), []byte(`"total_artifacts": 2`)) {
		t.Fatalf("unexpected export:\n%s", buf.String())
	}

	doc, err := ark.ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	want, _ := source.List(ctx)
	if diff := cmp.Diff(want, doc.Canon); diff != "" {
		t.Fatalf("document mismatch (-store +doc):\n%s", diff)
	}

	target := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	report, err := ark.Merge(ctx, target, doc.Canon)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if diff := cmp.Diff(want, report.Inserted); diff != "" {
		t.Fatalf("merged records mismatch (-want +got):\n%s", diff)
	}
}

func TestExportEmptyArchive(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	doc, err := ark.Snapshot(context.Background(), store, ark.Meta{})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if doc.Canon == nil || doc.Meta.TotalArtifacts != 0 {
		t.Fatalf("expected empty non-nil canon, got %+v", doc)
	}
}

func TestWriteFileHonoursLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.MustInsert(t, store, ark.Record{Title: "Ran", Year: "1985", Weight: 8.5})
	path := filepath.Join(testsupport.BaseDir(cfg), "out", "canon.json")
	ctx := context.Background()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	unlock, err := ark.Lock(path + ".lock")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if _, err := ark.WriteFile(ctx, store, path, ark.Meta{}); !errors.Is(err, ark.ErrLocked) {
		unlock()
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	unlock()

	doc, err := ark.WriteFile(ctx, store, path, ark.Meta{Operator: "Operator"})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if doc.Meta.TotalArtifacts != 1 {
		t.Fatalf("unexpected meta: %+v", doc.Meta)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	written, err := ark.ReadDocument(f)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if diff := cmp.Diff(doc, written); diff != "" {
		t.Fatalf("written document mismatch (-returned +file):\n%s", diff)
	}
}

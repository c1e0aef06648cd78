package ark_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"shodan/internal/ark"
	"shodan/internal/canon"
	"shodan/internal/logging"
	"shodan/internal/testsupport"
	"shodan/internal/weighting"
)

func TestInjectOverridesSkipsAliases(t *testing.T) {
	reg, err := canon.NewRegistry(canon.Document{
		Overrides: []canon.OverrideSpec{
			{Key: "Metal Gear Solid 2: Sons of Liberty", Score: 10, Title: "Metal Gear Solid 2: Sons of Liberty", Kind: "game_narrative", Notes: "Prediction of the Digital Wasteland.", Director: "Kojima, Hideo", Released: "2001"},
			{Key: "Metal Gear Solid 2", Score: 10},
			{Key: "Akira", Score: 10, Year: "1988", Title: "Akira", Kind: "ANIME_CEL", Director: "Otomo, Katsuhiro"},
			{Key: "Ghost in the Shell", Score: 9.5, Year: "1995", Creator: "oshii", Title: "Ghost in the Shell", Director: "Oshii, Mamoru", Released: "1995"},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	got := ark.InjectOverrides(reg, 12)
	tags := []string{ark.TagKimProtocol, ark.TagManualEntry}
	want := []ark.Record{
		{ID: "DIGITAL-0012", Title: "Metal Gear Solid 2: Sons of Liberty", Creator: "Kojima, Hideo", Year: "2001", Format: ark.FormatDigitalROM, Kind: "GAME_NARRATIVE", Weight: 10, Status: ark.StatusArchived, Tags: tags, Notes: "Prediction of the Digital Wasteland."},
		{ID: "DIGITAL-0013", Title: "Akira", Creator: "Otomo, Katsuhiro", Year: "1988", Format: ark.FormatDigitalROM, Kind: "ANIME_CEL", Weight: 10, Status: ark.StatusArchived, Tags: tags},
		{ID: "DIGITAL-0014", Title: "Ghost in the Shell", Creator: "Oshii, Mamoru", Year: "1995", Format: ark.FormatDigitalROM, Weight: 9.5, Status: ark.StatusArchived, Tags: tags},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("inject mismatch (-want +got):\n%s", diff)
	}

	if none := ark.InjectOverrides(nil, 0); len(none) != 0 {
		t.Fatalf("nil registry should inject nothing, got %+v", none)
	}
}

func TestInjectOverridesDisplayCreditsDoNotAffectMatching(t *testing.T) {
	reg, err := canon.NewRegistry(canon.Document{
		Overrides: []canon.OverrideSpec{
			{Key: "Ghost in the Shell", Score: 9.5, Year: "1995", Creator: "oshii", Title: "Ghost in the Shell", Director: "Somebody Else", Released: "2017"},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if _, match := reg.ResolveOverride("Ghost in the Shell", "2017", "Somebody Else"); match != canon.MatchRejected {
		t.Fatalf("display credits must not corroborate, got %s", match)
	}
	if _, match := reg.ResolveOverride("Ghost in the Shell", "1995", "Mamoru Oshii"); match != canon.MatchCorroborated {
		t.Fatalf("expected corroborated match, got %s", match)
	}
}

func TestInjectSampleCanonCarriesCredits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canon.toml")
	if err := canon.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	reg, _, err := canon.Load(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	records := ark.InjectOverrides(reg, 0)
	if len(records) != 8 {
		t.Fatalf("expected 8 injected records, got %d", len(records))
	}
	for _, rec := range records {
		if strings.TrimSpace(rec.Creator) == "" || len(rec.Year) != 4 {
			t.Errorf("%s %q missing credits: director=%q year=%q", rec.ID, rec.Title, rec.Creator, rec.Year)
		}
	}
}

func TestInjectDeduplicatesAgainstIngestedRow(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	engine := weighting.NewEngine(nil, weighting.DefaultPolicy())
	report, err := ark.IngestCSV(ctx, strings.NewReader("Title,Director,Year\nTekken 3,Namco,1997\n"), engine, ark.IngestOptions{})
	if err != nil {
		t.Fatalf("IngestCSV: %v", err)
	}
	if _, err := ark.Merge(ctx, store, report.Records); err != nil {
		t.Fatalf("Merge ingest: %v", err)
	}

	reg, err := canon.NewRegistry(canon.Document{
		Overrides: []canon.OverrideSpec{
			{Key: "Tekken 3", Score: 9, Title: "Tekken 3", Director: "Namco", Released: "1997"},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	merged, err := ark.Merge(ctx, store, ark.InjectOverrides(reg, 1))
	if err != nil {
		t.Fatalf("Merge inject: %v", err)
	}
	if len(merged.Inserted) != 0 || merged.Skipped != 1 {
		t.Fatalf("expected injected Tekken 3 to be a duplicate, got inserted=%d skipped=%d", len(merged.Inserted), merged.Skipped)
	}
}

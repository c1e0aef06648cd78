package canon

import (
	"os"
	"path/filepath"
	"testing"

	"shodan/internal/logging"
)

func TestLoadMissingFileYieldsEmptyRegistry(t *testing.T) {
	reg, found, err := Load(filepath.Join(t.TempDir(), "absent.toml"), logging.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Fatal("expected found=false for a missing file")
	}
	if reg.Stats() != (Stats{}) {
		t.Fatalf("expected empty registry, got %+v", reg.Stats())
	}

	reg, found, err = Load("", nil)
	if err != nil || found || reg == nil {
		t.Fatalf("empty path: reg=%v found=%v err=%v", reg, found, err)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canon.toml")
	if err := os.WriteFile(path, []byte("[[override]\nkey = "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := Load(path, logging.NewNop()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadInvalidEntriesFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canon.yaml")
	body := "override:\n  - key: Akira\n    score: 11\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := Load(path, logging.NewNop()); err == nil {
		t.Fatal("expected out-of-range score error")
	}
}

func TestSampleCanonLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "canon.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	reg, found, err := Load(path, logging.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	stats := reg.Stats()
	want := Stats{Overrides: 9, Shadows: 4, Creators: 28, Performers: 7, Resonance: 36}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}

	if entry, ok := reg.LookupOverride("Ghost in the Shell", "1995", "Mamoru Oshii"); !ok || entry.Score != 9.5 {
		t.Fatalf("expected corroborated Ghost in the Shell override, got %+v %v", entry, ok)
	}
	if _, match := reg.ResolveOverride("Ghost in the Shell", "2017", "Rupert Sanders"); match != MatchRejected {
		t.Fatalf("2017 remake should be rejected, got %s", match)
	}
	if shadow, ok := reg.LookupShadow("Haunting Ground"); !ok || shadow.Label != "SIMULACRUM ARTIFACT (G4TV ARCHIVE)" {
		t.Fatalf("unexpected shadow lookup: %+v %v", shadow, ok)
	}
	entries := reg.Resonance().Entries()
	if entries[0].Keyword != "Cyberpunk" || entries[len(entries)-1].Keyword != "Funk" {
		t.Fatalf("resonance order not preserved: first=%q last=%q", entries[0].Keyword, entries[len(entries)-1].Keyword)
	}
}

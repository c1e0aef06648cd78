package canon

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveOverrideCorroboration(t *testing.T) {
	reg, err := NewRegistry(Document{
		Overrides: []OverrideSpec{
			{Key: "Ghost in the Shell", Score: 9.5, Year: "1995", Creator: "oshii"},
			{Key: "Tekken 3", Score: 9.0},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		name    string
		title   string
		year    string
		creator string
		want    Match
	}{
		{"corroborated", "ghost in the shell", "1995", "Mamoru Oshii", MatchCorroborated},
		{"year embedded in range", "Ghost in the Shell", "1995–1996", "OSHII", MatchCorroborated},
		{"wrong year", "Ghost in the Shell", "2017", "Mamoru Oshii", MatchRejected},
		{"missing creator", "Ghost in the Shell", "1995", "", MatchRejected},
		{"unconstrained", "TEKKEN-3", "", "", MatchCorroborated},
		{"prefix is not a match", "Tekken", "", "", MatchNone},
		{"unknown", "Sonic", "", "", MatchNone},
		{"empty title", "", "", "", MatchNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := reg.ResolveOverride(tt.title, tt.year, tt.creator)
			if got != tt.want {
				t.Fatalf("ResolveOverride(%q, %q, %q) = %s, want %s", tt.title, tt.year, tt.creator, got, tt.want)
			}
		})
	}

	entry, ok := reg.LookupOverride("Ghost in the Shell", "1995", "oshii")
	if !ok || entry.Score != 9.5 || entry.Key != "ghostintheshell" {
		t.Fatalf("LookupOverride = %+v, %v", entry, ok)
	}
	if _, ok := reg.LookupOverride("Ghost in the Shell", "2017", "oshii"); ok {
		t.Fatal("LookupOverride must hide rejected entries")
	}
}

func TestLookupShadow(t *testing.T) {
	reg, err := NewRegistry(Document{
		Shadows: []ShadowSpec{{Key: "Michigan: Report from Hell", Label: " SIMULACRUM ARTIFACT (SUDA51 ECHO) "}},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	got, ok := reg.LookupShadow("michigan report from hell")
	if !ok {
		t.Fatal("expected shadow hit")
	}
	want := ShadowEntry{Key: "michiganreportfromhell", Label: "SIMULACRUM ARTIFACT (SUDA51 ECHO)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("shadow mismatch (-want +got):\n%s", diff)
	}
	if _, ok := reg.LookupShadow("Michigan"); ok {
		t.Fatal("prefix must not match a shadow entry")
	}
}

func TestNewRegistryRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantDup bool
	}{
		{"duplicate override key", Document{Overrides: []OverrideSpec{{Key: "Akira", Score: 10}, {Key: "AKIRA!", Score: 9}}}, true},
		{"duplicate shadow key", Document{Shadows: []ShadowSpec{{Key: "Illbleed", Label: "a"}, {Key: "ill bleed", Label: "b"}}}, true},
		{"duplicate resonance keyword", Document{Resonance: []ResonanceSpec{{Keyword: "Noir", Delta: 0.5}, {Keyword: "noir", Delta: 1}}}, true},
		{"score above range", Document{Overrides: []OverrideSpec{{Key: "Akira", Score: 10.5}}}, false},
		{"score below range", Document{Overrides: []OverrideSpec{{Key: "Akira", Score: 0.5}}}, false},
		{"empty key", Document{Overrides: []OverrideSpec{{Key: "?!", Score: 5}}}, false},
		{"shadow without label", Document{Shadows: []ShadowSpec{{Key: "Illbleed"}}}, false},
		{"blank keyword", Document{Resonance: []ResonanceSpec{{Keyword: "  ", Delta: 1}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.doc)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrDuplicateKey); got != tt.wantDup {
				t.Fatalf("errors.Is(err, ErrDuplicateKey) = %v, want %v (err=%v)", got, tt.wantDup, err)
			}
		})
	}
}

func TestNilRegistryIsEmpty(t *testing.T) {
	var reg *Registry
	if _, match := reg.ResolveOverride("Akira", "1988", ""); match != MatchNone {
		t.Fatalf("nil registry match = %s", match)
	}
	if _, ok := reg.LookupShadow("Illbleed"); ok {
		t.Fatal("nil registry returned a shadow entry")
	}
	if reg.Creators().MatchesAny("Kurosawa") {
		t.Fatal("nil registry roster matched")
	}
	if diff := cmp.Diff(Stats{}, reg.Stats()); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	if got := reg.Resonance().Apply("cyberpunk", 5, 9.8); got.Weight != 5 {
		t.Fatalf("nil registry resonance changed weight: %+v", got)
	}
}

func TestRosterTrimsAndMatchesCaseInsensitively(t *testing.T) {
	roster := newRoster([]string{" Kurosawa ", "", "Team Silent"})
	if diff := cmp.Diff([]string{"Kurosawa", "Team Silent"}, roster.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !roster.MatchesAny("KONAMI / team silent") {
		t.Fatal("expected case-insensitive roster hit")
	}
	if roster.MatchesAny("") {
		t.Fatal("empty text must not match")
	}
}

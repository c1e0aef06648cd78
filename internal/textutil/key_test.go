package textutil

import "testing"

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", ""},
		{"punctuation only", " -:!? ", ""},
		{"simple", "Akira", "akira"},
		{"spaces and case", "Ghost in the Shell", "ghostintheshell"},
		{"colon subtitle", "Metal Gear Solid 2: Sons of Liberty", "metalgearsolid2sonsofliberty"},
		{"question mark", "Whatever Happened to Robot Jones?", "whateverhappenedtorobotjones"},
		{"apostrophe", "Angel's Egg", "angelsegg"},
		{"unicode letters", "Amélie", "amélie"},
		{"order preserved", "B-A 12", "ba12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalKey(tt.title); got != tt.want {
				t.Fatalf("CanonicalKey(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestContainsAnyFold(t *testing.T) {
	roster := []string{"Kurosawa", "Oshii"}
	if !ContainsAnyFold("Mamoru OSHII", roster) {
		t.Fatal("expected case-insensitive roster hit")
	}
	if ContainsAnyFold("Steven Spielberg", roster) {
		t.Fatal("unexpected roster hit")
	}
	if ContainsAnyFold("anything", nil) {
		t.Fatal("empty roster must never match")
	}
	if !ContainsFold("Lana Wachowski, Lilly Wachowski", "wachowski") {
		t.Fatal("expected substring match")
	}
}

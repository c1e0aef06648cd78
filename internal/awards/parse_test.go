package awards

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const epsilon = 1e-9

func TestParseBonusOMDbSummary(t *testing.T) {
	got := ParseBonus("Won 2 Oscars. Another 48 wins & 112 nominations.")
	if math.Abs(got-1.80) > epsilon {
		t.Fatalf("ParseBonus = %v, want 1.80", got)
	}
}

func TestParseCounts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Counts
	}{
		{"empty", "", Counts{}},
		{"not applicable", "N/A", Counts{}},
		{"not applicable lower", " n/a ", Counts{}},
		{"no pattern", "Critically acclaimed", Counts{}},
		{"single oscar", "Won 1 Oscar. Another 10 wins & 5 nominations.", Counts{Oscars: 1, Wins: 10, Nominations: 5}},
		{"nominated oscar does not count as won", "Nominated for 3 Oscars. Another 7 wins & 20 nominations.", Counts{Wins: 7, Nominations: 20}},
		{"singular forms", "1 win & 1 nomination", Counts{Wins: 1, Nominations: 1}},
		{"repeated clauses accumulate", "50 wins & 12 nominations. Also 3 wins at festivals.", Counts{Wins: 53, Nominations: 12}},
		{"first oscar clause only", "Won 2 Oscars. Won 1 Oscar.", Counts{Oscars: 2}},
		{"overflowing count saturates", "99999999999999999999 wins", Counts{Wins: math.MaxInt}},
		{"saturated sum stays at max", "99999999999999999999 wins & 5 wins", Counts{Wins: math.MaxInt}},
		{"overflowing oscars saturate", "Won 99999999999999999999 Oscars.", Counts{Oscars: math.MaxInt}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestParseBonusZeroForNoMatch(t *testing.T) {
	for _, text := range []string{"", "N/A", "Festival darling"} {
		if got := ParseBonus(text); got != 0 {
			t.Fatalf("ParseBonus(%q) = %v, want exactly 0", text, got)
		}
	}
}

func TestParseBonusIsUncapped(t *testing.T) {
	got := ParseBonus("Won 11 Oscars. Another 209 wins & 124 nominations.")
	want := 1.1 + 2.09 + 1.24
	if math.Abs(got-want) > epsilon {
		t.Fatalf("ParseBonus = %v, want %v", got, want)
	}
}

package canon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func resonanceTable(t *testing.T, specs ...ResonanceSpec) ResonanceTable {
	t.Helper()
	reg, err := NewRegistry(Document{Resonance: specs})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg.Resonance()
}

func TestResonanceApplyStopsAtCeiling(t *testing.T) {
	table := resonanceTable(t,
		ResonanceSpec{Keyword: "Alpha", Delta: 2.5},
		ResonanceSpec{Keyword: "Beta", Delta: 2.0},
		ResonanceSpec{Keyword: "Gamma", Delta: 2.0},
		ResonanceSpec{Keyword: "Sink", Delta: -5.0},
	)

	got := table.Apply("alpha beta gamma sink", 7.0, 9.8)
	want := ResonanceOutcome{Weight: 9.8, Matched: []string{"Alpha", "Beta"}, Capped: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
	}

	without := table.Apply("alpha beta", 7.0, 9.8)
	if without.Weight != got.Weight {
		t.Fatalf("later keywords changed the outcome: %v vs %v", without.Weight, got.Weight)
	}
}

func TestResonanceApplyExactCeilingStops(t *testing.T) {
	table := resonanceTable(t,
		ResonanceSpec{Keyword: "Alpha", Delta: 2.5},
		ResonanceSpec{Keyword: "Sink", Delta: -5.0},
	)
	got := table.Apply("alpha sink", 7.0, 9.5)
	if !got.Capped || got.Weight != 9.5 {
		t.Fatalf("reaching the ceiling exactly must stop the scan: %+v", got)
	}
}

func TestResonanceApplyBelowCeiling(t *testing.T) {
	table := resonanceTable(t,
		ResonanceSpec{Keyword: "Noir", Delta: 0.5},
		ResonanceSpec{Keyword: "Tech-Noir", Delta: 2.0},
		ResonanceSpec{Keyword: "Sink", Delta: -1.0},
	)
	got := table.Apply("a tech-noir sinkhole", 5.0, 9.8)
	want := ResonanceOutcome{Weight: 6.5, Matched: []string{"Noir", "Tech-Noir", "Sink"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestResonanceApplyEmptySignal(t *testing.T) {
	table := resonanceTable(t, ResonanceSpec{Keyword: "Noir", Delta: 0.5})
	if got := table.Apply("", 5.0, 9.8); got.Weight != 5.0 || len(got.Matched) != 0 {
		t.Fatalf("empty signal changed weight: %+v", got)
	}
}

package canon

import (
	"slices"
	"strings"
)

// ResonanceTable is an ordered keyword table. Order is significant: Apply
// walks it front to back and stops at the first keyword that reaches the
// ceiling.
type ResonanceTable struct {
	entries []ResonanceEntry
}

// ResonanceOutcome reports the running weight after a scan.
type ResonanceOutcome struct {
	Weight  float64
	Matched []string
	Capped  bool
}

// Entries returns a copy of the table in scan order.
func (t ResonanceTable) Entries() []ResonanceEntry {
	return slices.Clone(t.entries)
}

// Len returns the number of entries.
func (t ResonanceTable) Len() int {
	return len(t.entries)
}

// Apply adds the delta of every keyword found in signal to weight. After
// each addition, a weight at or above ceiling is clamped to ceiling and the
// scan ends; later keywords are never evaluated. signal must already be
// lowercased.
func (t ResonanceTable) Apply(signal string, weight, ceiling float64) ResonanceOutcome {
	out := ResonanceOutcome{Weight: weight}
	if signal == "" {
		return out
	}
	for _, entry := range t.entries {
		if !strings.Contains(signal, entry.needle) {
			continue
		}
		out.Weight += entry.Delta
		out.Matched = append(out.Matched, entry.Keyword)
		if out.Weight >= ceiling {
			out.Weight = ceiling
			out.Capped = true
			break
		}
	}
	return out
}

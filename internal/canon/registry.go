package canon

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"shodan/internal/textutil"
)

const (
	// MinOverrideScore and MaxOverrideScore bound curated scores.
	MinOverrideScore = 1.0
	MaxOverrideScore = 10.0
)

// ErrDuplicateKey reports two entries that normalize to the same key.
var ErrDuplicateKey = errors.New("duplicate canon key")

// Registry is the immutable set of canon tables. The zero value and a nil
// *Registry are both valid empty registries.
type Registry struct {
	overrides  []OverrideEntry
	overrideIx map[string]int
	shadows    []ShadowEntry
	shadowIx   map[string]int
	creators   Roster
	performers Roster
	resonance  ResonanceTable
}

// Empty returns a registry with no entries.
func Empty() *Registry {
	return &Registry{}
}

// NewRegistry validates doc and builds the lookup tables. Keys are
// canonicalized; duplicate keys within a table are rejected.
func NewRegistry(doc Document) (*Registry, error) {
	reg := &Registry{
		overrideIx: make(map[string]int, len(doc.Overrides)),
		shadowIx:   make(map[string]int, len(doc.Shadows)),
		creators:   newRoster(doc.Creators),
		performers: newRoster(doc.Performers),
	}

	for i, spec := range doc.Overrides {
		key := textutil.CanonicalKey(spec.Key)
		if key == "" {
			return nil, fmt.Errorf("override[%d]: key %q has no letters or digits", i, spec.Key)
		}
		if _, exists := reg.overrideIx[key]; exists {
			return nil, fmt.Errorf("override[%d] %q: %w", i, spec.Key, ErrDuplicateKey)
		}
		if spec.Score < MinOverrideScore || spec.Score > MaxOverrideScore {
			return nil, fmt.Errorf("override[%d] %q: score %.1f outside [%.1f, %.1f]", i, spec.Key, spec.Score, MinOverrideScore, MaxOverrideScore)
		}
		reg.overrideIx[key] = len(reg.overrides)
		reg.overrides = append(reg.overrides, OverrideEntry{
			Key:             key,
			Score:           spec.Score,
			RequiredYear:    trimSpace(spec.Year),
			RequiredCreator: trimSpace(spec.Creator),
			Title:           trimSpace(spec.Title),
			Kind:            strings.ToUpper(trimSpace(spec.Kind)),
			Notes:           trimSpace(spec.Notes),
			Director:        trimSpace(spec.Director),
			Released:        trimSpace(spec.Released),
		})
	}

	for i, spec := range doc.Shadows {
		key := textutil.CanonicalKey(spec.Key)
		if key == "" {
			return nil, fmt.Errorf("shadow[%d]: key %q has no letters or digits", i, spec.Key)
		}
		if _, exists := reg.shadowIx[key]; exists {
			return nil, fmt.Errorf("shadow[%d] %q: %w", i, spec.Key, ErrDuplicateKey)
		}
		label := trimSpace(spec.Label)
		if label == "" {
			return nil, fmt.Errorf("shadow[%d] %q: label must be set", i, spec.Key)
		}
		reg.shadowIx[key] = len(reg.shadows)
		reg.shadows = append(reg.shadows, ShadowEntry{Key: key, Label: label})
	}

	seen := make(map[string]struct{}, len(doc.Resonance))
	entries := make([]ResonanceEntry, 0, len(doc.Resonance))
	for i, spec := range doc.Resonance {
		keyword := trimSpace(spec.Keyword)
		if keyword == "" {
			return nil, fmt.Errorf("resonance[%d]: keyword must be set", i)
		}
		needle := textutil.Lower(keyword)
		if _, exists := seen[needle]; exists {
			return nil, fmt.Errorf("resonance[%d] %q: %w", i, keyword, ErrDuplicateKey)
		}
		seen[needle] = struct{}{}
		entries = append(entries, ResonanceEntry{Keyword: keyword, Delta: spec.Delta, needle: needle})
	}
	reg.resonance = ResonanceTable{entries: entries}

	return reg, nil
}

// ResolveOverride looks up the override entry for title and reports whether
// it was corroborated. An entry with a required year is skipped unless year
// contains it; an entry with a required creator is skipped unless creator
// contains it, ignoring case. Keys are unique, so a rejected entry is final.
func (r *Registry) ResolveOverride(title, year, creator string) (OverrideEntry, Match) {
	if r == nil || len(r.overrides) == 0 {
		return OverrideEntry{}, MatchNone
	}
	idx, ok := r.overrideIx[textutil.CanonicalKey(title)]
	if !ok {
		return OverrideEntry{}, MatchNone
	}
	entry := r.overrides[idx]
	if entry.RequiredYear != "" && !strings.Contains(year, entry.RequiredYear) {
		return entry, MatchRejected
	}
	if entry.RequiredCreator != "" && !textutil.ContainsFold(creator, entry.RequiredCreator) {
		return entry, MatchRejected
	}
	return entry, MatchCorroborated
}

// LookupOverride returns the corroborated override entry for title.
func (r *Registry) LookupOverride(title, year, creator string) (OverrideEntry, bool) {
	entry, match := r.ResolveOverride(title, year, creator)
	if match != MatchCorroborated {
		return OverrideEntry{}, false
	}
	return entry, true
}

// LookupShadow returns the shadow entry whose key equals title's key.
func (r *Registry) LookupShadow(title string) (ShadowEntry, bool) {
	if r == nil || len(r.shadows) == 0 {
		return ShadowEntry{}, false
	}
	idx, ok := r.shadowIx[textutil.CanonicalKey(title)]
	if !ok {
		return ShadowEntry{}, false
	}
	return r.shadows[idx], true
}

// Overrides returns the override table in document order.
func (r *Registry) Overrides() []OverrideEntry {
	if r == nil {
		return nil
	}
	return slices.Clone(r.overrides)
}

// Shadows returns the shadow table in document order.
func (r *Registry) Shadows() []ShadowEntry {
	if r == nil {
		return nil
	}
	return slices.Clone(r.shadows)
}

// Creators returns the influential-creator roster.
func (r *Registry) Creators() Roster {
	if r == nil {
		return Roster{}
	}
	return r.creators
}

// Performers returns the influential-performer roster.
func (r *Registry) Performers() Roster {
	if r == nil {
		return Roster{}
	}
	return r.performers
}

// Resonance returns the thematic resonance table.
func (r *Registry) Resonance() ResonanceTable {
	if r == nil {
		return ResonanceTable{}
	}
	return r.resonance
}

// Stats summarizes table sizes for logging and display.
type Stats struct {
	Overrides  int `json:"overrides"`
	Shadows    int `json:"shadows"`
	Creators   int `json:"creators"`
	Performers int `json:"performers"`
	Resonance  int `json:"resonance"`
}

// Stats returns the size of every table.
func (r *Registry) Stats() Stats {
	if r == nil {
		return Stats{}
	}
	return Stats{
		Overrides:  len(r.overrides),
		Shadows:    len(r.shadows),
		Creators:   r.creators.Len(),
		Performers: r.performers.Len(),
		Resonance:  r.resonance.Len(),
	}
}

func trimSpace(value string) string {
	return strings.TrimSpace(value)
}

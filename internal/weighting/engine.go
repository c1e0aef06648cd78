package weighting

import (
	"math"
	"strconv"
	"strings"

	"shodan/internal/awards"
	"shodan/internal/canon"
	"shodan/internal/textutil"
)

const (
	baseWeight = 5.0

	durabilityPre1960 = 2.0
	durability1960s   = 1.5
	durability1980s   = 1.0
	durability2000s   = 0.5

	creatorBonus   = 2.0
	performerBonus = 1.5
	originBonus    = 0.5
	formatBonus    = 0.5

	minScore = 1.0
	maxScore = 10.0
)

var domesticMarkers = []string{"USA", "United States"}

const premiumFormatMarker = "Blu-Ray"

// Engine scores metadata against a read-only canon registry.
type Engine struct {
	registry *canon.Registry
	policy   Policy
}

// NewEngine builds an engine. A nil registry behaves as an empty one.
func NewEngine(registry *canon.Registry, policy Policy) *Engine {
	if registry == nil {
		registry = canon.Empty()
	}
	if policy.ResonanceCap <= 0 {
		policy.ResonanceCap = ResonanceCapCurrent
	}
	return &Engine{registry: registry, policy: policy}
}

// Registry exposes the canon tables the engine consults.
func (e *Engine) Registry() *canon.Registry {
	return e.registry
}

// Policy returns the active scoring policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Score resolves the tier for md and returns its weight.
func (e *Engine) Score(md Metadata) Result {
	result, _ := e.Explain(md)
	return result
}

// Explain is Score plus the itemized computation for the computed tier.
func (e *Engine) Explain(md Metadata) (Result, Breakdown) {
	entry, match := e.registry.ResolveOverride(md.Title, md.Year, md.Creator)
	switch match {
	case canon.MatchCorroborated:
		return Result{Tier: TierOverride, Score: entry.Score}, Breakdown{}
	case canon.MatchNone:
		if shadow, ok := e.registry.LookupShadow(md.Title); ok {
			return Result{Tier: TierShadow, Score: 0, Label: shadow.Label}, Breakdown{}
		}
	}
	b := e.compute(md)
	return Result{Tier: TierComputed, Score: finalize(b.Raw)}, b
}

func (e *Engine) compute(md Metadata) Breakdown {
	b := Breakdown{Base: baseWeight}
	weight := baseWeight

	b.Durability = e.durability(md.Year)
	weight += b.Durability

	if e.registry.Creators().MatchesAny(md.Creator) {
		b.Creator = creatorBonus
		weight += creatorBonus
	}
	if e.registry.Performers().MatchesAny(md.Actors) {
		b.Performer = performerBonus
		weight += performerBonus
	}

	signal := textutil.Lower(md.Genre + " " + md.Plot)
	outcome := e.registry.Resonance().Apply(signal, weight, e.policy.ResonanceCap)
	b.Resonance = outcome.Weight - weight
	b.ResonanceMatches = outcome.Matched
	b.ResonanceCapped = outcome.Capped
	weight = outcome.Weight

	b.Awards = awards.ParseBonus(md.Awards)
	weight += b.Awards

	if !containsAny(md.Country, domesticMarkers) {
		b.Origin = originBonus
		weight += originBonus
	}
	if strings.Contains(md.Format, premiumFormatMarker) {
		b.Format = formatBonus
		weight += formatBonus
	}

	b.Raw = weight
	return b
}

// durability maps the release year onto its age band. Unparseable years
// contribute nothing.
func (e *Engine) durability(yearText string) float64 {
	year, err := strconv.Atoi(strings.TrimSpace(yearText))
	if err != nil {
		return 0
	}
	switch {
	case year < 1960:
		return durabilityPre1960
	case year < 1980:
		return durability1960s
	case year < 2000:
		return durability1980s
	case year <= LateReleaseYear:
		return durability2000s
	default:
		return e.policy.LateRelease.delta()
	}
}

// finalize rounds to one decimal place and clamps to [minScore, maxScore].
func finalize(weight float64) float64 {
	return math.Min(math.Max(roundTenth(weight), minScore), maxScore)
}

// roundTenth rounds the exact binary value to one decimal, ties to even.
func roundTenth(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 1, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

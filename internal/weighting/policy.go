package weighting

import "shodan/internal/config"

// LateReleasePolicy decides the durability adjustment for years after
// LateReleaseYear. Product has shipped both behaviours; see DESIGN.md.
type LateReleasePolicy int

const (
	// LateReleaseNeutral applies no adjustment (current behaviour).
	LateReleaseNeutral LateReleasePolicy = iota
	// LateReleasePenalty subtracts LateReleasePenaltyDelta (earlier behaviour).
	LateReleasePenalty
)

const (
	// ResonanceCapCurrent is the resonance ceiling in current builds.
	ResonanceCapCurrent = 9.8
	// ResonanceCapLegacy is the ceiling earlier builds used.
	ResonanceCapLegacy = 9.5

	// LateReleaseYear is the last year that still earns a durability bonus.
	LateReleaseYear = 2020
	// LateReleasePenaltyDelta is applied under LateReleasePenalty.
	LateReleasePenaltyDelta = -1.0
)

func (p LateReleasePolicy) String() string {
	if p == LateReleasePenalty {
		return config.LateReleasePenalty
	}
	return config.LateReleaseNeutral
}

// delta returns the adjustment for a year after LateReleaseYear.
func (p LateReleasePolicy) delta() float64 {
	if p == LateReleasePenalty {
		return LateReleasePenaltyDelta
	}
	return 0
}

// Policy bundles the swappable scoring constants.
type Policy struct {
	LateRelease  LateReleasePolicy
	ResonanceCap float64
}

// DefaultPolicy returns the current behaviour: neutral late releases and a
// 9.8 resonance cap.
func DefaultPolicy() Policy {
	return Policy{LateRelease: LateReleaseNeutral, ResonanceCap: ResonanceCapCurrent}
}

// LegacyPolicy returns the earlier behaviour: a -1.0 late-release penalty
// and a 9.5 resonance cap.
func LegacyPolicy() Policy {
	return Policy{LateRelease: LateReleasePenalty, ResonanceCap: ResonanceCapLegacy}
}

// PolicyFromConfig maps validated configuration onto a Policy.
func PolicyFromConfig(cfg *config.Config) Policy {
	policy := DefaultPolicy()
	if cfg == nil {
		return policy
	}
	if cfg.Weighting.LateReleasePolicy == config.LateReleasePenalty {
		policy.LateRelease = LateReleasePenalty
	}
	if cfg.Weighting.ResonanceCap > 0 {
		policy.ResonanceCap = cfg.Weighting.ResonanceCap
	}
	return policy
}

// Package weighting assigns the deterministic weight of a media artifact.
//
// Engine.Score resolves one of three tiers in strict priority order:
//
//  1. Override: the canon registry pins the title (with corroborated year
//     and creator, when required) to a fixed score.
//  2. Shadow: the title is a known artifact excluded from scoring; the
//     result carries a label and a score of exactly 0.0.
//  3. Computed: an additive heuristic over release year, creator and
//     performer rosters, thematic resonance, awards text, origin, and
//     format, rounded to one decimal and clamped to [1.0, 10.0].
//
// An override key that matches but fails corroboration skips the shadow
// table and goes straight to computed scoring.
//
// The engine performs no I/O, holds no mutable state, and never fails: any
// string inputs produce a Result. It is safe for concurrent use.
package weighting

// Package canon holds the curated, read-only tables the weighting engine
// consults before it computes anything: the override table (fixed scores,
// optionally gated by corroborating year and creator text), the shadow
// table (known artifacts deliberately excluded from scoring), the creator
// and performer rosters, and the ordered thematic resonance table.
//
// Tables come from a canon document (TOML, YAML, or JSON, chosen by file
// extension) loaded once at process start. A missing document is not an
// error: Load returns an empty Registry and the engine runs in pure
// heuristic mode. After construction a Registry is never mutated, so it can
// be shared across goroutines without locking.
//
// The order of resonance entries in the document is part of its contract:
// the engine stops scanning at the first keyword that reaches the cap, so
// reordering entries can change scores.
package canon

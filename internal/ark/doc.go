// Package ark persists scored artifacts and renders the archive document.
//
// The Store wraps a SQLite database (modernc driver, WAL journal, embedded
// migrations). Records enter the archive three ways: CSV ingest scores each
// row through the weighting engine, InjectOverrides converts curated canon
// overrides into manual records, and Merge folds an exported archive
// document back in. Merge deduplicates on canonical title key plus year so
// repeated imports are idempotent.
//
// Judge compares a fresh score against the archive and returns the
// acquisition verdict together with near-weight peers.
package ark

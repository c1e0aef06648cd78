// Package textutil provides the text canonicalization shared by the canon
// registry and the weighting engine.
//
// The primary use cases are:
//   - Deriving a canonical comparison key from a free-text title
//   - Case-insensitive substring containment for roster and keyword checks
//
// Canonical keys keep only letters and digits, lowercased, in their
// original order. Two titles name the same artifact iff their keys are
// equal; there is no prefix or fuzzy matching.
package textutil

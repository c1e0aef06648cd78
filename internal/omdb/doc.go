// Package omdb provides the minimal Open Movie Database client used to
// pull metadata for a title before scoring it.
//
// The client issues a single title lookup per call and returns the raw
// OMDb fields as a typed Movie. Movie.Metadata maps those fields onto the
// weighting engine's input. Options allow tests to supply a custom HTTP
// client.
package omdb

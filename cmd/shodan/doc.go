// Package main hosts the shodan CLI entrypoint and command graph.
//
// The Cobra command tree wires configuration, the canon registry, and the
// weighting engine together and exposes them as scoring, metadata lookup,
// canon inspection, and archive maintenance commands. Configuration,
// logging, and engine construction are resolved lazily and once per
// invocation in commandContext so subcommands only describe their own
// flags and output.
//
// Keep this package lean: scoring rules live in internal/weighting and
// persistence in internal/ark. Commands here only translate flags into
// calls and render the results.
package main

// Package preflight provides readiness checks for the filesystem paths,
// canon document, archive database, and OMDb credentials shodan depends on.
//
// The CLI "shodan status" command runs RunAll and renders one line per
// Result. The OMDb check is skipped when no API key is configured because
// only the lookup command needs it.
package preflight

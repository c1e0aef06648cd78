package canon

import (
	"slices"

	"shodan/internal/textutil"
)

// Roster is an ordered list of names tested by case-insensitive substring
// containment.
type Roster struct {
	names []string
}

func newRoster(names []string) Roster {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := trimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return Roster{names: cleaned}
}

// Names returns a copy of the roster in load order.
func (r Roster) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of names.
func (r Roster) Len() int {
	return len(r.names)
}

// MatchesAny reports whether text contains any roster name, ignoring case.
func (r Roster) MatchesAny(text string) bool {
	if text == "" {
		return false
	}
	return textutil.ContainsAnyFold(text, r.names)
}

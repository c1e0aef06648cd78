package canon

// OverrideEntry pins a canonical key to a fixed score. RequiredYear and
// RequiredCreator, when set, must be corroborated by the query before the
// override applies. Title, Kind, Notes, Director, and Released are display
// metadata used when the archive injects manual records; scoring ignores them.
type OverrideEntry struct {
	Key             string  `json:"key"`
	Score           float64 `json:"score"`
	RequiredYear    string  `json:"required_year,omitempty"`
	RequiredCreator string  `json:"required_creator,omitempty"`
	Title           string  `json:"title,omitempty"`
	Kind            string  `json:"kind,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	Director        string  `json:"director,omitempty"`
	Released        string  `json:"released,omitempty"`
}

// ShadowEntry marks an artifact that is known but excluded from the scored
// canon. Querying one always yields the 0.0 sentinel.
type ShadowEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ResonanceEntry maps a thematic keyword to an additive score delta.
type ResonanceEntry struct {
	Keyword string  `json:"keyword"`
	Delta   float64 `json:"delta"`

	needle string
}

// Match describes the outcome of an override lookup.
type Match int

const (
	// MatchNone means no override entry carries the query's key.
	MatchNone Match = iota
	// MatchCorroborated means the key matched and every constraint held.
	MatchCorroborated
	// MatchRejected means the key matched but year or creator
	// corroboration failed. Callers must not consult the shadow table.
	MatchRejected
)

func (m Match) String() string {
	switch m {
	case MatchCorroborated:
		return "corroborated"
	case MatchRejected:
		return "rejected"
	default:
		return "none"
	}
}

package weighting

// Tier names the decision path that produced a Result.
type Tier string

const (
	TierOverride Tier = "OVERRIDE"
	TierShadow   Tier = "SHADOW"
	TierComputed Tier = "COMPUTED"
)

// Metadata is the caller-supplied free text describing one artifact.
type Metadata struct {
	Title   string `json:"title"`
	Creator string `json:"creator"`
	Year    string `json:"year"`
	Country string `json:"country"`
	Format  string `json:"format"`
	Genre   string `json:"genre"`
	Plot    string `json:"plot"`
	Actors  string `json:"actors"`
	Awards  string `json:"awards"`
}

// Result is the outcome of scoring. Override and computed scores lie in
// [1.0, 10.0]; shadow results always score exactly 0.0 and carry Label.
type Result struct {
	Tier  Tier    `json:"tier"`
	Score float64 `json:"score"`
	Label string  `json:"label,omitempty"`
}

// Breakdown itemizes the computed tier. It is empty for other tiers.
type Breakdown struct {
	Base             float64  `json:"base"`
	Durability       float64  `json:"durability"`
	Creator          float64  `json:"creator"`
	Performer        float64  `json:"performer"`
	Resonance        float64  `json:"resonance"`
	ResonanceMatches []string `json:"resonance_matches,omitempty"`
	ResonanceCapped  bool     `json:"resonance_capped"`
	Awards           float64  `json:"awards"`
	Origin           float64  `json:"origin"`
	Format           float64  `json:"format"`
	Raw              float64  `json:"raw"`
}

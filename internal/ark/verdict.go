package ark

import "context"

const (
	// HighValueThreshold is exceeded by acquisition targets.
	HighValueThreshold = 8.0
	// SlopThreshold marks weights not worth acquiring.
	SlopThreshold = 5.0
	// DefaultPeerTolerance is the weight distance within which archived
	// records count as peers.
	DefaultPeerTolerance = 0.2
	// PeerLimit caps the number of peers reported.
	PeerLimit = 2
)

// VerdictKind is the acquisition judgement for a title.
type VerdictKind string

const (
	VerdictSecured   VerdictKind = "secured"
	VerdictHighValue VerdictKind = "high_value"
	VerdictSlop      VerdictKind = "slop"
	VerdictNeutral   VerdictKind = "neutral"
)

// Verdict pairs the judgement with the archived records it relied on.
type Verdict struct {
	Kind    VerdictKind `json:"kind"`
	Weight  float64     `json:"weight"`
	Secured []Record    `json:"secured,omitempty"`
	Peers   []Record    `json:"peers,omitempty"`
}

// Catalog is the read surface Judge needs.
type Catalog interface {
	FindByKey(ctx context.Context, title string) ([]Record, error)
	Peers(ctx context.Context, weight, tolerance float64, limit int) ([]Record, error)
}

var _ Catalog = (*Store)(nil)

// Judge classifies weight for title against the archive. A title already
// archived is secured regardless of weight and carries no peers. Otherwise
// peers are gathered; tolerance <= 0 uses DefaultPeerTolerance.
func Judge(ctx context.Context, catalog Catalog, title string, weight, tolerance float64) (Verdict, error) {
	if tolerance <= 0 {
		tolerance = DefaultPeerTolerance
	}
	verdict := Verdict{Kind: classify(weight), Weight: weight}

	secured, err := catalog.FindByKey(ctx, title)
	if err != nil {
		return Verdict{}, err
	}
	if len(secured) > 0 {
		verdict.Kind = VerdictSecured
		verdict.Secured = secured
		return verdict, nil
	}

	peers, err := catalog.Peers(ctx, weight, tolerance, PeerLimit)
	if err != nil {
		return Verdict{}, err
	}
	verdict.Peers = peers
	return verdict, nil
}

func classify(weight float64) VerdictKind {
	switch {
	case weight > HighValueThreshold:
		return VerdictHighValue
	case weight < SlopThreshold:
		return VerdictSlop
	default:
		return VerdictNeutral
	}
}

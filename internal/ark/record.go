package ark

import (
	"fmt"
	"strings"

	"shodan/internal/config"
	"shodan/internal/textutil"
)

// StatusArchived is the status of every record in the archive.
const StatusArchived = "ARCHIVED"

const (
	// PrefixArchive identifies records ingested from a CSV catalog.
	PrefixArchive = "ARCHIVE"
	// PrefixDigital identifies records injected from canon overrides.
	PrefixDigital = "DIGITAL"

	// KindCinemaAnalog is the kind assigned to ingested rows.
	KindCinemaAnalog = "CINEMA_ANALOG"
	// FormatDigitalROM is the format assigned to injected records.
	FormatDigitalROM = "DIGITAL/ROM"

	TagCriterion   = "CRITERION"
	TagKimProtocol = "KIM_PROTOCOL"
	TagManualEntry = "MANUAL_ENTRY"
)

// Record is one archived artifact. JSON names follow the archive document
// format so exports can be merged back without translation.
type Record struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Creator string   `json:"director,omitempty"`
	Year    string   `json:"year,omitempty"`
	Format  string   `json:"format,omitempty"`
	Kind    string   `json:"type,omitempty"`
	Weight  float64  `json:"shodan_weight"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

// Key returns the canonical title key used for deduplication.
func (r Record) Key() string {
	return textutil.CanonicalKey(r.Title)
}

// identity is the merge identity: canonical key plus trimmed year.
func (r Record) identity() string {
	return r.Key() + "|" + strings.TrimSpace(r.Year)
}

// Meta is the archive document header.
type Meta struct {
	Operator       string `json:"operator"`
	Version        string `json:"version"`
	Protocol       string `json:"protocol"`
	TotalArtifacts int    `json:"total_artifacts"`
}

// MetaFromConfig copies the [ark] header fields. TotalArtifacts is filled
// at export time.
func MetaFromConfig(cfg *config.Config) Meta {
	if cfg == nil {
		return Meta{}
	}
	return Meta{Operator: cfg.Ark.Operator, Version: cfg.Ark.Version, Protocol: cfg.Ark.Protocol}
}

// Document is the exported archive.
type Document struct {
	Meta  Meta     `json:"meta"`
	Canon []Record `json:"canon"`
}

// FormatID renders an archive identifier such as ARCHIVE-0007.
func FormatID(prefix string, index int) string {
	return fmt.Sprintf("%s-%04d", prefix, index)
}

// idPrefix returns the part of id before its final dash, or PrefixArchive
// when id carries no prefix.
func idPrefix(id string) string {
	if i := strings.LastIndex(id, "-"); i > 0 {
		return id[:i]
	}
	return PrefixArchive
}

package omdb

import (
	"strings"

	"shodan/internal/weighting"
)

// DefaultFormat is assumed when the caller does not name a physical format.
const DefaultFormat = "Digital"

const notApplicable = "N/A"

// Metadata maps the movie onto the engine's input. Year keeps its first
// four characters; creator joins Director and Writer.
func (m Movie) Metadata(format string) weighting.Metadata {
	format = strings.TrimSpace(format)
	if format == "" {
		format = DefaultFormat
	}
	return weighting.Metadata{
		Title:   strings.TrimSpace(m.Title),
		Creator: joinKnown(m.Director, m.Writer),
		Year:    leadingYear(m.Year),
		Country: known(m.Country),
		Format:  format,
		Genre:   known(m.Genre),
		Plot:    known(m.Plot),
		Actors:  known(m.Actors),
		Awards:  known(m.Awards),
	}
}

func known(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, notApplicable) {
		return ""
	}
	return value
}

func joinKnown(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if v := known(value); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func leadingYear(value string) string {
	value = known(value)
	runes := []rune(value)
	if len(runes) > 4 {
		return string(runes[:4])
	}
	return value
}

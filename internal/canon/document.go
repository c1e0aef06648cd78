package canon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk shape of a canon file.
type Document struct {
	Creators   []string        `toml:"creators" yaml:"creators" json:"creators"`
	Performers []string        `toml:"performers" yaml:"performers" json:"performers"`
	Overrides  []OverrideSpec  `toml:"override" yaml:"override" json:"override"`
	Shadows    []ShadowSpec    `toml:"shadow" yaml:"shadow" json:"shadow"`
	Resonance  []ResonanceSpec `toml:"resonance" yaml:"resonance" json:"resonance"`
}

// OverrideSpec is one [[override]] table. Year and Creator are the
// corroboration constraints; Director and Released are display credits for
// injected archive records and never take part in matching.
type OverrideSpec struct {
	Key     string  `toml:"key" yaml:"key" json:"key"`
	Score   float64 `toml:"score" yaml:"score" json:"score"`
	Year    string  `toml:"year,omitempty" yaml:"year,omitempty" json:"year,omitempty"`
	Creator string  `toml:"creator,omitempty" yaml:"creator,omitempty" json:"creator,omitempty"`
	Title   string  `toml:"title,omitempty" yaml:"title,omitempty" json:"title,omitempty"`
	Kind    string  `toml:"kind,omitempty" yaml:"kind,omitempty" json:"kind,omitempty"`
	Notes   string  `toml:"notes,omitempty" yaml:"notes,omitempty" json:"notes,omitempty"`

	Director string `toml:"director,omitempty" yaml:"director,omitempty" json:"director,omitempty"`
	Released string `toml:"released,omitempty" yaml:"released,omitempty" json:"released,omitempty"`
}

// ShadowSpec is one [[shadow]] table.
type ShadowSpec struct {
	Key   string `toml:"key" yaml:"key" json:"key"`
	Label string `toml:"label" yaml:"label" json:"label"`
}

// ResonanceSpec is one [[resonance]] table.
type ResonanceSpec struct {
	Keyword string  `toml:"keyword" yaml:"keyword" json:"keyword"`
	Delta   float64 `toml:"delta" yaml:"delta" json:"delta"`
}

// Format identifies a canon document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the encoding from the file extension, defaulting to
// TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Decode parses data in the given format. Unknown fields are rejected so
// typos in a curated file surface instead of silently dropping entries.
func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	data = bytes.TrimSpace(trimUTF8BOM(data))
	if len(data) == 0 {
		return doc, nil
	}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("decode yaml canon: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("decode json canon: %w", err)
		}
	case FormatTOML, "":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("decode toml canon: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("canon format: unsupported value %q", format)
	}
	return doc, nil
}

func trimUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

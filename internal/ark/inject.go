package ark

import (
	"cmp"

	"shodan/internal/canon"
)

// InjectOverrides converts every override entry that carries a display
// title into a manual DIGITAL- record scored at its fixed override score.
// Entries without a title are lookup aliases and are skipped. The record
// year is the entry's release year, falling back to its required year.
func InjectOverrides(registry *canon.Registry, startIndex int) []Record {
	var records []Record
	for _, entry := range registry.Overrides() {
		if entry.Title == "" {
			continue
		}
		records = append(records, Record{
			ID:      FormatID(PrefixDigital, startIndex+len(records)),
			Title:   entry.Title,
			Creator: entry.Director,
			Year:    cmp.Or(entry.Released, entry.RequiredYear),
			Format:  FormatDigitalROM,
			Kind:    entry.Kind,
			Weight:  entry.Score,
			Status:  StatusArchived,
			Tags:    []string{TagKimProtocol, TagManualEntry},
			Notes:   entry.Notes,
		})
	}
	return records
}

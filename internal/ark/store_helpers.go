package ark

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (Record, error) {
	var (
		rec      Record
		creator  sql.NullString
		year     sql.NullString
		format   sql.NullString
		kind     sql.NullString
		tagsJSON sql.NullString
		notes    sql.NullString
	)
	if err := scanner.Scan(
		&rec.ID,
		&rec.Title,
		&creator,
		&year,
		&format,
		&kind,
		&rec.Weight,
		&rec.Status,
		&tagsJSON,
		&notes,
	); err != nil {
		return Record{}, err
	}
	rec.Creator = creator.String
	rec.Year = year.String
	rec.Format = format.String
	rec.Kind = kind.String
	rec.Notes = notes.String
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &rec.Tags); err != nil {
			return Record{}, fmt.Errorf("decode tags for %s: %w", rec.ID, err)
		}
	}
	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func idTaken(ctx context.Context, q rowQueryer, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(1) FROM records WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("check id %s: %w", id, err)
	}
	return count > 0, nil
}

// nextFreeID starts at the current record count and walks upward until
// prefix-NNNN is unused.
func nextFreeID(ctx context.Context, q rowQueryer, prefix string) (string, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(1) FROM records`).Scan(&count); err != nil {
		return "", fmt.Errorf("count records: %w", err)
	}
	for index := count; ; index++ {
		candidate := FormatID(prefix, index)
		taken, err := idTaken(ctx, q, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func encodeTags(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

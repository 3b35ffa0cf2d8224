package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// parseTimestamps fills created/updated from their stored RFC3339 form.
func parseTimestamps(createdAt, updatedAt string, created, updated *time.Time) error {
	var err error
	if *created, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	if *updated, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

package repository

import (
	"database/sql"
	"time"
)

// dateLayout is the storage format for calendar dates (no time component).
const dateLayout = "2006-01-02"

// parseNullableDate parses a sql.NullString into a *time.Time date value.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// nullableDateToString converts a *time.Time into a SQLite-storable value:
// NULL for nil, the formatted date string otherwise.
func nullableDateToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

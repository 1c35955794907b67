package sqldb

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTime reads a created_at column. The desktop application writes
// ISO-8601 strings; SQLite's datetime() writes "YYYY-MM-DD HH:MM:SS".
// Values without an offset are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Str returns the string of a nullable column, "" for NULL.
func Str(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

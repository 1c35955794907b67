package sqldb

import (
	"database/sql"
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 9, 27, 8, 30, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-09-27T08:30:00Z", want},
		{"2026-09-27T11:30:00+03:00", want},
		{"2026-09-27T08:30:00.000", want},
		{"2026-09-27 08:30:00", want},
		{"2026-09-27", time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		if err != nil {
			t.Errorf("ParseTime(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseTime("yesterday"); err == nil {
		t.Error("ParseTime(\"yesterday\"): expected error")
	}
}

func TestStr(t *testing.T) {
	t.Parallel()

	if got := Str(sql.NullString{}); got != "" {
		t.Errorf("Str(NULL) = %q, want empty", got)
	}
	if got := Str(sql.NullString{String: "x", Valid: true}); got != "x" {
		t.Errorf("Str(valid) = %q, want %q", got, "x")
	}
}

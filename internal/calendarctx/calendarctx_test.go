package calendarctx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacts_Fields(t *testing.T) {
	t.Parallel()

	f := Facts{
		Date:       time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC),
		Observance: "meskel",
		Extra:      map[string]any{"feast": true},
	}

	got := f.Fields()
	assert.Equal(t, "2026-09-27", got["date"])
	assert.Equal(t, 2026, got["year"])
	assert.Equal(t, 9, got["month"])
	assert.Equal(t, 27, got["day"])
	assert.Equal(t, "sunday", got["weekday"])
	assert.Equal(t, "meskel", got["observance"])
	assert.Equal(t, true, got["feast"])
	assert.NotContains(t, got, "season")
}

func TestFacts_ZeroDate(t *testing.T) {
	t.Parallel()

	got := Facts{Season: "tsige"}.Fields()
	assert.Equal(t, map[string]any{"season": "tsige"}, got)
}

func TestParseOverrides(t *testing.T) {
	t.Parallel()

	got, err := ParseOverrides([]string{"season=lent", "day = 7", "fast=true", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"season": "lent",
		"day":    float64(7),
		"fast":   true,
		"note":   "a=b",
	}, got)

	_, err = ParseOverrides([]string{"novalue"})
	assert.Error(t, err)

	_, err = ParseOverrides([]string{"=x"})
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ctx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("season: tsige\nday: 3\nfeast: true\nstart: 2026-10-01\n"), 0o600))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tsige", got["season"])
	assert.Equal(t, 3, got["day"])
	assert.Equal(t, true, got["feast"])
	assert.Equal(t, "2026-10-01", got["start"])
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nested := filepath.Join(dir, "nested.yaml")
	require.NoError(t, os.WriteFile(nested, []byte("calendar:\n  season: tsige\n"), 0o600))

	_, err := LoadFile(nested)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBuild_Precedence(t *testing.T) {
	t.Parallel()

	facts := Facts{Season: "tsige", Observance: "sunday"}
	file := map[string]any{"season": "from-file", "extra": "x"}
	flags := map[string]any{"season": "from-flag"}

	ctx := Build(facts, file, flags)

	season, _ := ctx.Lookup("season")
	assert.Equal(t, "from-flag", season)
	extra, _ := ctx.Lookup("extra")
	assert.Equal(t, "x", extra)
	obs, _ := ctx.Lookup("observance")
	assert.Equal(t, "sunday", obs)
}

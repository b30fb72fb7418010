package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeriesCSV(t *testing.T) {
	t.Run("single price column", func(t *testing.T) {
		path := writeCSV(t, "100\n105\n102\n")
		series, err := loadSeriesCSV(path)
		require.NoError(t, err)
		assert.Equal(t, 3, series.Len())
		assert.Equal(t, []float64{100, 105, 102}, series.Prices())
	})

	t.Run("date and price columns with header", func(t *testing.T) {
		path := writeCSV(t, "date,close\n2024-01-02,100\n2024-01-03,105\n2024-01-04,102\n")
		series, err := loadSeriesCSV(path)
		require.NoError(t, err)
		assert.Equal(t, 3, series.Len())
	})

	t.Run("out-of-order dates rejected", func(t *testing.T) {
		path := writeCSV(t, "2024-01-03,100\n2024-01-02,105\n")
		_, err := loadSeriesCSV(path)
		assert.Error(t, err)
	})

	t.Run("bad price rejected", func(t *testing.T) {
		path := writeCSV(t, "100\nnot-a-number\n")
		_, err := loadSeriesCSV(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadSeriesCSV(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

func TestParseRecord(t *testing.T) {
	t.Run("bare price", func(t *testing.T) {
		point, err := parseRecord([]string{"101.5"})
		require.NoError(t, err)
		assert.Equal(t, 101.5, point.Price)
		assert.True(t, point.Time.IsZero())
	})

	t.Run("RFC3339 date", func(t *testing.T) {
		point, err := parseRecord([]string{"2024-01-02T15:04:05Z", "99.9"})
		require.NoError(t, err)
		assert.Equal(t, 99.9, point.Price)
		assert.Equal(t, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), point.Time)
	})

	t.Run("too many columns", func(t *testing.T) {
		_, err := parseRecord([]string{"a", "b", "c"})
		assert.Error(t, err)
	})
}

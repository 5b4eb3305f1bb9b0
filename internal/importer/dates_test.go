package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"14 ago 2025", time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)},
		{"2 Ene 2026", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"8 abr 2025", time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC)},
		{"15 Apr 2025", time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"31 dic 2024", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"14/08/2025", time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)},
		{"2/1/2026", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2025-08-14", time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			require.True(t, ok)
			assert.True(t, got.Equal(tt.want), "got %v", got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, raw := range []string{"", "no es fecha", "99 xyz 2025", "Barrio Centro"} {
		_, ok := ParseDate(raw)
		assert.False(t, ok, "raw=%q", raw)
	}
}

func TestScanDate_FindsDateInAnyCell(t *testing.T) {
	cells := []string{"Funes, Sandra", "", "Élder", "", "", "Barrio Centro 14 ago 2025"}

	got, ok := ScanDate(cells)
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)))

	_, ok = ScanDate([]string{"Funes, Sandra", "Barrio Centro"})
	assert.False(t, ok)
}

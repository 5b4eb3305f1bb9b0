package util

import "testing"

func TestNormalizeUnitSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "BARRIO CENTRO", "barrio-centro"},
		{"spaces to dashes", "Barrio Centro", "barrio-centro"},
		{"underscores to dashes", "barrio_centro", "barrio-centro"},
		{"already normalized", "barrio-centro", "barrio-centro"},

		{"trim whitespace", "  Rama Sur  ", "rama-sur"},
		{"multiple spaces", "Rama   Sur", "rama-sur"},

		{"accented characters stripped", "Rama San José", "rama-san-jos"},
		{"punctuation removal", "Barrio Centro (2)", "barrio-centro-2"},

		{"multiple dashes", "barrio--centro", "barrio-centro"},
		{"leading dashes", "--barrio", "barrio"},
		{"trailing dashes", "barrio--", "barrio"},

		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "distrito10", "distrito10"},
		{"mixed case with numbers", "Barrio 2 Norte", "barrio-2-norte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeUnitSlug(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeUnitSlug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

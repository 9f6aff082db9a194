package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFrequency_ExactMatch(t *testing.T) {
	tests := []struct {
		label string
		want  Frequency
	}{
		{"daily", Daily},
		{"Diária", Daily},
		{"weekly", Weekly},
		{"SEMANAL", Weekly},
		{"quinzenal", Biweekly},
		{"fortnightly", Biweekly},
		{"mensal", Monthly},
		{"Monthly", Monthly},
		{"bimestral", Bimonthly},
		{"trimestral", Quarterly},
		{"semestral", Semiannual},
		{"semi-annual", Semiannual},
		{"anual", Annual},
		{"yearly", Annual},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, info := NormalizeFrequency(tt.label)
			assert.Equal(t, tt.want, got)
			assert.False(t, info.Fallback)
			assert.False(t, info.Substring)
		})
	}
}

func TestNormalizeFrequency_SubstringMatch(t *testing.T) {
	tests := []struct {
		label string
		want  Frequency
	}{
		{"manutenção mensal", Monthly},
		{"weekly inspection", Weekly},
		{"revisão semestral completa", Semiannual},
		{"plano quinzenal", Biweekly},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, info := NormalizeFrequency(tt.label)
			assert.Equal(t, tt.want, got)
			assert.True(t, info.Substring)
			assert.False(t, info.Fallback)
		})
	}
}

func TestNormalizeFrequency_SubstringPrefersSpecificKey(t *testing.T) {
	// "bisemanal" contains "semanal"; the more specific key must win.
	got, info := NormalizeFrequency("plano bisemanal")
	assert.Equal(t, Biweekly, got)
	assert.Equal(t, "bisemanal", info.MatchedKey)
}

func TestNormalizeFrequency_FallbackToWeekly(t *testing.T) {
	for _, label := range []string{"xyz-unknown", "42", "todo dia útil?"} {
		got, info := NormalizeFrequency(label)
		assert.Equal(t, Weekly, got, "label %q", label)
		assert.True(t, info.Fallback)
		assert.Empty(t, info.MatchedKey)
	}
}

func TestNormalizeFrequency_EmptyLabelFallsBack(t *testing.T) {
	got, info := NormalizeFrequency("  ")
	assert.Equal(t, Weekly, got)
	assert.True(t, info.Fallback)
}

func TestFrequency_Valid(t *testing.T) {
	assert.True(t, Quarterly.Valid())
	assert.False(t, Frequency("fortnight").Valid())
	assert.False(t, Frequency("").Valid())
}

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatHours(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero", input: 0, expected: "0m"},
		{name: "minutes only", input: 0.5, expected: "30m"},
		{name: "exact hour", input: 1, expected: "1h 0m"},
		{name: "hours and minutes", input: 7.5, expected: "7h 30m"},
		{name: "rounds to nearest minute", input: 1.999, expected: "2h 0m"},
		{name: "negative clamps to zero", input: -1.5, expected: "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatHours(tt.input))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "66.7%", FormatPercent(66.666))
	assert.Equal(t, "100.0%", FormatPercent(100))
	assert.Equal(t, "112.5%", FormatPercent(112.5))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "2h 15m", FormatDuration(2*time.Hour+15*time.Minute))
	assert.Equal(t, "0m", FormatDuration(0))
}

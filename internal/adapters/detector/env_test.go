package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/modcache/internal/adapters/detector"
)

func TestDetectEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
	}{
		{name: "CI=true forces JSON mode", ciValue: "true"},
		{name: "CI=1 forces JSON mode", ciValue: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)
			assert.Equal(t, detector.ModeJSON, detector.DetectEnvironment())
		})
	}
}

func TestResolveMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		format       string
		expected     detector.OutputMode
	}{
		{
			name:         "auto respects auto-detection (pretty)",
			autoDetected: detector.ModePretty,
			format:       "auto",
			expected:     detector.ModePretty,
		},
		{
			name:         "auto respects auto-detection (json)",
			autoDetected: detector.ModeJSON,
			format:       "auto",
			expected:     detector.ModeJSON,
		},
		{
			name:         "empty format respects auto-detection",
			autoDetected: detector.ModePretty,
			format:       "",
			expected:     detector.ModePretty,
		},
		{
			name:         "pretty overrides auto-detection",
			autoDetected: detector.ModeJSON,
			format:       "pretty",
			expected:     detector.ModePretty,
		},
		{
			name:         "json overrides auto-detection",
			autoDetected: detector.ModePretty,
			format:       "json",
			expected:     detector.ModeJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.autoDetected, tt.format))
		})
	}
}

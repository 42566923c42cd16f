// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"go.trai.ch/modcache/internal/core/domain"
	"golang.org/x/term"
)

// OutputMode represents the log rendering mode.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty forces colored, human readable logs.
	ModePretty
	// ModeJSON forces structured JSON logs.
	ModeJSON
)

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeJSON
	}
	return ModePretty
}

// ResolveMode applies the configured log format to auto-detection.
// format should be one of the domain.LogFormat values or empty.
func ResolveMode(autoDetected OutputMode, format string) OutputMode {
	switch format {
	case domain.LogFormatPretty:
		return ModePretty
	case domain.LogFormatJSON:
		return ModeJSON
	default:
		return autoDetected
	}
}

package domain

import "go.trai.ch/zerr"

const (
	// DefaultCacheDirName is the base directory of the module cache when none is configured.
	DefaultCacheDirName = ".modcache"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "modcache.yaml"

	// ProgramFileExt is the conventional extension of program sources.
	ProgramFileExt = ".mca"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for cached modules (rw-r--r--).
	FilePerm = 0o644
)

// Log formats accepted in the configuration.
const (
	LogFormatAuto   = "auto"
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// Config is the resolved runtime configuration.
type Config struct {
	// CacheDir is the base path of the module cache.
	CacheDir string
	// Limits bounds module execution.
	Limits Limits
	// LogFormat is one of LogFormatAuto, LogFormatPretty or LogFormatJSON.
	LogFormat string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		CacheDir:  DefaultCacheDirName,
		Limits:    DefaultLimits(),
		LogFormat: LogFormatAuto,
	}
}

// ValidateLogFormat reports ErrInvalidLogFormat for unknown formats. The empty
// string is accepted and means LogFormatAuto.
func ValidateLogFormat(format string) error {
	switch format {
	case "", LogFormatAuto, LogFormatPretty, LogFormatJSON:
		return nil
	default:
		return zerr.With(zerr.Wrap(ErrInvalidLogFormat, ""), "log_format", format)
	}
}

// Package config provides the configuration loader for modcache.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const slotSize = 8

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at configPath. A missing file is not an
// error and yields domain.DefaultConfig. A relative cache_dir is resolved
// against the directory of the file.
func (l *Loader) Load(configPath string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	var file Configfile
	found, err := readAndUnmarshalYAML(configPath, &file)
	if err != nil || !found {
		return cfg, err
	}

	if file.CacheDir != "" {
		cfg.CacheDir = resolveCacheDir(configPath, file.CacheDir)
	}

	if file.GasLimit != nil {
		if *file.GasLimit == 0 {
			return cfg, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, ""), "gas_limit", 0)
		}
		cfg.Limits.GasLimit = *file.GasLimit
	}

	if file.StackLimit != "" {
		size, err := l.parseStackLimit(file.StackLimit)
		if err != nil {
			return cfg, err
		}
		cfg.Limits.StackSize = size
	}

	if err := domain.ValidateLogFormat(file.LogFormat); err != nil {
		return cfg, err
	}
	if file.LogFormat != "" {
		cfg.LogFormat = file.LogFormat
	}

	return cfg, nil
}

func (l *Loader) parseStackLimit(raw string) (uint64, error) {
	size, err := humanize.ParseBytes(raw)
	if err != nil || size < slotSize {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, ""), "stack_limit", raw)
	}
	if rounded := size - size%slotSize; rounded != size {
		l.Logger.Warn(fmt.Sprintf("stack_limit %s is not a multiple of %d bytes, using %s",
			raw, slotSize, humanize.IBytes(rounded)))
		size = rounded
	}
	return size, nil
}

func resolveCacheDir(configPath, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(filepath.Dir(configPath), dir)
}

// readAndUnmarshalYAML reports false when the file does not exist.
func readAndUnmarshalYAML[T any](configPath string, target *T) (bool, error) {
	// #nosec G304 -- configPath is chosen by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(configFile))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return false, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return true, nil
}

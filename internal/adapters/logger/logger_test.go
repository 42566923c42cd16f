package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modcache/internal/adapters/logger"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/zerr"
)

func cacheOpenError() error {
	err := zerr.With(zerr.Wrap(domain.ErrCacheOpenFailed, ""), "checksum", "3f")
	return zerr.With(err, "reason", domain.ReasonNotFound)
}

func TestLogger_PrettyError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Error(cacheOpenError())

	g := goldie.New(t)
	g.Assert(t, "logger_error_cache", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Warn("cache entry unusable, recompiling")

	g := goldie.New(t)
	g.Assert(t, "logger_warn", buf.Bytes())
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.SetJSON(true)

	l.Error(cacheOpenError())

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "error opening module file: cache error", record["error"])
	assert.Equal(t, "3f", record["checksum"])
	assert.Equal(t, domain.ReasonNotFound, record["reason"])

	buf.Reset()
	l.Info("stored")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "stored", record["msg"])
}

func TestLogger_SetJSONKeepsOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	l.SetJSON(true)
	l.SetJSON(false)

	l.Info("plain")
	assert.Equal(t, "plain\n", buf.String())
}

func TestLogger_NilError(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_StandardError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)

	l.Error(errors.New("plain failure"))
	assert.Equal(t, "✗ Error: plain failure\n", buf.String())
}

package domain_test

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/modcache/internal/core/domain"
)

func TestCacheErrors_WrapErrCache(t *testing.T) {
	t.Parallel()

	kinds := []error{
		domain.ErrCacheOpenFailed,
		domain.ErrCacheDecodeFailed,
		domain.ErrCacheSerializeFailed,
		domain.ErrCacheCreateDirFailed,
		domain.ErrCacheWriteFailed,
		domain.ErrCacheDeleteFailed,
		domain.ErrCacheMetadataFailed,
	}
	for _, kind := range kinds {
		assert.ErrorIs(t, kind, domain.ErrCache, kind.Error())
	}

	assert.NotErrorIs(t, domain.ErrReadOnlyPath, domain.ErrCache)
}

func TestIOErrorReason(t *testing.T) {
	t.Parallel()

	_, statErr := os.Stat(filepath.Join(t.TempDir(), "missing"))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not exist", err: fs.ErrNotExist, want: domain.ReasonNotFound},
		{name: "real stat error", err: statErr, want: domain.ReasonNotFound},
		{name: "permission", err: fmt.Errorf("open: %w", fs.ErrPermission), want: domain.ReasonPermissionDenied},
		{name: "exists", err: fs.ErrExist, want: domain.ReasonAlreadyExists},
		{name: "other", err: errors.New("disk on fire"), want: domain.ReasonIOFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.IOErrorReason(tt.err))
		})
	}
}

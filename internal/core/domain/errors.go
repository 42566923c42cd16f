package domain

import (
	"errors"
	"io/fs"
	"syscall"

	"go.trai.ch/zerr"
)

// Cache construction errors. They never carry operating system error text so
// that every node reports the same failure for the same situation.
var (
	// ErrCouldNotStatPath is returned when the metadata of the cache path cannot be read.
	ErrCouldNotStatPath = zerr.New("could not get metadata of cache path")

	// ErrReadOnlyPath is returned when the cache path is a read-only directory.
	ErrReadOnlyPath = zerr.New("the supplied path is read-only")

	// ErrExistsButNotDirectory is returned when the cache path exists but is not a directory.
	ErrExistsButNotDirectory = zerr.New("the supplied path already exists but is not a directory")

	// ErrCouldNotCreatePath is returned when the cache path cannot be created.
	ErrCouldNotCreatePath = zerr.New("could not create cache path")
)

// ErrCache is the root of every operational cache error.
var ErrCache = zerr.New("cache error")

// Operational cache errors. All of them wrap ErrCache.
var (
	// ErrCacheOpenFailed is returned when a stored module cannot be opened or read.
	ErrCacheOpenFailed = zerr.Wrap(ErrCache, "error opening module file")

	// ErrCacheDecodeFailed is returned when a stored module fails structural decoding.
	ErrCacheDecodeFailed = zerr.Wrap(ErrCache, "error deserializing module")

	// ErrCacheSerializeFailed is returned when a module cannot be serialized.
	ErrCacheSerializeFailed = zerr.Wrap(ErrCache, "error serializing module")

	// ErrCacheCreateDirFailed is returned when the versioned modules directory cannot be created.
	ErrCacheCreateDirFailed = zerr.Wrap(ErrCache, "error creating modules directory")

	// ErrCacheWriteFailed is returned when a module cannot be written to disk.
	ErrCacheWriteFailed = zerr.Wrap(ErrCache, "error writing module to disk")

	// ErrCacheDeleteFailed is returned when a stored module cannot be deleted.
	ErrCacheDeleteFailed = zerr.Wrap(ErrCache, "error deleting module from disk")

	// ErrCacheMetadataFailed is returned when the size of a stored module cannot be determined.
	ErrCacheMetadataFailed = zerr.Wrap(ErrCache, "error getting file metadata")
)

// Domain and application errors.
var (
	// ErrInvalidChecksum is returned when a checksum string is malformed.
	ErrInvalidChecksum = zerr.New("invalid checksum, expected 64 hex characters")

	// ErrModuleNotCached is returned when a module requested by checksum is not in the cache.
	ErrModuleNotCached = zerr.New("module not found in cache")

	// ErrProgramReadFailed is returned when a program source file cannot be read.
	ErrProgramReadFailed = zerr.New("failed to read program")

	// ErrCompileFailed is returned when the engine rejects a program.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrExecutionFailed is returned when a call into a module fails.
	ErrExecutionFailed = zerr.New("execution failed")

	// ErrInvalidArgument is returned when a call argument is not an integer.
	ErrInvalidArgument = zerr.New("invalid argument, expected an integer")

	// ErrPruneFailed is returned when a stale version directory cannot be removed.
	ErrPruneFailed = zerr.New("failed to prune stale cache version")

	// ErrStatFailed is returned when the cache directory cannot be listed.
	ErrStatFailed = zerr.New("failed to inspect cache directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration value")

	// ErrInvalidLogFormat is returned when the log format is not one of auto, pretty or json.
	ErrInvalidLogFormat = zerr.New("invalid log format, expected 'auto', 'pretty' or 'json'")
)

// Reasons attached to cache errors in place of operating system messages.
const (
	ReasonNotFound         = "not_found"
	ReasonPermissionDenied = "permission_denied"
	ReasonAlreadyExists    = "already_exists"
	ReasonIsDirectory      = "is_directory"
	ReasonIOFailure        = "io_failure"
)

// IOErrorReason maps a filesystem error onto a small fixed vocabulary that is
// identical across operating systems.
func IOErrorReason(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ReasonNotFound
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermissionDenied
	case errors.Is(err, fs.ErrExist):
		return ReasonAlreadyExists
	case errors.Is(err, syscall.EISDIR):
		return ReasonIsDirectory
	default:
		return ReasonIOFailure
	}
}

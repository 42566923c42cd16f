// Package cas implements the content addressable module cache.
//
// Compiled modules are stored one file per program under
//
//	<base>/<format>-engine<build-id>/<checksum-hex>
//
// so that modules produced by different engine builds or serialization
// formats never share a directory. The cache keeps no state besides two
// strings: every operation goes straight to the filesystem.
package cas

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

const tempPattern = ".tmp-*"

// Cache implements ports.ModuleCache on top of a trusted directory.
type Cache struct {
	basePath string
	version  domain.VersionTag
	codec    ports.ModuleCodec
}

var _ ports.ModuleCache = (*Cache)(nil)

// New opens the cache rooted at dir, creating the directory if needed.
//
// Construction errors never include the operating system message, only one
// of the domain construction sentinels.
func New(dir domain.TrustedDir, codec ports.ModuleCodec) (*Cache, error) {
	base := filepath.Clean(dir.Path())

	info, err := os.Stat(base)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, domain.ErrExistsButNotDirectory
		}
		if info.Mode().Perm()&0o222 == 0 {
			return nil, domain.ErrReadOnlyPath
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(base, domain.DirPerm); err != nil {
			return nil, domain.ErrCouldNotCreatePath
		}
	default:
		return nil, domain.ErrCouldNotStatPath
	}

	return &Cache{
		basePath: base,
		version:  domain.NewVersionTag(codec.BuildID()),
		codec:    codec,
	}, nil
}

// BasePath returns the directory holding all version partitions.
func (c *Cache) BasePath() string {
	return c.basePath
}

// Version returns the tag of the partition this cache reads and writes.
func (c *Cache) Version() domain.VersionTag {
	return c.version
}

// Load returns the module stored for checksum. A missing entry is reported
// as nil, nil.
func (c *Cache) Load(checksum domain.Checksum, limits domain.Limits) (*domain.CachedModule, error) {
	path := c.modulePath(checksum)

	data, err := readModule(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, cacheError(domain.ErrCacheOpenFailed, checksum, err)
	}

	module, err := c.codec.Deserialize(domain.AssumeTrustedArtifact(data), limits)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheDecodeFailed, ""), "checksum", checksum.Hex())
	}

	return &domain.CachedModule{
		Module: module,
		Size:   int64(len(data)),
	}, nil
}

// Store serializes m and atomically replaces the entry for checksum.
// It returns the estimated size of the stored module.
func (c *Cache) Store(checksum domain.Checksum, m *domain.Module) (int64, error) {
	dir := c.modulesPath()
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return 0, cacheError(domain.ErrCacheCreateDirFailed, checksum, err)
	}

	data, err := c.codec.Serialize(m)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrCacheSerializeFailed, ""), "checksum", checksum.Hex())
	}

	path := c.modulePath(checksum)
	if err := writeFileAtomic(dir, path, data); err != nil {
		return 0, cacheError(domain.ErrCacheWriteFailed, checksum, err)
	}

	size, err := EstimateModuleSize(path)
	if err != nil {
		return 0, zerr.With(err, "checksum", checksum.Hex())
	}
	return size, nil
}

// Remove deletes the entry for checksum. It reports false when there was
// nothing to delete.
func (c *Cache) Remove(checksum domain.Checksum) (bool, error) {
	if err := os.Remove(c.modulePath(checksum)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, cacheError(domain.ErrCacheDeleteFailed, checksum, err)
	}
	return true, nil
}

func (c *Cache) modulesPath() string {
	return filepath.Join(c.basePath, c.version.String())
}

func (c *Cache) modulePath(checksum domain.Checksum) string {
	return filepath.Join(c.modulesPath(), checksum.Hex())
}

// readModule reads the whole file through a single handle so a concurrent
// remove cannot make the size and the contents disagree.
func readModule(path string) ([]byte, error) {
	//nolint:gosec // Path is constructed from a trusted directory and a hex checksum
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: syscall.EISDIR}
	}

	data := make([]byte, info.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

func writeFileAtomic(dir, path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(domain.FilePerm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func cacheError(kind error, checksum domain.Checksum, cause error) error {
	err := zerr.With(zerr.Wrap(kind, ""), "checksum", checksum.Hex())
	return zerr.With(err, "reason", domain.IOErrorReason(cause))
}

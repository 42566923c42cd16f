package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/modcache/internal/adapters/cas"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// StoreResult describes a module written to the cache.
type StoreResult struct {
	Path     string
	Checksum domain.Checksum
	Size     int64
}

// Store compiles the program at path and writes the module to the cache.
func (a *App) Store(ctx context.Context, path string) (StoreResult, error) {
	code, checksum, err := readProgram(path)
	if err != nil {
		return StoreResult{}, err
	}

	size, err := a.compileAndStore(ctx, checksum, code)
	if err != nil {
		return StoreResult{}, err
	}

	return StoreResult{Path: path, Checksum: checksum, Size: size}, nil
}

// compileAndStore is shared by Store and Warm. Identical programs compiled
// at the same time are compiled and written only once.
func (a *App) compileAndStore(ctx context.Context, checksum domain.Checksum, code []byte) (int64, error) {
	v, err, _ := a.group.Do("store:"+checksum.Hex(), func() (any, error) {
		cache, err := a.moduleCache()
		if err != nil {
			return int64(0), err
		}
		m, err := a.compile(ctx, checksum, code)
		if err != nil {
			return int64(0), err
		}
		return a.storeModule(ctx, cache, checksum, m)
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// LoadResult describes a module found in the cache.
type LoadResult struct {
	Checksum domain.Checksum
	Exports  []string
	Size     int64
}

// Load reads the module stored under the hex checksum. A miss is reported as
// domain.ErrModuleNotCached.
func (a *App) Load(ctx context.Context, hexChecksum string) (LoadResult, error) {
	checksum, err := domain.ParseChecksum(hexChecksum)
	if err != nil {
		return LoadResult{}, err
	}

	cache, err := a.moduleCache()
	if err != nil {
		return LoadResult{}, err
	}

	cached, err := a.loadModule(ctx, cache, checksum)
	if err != nil {
		return LoadResult{}, err
	}
	if cached == nil {
		return LoadResult{}, zerr.With(zerr.Wrap(domain.ErrModuleNotCached, ""), "checksum", checksum.Hex())
	}

	exports := make([]string, 0, len(cached.Module.Exports))
	for name := range cached.Module.Exports {
		exports = append(exports, name)
	}
	slices.Sort(exports)

	return LoadResult{Checksum: checksum, Exports: exports, Size: cached.Size}, nil
}

// Remove deletes the module stored under the hex checksum and reports
// whether it existed.
func (a *App) Remove(ctx context.Context, hexChecksum string) (bool, error) {
	checksum, err := domain.ParseChecksum(hexChecksum)
	if err != nil {
		return false, err
	}

	cache, err := a.moduleCache()
	if err != nil {
		return false, err
	}

	_, span := a.tracer.Start(ctx, "cache.remove", ports.WithAttribute("checksum", checksum.Hex()))
	defer span.End()

	existed, err := cache.Remove(checksum)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	span.SetAttribute("existed", existed)
	return existed, nil
}

// Stats summarises the content of the cache directory.
type Stats struct {
	BasePath string
	Version  domain.VersionTag
	Entries  int
	// TotalSize is the sum of the estimated sizes of all active entries.
	TotalSize int64
	// Stale lists version directories left behind by other engine builds or
	// serialization formats.
	Stale []string
}

// Stat inspects the cache directory.
func (a *App) Stat(_ context.Context) (Stats, error) {
	cache, err := a.moduleCache()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{BasePath: cache.BasePath(), Version: cache.Version()}

	active := filepath.Join(stats.BasePath, stats.Version.String())
	entries, err := os.ReadDir(active)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Stats{}, statError(active, err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		size, err := cas.EstimateModuleSize(filepath.Join(active, entry.Name()))
		if err != nil {
			return Stats{}, err
		}
		stats.Entries++
		stats.TotalSize += size
	}

	stats.Stale, err = staleVersions(stats.BasePath, stats.Version)
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}

// Prune removes the version directories reported as stale by Stat and returns
// their names. The active version is never touched.
func (a *App) Prune(_ context.Context) ([]string, error) {
	cache, err := a.moduleCache()
	if err != nil {
		return nil, err
	}

	stale, err := staleVersions(cache.BasePath(), cache.Version())
	if err != nil {
		return nil, err
	}

	var (
		removed []string
		errs    error
	)
	for _, name := range stale {
		if err := os.RemoveAll(filepath.Join(cache.BasePath(), name)); err != nil {
			pruneErr := zerr.With(zerr.Wrap(domain.ErrPruneFailed, ""), "version", name)
			errs = errors.Join(errs, zerr.With(pruneErr, "reason", domain.IOErrorReason(err)))
			continue
		}
		a.logger.Info("removed stale cache version " + name)
		removed = append(removed, name)
	}

	return removed, errs
}

func staleVersions(base string, active domain.VersionTag) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, statError(base, err)
	}

	var stale []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		tag, ok := domain.ParseVersionTag(entry.Name())
		if !ok || tag == active {
			continue
		}
		stale = append(stale, entry.Name())
	}
	return stale, nil
}

func statError(path string, err error) error {
	return zerr.With(
		zerr.With(zerr.Wrap(domain.ErrStatFailed, ""), "path", path),
		"reason", domain.IOErrorReason(err),
	)
}

func (a *App) loadModule(
	ctx context.Context,
	cache ports.ModuleCache,
	checksum domain.Checksum,
) (*domain.CachedModule, error) {
	_, span := a.tracer.Start(ctx, "cache.load", ports.WithAttribute("checksum", checksum.Hex()))
	defer span.End()

	cached, err := cache.Load(checksum, a.Config().Limits)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("hit", cached != nil)
	if cached != nil {
		span.SetAttribute("size", cached.Size)
	}
	return cached, nil
}

func (a *App) storeModule(
	ctx context.Context,
	cache ports.ModuleCache,
	checksum domain.Checksum,
	m *domain.Module,
) (int64, error) {
	_, span := a.tracer.Start(ctx, "cache.store", ports.WithAttribute("checksum", checksum.Hex()))
	defer span.End()

	size, err := cache.Store(checksum, m)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttribute("size", size)
	return size, nil
}

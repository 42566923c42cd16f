package ports

import "go.trai.ch/modcache/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=module_cache.go -destination=mocks/mock_module_cache.go -package=mocks

// ModuleCache stores compiled modules keyed by the checksum of their source.
type ModuleCache interface {
	// Load returns the cached module for checksum bound to limits.
	// Returns nil, nil on a cache miss.
	Load(checksum domain.Checksum, limits domain.Limits) (*domain.CachedModule, error)

	// Store persists m under checksum, replacing any previous entry, and
	// returns the estimated size of the stored module.
	Store(checksum domain.Checksum, m *domain.Module) (int64, error)

	// Remove deletes the entry for checksum and reports whether it existed.
	Remove(checksum domain.Checksum) (bool, error)

	// BasePath returns the directory holding all version partitions.
	BasePath() string

	// Version returns the version tag of the active partition.
	Version() domain.VersionTag
}

// CacheOpener opens a module cache rooted at a trusted directory.
type CacheOpener interface {
	Open(dir domain.TrustedDir) (ModuleCache, error)
}

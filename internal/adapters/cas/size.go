package cas

import (
	"os"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// EstimateModuleSize approximates the in-memory size of the module stored at
// path. Stored modules are close to a literal memory dump, so the file length
// is a reasonable estimate. It is a heuristic, not exact accounting.
func EstimateModuleSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrCacheMetadataFailed, ""), "reason", domain.IOErrorReason(err))
	}
	return info.Size(), nil
}

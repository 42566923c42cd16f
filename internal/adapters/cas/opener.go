package cas

import (
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
)

// Opener opens caches that share a single codec.
type Opener struct {
	codec ports.ModuleCodec
}

// NewOpener returns an Opener serializing modules with codec.
func NewOpener(codec ports.ModuleCodec) *Opener {
	return &Opener{codec: codec}
}

// Open implements ports.CacheOpener.
func (o *Opener) Open(dir domain.TrustedDir) (ports.ModuleCache, error) {
	c, err := New(dir, o.codec)
	if err != nil {
		return nil, err
	}
	return c, nil
}

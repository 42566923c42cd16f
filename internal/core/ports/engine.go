package ports

import (
	"context"

	"go.trai.ch/modcache/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

// ModuleCodec converts compiled modules to and from their on-disk layout.
type ModuleCodec interface {
	// BuildID identifies the running engine build. Modules serialized by
	// builds with different IDs are not binary compatible.
	BuildID() uint32

	// Serialize returns the on-disk representation of m.
	Serialize(m *domain.Module) ([]byte, error)

	// Deserialize reconstructs a module from its on-disk representation and
	// binds it to limits. Only structural checks are performed; the
	// artifact must come from a trusted source.
	Deserialize(artifact domain.TrustedArtifact, limits domain.Limits) (*domain.Module, error)
}

// Engine compiles and executes programs.
type Engine interface {
	ModuleCodec

	// Compile validates and compiles raw program bytes.
	Compile(code []byte, limits domain.Limits) (*domain.Module, error)

	// Execute calls the exported function of m with args.
	Execute(ctx context.Context, m *domain.Module, export string, args []int64) (domain.ExecResult, error)
}

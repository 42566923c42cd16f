// Package vm is a small stack machine used as the reference engine for the
// module cache.
//
// Programs are line oriented assembly:
//
//	# sum of 1..n
//	func sum 1 1
//	loop:
//	  get 0
//	  jz done
//	  get 1
//	  get 0
//	  add
//	  set 1
//	  get 0
//	  push 1
//	  sub
//	  set 0
//	  jmp loop
//	done:
//	  get 1
//	  ret
//
// A function header names the function, its parameter count and an optional
// number of extra locals. Parameters occupy the first local slots.
package vm

import (
	"context"
	"encoding/binary"
	"runtime"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Version identifies the instruction semantics of this engine. Changing the
// meaning of any opcode requires a new value.
const Version = "modvm/1"

var _ ports.Engine = (*Engine)(nil)

// Engine compiles, serializes and executes programs.
type Engine struct {
	buildID uint32
}

// New returns an Engine whose build ID is derived from Version and the
// properties of the running platform that affect the module layout.
func New() *Engine {
	return &Engine{buildID: computeBuildID(Version)}
}

func computeBuildID(version string) uint32 {
	h := xxhash.New()
	_, _ = h.WriteString(version)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(runtime.GOARCH)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(nativeByteOrder())
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(strconv.Itoa(instructionSize))
	return uint32(h.Sum64())
}

func nativeByteOrder() string {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return "little"
	}
	return "big"
}

// BuildID implements ports.ModuleCodec.
func (e *Engine) BuildID() uint32 {
	return e.buildID
}

// Compile implements ports.Engine.
func (e *Engine) Compile(code []byte, limits domain.Limits) (*domain.Module, error) {
	m, err := compile(code, limits)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCompileFailed.Error())
	}
	return m, nil
}

// Serialize implements ports.ModuleCodec.
func (e *Engine) Serialize(m *domain.Module) ([]byte, error) {
	return serialize(m)
}

// Deserialize implements ports.ModuleCodec.
func (e *Engine) Deserialize(artifact domain.TrustedArtifact, limits domain.Limits) (*domain.Module, error) {
	return deserialize(artifact, limits)
}

// Execute implements ports.Engine.
func (e *Engine) Execute(ctx context.Context, m *domain.Module, export string, args []int64) (domain.ExecResult, error) {
	res, err := execute(ctx, m, export, args)
	if err != nil {
		return domain.ExecResult{}, zerr.Wrap(err, domain.ErrExecutionFailed.Error())
	}
	return res, nil
}

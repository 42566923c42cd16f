package vm

import (
	"encoding/binary"
	"unsafe"

	"github.com/fxamacker/cbor/v2"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// Module layout, all integers in native byte order:
//
//	0   magic               4 bytes
//	4   layout version      uint16
//	6   reserved            uint16
//	8   instruction count   uint32
//	12  export table length uint32
//	16  instructions        count * instructionSize bytes
//	..  export table        deterministic CBOR
const (
	headerSize      = 16
	layoutVersion   = 1
	instructionSize = int(unsafe.Sizeof(domain.Instruction{}))
)

var magic = [4]byte{'M', 'O', 'D', 'C'}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("vm: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("vm: CBOR decoder initialization failed: " + err.Error())
	}
}

func serialize(m *domain.Module) ([]byte, error) {
	exports, err := encMode.Marshal(m.Exports)
	if err != nil {
		return nil, zerr.Wrap(err, ErrExportTable.Error())
	}

	code := instructionBytes(m.Code)
	buf := make([]byte, headerSize, headerSize+len(code)+len(exports))
	copy(buf[0:4], magic[:])
	binary.NativeEndian.PutUint16(buf[4:6], layoutVersion)
	binary.NativeEndian.PutUint32(buf[8:12], uint32(len(m.Code)))
	binary.NativeEndian.PutUint32(buf[12:16], uint32(len(exports)))
	buf = append(buf, code...)
	buf = append(buf, exports...)
	return buf, nil
}

// deserialize performs a structural decode only. The instruction records are
// reinterpreted in place, so the returned module aliases the artifact bytes.
// Opcodes, jump targets and local indices are not validated here.
func deserialize(artifact domain.TrustedArtifact, limits domain.Limits) (*domain.Module, error) {
	data := artifact.Bytes()
	if len(data) < headerSize {
		return nil, zerr.With(zerr.Wrap(ErrLengthMismatch, ""), "length", len(data))
	}
	if [4]byte(data[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if v := binary.NativeEndian.Uint16(data[4:6]); v != layoutVersion {
		return nil, zerr.With(zerr.Wrap(ErrUnsupportedLayout, ""), "layout", v)
	}

	count := uint64(binary.NativeEndian.Uint32(data[8:12]))
	exportLen := uint64(binary.NativeEndian.Uint32(data[12:16]))
	codeEnd := headerSize + count*uint64(instructionSize)
	if codeEnd+exportLen != uint64(len(data)) {
		return nil, zerr.With(zerr.Wrap(ErrLengthMismatch, ""), "length", len(data))
	}

	var exports map[string]domain.Export
	if err := decMode.Unmarshal(data[codeEnd:], &exports); err != nil {
		return nil, ErrExportTable
	}

	return &domain.Module{
		Code:    viewInstructions(data[headerSize:codeEnd], int(count)),
		Exports: exports,
		Limits:  limits,
	}, nil
}

func instructionBytes(code []domain.Instruction) []byte {
	if len(code) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&code[0])), len(code)*instructionSize)
}

// viewInstructions returns the instructions stored in b. It aliases b when b
// is suitably aligned and copies otherwise.
func viewInstructions(b []byte, count int) []domain.Instruction {
	if count == 0 {
		return []domain.Instruction{}
	}
	ptr := unsafe.Pointer(&b[0])
	if uintptr(ptr)%unsafe.Alignof(domain.Instruction{}) == 0 {
		return unsafe.Slice((*domain.Instruction)(ptr), count)
	}
	code := make([]domain.Instruction, count)
	copy(instructionBytes(code), b)
	return code
}

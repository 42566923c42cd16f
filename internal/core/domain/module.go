package domain

// Opcode identifies a bytecode instruction.
type Opcode uint32

// Opcodes understood by the engine. The numeric values are part of the
// serialized module layout; append only.
const (
	OpNop Opcode = iota
	OpPush
	OpPop
	OpDup
	OpSwap
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpEq
	OpLt
	OpGt
	OpGet
	OpSet
	OpJmp
	OpJz
	OpRet

	// OpcodeCount is the number of defined opcodes.
	OpcodeCount
)

// Instruction is a single compiled instruction. Its in-memory layout is its
// on-disk layout, so it must stay a fixed-size record without pointers.
type Instruction struct {
	Op  Opcode
	Aux uint32
	Arg int64
}

// Export describes an exported function of a module.
type Export struct {
	// Entry is the index of the first instruction.
	Entry uint32 `cbor:"1,keyasint"`
	// Params is the number of arguments the function takes.
	Params uint32 `cbor:"2,keyasint"`
	// Locals is the number of local slots besides the parameters.
	Locals uint32 `cbor:"3,keyasint"`
}

// Limits bounds the execution of a module instance.
type Limits struct {
	// GasLimit is the maximum number of instructions a single call may execute.
	GasLimit uint64
	// StackSize is the maximum size of the operand stack in bytes.
	StackSize uint64
}

// DefaultLimits returns the limits used when nothing else is configured.
func DefaultLimits() Limits {
	return Limits{
		GasLimit:  DefaultGasLimit,
		StackSize: DefaultStackSize,
	}
}

const (
	// DefaultGasLimit is the default instruction budget per call.
	DefaultGasLimit = 1_000_000
	// DefaultStackSize is the default operand stack size in bytes.
	DefaultStackSize = 64 * 1024
)

// Module is a compiled, ready to execute program.
type Module struct {
	Code    []Instruction
	Exports map[string]Export
	Limits  Limits
}

// CachedModule is a module loaded from the module cache together with its
// estimated in-memory size.
type CachedModule struct {
	Module *Module
	// Size approximates the resident size of Module in bytes.
	Size int64
}

// ExecResult is the outcome of a successful call.
type ExecResult struct {
	Value   int64
	GasUsed uint64
}

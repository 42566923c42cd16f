package vm

import "go.trai.ch/zerr"

// Compile errors. Each is returned with the offending source line attached
// as "line" metadata.
var (
	ErrEmptyProgram        = zerr.New("program defines no functions")
	ErrOutsideFunction     = zerr.New("instruction outside of a function")
	ErrUnknownOpcode       = zerr.New("unknown opcode")
	ErrBadOperand          = zerr.New("invalid operand")
	ErrBadFunction         = zerr.New("invalid function declaration")
	ErrDuplicateFunction   = zerr.New("duplicate function name")
	ErrDuplicateLabel      = zerr.New("duplicate label")
	ErrUndefinedLabel      = zerr.New("undefined label")
	ErrDanglingLabel       = zerr.New("label is not followed by an instruction")
	ErrLocalOutOfRange     = zerr.New("local index out of range")
	ErrMissingTerminator   = zerr.New("function must end with ret or jmp")
	ErrTooManyInstructions = zerr.New("program exceeds the maximum number of instructions")
)

// Codec errors.
var (
	ErrBadMagic          = zerr.New("not a compiled module")
	ErrUnsupportedLayout = zerr.New("unsupported module layout version")
	ErrLengthMismatch    = zerr.New("module length does not match its header")
	ErrExportTable       = zerr.New("malformed export table")
)

// Execution errors.
var (
	ErrExportNotFound = zerr.New("export not found")
	ErrArgumentCount  = zerr.New("wrong number of arguments")
	ErrOutOfGas       = zerr.New("out of gas")
	ErrStackOverflow  = zerr.New("stack overflow")
	ErrStackUnderflow = zerr.New("stack underflow")
	ErrDivisionByZero = zerr.New("division by zero")
	ErrInvalidJump    = zerr.New("jump target out of range")
	ErrInvalidOpcode  = zerr.New("invalid opcode")
	ErrInvalidLocal   = zerr.New("local index out of range at runtime")
)

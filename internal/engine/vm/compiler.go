package vm

import (
	"bufio"
	"bytes"
	"math"
	"strconv"
	"strings"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxInstructions keeps every instruction index representable in Aux.
const maxInstructions int64 = math.MaxUint32

var opcodeNames = map[string]domain.Opcode{
	"nop":  domain.OpNop,
	"push": domain.OpPush,
	"pop":  domain.OpPop,
	"dup":  domain.OpDup,
	"swap": domain.OpSwap,
	"add":  domain.OpAdd,
	"sub":  domain.OpSub,
	"mul":  domain.OpMul,
	"div":  domain.OpDiv,
	"rem":  domain.OpRem,
	"eq":   domain.OpEq,
	"lt":   domain.OpLt,
	"gt":   domain.OpGt,
	"get":  domain.OpGet,
	"set":  domain.OpSet,
	"jmp":  domain.OpJmp,
	"jz":   domain.OpJz,
	"ret":  domain.OpRet,
}

type operandKind int

const (
	operandNone operandKind = iota
	operandInt
	operandLocal
	operandLabel
)

func operandOf(op domain.Opcode) operandKind {
	switch op {
	case domain.OpPush:
		return operandInt
	case domain.OpGet, domain.OpSet:
		return operandLocal
	case domain.OpJmp, domain.OpJz:
		return operandLabel
	default:
		return operandNone
	}
}

type fixup struct {
	index int
	label string
	line  int
}

type pendingLabel struct {
	name string
	line int
}

// function collects the state of the function being compiled.
type function struct {
	name   string
	export domain.Export
	labels map[string]int
	fixups []fixup

	// pending holds the labels seen since the last instruction.
	pending []pendingLabel
}

type compiler struct {
	code    []domain.Instruction
	exports map[string]domain.Export
	current *function
}

func compile(src []byte, limits domain.Limits) (*domain.Module, error) {
	c := &compiler{exports: make(map[string]domain.Export)}

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "func" {
			if err := c.finish(); err != nil {
				return nil, err
			}
		}
		if err := c.statement(fields, line); err != nil {
			return nil, zerr.With(zerr.Wrap(err, ""), "line", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to scan program")
	}

	if err := c.finish(); err != nil {
		return nil, err
	}
	if len(c.exports) == 0 {
		return nil, ErrEmptyProgram
	}

	return &domain.Module{
		Code:    c.code,
		Exports: c.exports,
		Limits:  limits,
	}, nil
}

func (c *compiler) statement(fields []string, line int) error {
	head := fields[0]

	if head == "func" {
		return c.begin(fields[1:])
	}

	if c.current == nil {
		return ErrOutsideFunction
	}

	if strings.HasSuffix(head, ":") && len(fields) == 1 {
		return c.label(strings.TrimSuffix(head, ":"), line)
	}

	return c.instruction(fields, line)
}

func (c *compiler) begin(args []string) error {
	if len(args) < 2 || len(args) > 3 || !validName(args[0]) {
		return ErrBadFunction
	}
	name := args[0]
	if _, ok := c.exports[name]; ok {
		return zerr.With(zerr.Wrap(ErrDuplicateFunction, ""), "function", name)
	}

	params, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return ErrBadFunction
	}
	var locals uint64
	if len(args) == 3 {
		if locals, err = strconv.ParseUint(args[2], 10, 32); err != nil {
			return ErrBadFunction
		}
	}
	if params+locals > math.MaxUint32 {
		return ErrBadFunction
	}

	c.current = &function{
		name: name,
		export: domain.Export{
			Entry:  uint32(len(c.code)),
			Params: uint32(params),
			Locals: uint32(locals),
		},
		labels: make(map[string]int),
	}
	return nil
}

func (c *compiler) label(name string, line int) error {
	if !validName(name) {
		return zerr.With(zerr.Wrap(ErrBadOperand, ""), "label", name)
	}
	if _, ok := c.current.labels[name]; ok {
		return zerr.With(zerr.Wrap(ErrDuplicateLabel, ""), "label", name)
	}
	c.current.labels[name] = len(c.code)
	c.current.pending = append(c.current.pending, pendingLabel{name: name, line: line})
	return nil
}

func (c *compiler) instruction(fields []string, line int) error {
	op, ok := opcodeNames[fields[0]]
	if !ok {
		return zerr.With(zerr.Wrap(ErrUnknownOpcode, ""), "opcode", fields[0])
	}
	if int64(len(c.code)) >= maxInstructions {
		return ErrTooManyInstructions
	}

	kind := operandOf(op)
	switch {
	case kind == operandNone && len(fields) != 1:
		return zerr.With(zerr.Wrap(ErrBadOperand, ""), "opcode", fields[0])
	case kind != operandNone && len(fields) != 2:
		return zerr.With(zerr.Wrap(ErrBadOperand, ""), "opcode", fields[0])
	}

	inst := domain.Instruction{Op: op}
	switch kind {
	case operandInt:
		v, err := strconv.ParseInt(fields[1], 0, 64)
		if err != nil {
			return zerr.With(zerr.Wrap(ErrBadOperand, ""), "operand", fields[1])
		}
		inst.Arg = v
	case operandLocal:
		idx, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return zerr.With(zerr.Wrap(ErrBadOperand, ""), "operand", fields[1])
		}
		if idx >= uint64(c.current.export.Params)+uint64(c.current.export.Locals) {
			return zerr.With(zerr.Wrap(ErrLocalOutOfRange, ""), "local", idx)
		}
		inst.Aux = uint32(idx)
	case operandLabel:
		c.current.fixups = append(c.current.fixups, fixup{index: len(c.code), label: fields[1], line: line})
	}

	c.current.pending = c.current.pending[:0]
	c.code = append(c.code, inst)
	return nil
}

// finish closes the current function: it resolves jumps and checks that
// control never falls off its end.
func (c *compiler) finish() error {
	fn := c.current
	if fn == nil {
		return nil
	}
	c.current = nil

	if len(fn.pending) > 0 {
		p := fn.pending[0]
		return zerr.With(zerr.With(zerr.Wrap(ErrDanglingLabel, ""), "label", p.name), "line", p.line)
	}

	if len(c.code) == int(fn.export.Entry) {
		return zerr.With(zerr.Wrap(ErrMissingTerminator, ""), "function", fn.name)
	}
	last := c.code[len(c.code)-1].Op
	if last != domain.OpRet && last != domain.OpJmp {
		return zerr.With(zerr.Wrap(ErrMissingTerminator, ""), "function", fn.name)
	}

	for _, f := range fn.fixups {
		target, ok := fn.labels[f.label]
		if !ok {
			return zerr.With(zerr.With(zerr.Wrap(ErrUndefinedLabel, ""), "label", f.label), "line", f.line)
		}
		c.code[f.index].Aux = uint32(target)
	}

	c.exports[fn.name] = fn.export
	return nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

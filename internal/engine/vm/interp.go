package vm

import (
	"context"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	slotSize = 8

	// cancelCheckInterval is the number of instructions between context checks.
	cancelCheckInterval = 1024
)

type machine struct {
	code   []domain.Instruction
	stack  []int64
	locals []int64
	max    int
	gas    uint64
	limit  uint64
}

func execute(ctx context.Context, m *domain.Module, export string, args []int64) (domain.ExecResult, error) {
	exp, ok := m.Exports[export]
	if !ok {
		return domain.ExecResult{}, zerr.With(zerr.Wrap(ErrExportNotFound, ""), "export", export)
	}
	if uint64(len(args)) != uint64(exp.Params) {
		err := zerr.With(zerr.Wrap(ErrArgumentCount, ""), "expected", exp.Params)
		return domain.ExecResult{}, zerr.With(err, "got", len(args))
	}

	locals := make([]int64, uint64(exp.Params)+uint64(exp.Locals))
	copy(locals, args)

	maxSlots := m.Limits.StackSize / slotSize
	vm := &machine{
		code:   m.Code,
		stack:  make([]int64, 0, min(maxSlots, 256)),
		locals: locals,
		max:    int(min(maxSlots, uint64(^uint(0)>>1))),
		limit:  m.Limits.GasLimit,
	}

	value, err := vm.run(ctx, uint64(exp.Entry))
	if err != nil {
		return domain.ExecResult{}, zerr.With(zerr.Wrap(err, ""), "gas_used", vm.gas)
	}
	return domain.ExecResult{Value: value, GasUsed: vm.gas}, nil
}

func (vm *machine) push(v int64) error {
	if len(vm.stack) >= vm.max {
		return ErrStackOverflow
	}
	vm.stack = append(vm.stack, v)
	return nil
}

func (vm *machine) pop() (int64, error) {
	n := len(vm.stack)
	if n == 0 {
		return 0, ErrStackUnderflow
	}
	v := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	return v, nil
}

func (vm *machine) pop2() (a, b int64, err error) {
	if b, err = vm.pop(); err != nil {
		return 0, 0, err
	}
	if a, err = vm.pop(); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (vm *machine) local(idx uint32) (*int64, error) {
	if uint64(idx) >= uint64(len(vm.locals)) {
		return nil, zerr.With(zerr.Wrap(ErrInvalidLocal, ""), "local", idx)
	}
	return &vm.locals[idx], nil
}

func (vm *machine) jump(target uint32) (uint64, error) {
	if uint64(target) >= uint64(len(vm.code)) {
		return 0, zerr.With(zerr.Wrap(ErrInvalidJump, ""), "target", target)
	}
	return uint64(target), nil
}

//nolint:gocyclo // One case per opcode.
func (vm *machine) run(ctx context.Context, pc uint64) (int64, error) {
	for {
		if vm.gas >= vm.limit {
			return 0, ErrOutOfGas
		}
		vm.gas++
		if vm.gas%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, zerr.Wrap(err, "execution interrupted")
			}
		}

		if pc >= uint64(len(vm.code)) {
			return 0, zerr.With(zerr.Wrap(ErrInvalidJump, ""), "target", pc)
		}
		at := pc
		inst := vm.code[pc]
		pc++

		var err error
		switch inst.Op {
		case domain.OpNop:
		case domain.OpPush:
			err = vm.push(inst.Arg)
		case domain.OpPop:
			_, err = vm.pop()
		case domain.OpDup:
			var v int64
			if v, err = vm.pop(); err == nil {
				if err = vm.push(v); err == nil {
					err = vm.push(v)
				}
			}
		case domain.OpSwap:
			var a, b int64
			if a, b, err = vm.pop2(); err == nil {
				vm.stack = append(vm.stack, b, a)
			}
		case domain.OpAdd, domain.OpSub, domain.OpMul, domain.OpDiv, domain.OpRem,
			domain.OpEq, domain.OpLt, domain.OpGt:
			var a, b, r int64
			if a, b, err = vm.pop2(); err == nil {
				if r, err = arith(inst.Op, a, b); err == nil {
					err = vm.push(r)
				}
			}
		case domain.OpGet:
			var slot *int64
			if slot, err = vm.local(inst.Aux); err == nil {
				err = vm.push(*slot)
			}
		case domain.OpSet:
			var slot *int64
			if slot, err = vm.local(inst.Aux); err == nil {
				*slot, err = vm.pop()
			}
		case domain.OpJmp:
			pc, err = vm.jump(inst.Aux)
		case domain.OpJz:
			var v int64
			if v, err = vm.pop(); err == nil && v == 0 {
				pc, err = vm.jump(inst.Aux)
			}
		case domain.OpRet:
			return vm.pop()
		default:
			err = zerr.With(zerr.Wrap(ErrInvalidOpcode, ""), "opcode", uint32(inst.Op))
		}
		if err != nil {
			return 0, zerr.With(zerr.Wrap(err, ""), "pc", at)
		}
	}
}

func arith(op domain.Opcode, a, b int64) (int64, error) {
	switch op {
	case domain.OpAdd:
		return a + b, nil
	case domain.OpSub:
		return a - b, nil
	case domain.OpMul:
		return a * b, nil
	case domain.OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case domain.OpRem:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a % b, nil
	case domain.OpEq:
		return boolInt(a == b), nil
	case domain.OpLt:
		return boolInt(a < b), nil
	default:
		return boolInt(a > b), nil
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

package cpu

import (
	"fmt"
	"strings"
)

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_MUL = AluOp(1) // mul
	ALU_OP_MOD = AluOp(2) // mod
	ALU_OP_AND = AluOp(3) // and
	ALU_OP_OR  = AluOp(4) // or
	ALU_OP_XOR = AluOp(5) // xor
	ALU_OP_NOT = AluOp(6) // not
	ALU_OP_SHL = AluOp(7) // shl
	ALU_OP_SHR = AluOp(8) // shr
	ALU_OP_CMP = AluOp(9) // cmp
)

// Flags is the comparison flags register, 00000LGE.
type Flags uint8

const (
	FLAG_E = Flags(1 << 0) // Equal
	FLAG_G = Flags(1 << 1) // Greater-than
	FLAG_L = Flags(1 << 2) // Less-than
)

// Equal returns true if the last comparison was equal.
func (fl Flags) Equal() bool {
	return fl&FLAG_E != 0
}

// Greater returns true if the last comparison was greater-than.
func (fl Flags) Greater() bool {
	return fl&FLAG_G != 0
}

// Less returns true if the last comparison was less-than.
func (fl Flags) Less() bool {
	return fl&FLAG_L != 0
}

func (fl Flags) String() string {
	var sb strings.Builder
	for n, name := range []string{"L", "G", "E"} {
		if fl&(FLAG_L>>n) != 0 {
			sb.WriteString(name)
		} else {
			sb.WriteString("-")
		}
	}
	return fmt.Sprintf("%08b %v", uint8(fl), sb.String())
}

// compare returns the flags for a comparison of a against b.
// Exactly one flag is set.
func compare(a, b uint8) Flags {
	switch {
	case a == b:
		return FLAG_E
	case a > b:
		return FLAG_G
	}
	return FLAG_L
}

// DoAlu performs the requested ALU action on a and b, and returns the
// new value of a and the new flags. Only ALU_OP_CMP changes the flags,
// and ALU_OP_CMP leaves a unchanged.
//
// ALU_OP_MOD requires b != 0; a zero divisor returns a unchanged, as the
// caller is expected to have reported the hazard instead.
func DoAlu(op AluOp, a, b uint8, in Flags) (out uint8, fl Flags) {
	out, fl = a, in

	switch op {
	case ALU_OP_ADD:
		out = a + b
	case ALU_OP_MUL:
		out = a * b
	case ALU_OP_MOD:
		if b != 0 {
			out = a % b
		}
	case ALU_OP_AND:
		out = a & b
	case ALU_OP_OR:
		out = a | b
	case ALU_OP_XOR:
		out = a ^ b
	case ALU_OP_NOT:
		out = ^a
	case ALU_OP_SHL:
		// Shifts of 8 or more leave nothing.
		out = a << b
	case ALU_OP_SHR:
		out = a >> b
	case ALU_OP_CMP:
		fl = compare(a, b)
	}

	return
}

// Alu applies op to registers ra and rb, updating ra or the flags.
func (cpu *Cpu) Alu(op AluOp, ra, rb uint8) {
	ra &= REGISTER_MASK
	rb &= REGISTER_MASK

	cpu.Register[ra], cpu.Fl = DoAlu(op, cpu.Register[ra], cpu.Register[rb], cpu.Fl)
}

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/io"
)

const (
	RAM_SIZE      = 256  // Bytes of addressable memory.
	REGISTERS     = 8    // General purpose registers.
	REGISTER_MASK = 0x7  // Mask applied to register operands.
	STACK_TOP     = 0xF4 // Initial stack pointer, the stack is empty.
)

// Reserved registers.
const (
	IM = 5 // Interrupt mask, reserved.
	IS = 6 // Interrupt status, reserved.
	SP = 7 // Stack pointer.
)

var _cpu_defines = map[string]string{
	"RAM_SIZE":  fmt.Sprintf("%d", RAM_SIZE),
	"STACK_TOP": fmt.Sprintf("0x%02X", STACK_TOP),
	"IM":        "R5",
	"IS":        "R6",
	"SP":        "R7",
	"FL_E":      fmt.Sprintf("%d", FLAG_E),
	"FL_G":      fmt.Sprintf("%d", FLAG_G),
	"FL_L":      fmt.Sprintf("%d", FLAG_L),
}

// Defines returns the CPU's predefined assembler equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       uint8            // Program counter.
	Fl       Flags            // Flags register.
	Register [REGISTERS]uint8 // Register bank. R7 is the stack pointer.
	Ram      [RAM_SIZE]uint8  // Program and stack memory.
	Halted   bool             // Set by HLT, or an undecodable instruction.
	Output   io.Channel       // Destination of PRN.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "fl", cpu.Fl)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("r%d", n), val)
	}
	return
}

// Reset the CPU state.
// - Clears the program counter, flags, registers and memory.
// - Sets the stack pointer to an empty stack.
// - Rewinds the output channel.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = 0
	cpu.Fl = 0
	clear(cpu.Register[:])
	clear(cpu.Ram[:])
	cpu.Register[SP] = STACK_TOP
	cpu.Halted = false
	cpu.Ticks = 0

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Load copies a program image into memory, starting at address 0.
// On error, memory is not modified.
func (cpu *Cpu) Load(data []uint8) (err error) {
	if len(data) > len(cpu.Ram) {
		err = ErrProgramSize
		return
	}

	copy(cpu.Ram[:], data)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(data))
	}

	return
}

// Read returns the byte at address.
func (cpu *Cpu) Read(address uint8) uint8 {
	return cpu.Ram[address]
}

// Write stores value at address.
func (cpu *Cpu) Write(address uint8, value uint8) {
	cpu.Ram[address] = value
}

// Decode the instruction at address.
// The operand bytes are read according to the opcode's encoded arity,
// wrapping at the end of memory.
func (cpu *Cpu) Decode(address uint8) (code Code) {
	code.Opcode = Opcode(cpu.Read(address))

	switch code.Opcode.Operands() {
	case 2:
		code.B = cpu.Read(address + 2)
		fallthrough
	case 1:
		code.A = cpu.Read(address + 1)
	}

	return
}

// Tick executes a single fetch, decode, execute cycle.
//
// After HLT or an unrecognized instruction the CPU is halted, and
// further ticks return ErrHalted. An unrecognized instruction returns
// ErrOpcode. A hazard (errors.Is(err, ErrHazard)) skips the instruction
// but does not halt the CPU.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	code := cpu.Decode(cpu.Pc)

	err = cpu.Execute(code)

	return
}

// Execute executes a single decoded instruction at the current program
// counter.
func (cpu *Cpu) Execute(code Code) (err error) {
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, code)
	}

	next_pc := cpu.Pc + uint8(code.Length())

	ra := code.A & REGISTER_MASK
	rb := code.B & REGISTER_MASK

	switch code.Opcode {
	case OP_HLT:
		cpu.Halted = true
	case OP_LDI:
		cpu.Register[ra] = code.B
	case OP_PRN:
		if cpu.Output == nil {
			err = ErrOutputAbsent
			break
		}
		err = cpu.Output.Send(cpu.Register[ra])
	case OP_PUSH:
		cpu.Push(cpu.Register[ra])
	case OP_POP:
		cpu.Register[ra] = cpu.Pop()
	case OP_CALL:
		cpu.Call(uint8(code.Length()))
		next_pc = cpu.Register[ra]
	case OP_RET:
		next_pc = cpu.Ret()
	case OP_JMP:
		next_pc = cpu.Register[ra]
	case OP_JEQ:
		if cpu.Fl.Equal() {
			next_pc = cpu.Register[ra]
		}
	case OP_JNE:
		if !cpu.Fl.Equal() {
			next_pc = cpu.Register[ra]
		}
	case OP_ADD, OP_MUL, OP_MOD, OP_AND, OP_OR, OP_XOR, OP_NOT, OP_SHL, OP_SHR, OP_CMP:
		op, _ := code.Opcode.AluOp()
		if op == ALU_OP_MOD && cpu.Register[rb] == 0 {
			err = ErrDivideByZero{Pc: cpu.Pc, Register: rb}
			break
		}
		cpu.Alu(op, ra, rb)
	default:
		// Every byte outside the instruction set.
		cpu.Halted = true
		err = ErrOpcode{Opcode: code.Opcode, Pc: cpu.Pc}
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}

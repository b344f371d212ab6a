package cpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

// newTestCpu returns a CPU with program loaded, printing to a buffer.
func newTestCpu(t *testing.T, program ...uint8) (cpu *Cpu, output *bytes.Buffer) {
	output = &bytes.Buffer{}

	cpu = NewCpu()
	cpu.Output = &io.Tape{Output: output}
	err := cpu.Load(program)
	if err != nil {
		t.Fatal(err)
	}

	return
}

// runTestCpu ticks until halted, collecting any hazards.
func runTestCpu(t *testing.T, cpu *Cpu) (hazards []error, err error) {
	for range 10000 {
		err = cpu.Tick()
		if errors.Is(err, ErrHazard) {
			hazards = append(hazards, err)
			err = nil
		}
		if err != nil || cpu.Halted {
			return
		}
	}
	t.Fatal("program did not halt")
	return
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Pc = 9
	cpu.Fl = FLAG_G
	cpu.Register[3] = 4
	cpu.Ram[0x80] = 1
	cpu.Halted = true

	cpu.Reset()

	assert.Equal(uint8(0), cpu.Pc)
	assert.Equal(Flags(0), cpu.Fl)
	assert.Equal([REGISTERS]uint8{0, 0, 0, 0, 0, 0, 0, STACK_TOP}, cpu.Register)
	assert.Equal([RAM_SIZE]uint8{}, cpu.Ram)
	assert.False(cpu.Halted)
}

func TestCpu_Load(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]uint8{1, 2, 3}))
	assert.Equal(uint8(1), cpu.Read(0))
	assert.Equal(uint8(3), cpu.Read(2))

	cpu.Reset()
	assert.ErrorIs(cpu.Load(make([]uint8, RAM_SIZE+1)), ErrProgramSize)
	assert.Equal([RAM_SIZE]uint8{}, cpu.Ram, "memory untouched")

	assert.NoError(cpu.Load(bytes.Repeat([]uint8{0xaa}, RAM_SIZE)))
	assert.Equal(uint8(0xaa), cpu.Read(0xff))
}

func TestCpu_Decode(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]uint8{
		uint8(OP_LDI), 1, 2,
		uint8(OP_PRN), 3,
		uint8(OP_HLT), 4, 5,
	}))

	assert.Equal(Code{Opcode: OP_LDI, A: 1, B: 2}, cpu.Decode(0))
	assert.Equal(Code{Opcode: OP_PRN, A: 3}, cpu.Decode(3))
	assert.Equal(Code{Opcode: OP_HLT}, cpu.Decode(5))

	// Operands wrap around the end of memory.
	cpu.Write(0xfe, uint8(OP_ADD))
	cpu.Write(0xff, 6)
	assert.Equal(Code{Opcode: OP_ADD, A: 6, B: uint8(OP_LDI)}, cpu.Decode(0xfe))
}

func TestCpu_Print5(t *testing.T) {
	assert := assert.New(t)

	cpu, output := newTestCpu(t,
		0b10000010, 0b00000000, 0b00000101, // LDI R0,5
		0b01000111, 0b00000000, // PRN R0
		0b00000001, // HLT
	)

	hazards, err := runTestCpu(t, cpu)
	assert.NoError(err)
	assert.Empty(hazards)
	assert.Equal("5\n", output.String())
	assert.True(cpu.Halted)
	assert.Equal(3, cpu.Ticks)

	assert.ErrorIs(cpu.Tick(), ErrHalted)
}

func TestCpu_CallRet(t *testing.T) {
	assert := assert.New(t)

	const target = 0x20

	cpu, _ := newTestCpu(t,
		uint8(OP_LDI), 2, target, // 0x00
		uint8(OP_CALL), 2, // 0x03
		uint8(OP_HLT), // 0x05
	)
	cpu.Write(target, uint8(OP_RET))

	assert.NoError(cpu.Tick())
	assert.NoError(cpu.Tick())
	assert.Equal(uint8(target), cpu.Pc)
	assert.Equal(uint8(STACK_TOP-1), cpu.Register[SP])
	assert.Equal(uint8(0x05), cpu.Ram[STACK_TOP-1])

	assert.NoError(cpu.Tick())
	assert.Equal(uint8(0x05), cpu.Pc)
	assert.Equal(uint8(STACK_TOP), cpu.Register[SP])

	assert.NoError(cpu.Tick())
	assert.True(cpu.Halted)
}

func TestCpu_Call_Length3(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Pc = 0x40
	cpu.Register[1] = 0x90

	assert.NoError(cpu.Execute(Code{Opcode: OP_CALL, A: 1}))
	assert.Equal(uint8(0x90), cpu.Pc)

	// A three byte call returns past both operands.
	cpu.Pc = 0x50
	cpu.Call(3)
	cpu.Pc = 0x99
	assert.Equal(uint8(0x53), cpu.Ret())
	assert.Equal(uint8(0x42), cpu.Ret())
}

func TestCpu_Jumps(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     Opcode
		fl     Flags
		expect uint8
	}){
		{"jmp", OP_JMP, 0, 0x80},
		{"jmp flags", OP_JMP, FLAG_G, 0x80},
		{"jeq taken", OP_JEQ, FLAG_E, 0x80},
		{"jeq greater", OP_JEQ, FLAG_G, 0x12},
		{"jeq less", OP_JEQ, FLAG_L, 0x12},
		{"jne taken greater", OP_JNE, FLAG_G, 0x80},
		{"jne taken less", OP_JNE, FLAG_L, 0x80},
		{"jne equal", OP_JNE, FLAG_E, 0x12},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Pc = 0x10
		cpu.Fl = entry.fl
		cpu.Register[4] = 0x80

		assert.NoError(cpu.Execute(Code{Opcode: entry.op, A: 4}), entry.name)
		assert.Equal(entry.expect, cpu.Pc, entry.name)
	}
}

func TestCpu_Loop(t *testing.T) {
	assert := assert.New(t)

	// Sum 1..10 with CMP/JNE.
	cpu, output := newTestCpu(t,
		uint8(OP_LDI), 0, 0, // 0x00 sum
		uint8(OP_LDI), 1, 0, // 0x03 i
		uint8(OP_LDI), 2, 10, // 0x06 limit
		uint8(OP_LDI), 3, 1, // 0x09 one
		uint8(OP_LDI), 4, 0x0f, // 0x0c loop
		uint8(OP_ADD), 1, 3, // 0x0f i++
		uint8(OP_ADD), 0, 1, // 0x12 sum += i
		uint8(OP_CMP), 1, 2, // 0x15
		uint8(OP_JNE), 4, // 0x18
		uint8(OP_PRN), 0, // 0x1a
		uint8(OP_HLT), // 0x1c
	)

	hazards, err := runTestCpu(t, cpu)
	assert.NoError(err)
	assert.Empty(hazards)
	assert.Equal("55\n", output.String())
	assert.Equal(FLAG_E, cpu.Fl)
}

func TestCpu_PushPop(t *testing.T) {
	assert := assert.New(t)

	cpu, output := newTestCpu(t,
		uint8(OP_LDI), 0, 1,
		uint8(OP_LDI), 1, 2,
		uint8(OP_PUSH), 0,
		uint8(OP_PUSH), 1,
		uint8(OP_POP), 0,
		uint8(OP_POP), 1,
		uint8(OP_PRN), 0,
		uint8(OP_PRN), 1,
		uint8(OP_HLT),
	)

	_, err := runTestCpu(t, cpu)
	assert.NoError(err)
	assert.Equal("2\n1\n", output.String())
	assert.Equal(uint8(STACK_TOP), cpu.Register[SP])
}

func TestCpu_ModByZero(t *testing.T) {
	assert := assert.New(t)

	cpu, output := newTestCpu(t,
		uint8(OP_LDI), 0, 9, // 0x00
		uint8(OP_MOD), 0, 1, // 0x03 R1 is 0
		uint8(OP_PRN), 0, // 0x06
		uint8(OP_PRN), 1, // 0x08
		uint8(OP_HLT), // 0x0a
	)

	hazards, err := runTestCpu(t, cpu)
	assert.NoError(err)
	assert.Equal("9\n0\n", output.String(), "dividend and divisor unchanged")
	assert.Len(hazards, 1)
	assert.Equal(ErrDivideByZero{Pc: 0x03, Register: 1}, hazards[0])
	assert.True(cpu.Halted)
}

func TestCpu_ModByZero_Tick(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, uint8(OP_MOD), 2, 3)
	cpu.Register[2] = 0x33

	err := cpu.Tick()
	assert.ErrorIs(err, ErrHazard)
	assert.False(cpu.Halted)
	assert.Equal(uint8(3), cpu.Pc, "execution continues")
	assert.Equal(uint8(0x33), cpu.Register[2])
	assert.Equal(uint8(0), cpu.Register[3])
}

func TestCpu_InvalidOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu, output := newTestCpu(t,
		uint8(OP_LDI), 0, 1,
		0b11111111,
		uint8(OP_PRN), 0,
		uint8(OP_HLT),
	)

	_, err := runTestCpu(t, cpu)
	assert.Equal(ErrOpcode{Opcode: 0xff, Pc: 3}, err)
	assert.Equal("unexpected instruction 0xFF at 0x03", err.Error())
	assert.True(cpu.Halted)
	assert.Equal(uint8(3), cpu.Pc)
	assert.Empty(output.String())
	assert.Equal(1, cpu.Ticks)
}

func TestCpu_InvalidOpcode_All(t *testing.T) {
	assert := assert.New(t)

	for ir := range 256 {
		op := Opcode(ir)
		cpu := NewCpu()
		cpu.Output = &io.Tape{Output: &bytes.Buffer{}}
		cpu.Write(0, uint8(ir))

		err := cpu.Tick()

		var eo ErrOpcode
		if op.Valid() {
			assert.False(errors.As(err, &eo), "%v", op)
		} else {
			assert.True(errors.As(err, &eo), "%v", op)
			assert.True(cpu.Halted, "%v", op)
		}
	}
}

func TestCpu_NoOutput(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]uint8{uint8(OP_PRN), 0}))

	assert.ErrorIs(cpu.Tick(), ErrOutputAbsent)
	assert.Equal(uint8(2), cpu.Pc)
}

func TestCpu_RegisterMask(t *testing.T) {
	assert := assert.New(t)

	// Register operands select from the bank by their low bits.
	cpu, output := newTestCpu(t,
		uint8(OP_LDI), 9, 0x42,
		uint8(OP_PRN), 1,
		uint8(OP_HLT),
	)

	_, err := runTestCpu(t, cpu)
	assert.NoError(err)
	assert.Equal("66\n", output.String())
}

func TestCpu_PcWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Pc = 0xfe
	cpu.Write(0xfe, uint8(OP_LDI))
	cpu.Write(0xff, 0)
	cpu.Write(0x00, 0x11)

	assert.NoError(cpu.Tick())
	assert.Equal(uint8(0x01), cpu.Pc)
	assert.Equal(uint8(0x11), cpu.Register[0])
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	text := cpu.String()

	assert.Contains(text, "   pc: 00\n")
	assert.Contains(text, "   r7: F4\n")
}

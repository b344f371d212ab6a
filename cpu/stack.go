package cpu

// The stack lives in memory and grows down from STACK_TOP. Register
// SP holds the address of the last pushed byte. There is no overflow or
// underflow detection: a pop of an empty stack reads whatever byte is at
// SP.

// Push decrements SP and writes value at the new SP.
func (cpu *Cpu) Push(value uint8) {
	cpu.Register[SP]--
	cpu.Write(cpu.Register[SP], value)
}

// Pop reads the byte at SP, zeros it, and increments SP.
func (cpu *Cpu) Pop() (value uint8) {
	sp := cpu.Register[SP]
	value = cpu.Read(sp)
	cpu.Write(sp, 0)
	cpu.Register[SP]++
	return
}

// Call pushes the return address, the address offset bytes past the
// current instruction.
func (cpu *Cpu) Call(offset uint8) {
	cpu.Push(cpu.Pc + offset)
}

// Ret pops the return address into the program counter.
func (cpu *Cpu) Ret() uint8 {
	cpu.Pc = cpu.Pop()
	return cpu.Pc
}

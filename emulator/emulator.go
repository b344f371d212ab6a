// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs LS-8 programs: a CPU, a program listing, and the
// tape the PRN instruction prints to.
package emulator

import (
	"errors"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
)

// Emulator state. CPU + program + output tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape io.Tape     // PRN output channel.
	Log  *log.Logger // Diagnostic stream for hazards and decode errors.
}

// NewEmulator creates a new emulator, printing to stdout and reporting
// diagnostics to stderr.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Log:     log.New(os.Stderr, "", 0),
	}

	emu.Tape.Output = os.Stdout
	emu.Cpu.Output = &emu.Tape

	return
}

// Reset the CPU, and load the program into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Binary())

	return
}

// LineNo returns the source line number for the instruction at the
// program counter, or 0 if unknown.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.Line.LineNo
}

// Tick performs a single instruction of the emulator.
// done is set once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	done = emu.Cpu.Halted

	if errors.Is(err, cpu.ErrHalted) {
		err = nil
	}

	return
}

// Run the program until it halts.
//
// Hazards, such as a MOD by zero, are reported and execution continues.
// An unrecognized instruction is reported and halts the program; this is
// a normal end of the run, and returns nil. Other errors, such as a
// failure to print, stop the run and are returned.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		switch {
		case err == nil:
		case errors.Is(err, cpu.ErrHazard):
			emu.Log.Printf("%v", err)
			err = nil
		case errors.As(err, new(cpu.ErrOpcode)):
			emu.Log.Printf("%v", err)
			err = nil
		default:
			return
		}

		if done {
			return
		}
	}
}

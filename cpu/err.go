package cpu

import (
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted       = translate.Error("cpu halted")
	ErrHazard       = translate.Error("hazard")
	ErrProgramSize  = translate.Error("program larger than memory")
	ErrOutputAbsent = translate.Error("no output channel")

	// Assembler errors
	ErrEquateSyntax       = translate.Error(".equ syntax")
	ErrEquateDuplicate    = translate.Error(".equ duplicated")
	ErrLabelDuplicate     = translate.Error("label duplicated")
	ErrLabelInvalid       = translate.Error("label invalid")
	ErrMacroSyntax        = translate.Error(".macro syntax")
	ErrMacroNesting       = translate.Error(".macro in .macro prohibited")
	ErrMacroDuplicate     = translate.Error(".macro duplicated")
	ErrMacroLonely        = translate.Error(".macro without .endm")
	ErrMacroLonelyEndm    = translate.Error(".endm without .macro")
	ErrOpcodeExtraArgs    = translate.Error("excessive arguments")
	ErrOpcodeValueMissing = translate.Error("value missing")
	ErrRegisterInvalid    = translate.Error("register invalid")
	ErrValueRange         = translate.Error("value out of byte range")
	ErrInstructionInvalid = translate.Error("instruction invalid")
)

// ErrOpcode is an unrecognized instruction byte at an address.
type ErrOpcode struct {
	Opcode Opcode
	Pc     uint8
}

func (eo ErrOpcode) Error() string {
	return f("unexpected instruction 0x%02X at 0x%02X", uint8(eo.Opcode), eo.Pc)
}

// ErrDivideByZero is a MOD instruction with a zero divisor register.
// The instruction is skipped, and execution continues.
type ErrDivideByZero struct {
	Pc       uint8
	Register uint8
}

func (ed ErrDivideByZero) Error() string {
	return f("attempt to divide by zero (R%d) at 0x%02X", ed.Register, ed.Pc)
}

func (ed ErrDivideByZero) Is(err error) bool {
	return err == ErrHazard
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}

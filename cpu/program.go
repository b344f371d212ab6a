package cpu

import (
	"io"
	"iter"
	"strings"

	"github.com/ezrec/ls8/image"
)

// Line is a line of source with the bytes it generated.
type Line struct {
	LineNo    int      // Source line number; 0 if unknown.
	Address   int      // Address of the first generated byte.
	Words     []string // Source words.
	Bytes     []uint8  // Generated bytes.
	LinkLabel string   // Label to resolve into the last byte.
}

// Program is a program listing, in address order.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug returns the source line that generated the byte at address.
func (prog *Program) Debug(address uint8) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(address) >= line.Address && int(address) < line.Address+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(address) - line.Address,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []uint8) {
	for _, value := range prog.Bytes() {
		bins = append(bins, value)
	}

	return
}

// Bytes returns an iterator over the address and value of each byte.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(address int, value uint8) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Address+n, value) {
					return
				}
			}
		}
	}
}

// Size returns the number of bytes in the program.
func (prog *Program) Size() (size int) {
	if len(prog.Lines) == 0 {
		return
	}

	last := prog.Lines[len(prog.Lines)-1]

	return last.Address + len(last.Bytes)
}

// programOf builds a listing from a program image.
func programOf(img *image.Image) (prog *Program, err error) {
	if len(img.Data) > RAM_SIZE {
		err = ErrProgramSize
		return
	}

	prog = &Program{}
	for address, value := range img.Data {
		prog.Lines = append(prog.Lines, Line{
			LineNo:  img.LineNo[address],
			Address: address,
			Bytes:   []uint8{value},
		})
	}

	return
}

// ReadImage reads a program image, one line per byte.
func ReadImage(r io.Reader) (prog *Program, err error) {
	img, err := image.Parse(r)
	if err != nil {
		return
	}

	prog, err = programOf(img)

	return
}

// LoadImage reads a program image from a file.
func LoadImage(path string) (prog *Program, err error) {
	img, err := image.Load(path)
	if err != nil {
		return
	}

	prog, err = programOf(img)
	if err != nil {
		err = &image.ErrLoad{Path: path, Err: err}
	}

	return
}

// WriteImage writes the program as an image, with the first byte of
// each line annotated by its source words.
func (prog *Program) WriteImage(w io.Writer) (err error) {
	enc := image.NewEncoder(w)

	for _, line := range prog.Lines {
		for n, value := range line.Bytes {
			comment := ""
			if n == 0 {
				comment = strings.Join(line.Words, " ")
			}
			err = enc.Encode(value, comment)
			if err != nil {
				return
			}
		}
	}

	return
}

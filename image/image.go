// Package image reads and writes LS-8 program images.
//
// An image is text, one byte per line, written as a run of binary digits.
// Leading blanks are ignored, and anything after the digit run (such as a
// comment) is ignored. Lines that do not start with a binary digit are
// skipped.
package image

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Image is the content of a program image.
type Image struct {
	Data   []uint8 // Bytes, in address order.
	LineNo []int   // Source line of each byte.
}

// Scanner reads the bytes of a program image.
type Scanner struct {
	reader *bufio.Reader
	lineNo int
	value  uint8
	eof    bool
	err    error
}

// NewScanner returns a scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// parseLine returns the value of the leading binary digits of a line.
// Digits beyond the eighth shift the high bits out.
func parseLine(line []byte) (value uint8, ok bool) {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	for ; n < len(line); n++ {
		ch := line[n]
		if ch != '0' && ch != '1' {
			break
		}
		value = (value << 1) | (ch - '0')
		ok = true
	}
	return
}

// readLine reads the start of the next line, discarding whatever of the
// line does not fit in the read buffer.
func (sc *Scanner) readLine() (line []byte, err error) {
	line, err = sc.reader.ReadSlice('\n')
	if err != bufio.ErrBufferFull {
		return
	}

	line = append([]byte(nil), line...)
	for err == bufio.ErrBufferFull {
		_, err = sc.reader.ReadSlice('\n')
	}

	return
}

// Scan advances to the next byte of the image, returning false at the
// end of input or on a read error.
func (sc *Scanner) Scan() bool {
	for !sc.eof && sc.err == nil {
		line, err := sc.readLine()
		switch {
		case err == io.EOF:
			sc.eof = true
			if len(line) == 0 {
				return false
			}
		case err != nil:
			sc.err = &ErrRead{LineNo: sc.lineNo + 1, Err: err}
			return false
		}

		sc.lineNo++
		value, ok := parseLine(line)
		if !ok {
			continue
		}
		sc.value = value
		return true
	}
	return false
}

// Value returns the most recent byte read by Scan.
func (sc *Scanner) Value() uint8 {
	return sc.value
}

// LineNo returns the source line of the most recent byte read by Scan.
func (sc *Scanner) LineNo() int {
	return sc.lineNo
}

// Err returns the first read error encountered by the Scanner.
func (sc *Scanner) Err() error {
	return sc.err
}

// Parse reads a complete program image.
func Parse(r io.Reader) (img *Image, err error) {
	img = &Image{}

	sc := NewScanner(r)
	for sc.Scan() {
		img.Data = append(img.Data, sc.Value())
		img.LineNo = append(img.LineNo, sc.LineNo())
	}

	err = sc.Err()
	if err != nil {
		img = nil
	}

	return
}

// Load reads a complete program image from a file.
func Load(path string) (img *Image, err error) {
	defer func() {
		if err != nil {
			err = &ErrLoad{Path: path, Err: err}
		}
	}()

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	img, err = Parse(inf)

	return
}

// Encoder writes a program image.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes a single byte, with an optional comment.
func (enc *Encoder) Encode(value uint8, comment string) (err error) {
	if len(comment) == 0 {
		_, err = fmt.Fprintf(enc.w, "%08b\n", value)
	} else {
		_, err = fmt.Fprintf(enc.w, "%08b # %s\n", value, comment)
	}
	return
}

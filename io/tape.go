package io

import (
	"fmt"
	"io"
)

// Tape is a sequential output channel. Each value sent is written to
// Output as a decimal number followed by a newline.
type Tape struct {
	Output io.Writer

	count int
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape, but the sent count is cleared.
func (tc *Tape) Rewind() {
	tc.count = 0
}

// Count returns the number of values sent since the last rewind.
func (tc *Tape) Count() int {
	return tc.count
}

// Send writes a value to the output stream.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.count++

	return
}

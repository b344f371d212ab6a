package image

import (
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// ErrRead is a failure to read a program image.
type ErrRead struct {
	LineNo int
	Err    error
}

func (err *ErrRead) Error() string {
	return f("line %d: %v", err.LineNo, err.Err)
}

func (err *ErrRead) Unwrap() error {
	return err.Err
}

// ErrLoad is a failure to load a program image from a file.
type ErrLoad struct {
	Path string
	Err  error
}

func (err *ErrLoad) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}

package lineio

import (
	"io"
	"strconv"
)

// Writer writes text and decimal numbers. Write errors are kept and
// returned by Err; later writes are skipped.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Target returns the underlying stream.
func (w *Writer) Target() io.Writer {
	return w.w
}

// WriteLine writes s verbatim; s carries its own line breaks.
func (w *Writer) WriteLine(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *Writer) Newline() {
	w.WriteLine("\n")
}

func (w *Writer) Decimal(v int64) {
	w.WriteLine(strconv.FormatInt(v, 10))
}

func (w *Writer) Err() error {
	return w.err
}

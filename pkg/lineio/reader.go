package lineio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrEndOfInput reports that the input is exhausted. It is never a
	// data value.
	ErrEndOfInput = errors.New("end of input")
	ErrNotDecimal = errors.New("not a decimal number")
)

// Reader reads commands and decimal numbers one line at a time.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadCommand returns the first byte of the next line and discards the rest
// of that line.
func (r *Reader) ReadCommand() (byte, error) {
	c, err := r.r.ReadByte()
	if err == io.EOF {
		return 0, ErrEndOfInput
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed read command")
	}
	if c != '\n' {
		if err := r.ClearLine(); err != nil && err != ErrEndOfInput {
			return 0, err
		}
	}
	return c, nil
}

// ClearLine discards input up to and including the next newline.
func (r *Reader) ClearLine() error {
	_, err := r.r.ReadString('\n')
	if err == io.EOF {
		return ErrEndOfInput
	}
	return errors.Wrap(err, "failed clear line")
}

// ReadDecimal parses the next line as a signed decimal number. Blanks around
// the number are ignored. A malformed line is consumed and ErrNotDecimal
// returned.
func (r *Reader) ReadDecimal() (int64, error) {
	line, err := r.r.ReadString('\n')
	if err == io.EOF && line == "" {
		return 0, ErrEndOfInput
	}
	if err != nil && err != io.EOF {
		return 0, errors.Wrap(err, "failed read number")
	}

	text := strings.TrimSpace(line)
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrNotDecimal, "%q", text)
	}
	return v, nil
}

package lineio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCommand(t *testing.T) {
	r := NewReader(strings.NewReader("abc\n\nu\nx"))

	expected := []byte{'a', '\n', 'u', 'x'}
	for _, e := range expected {
		c, err := r.ReadCommand()
		require.NoError(t, err)
		assert.Equal(t, e, c)
	}

	_, err := r.ReadCommand()
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestReadDecimal(t *testing.T) {
	testcases := []struct {
		input    string
		expected int64
		err      error
	}{
		{"42\n", 42, nil},
		{"  -17  \n", -17, nil},
		{"+5\n", 5, nil},
		{"-1\n", -1, nil},
		{"9223372036854775807", 9223372036854775807, nil},
		{"12abc\n", 0, ErrNotDecimal},
		{"\n", 0, ErrNotDecimal},
		{"99999999999999999999\n", 0, ErrNotDecimal},
		{"", 0, ErrEndOfInput},
	}

	for _, c := range testcases {
		r := NewReader(strings.NewReader(c.input))
		v, err := r.ReadDecimal()
		if c.err != nil {
			assert.ErrorIs(t, err, c.err, "input %q", c.input)
			continue
		}
		require.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.expected, v, "input %q", c.input)
	}
}

func TestReadDecimalConsumesLine(t *testing.T) {
	r := NewReader(strings.NewReader("oops\n7\n"))
	_, err := r.ReadDecimal()
	assert.ErrorIs(t, err, ErrNotDecimal)

	v, err := r.ReadDecimal()
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	w.WriteLine("Number of elements on the stack is:  ")
	w.Decimal(-12)
	w.Newline()

	require.NoError(t, w.Err())
	assert.Equal(t, "Number of elements on the stack is:  -12\n", buf.String())
	assert.Same(t, buf, w.Target())

	fw := NewWriter(failingWriter{})
	fw.WriteLine("a")
	fw.WriteLine("b")
	assert.EqualError(t, fw.Err(), "closed")
}

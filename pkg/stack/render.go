package stack

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Renderer writes the occupied slots of a stack, bottom to top.
type Renderer interface {
	Render(w io.Writer, values []int64) error
}

// PlainRenderer writes space separated decimals. With NegativeAsChar a
// negative value is written as its low byte, which is how callers that store
// command characters as negative numbers read them back.
type PlainRenderer struct {
	NegativeAsChar bool
}

func (r PlainRenderer) Render(w io.Writer, values []int64) error {
	items := lo.Map(values, func(v int64, _ int) string {
		if v < 0 && r.NegativeAsChar {
			return string([]byte{byte(v)})
		}
		return strconv.FormatInt(v, 10)
	})

	var builder strings.Builder
	for _, item := range items {
		builder.WriteString(item)
		builder.WriteByte(' ')
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

// HexRenderer writes the element count and then the 64 bit pattern of every
// value in hexadecimal.
type HexRenderer struct{}

func (HexRenderer) Render(w io.Writer, values []int64) error {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Stack has %d items in it.\n", len(values)))
	for _, v := range values {
		builder.WriteString(fmt.Sprintf("Value on stack is |0x%x|\n", uint64(v)))
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

var (
	_ Renderer = PlainRenderer{}
	_ Renderer = HexRenderer{}
)

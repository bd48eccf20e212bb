package console

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/alibaba/longstack/pkg/lineio"
)

type command struct {
	name string
	run  func(c *Console) error
}

var commands = map[byte]command{
	'a': {"allocate", (*Console).allocate},
	'd': {"deallocate", (*Console).deallocate},
	'u': {"push", (*Console).push},
	'p': {"pop", (*Console).pop},
	't': {"top", (*Console).top},
	'i': {"isempty", (*Console).isEmpty},
	'e': {"empty", (*Console).empty},
	'f': {"isfull", (*Console).isFull},
	'n': {"num_elements", (*Console).count},
	'w': {"write to stdout", (*Console).writeOut},
	'W': {"write to stderr", (*Console).writeErr},
}

// Commands describes the command keys in sorted order.
func Commands() []string {
	keys := maps.Keys(commands)
	slices.Sort(keys)

	ret := make([]string, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, fmt.Sprintf("%c  %s", k, commands[k].name))
	}
	return ret
}

// readNumber returns ok=false for a malformed number; end of input and read
// failures come back as errors.
func (c *Console) readNumber() (int64, bool, error) {
	v, err := c.in.ReadDecimal()
	if errors.Is(err, lineio.ErrNotDecimal) {
		c.logger.Debugf("invalid number: %v", err)
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (c *Console) allocate() error {
	c.out.WriteLine("\nPlease enter the number of objects to")
	c.out.WriteLine(" be able to store: ")
	amount, ok, err := c.readNumber()
	if err != nil {
		return err
	}
	if !ok {
		c.warn("allocate")
		return nil
	}

	capacity, ok := toCapacity(amount)
	if !ok {
		c.warn("allocate")
		return nil
	}

	if c.handle != nil {
		_ = c.store.Deallocate(&c.handle)
	}
	h, err := c.store.Allocate(capacity)
	if err != nil {
		c.warn("allocate")
		return nil
	}
	c.handle = h
	return nil
}

// toCapacity converts amount to int, failing where int is narrower than
// int64 and amount does not fit.
func toCapacity(amount int64) (int, bool) {
	if amount > math.MaxInt || amount < math.MinInt {
		return 0, false
	}
	return int(amount), true
}

func (c *Console) deallocate() error {
	_ = c.store.Deallocate(&c.handle)
	c.out.WriteLine("Stack has been deleted\n")
	return nil
}

func (c *Console) empty() error {
	_ = c.store.Empty(c.handle)
	c.out.WriteLine("Stack is empty.\n")
	return nil
}

func (c *Console) isFull() error {
	if c.store.IsFull(c.handle) {
		c.out.WriteLine("Stack is full.\n")
	} else {
		c.out.WriteLine("Stack is not full.\n")
	}
	return nil
}

func (c *Console) isEmpty() error {
	if c.store.IsEmpty(c.handle) {
		c.out.WriteLine("Stack is empty.\n")
	} else {
		c.out.WriteLine("Stack is not empty.\n")
	}
	return nil
}

func (c *Console) count() error {
	c.out.WriteLine("Number of elements on the stack is:  ")
	c.out.Decimal(int64(c.store.Count(c.handle)))
	c.out.Newline()
	return nil
}

func (c *Console) pop() error {
	v, err := c.store.Pop(c.handle)
	if err != nil {
		c.warn("pop")
		return nil
	}
	c.out.WriteLine("Number popped from the stack is:  ")
	c.out.Decimal(v)
	c.out.Newline()
	return nil
}

func (c *Console) top() error {
	v, err := c.store.Top(c.handle)
	if err != nil {
		c.warn("top")
		return nil
	}
	c.out.WriteLine("Number at top of the stack is:  ")
	c.out.Decimal(v)
	c.out.Newline()
	return nil
}

func (c *Console) push() error {
	c.out.WriteLine("\nPlease enter a number to push to stack:  ")
	v, ok, err := c.readNumber()
	if err != nil {
		return err
	}
	if !ok || c.store.Push(c.handle, v) != nil {
		c.warn("push")
	}
	return nil
}

func (c *Console) writeOut() error {
	c.out.WriteLine("\nThe Stack contains:\n")
	_, _ = c.store.Write(c.handle, c.out.Target())
	return nil
}

func (c *Console) writeErr() error {
	c.out.WriteLine("\nThe Stack contains:\n")
	_, _ = c.store.Write(c.handle, c.errOut.Target())
	return nil
}

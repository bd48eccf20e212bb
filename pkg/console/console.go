package console

import (
	"context"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/alibaba/longstack/pkg/lineio"
	"github.com/alibaba/longstack/pkg/stack"
)

var menu = []string{
	"\nPlease enter a command:",
	"\n\t(a)llocate, (d)eallocate, ",
	"p(u)sh, (p)op, (t)op, (i)sempty, (e)mpty, ",
	"\n\tis(f)ull, (n)um_elements,",
	" (w)rite to stdout, (W)rite to stderr.\n",
	"Please enter choice:  ",
}

// Console runs the interactive command loop over a single stack handle.
type Console struct {
	store  *stack.Store
	in     *lineio.Reader
	out    *lineio.Writer
	errOut *lineio.Writer
	logger *log.Entry
	handle *stack.Stack
}

// New creates a console reading commands from in. Prompts and results go to
// out; warnings go to errOut, which should be the store's diagnostic stream
// so that (W)rite uses the diagnostic rendering.
func New(store *stack.Store, in io.Reader, out, errOut io.Writer, logger *log.Entry) *Console {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Console{
		store:  store,
		in:     lineio.NewReader(in),
		out:    lineio.NewWriter(out),
		errOut: lineio.NewWriter(errOut),
		logger: logger,
	}
}

// Handle returns the stack the console currently owns, nil when none.
func (c *Console) Handle() *stack.Stack {
	return c.handle
}

// Run processes commands until the input ends or ctx is done. The owned
// stack is released before returning.
func (c *Console) Run(ctx context.Context) error {
	err := c.loop(ctx)

	if c.handle != nil {
		_ = c.store.Deallocate(&c.handle)
	}
	c.out.Newline()

	if errors.Is(err, lineio.ErrEndOfInput) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Console) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, line := range menu {
			c.out.WriteLine(line)
		}

		command, err := c.in.ReadCommand()
		if err != nil {
			return err
		}

		cmd, ok := commands[command]
		if !ok {
			c.logger.Debugf("ignore unknown command %q", command)
			continue
		}
		c.logger.Debugf("run command %s", cmd.name)
		if err := cmd.run(c); err != nil {
			return err
		}
	}
}

func (c *Console) warn(op string) {
	c.errOut.WriteLine("\nWARNING:  " + op + " FAILED\n")
}

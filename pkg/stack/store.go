package stack

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

const DefaultMaxCapacity = 1 << 24

// Store allocates stacks and runs operations on them. It replaces process
// wide state with explicit configuration: the tracer holds the diagnostic
// switch and the id generator numbers the instances.
type Store struct {
	tracer      *Tracer
	ids         IDGenerator
	metrics     *Metrics
	maxCapacity int
	plain       Renderer
	diagnostic  Renderer
	live        int
}

type Option func(*Store)

func WithTracer(t *Tracer) Option {
	return func(s *Store) {
		s.tracer = t
	}
}

func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Store) {
		s.ids = ids
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithMaxCapacity bounds the capacity Allocate accepts. Larger requests fail
// with ErrOutOfMemory.
func WithMaxCapacity(n int) Option {
	return func(s *Store) {
		s.maxCapacity = n
	}
}

// WithPlainRenderer sets the rendering used for ordinary destinations.
func WithPlainRenderer(r Renderer) Option {
	return func(s *Store) {
		s.plain = r
	}
}

// WithDiagnosticRenderer sets the rendering used when writing to the
// tracer's diagnostic stream.
func WithDiagnosticRenderer(r Renderer) Option {
	return func(s *Store) {
		s.diagnostic = r
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		maxCapacity: DefaultMaxCapacity,
		plain:       PlainRenderer{NegativeAsChar: true},
		diagnostic:  HexRenderer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = NewTracer(os.Stderr)
	}
	if s.ids == nil {
		s.ids = &SequentialIDs{}
	}
	return s
}

func (s *Store) Tracer() *Tracer {
	return s.tracer
}

// Live returns how many stacks are allocated and not yet deallocated.
func (s *Store) Live() int {
	return s.live
}

// Allocate returns an empty stack able to hold capacity values. A zero
// capacity stack is legal; it is both empty and full.
func (s *Store) Allocate(capacity int) (*Stack, error) {
	if capacity < 0 {
		return nil, s.fail(OpAllocate, ErrInvalidCapacity)
	}
	if capacity > s.maxCapacity {
		return nil, s.fail(OpAllocate, ErrOutOfMemory)
	}

	slots, err := makeSlots(capacity)
	if err != nil {
		return nil, s.fail(OpAllocate, err)
	}

	st := &Stack{
		id:       s.ids.Next(),
		capacity: capacity,
		slots:    slots,
	}
	s.live++
	s.metrics.observe(OpAllocate, nil)
	s.metrics.setLive(s.live)
	s.metrics.addSlots(capacity)
	s.tracer.Tracef("[Stack %d has been allocated]", st.id)
	return st, nil
}

func makeSlots(n int) (slots []int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(ErrOutOfMemory, fmt.Sprint(r))
		}
	}()
	return make([]int64, n), nil
}

// Deallocate releases the stack h points to and clears *h. Releasing an
// absent stack reports the failure and does nothing else.
func (s *Store) Deallocate(h **Stack) error {
	if h == nil || *h == nil {
		return s.fail(OpDeallocate, ErrNonExistentStack)
	}

	st := *h
	s.tracer.Tracef("[Stack %d has been deallocated]", st.id)
	st.slots = nil
	st.count = 0
	*h = nil
	s.live--
	s.metrics.observe(OpDeallocate, nil)
	s.metrics.setLive(s.live)
	return nil
}

// fail reports the operation specific message and returns the error.
func (s *Store) fail(op Op, err error) error {
	opErr := newOpError(op, errors.Cause(err))
	s.tracer.Report(opErr)
	s.metrics.observe(op, err)
	return opErr
}

// isDiagnostic reports whether w is the tracer's diagnostic stream.
func (s *Store) isDiagnostic(w io.Writer) bool {
	return w == s.tracer.Writer()
}

package stack

import (
	"io"
	"reflect"
)

// Push stores v on top of the stack. A full stack is left unchanged.
func (s *Store) Push(h *Stack, v int64) error {
	if h == nil {
		return s.fail(OpPush, ErrNonExistentStack)
	}
	if h.full() {
		return s.fail(OpPush, ErrStackFull)
	}

	s.tracer.Tracef("[Stack %d - Pushing %d]", h.id, v)
	h.push(v)
	s.metrics.observe(OpPush, nil)
	return nil
}

// Pop removes and returns the top value, clearing its slot. Popping an empty
// stack reports the same message as popping an absent one.
func (s *Store) Pop(h *Stack) (int64, error) {
	if h == nil {
		return 0, s.fail(OpPop, ErrNonExistentStack)
	}
	if h.count == 0 {
		return 0, s.fail(OpPop, ErrStackEmpty)
	}

	s.tracer.Tracef("[Stack %d - Popping %d]", h.id, h.peek())
	v := h.pop()
	s.metrics.observe(OpPop, nil)
	return v, nil
}

// Top returns the top value without removing it.
func (s *Store) Top(h *Stack) (int64, error) {
	if h == nil {
		return 0, s.fail(OpTop, ErrNonExistentStack)
	}
	if h.count == 0 {
		return 0, s.fail(OpTop, ErrStackEmpty)
	}

	v := h.peek()
	s.tracer.Tracef("[Stack %d - Topping %d]", h.id, v)
	s.metrics.observe(OpTop, nil)
	return v, nil
}

// Empty clears every occupied slot, top first.
func (s *Store) Empty(h *Stack) error {
	if h == nil {
		return s.fail(OpEmpty, ErrNonExistentStack)
	}

	for h.count > 0 {
		h.pop()
	}
	s.metrics.observe(OpEmpty, nil)
	return nil
}

// IsEmpty treats an absent stack as empty.
func (s *Store) IsEmpty(h *Stack) bool {
	if h == nil {
		_ = s.fail(OpIsEmpty, ErrNonExistentStack)
		return true
	}
	s.metrics.observe(OpIsEmpty, nil)
	return h.count == 0
}

// IsFull treats an absent stack as not full. The asymmetry with IsEmpty is
// kept on purpose; callers depend on it.
func (s *Store) IsFull(h *Stack) bool {
	if h == nil {
		_ = s.fail(OpIsFull, ErrNonExistentStack)
		return false
	}
	s.metrics.observe(OpIsFull, nil)
	return h.full()
}

// Count returns the number of stored values, 0 for an absent stack.
func (s *Store) Count(h *Stack) int {
	if h == nil {
		_ = s.fail(OpCount, ErrNonExistentStack)
		return 0
	}
	s.metrics.observe(OpCount, nil)
	return h.count
}

// Write renders the occupied slots to dst and returns dst. The diagnostic
// stream gets the diagnostic rendering, every other destination the plain
// one.
func (s *Store) Write(h *Stack, dst io.Writer) (io.Writer, error) {
	if !isNilWriter(dst) && s.isDiagnostic(dst) {
		return s.WriteWith(h, dst, s.diagnostic)
	}
	return s.WriteWith(h, dst, s.plain)
}

// WriteWith renders the occupied slots to dst with r.
func (s *Store) WriteWith(h *Stack, dst io.Writer, r Renderer) (io.Writer, error) {
	if h == nil {
		return dst, s.fail(OpWrite, ErrNonExistentStack)
	}
	if isNilWriter(dst) {
		return dst, s.fail(OpWrite, ErrMissingDestination)
	}

	if err := r.Render(dst, h.slots[:h.count]); err != nil {
		s.metrics.observe(OpWrite, err)
		return dst, err
	}
	s.metrics.observe(OpWrite, nil)
	return dst, nil
}

// isNilWriter also catches a nil pointer stored in a non-nil io.Writer.
func isNilWriter(w io.Writer) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}
	return false
}

package stack

import "sync/atomic"

// IDGenerator hands out instance ids. Ids are only used in diagnostics.
type IDGenerator interface {
	Next() int64
}

// SequentialIDs counts up from 1.
type SequentialIDs struct {
	last atomic.Int64
}

func (s *SequentialIDs) Next() int64 {
	return s.last.Add(1)
}

package stack

// Stack is a fixed capacity stack of int64 values. A nil *Stack is the
// absent handle; every Store operation accepts it and reports it.
type Stack struct {
	id       int64
	capacity int
	count    int
	slots    []int64
}

func (s *Stack) ID() int64 {
	return s.id
}

func (s *Stack) Capacity() int {
	return s.capacity
}

// Values returns a copy of the occupied slots, bottom to top.
func (s *Stack) Values() []int64 {
	ret := make([]int64, s.count)
	copy(ret, s.slots[:s.count])
	return ret
}

// Slots returns a copy of every slot including the cleared free ones.
func (s *Stack) Slots() []int64 {
	ret := make([]int64, len(s.slots))
	copy(ret, s.slots)
	return ret
}

func (s *Stack) full() bool {
	return s.count >= s.capacity
}

func (s *Stack) push(v int64) {
	s.slots[s.count] = v
	s.count++
}

func (s *Stack) peek() int64 {
	return s.slots[s.count-1]
}

func (s *Stack) pop() int64 {
	s.count--
	v := s.slots[s.count]
	s.slots[s.count] = 0
	return v
}

package stack

import (
	"github.com/pkg/errors"
)

var (
	ErrNonExistentStack   = errors.New("non-existent stack")
	ErrStackFull          = errors.New("stack is full")
	ErrStackEmpty         = errors.New("stack is empty")
	ErrOutOfMemory        = errors.New("out of memory")
	ErrMissingDestination = errors.New("missing destination")
	ErrInvalidCapacity    = errors.New("invalid capacity")
)

type Op string

const (
	OpAllocate   Op = "allocate"
	OpDeallocate Op = "deallocate"
	OpPush       Op = "push"
	OpPop        Op = "pop"
	OpTop        Op = "top"
	OpEmpty      Op = "empty"
	OpIsEmpty    Op = "isempty"
	OpIsFull     Op = "isfull"
	OpCount      Op = "count"
	OpWrite      Op = "write"
)

// messages holds the line reported on the diagnostic stream for every
// operation and failure kind.
var messages = map[Op]map[error]string{
	OpAllocate: {
		ErrOutOfMemory:     "Allocating a stack ran out of memory!!!",
		ErrInvalidCapacity: "Allocating a stack with a negative size!!!",
	},
	OpDeallocate: {ErrNonExistentStack: "Deleting a non-existent stack!!!"},
	OpPush: {
		ErrNonExistentStack: "Pushing to a non-existent stack!!!",
		ErrStackFull:        "Pushing to a full stack!!!",
	},
	OpPop:     {ErrNonExistentStack: "Popping from a non-existent stack!!!"},
	OpTop:     {ErrNonExistentStack: "Topping from a non-existent stack!!!"},
	OpEmpty:   {ErrNonExistentStack: "Emptying a non-existent stack!!!"},
	OpIsEmpty: {ErrNonExistentStack: "Isempty check from a non-existent stack!!!"},
	OpIsFull:  {ErrNonExistentStack: "Isfull check from a non-existent stack!!!"},
	OpCount:   {ErrNonExistentStack: "Num_elements check from a non-existent stack!!!"},
	OpWrite: {
		ErrNonExistentStack:   "Attempt to write to a non-existent stack!!!",
		ErrMissingDestination: "Attempt to write using non-existent file pointer!!!",
	},
}

// OpError is returned by every failing stack operation.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string {
	return e.Message()
}

// Message is the operation specific line reported for the failure. Pop and
// top on an empty stack share the non-existent stack message.
func (e *OpError) Message() string {
	kind := e.Err
	if kind == ErrStackEmpty {
		kind = ErrNonExistentStack
	}
	if msg, ok := messages[e.Op][kind]; ok {
		return msg
	}
	return string(e.Op) + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Is lets an underflow on pop or top match ErrNonExistentStack as well as
// ErrStackEmpty.
func (e *OpError) Is(target error) bool {
	return target == ErrNonExistentStack && e.Err == ErrStackEmpty
}

// Kind names the failure for metrics labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrStackEmpty):
		return "empty"
	case errors.Is(err, ErrNonExistentStack):
		return "nonexistent"
	case errors.Is(err, ErrStackFull):
		return "full"
	case errors.Is(err, ErrOutOfMemory):
		return "oom"
	case errors.Is(err, ErrMissingDestination):
		return "nodestination"
	case errors.Is(err, ErrInvalidCapacity):
		return "invalid"
	}
	return "unknown"
}

func newOpError(op Op, err error) *OpError {
	return &OpError{Op: op, Err: err}
}

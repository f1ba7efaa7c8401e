package emmental

import "fmt"

// EmptyStackError indicates a pop or peek against an empty stack.
type EmptyStackError struct{ Op string }

func (err EmptyStackError) Error() string { return fmt.Sprintf("%v: stack is empty", err.Op) }

// QueueEmptyError indicates a Dequeue against an empty queue.
type QueueEmptyError struct{}

func (QueueEmptyError) Error() string { return "queue is empty" }

// PrematurelyTerminatedStringError indicates PopString ran off the bottom
// of the stack before finding its terminator.
type PrematurelyTerminatedStringError struct{ Terminator Symbol }

func (err PrematurelyTerminatedStringError) Error() string {
	return fmt.Sprintf("prematurely terminated string: no %q terminator found", err.Terminator)
}

// IOError wraps a failure from the underlying SymbolIO channel.
type IOError struct{ Err error }

func (err IOError) Error() string { return fmt.Sprintf("io error: %v", err.Err) }
func (err IOError) Unwrap() error { return err.Err }

// haltError marks an error as having already halted a running State, so
// that Run can report it without double-wrapping.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error == nil {
		return "halted"
	}
	return fmt.Sprintf("halted: %v", err.error)
}

func (err haltError) Unwrap() error { return err.error }

package emmental

import (
	"fmt"
	"io"
)

// Dump writes a human-readable snapshot of the stack, queue, and bound
// symbols to w, in the spirit of the teacher's vmDumper -- useful behind
// a CLI's -dump flag after a halt.
func (s *State) Dump(w io.Writer) {
	fmt.Fprintf(w, "# Emmental State Dump\n")
	fmt.Fprintf(w, "  stack: %v\n", s.Stack.Values())
	fmt.Fprintf(w, "  queue: %v\n", s.Queue.Values())
	bound := s.Interp.Bound()
	fmt.Fprintf(w, "  bound symbols (%d): %v\n", len(bound), bound)
}

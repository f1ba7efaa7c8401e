package mascarpone

import (
	"fmt"
	"io"
)

// Dump writes a human-readable snapshot of the stack and current
// interpreter to w, mirroring emmental.State.Dump for use behind a CLI's
// -dump flag after a halt.
func (s *State) Dump(w io.Writer) {
	fmt.Fprintf(w, "# Mascarpone State Dump\n")
	fmt.Fprintf(w, "  stack: %v\n", s.Stack.Values())
	fmt.Fprintf(w, "  current: %v\n", s.current)
}

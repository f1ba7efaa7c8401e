package emmental

import (
	"io"

	"github.com/esovm/gothird/internal/flushio"
)

// Option configures a State at construction time, following the teacher's
// functional-options idiom (options.go/api.go).
type Option interface{ apply(s *State) }

type optionFunc func(s *State)

func (f optionFunc) apply(s *State) { f(s) }

// WithIO sets the State's SymbolIO channel directly.
func WithIO(io_ SymbolIO) Option {
	return optionFunc(func(s *State) { s.io = io_ })
}

// WithOutput wires w as the channel's output side, using an output-only
// SymbolIO if no SymbolIO has been installed yet. Flush-able the way the teacher's
// withOutput wires flushio.WriteFlusher.
func WithOutput(w io.Writer) Option {
	return optionFunc(func(s *State) {
		s.outFlusher = flushio.NewWriteFlusher(w)
		if s.io == nil {
			s.io = &stdWriterIO{w: s.outFlusher}
		}
	})
}

// WithLogf installs a trace logging function, invoked once per dispatched
// symbol, mirroring the teacher's WithLogf/logging embed.
func WithLogf(logf func(mess string, args ...interface{})) Option {
	return optionFunc(func(s *State) { s.logfn = logf })
}

// WithStepLimit bounds the total number of symbols a State will dispatch
// before halting with ErrStepLimit. It is the external, implementation-level
// timeout spec.md §5 explicitly allows in place of in-language cancellation.
func WithStepLimit(limit uint) Option {
	return optionFunc(func(s *State) { s.stepLimit = limit })
}

// stdWriterIO adapts a flushio.WriteFlusher-backed writer into a SymbolIO
// whose reads always fail; used when only output has been configured
// (e.g. a driver that drives a program purely for its side effects).
type stdWriterIO struct{ w io.Writer }

func (stdWriterIO) ReadSymbol() (Symbol, error)   { return 0, io.ErrClosedPipe }
func (s *stdWriterIO) WriteSymbol(sym Symbol) error { _, err := s.w.Write([]byte{sym}); return err }

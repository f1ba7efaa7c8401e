package mascarpone

import (
	"io"

	"github.com/esovm/gothird/internal/flushio"
	"github.com/esovm/gothird/internal/runeio"
)

// Option configures a State at construction time, mirroring emmental's
// functional-options idiom (itself following the teacher's options.go/api.go).
type Option interface{ apply(s *State) }

type optionFunc func(s *State)

func (f optionFunc) apply(s *State) { f(s) }

// WithIO sets the State's SymbolIO channel directly.
func WithIO(io_ SymbolIO) Option {
	return optionFunc(func(s *State) { s.io = io_ })
}

// WithOutput wires w as the channel's output side, using a runeio-backed
// writer if no SymbolIO has been installed yet.
func WithOutput(w io.Writer) Option {
	return optionFunc(func(s *State) {
		s.outFlusher = flushio.NewWriteFlusher(w)
		if s.io == nil {
			s.io = &stdWriterIO{w: s.outFlusher}
		}
	})
}

// WithLogf installs a trace logging function, invoked once per symbol
// dispatched through the current interpreter; symbols captured in quote
// mode are not logged.
func WithLogf(logf func(mess string, args ...interface{})) Option {
	return optionFunc(func(s *State) { s.logfn = logf })
}

// WithStepLimit bounds the total number of symbols a State will dispatch
// before halting with ErrStepLimit.
func WithStepLimit(limit uint) Option {
	return optionFunc(func(s *State) { s.stepLimit = limit })
}

// stdWriterIO adapts an io.Writer into a SymbolIO whose reads always fail.
type stdWriterIO struct{ w io.Writer }

func (stdWriterIO) ReadSymbol() (Symbol, error) { return 0, io.ErrClosedPipe }
func (s *stdWriterIO) WriteSymbol(sym Symbol) error {
	_, err := runeio.WriteANSIRune(s.w, sym)
	return err
}

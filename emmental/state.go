package emmental

import (
	"context"
	"fmt"

	"github.com/esovm/gothird/internal/flushio"
	"github.com/esovm/gothird/internal/panicerr"
)

// State is the running Emmental machine: a data Stack, a scratch Queue,
// the current Interpreter, and the SymbolIO channel, exactly the state
// spec.md §2 names for the flat dialect.
type State struct {
	Stack Stack
	Queue Queue
	Interp *Interpreter

	io         SymbolIO
	outFlusher flushio.WriteFlusher
	logfn      func(mess string, args ...interface{})

	stepLimit uint
	steps     uint
}

// ErrStepLimit is returned by Run when a State configured with
// WithStepLimit is asked to dispatch more than that many symbols.
type ErrStepLimit struct{ Limit uint }

func (err ErrStepLimit) Error() string {
	return fmt.Sprintf("exceeded step limit of %v symbols", err.Limit)
}

// New builds a State with the given options applied over sane zero
// defaults (a fresh default Interpreter, a discarding SymbolIO).
func New(opts ...Option) *State {
	s := &State{Interp: NewInterpreter()}
	for _, opt := range opts {
		opt.apply(s)
	}
	if s.io == nil {
		s.io = discardIO{}
	}
	return s
}

type discardIO struct{}

func (discardIO) ReadSymbol() (Symbol, error) { return EOT, nil }
func (discardIO) WriteSymbol(Symbol) error    { return nil }

func (s *State) logf(mess string, args ...interface{}) {
	if s.logfn != nil {
		s.logfn(mess, args...)
	}
}

// Run drives program through the State one Symbol at a time, dispatching
// each through the current interpreter. The panic/goroutine-exit recovery
// mirrors the teacher's api.go: Run isolates the dispatch loop so a halt
// or an unexpected panic surfaces as a plain error rather than crashing
// the caller.
func (s *State) Run(ctx context.Context, program []Symbol) error {
	err := panicerr.Recover("emmental", func() error {
		return s.run(ctx, program)
	})
	if he, ok := err.(haltError); ok {
		err = he.error
	}
	return err
}

func (s *State) run(ctx context.Context, program []Symbol) error {
	for _, sym := range program {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Interpret(sym); err != nil {
			return haltError{err}
		}
	}
	if s.outFlusher != nil {
		return s.outFlusher.Flush()
	}
	return nil
}

// Interpret dispatches a single symbol through the current interpreter.
// It is the public re-entry point Eval (`?`) and Program bodies recurse
// through, always against the *current* interpreter -- Emmental programs
// never carry a captured environment (spec.md's Design Notes).
func (s *State) Interpret(sym Symbol) error {
	if s.stepLimit != 0 {
		s.steps++
		if s.steps > s.stepLimit {
			return ErrStepLimit{s.stepLimit}
		}
	}

	op := s.Interp.Lookup(sym)
	s.logf("%c -> %+v", sym, op)

	switch {
	case op.isNoOp():
		return nil
	case op.isProgram():
		for _, bodySym := range op.body {
			if err := s.Interpret(bodySym); err != nil {
				return err
			}
		}
		return nil
	default:
		return s.stepPrimitive(op)
	}
}

func (s *State) stepPrimitive(op Operation) error {
	switch op.prim {
	case primDigit:
		sym, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		s.Stack.Push(sym*10 + op.digit)
	case primNul:
		s.Stack.Push(0)
	case primSemicolon:
		s.Stack.Push(';')
	case primAdd:
		b, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		s.Stack.Push(a + b)
	case primSub:
		b, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		s.Stack.Push(a - b)
	case primLog2:
		n, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		s.Stack.Push(log2Floor(n))
	case primOutput:
		sym, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		if err := s.io.WriteSymbol(sym); err != nil {
			return IOError{err}
		}
	case primInput:
		sym, err := s.io.ReadSymbol()
		if err != nil {
			return IOError{err}
		}
		s.Stack.Push(sym)
	case primEnqueue:
		sym, err := s.Stack.Peek()
		if err != nil {
			return err
		}
		s.Queue.Enqueue(sym)
	case primDequeue:
		sym, err := s.Queue.Dequeue()
		if err != nil {
			return err
		}
		s.Stack.Push(sym)
	case primDuplicate:
		sym, err := s.Stack.Peek()
		if err != nil {
			return err
		}
		s.Stack.Push(sym)
	case primSupplant:
		sym, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		body, err := s.Stack.PopString(';')
		if err != nil {
			return err
		}
		s.Interp.Bind(sym, Program(body))
	case primEval:
		sym, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		return s.Interpret(sym)
	}
	return nil
}

// log2Floor implements spec.md's "Log2" primitive: floor(log2(n)) for
// n>0, 8 for n==0, all mod-256 wrapping arithmetic elsewhere in Emmental
// notwithstanding -- this one primitive is a lookup, not wraparound math,
// matching original_source/src/state.rs's `match sym { 0 => 8, n => ... }`.
func log2Floor(n Symbol) Symbol {
	if n == 0 {
		return 8
	}
	var log Symbol
	for v := n; v > 1; v >>= 1 {
		log++
	}
	return log
}

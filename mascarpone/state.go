package mascarpone

import (
	"context"
	"fmt"

	"github.com/esovm/gothird/internal/flushio"
	"github.com/esovm/gothird/internal/panicerr"
)

// State is the running Mascarpone machine: a heterogeneous data Stack and
// the current Interpreter (never nil while running), plus the SymbolIO
// channel, exactly the state spec.md §3 names for the reflective dialect.
type State struct {
	Stack   Stack
	current *Interpreter

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
// defaults (a fresh Initial interpreter as current, a discarding SymbolIO).
func New(opts ...Option) *State {
	s := &State{current: NewInitial()}
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

// Run drives program through the State one Symbol at a time, mirroring
// emmental.State.Run's panic/goroutine-exit isolation (teacher's api.go
// pattern via internal/panicerr).
func (s *State) Run(ctx context.Context, program []Symbol) error {
	err := panicerr.Recover("mascarpone", func() error {
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
		if err := s.interpretSymbol(sym); err != nil {
			return haltError{err}
		}
	}
	if s.outFlusher != nil {
		return s.outFlusher.Flush()
	}
	return nil
}

// interpretSymbol dispatches a single symbol against the current
// interpreter. When current is in a quote-mode variant (QuoteString or
// QuoteSymbol), dispatch never reaches Extract/Perform at all: the quote
// state machine captures the symbol as literal data instead, per spec.md
// §4.3's "quote-mode variants bypass extract/install" invariant.
//
// QuoteString nesting is tracked entirely by the depth of the interpreter
// parent chain: each unmatched `[` pushes a fresh QuoteString interpreter
// as current with the previous one as parent, and each `]` restores
// current to its parent -- the outermost `]` naturally lands back on the
// pre-quote interpreter with no special-casing required.
func (s *State) interpretSymbol(sym Symbol) error {
	if s.stepLimit != 0 {
		s.steps++
		if s.steps > s.stepLimit {
			return ErrStepLimit{s.stepLimit}
		}
	}

	switch s.current.variant {
	case variantQuoteSymbol:
		s.current = s.current.parent
		s.Stack.Push(SymbolElement(sym))
		return nil
	case variantQuoteString:
		switch sym {
		case '[':
			s.Stack.Push(SymbolElement('['))
			s.current = &Interpreter{variant: variantQuoteString, parent: s.current}
		case ']':
			s.Stack.Push(SymbolElement(']'))
			s.current = s.current.parent
		default:
			s.Stack.Push(SymbolElement(sym))
		}
		return nil
	default:
		op, err := s.current.Extract(sym)
		if err != nil {
			return err
		}
		s.logf("%c -> %v", sym, op)
		return s.perform(op)
	}
}

// perform executes an already-resolved Operation. A Program operation
// swaps current to its closed-over environment for the duration of its
// body and restores the caller's interpreter only once the whole body
// dispatches without error -- a halting body leaves current exactly
// where it failed, for Dump to inspect.
func (s *State) perform(op Operation) error {
	switch {
	case op.IsNoOp():
		return nil
	case op.IsProgram():
		saved := s.current
		s.current = op.env
		for _, bodySym := range op.body {
			if err := s.interpretSymbol(bodySym); err != nil {
				return err
			}
		}
		s.current = saved
		return nil
	default:
		return s.runIntrinsic(op.intrinsic)
	}
}

// runIntrinsic implements the stack effect of each of the 18 canonical
// intrinsics (spec.md §4.4).
func (s *State) runIntrinsic(id intrinsicID) error {
	switch id {
	case intrinsicReify:
		s.Stack.Push(InterpreterElement(s.current.Clone()))

	case intrinsicDeify:
		ip, err := s.Stack.PopInterpreter()
		if err != nil {
			return err
		}
		s.current = ip

	case intrinsicExtract:
		sym, err := s.Stack.PopSymbol()
		if err != nil {
			return err
		}
		ip, err := s.Stack.PopInterpreter()
		if err != nil {
			return err
		}
		op, err := ip.Extract(sym)
		if err != nil {
			return err
		}
		s.Stack.Push(OperationElement(op))

	case intrinsicInstall:
		sym, err := s.Stack.PopSymbol()
		if err != nil {
			return err
		}
		op, err := s.Stack.PopOperation()
		if err != nil {
			return err
		}
		ip, err := s.Stack.PopInterpreter()
		if err != nil {
			return err
		}
		ip = ip.Clone()
		if err := ip.Install(sym, op); err != nil {
			return err
		}
		s.Stack.Push(InterpreterElement(ip))

	case intrinsicGetParent:
		ip, err := s.Stack.PopInterpreter()
		if err != nil {
			return err
		}
		parent, err := ip.Parent()
		if err != nil {
			return err
		}
		s.Stack.Push(InterpreterElement(parent))

	case intrinsicSetParent:
		ip, err := s.Stack.PopInterpreter()
		if err != nil {
			return err
		}
		parent, err := s.Stack.PopInterpreterNullable()
		if err != nil {
			return err
		}
		ip = ip.Clone()
		ip.SetParent(parent)
		s.Stack.Push(InterpreterElement(ip))

	case intrinsicCreate:
		ip, err := s.Stack.PopInterpreter()
		if err != nil {
			return err
		}
		body, err := s.Stack.PopQuotedString()
		if err != nil {
			return err
		}
		s.Stack.Push(OperationElement(ProgramOperation(body, ip.Clone())))

	case intrinsicExpand:
		op, err := s.Stack.PopOperation()
		if err != nil {
			return err
		}
		switch {
		case op.IsIntrinsic():
			s.Stack.PushQuotedString([]Symbol{op.intrinsic.symbol()})
			s.Stack.Push(InterpreterElement(NewInitial()))
		case op.IsProgram():
			s.Stack.PushQuotedString(op.body)
			s.Stack.Push(InterpreterElement(op.env))
		default:
			return WrongElementTypeError{"intrinsic or program operation", op.String()}
		}

	case intrinsicPerform:
		op, err := s.Stack.PopOperation()
		if err != nil {
			return err
		}
		return s.perform(op)

	case intrinsicNull:
		s.Stack.Push(InterpreterElement(nil))

	case intrinsicUniform:
		op, err := s.Stack.PopOperation()
		if err != nil {
			return err
		}
		s.Stack.Push(InterpreterElement(&Interpreter{variant: variantMapping, table: map[Symbol]Operation{}, def: op}))

	case intrinsicQuoteString:
		s.Stack.Push(SymbolElement('['))
		s.current = &Interpreter{variant: variantQuoteString, parent: s.current}

	case intrinsicQuoteSymbol:
		s.current = &Interpreter{variant: variantQuoteSymbol, parent: s.current}

	case intrinsicOutput:
		sym, err := s.Stack.PopSymbol()
		if err != nil {
			return err
		}
		if err := s.io.WriteSymbol(sym); err != nil {
			return IOError{err}
		}

	case intrinsicInput:
		sym, err := s.io.ReadSymbol()
		if err != nil {
			return IOError{err}
		}
		s.Stack.Push(SymbolElement(sym))

	case intrinsicDup:
		e, err := s.Stack.Peek()
		if err != nil {
			return err
		}
		s.Stack.Push(e)

	case intrinsicDiscard:
		_, err := s.Stack.Pop()
		return err

	case intrinsicSwap:
		a, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		b, err := s.Stack.Pop()
		if err != nil {
			return err
		}
		s.Stack.Push(a)
		s.Stack.Push(b)

	default:
		return UnknownIntrinsicError{int(id)}
	}
	return nil
}

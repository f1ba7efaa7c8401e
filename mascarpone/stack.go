package mascarpone

// Stack is Mascarpone's heterogeneous data stack: an ordered LIFO
// sequence of Element, where an Element is a Symbol, an Operation, or an
// Interpreter (possibly null).
type Stack struct {
	storage []Element
}

// Push appends e at the top. Always succeeds.
func (s *Stack) Push(e Element) { s.storage = append(s.storage, e) }

// Pop removes and returns the top Element.
func (s *Stack) Pop() (Element, error) {
	i := len(s.storage) - 1
	if i < 0 {
		return Element{}, EmptyStackError{"pop"}
	}
	e := s.storage[i]
	s.storage = s.storage[:i]
	return e, nil
}

// Peek returns the top Element without removing it.
func (s *Stack) Peek() (Element, error) {
	i := len(s.storage) - 1
	if i < 0 {
		return Element{}, EmptyStackError{"peek"}
	}
	return s.storage[i], nil
}

// Len reports the current depth of the stack.
func (s *Stack) Len() int { return len(s.storage) }

// Values returns a copy of the stack contents, bottom first, for dumping
// and testing.
func (s *Stack) Values() []Element {
	out := make([]Element, len(s.storage))
	copy(out, s.storage)
	return out
}

// PopWhile pops top elements while pred holds, returning them in pop
// order (top-first), and stops at the first Element (or empty stack)
// that fails pred, leaving it in place.
func (s *Stack) PopWhile(pred func(Element) bool) []Element {
	var out []Element
	for {
		e, err := s.Peek()
		if err != nil || !pred(e) {
			return out
		}
		s.Pop()
		out = append(out, e)
	}
}

// PopSymbol pops the top Element and requires it to be a Symbol.
func (s *Stack) PopSymbol() (Symbol, error) {
	e, err := s.Pop()
	if err != nil {
		return 0, err
	}
	if e.kind != elemSymbol {
		return 0, WrongElementTypeError{"symbol", e.kind.String()}
	}
	return e.sym, nil
}

// PopOperation pops the top Element and requires it to be an Operation.
func (s *Stack) PopOperation() (Operation, error) {
	e, err := s.Pop()
	if err != nil {
		return Operation{}, err
	}
	if e.kind != elemOperation {
		return Operation{}, WrongElementTypeError{"operation", e.kind.String()}
	}
	return e.op, nil
}

// PopInterpreter pops the top Element and requires it to be a defined
// (non-null) Interpreter.
func (s *Stack) PopInterpreter() (*Interpreter, error) {
	e, err := s.Pop()
	if err != nil {
		return nil, err
	}
	if e.kind != elemInterpreter {
		return nil, WrongElementTypeError{"interpreter", e.kind.String()}
	}
	if e.interp == nil {
		return nil, NullInterpreterError{"pop"}
	}
	return e.interp, nil
}

// PopInterpreterNullable pops the top Element and requires it to be an
// Interpreter, tolerating the null/absent value (returned as nil).
func (s *Stack) PopInterpreterNullable() (*Interpreter, error) {
	e, err := s.Pop()
	if err != nil {
		return nil, err
	}
	if e.kind != elemInterpreter {
		return nil, WrongElementTypeError{"interpreter", e.kind.String()}
	}
	return e.interp, nil
}

// PushQuotedString writes a quoted string onto the stack: a `[` marker,
// each symbol of syms in order, then a `]` marker on top (spec.md §4.5).
func (s *Stack) PushQuotedString(syms []Symbol) {
	s.Push(SymbolElement('['))
	for _, sym := range syms {
		s.Push(SymbolElement(sym))
	}
	s.Push(SymbolElement(']'))
}

// PopQuotedString inverts PushQuotedString: the top must be `]`, else
// MalformedStringError; it then pops symbols, tracking nesting so that an
// unmatched inner `]` increments depth and an inner `[` decrements it, and
// returns the symbols between the outermost markers once a `[` is found
// at depth 0, in their original left-to-right order.
func (s *Stack) PopQuotedString() ([]Symbol, error) {
	top, err := s.Peek()
	if err != nil || !top.IsSymbol() || top.sym != ']' {
		return nil, MalformedStringError{}
	}
	s.Pop()

	var out []Symbol
	depth := 0
	for {
		e, err := s.Pop()
		if err != nil {
			return nil, MalformedStringError{}
		}
		if !e.IsSymbol() {
			return nil, MalformedStringError{}
		}
		switch e.sym {
		case '[':
			if depth == 0 {
				return out, nil
			}
			depth--
			out = append([]Symbol{e.sym}, out...)
		case ']':
			depth++
			out = append([]Symbol{e.sym}, out...)
		default:
			out = append([]Symbol{e.sym}, out...)
		}
	}
}

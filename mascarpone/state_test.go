package mascarpone

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func runProgram(t *testing.T, program string) string {
	t.Helper()
	sio := NewStringIO(nil)
	s := New(WithIO(sio))
	err := s.Run(context.Background(), []Symbol(program))
	require.NoError(t, err)
	return string(sio.Output)
}

func Test_quoteString_nestedBracketsAreCapturedAsData(t *testing.T) {
	got := runProgram(t, "[o[ll]eh].........")
	require.Equal(t, "]he]ll[o[", got)
}

func Test_quoteSymbol_capturesExactlyOneSymbol(t *testing.T) {
	got := runProgram(t, "[A]'B.")
	require.Equal(t, "B", got)
}

func Test_createPerformRoundTrip(t *testing.T) {
	got := runProgram(t, "['A.]v*!")
	require.Equal(t, "A", got)
}

func Test_reifyDeifyRoundTrip(t *testing.T) {
	got := runProgram(t, "v^'X.")
	require.Equal(t, "X", got)
}

func Test_extractReturnsBoundOperation(t *testing.T) {
	s := New()
	s.Stack.Push(InterpreterElement(NewInitial()))
	s.Stack.Push(SymbolElement(':'))
	err := s.Run(context.Background(), []Symbol{'>'})
	require.NoError(t, err)
	op, err := s.Stack.PopOperation()
	require.NoError(t, err)
	require.True(t, op.IsIntrinsic())
	require.Equal(t, intrinsicDup, op.intrinsic)
}

func Test_installBindsAndUpgradesInitial(t *testing.T) {
	s := New()
	s.Stack.Push(InterpreterElement(NewInitial()))
	s.Stack.Push(OperationElement(intrinsicOp(intrinsicDup)))
	s.Stack.Push(SymbolElement('x'))
	err := s.Run(context.Background(), []Symbol{'<'})
	require.NoError(t, err)

	ip, err := s.Stack.PopInterpreter()
	require.NoError(t, err)
	require.Equal(t, variantMapping, ip.variant)

	op, err := ip.Extract('x')
	require.NoError(t, err)
	require.True(t, op.IsIntrinsic())
	require.Equal(t, intrinsicDup, op.intrinsic)

	// previously implicit bindings survive the Initial-to-Mapping upgrade.
	dup, err := ip.Extract(',')
	require.NoError(t, err)
	require.True(t, dup.IsIntrinsic())
	require.Equal(t, intrinsicInput, dup.intrinsic)
}

func Test_getParentReturnsParentOrErrors(t *testing.T) {
	root := NewInitial()
	child := NewInitial()
	child.SetParent(root)

	s := New()
	s.Stack.Push(InterpreterElement(child))
	err := s.Run(context.Background(), []Symbol{'{'})
	require.NoError(t, err)
	got, err := s.Stack.PopInterpreter()
	require.NoError(t, err)
	require.Same(t, root, got)

	s2 := New()
	s2.Stack.Push(InterpreterElement(NewInitial()))
	err = s2.Run(context.Background(), []Symbol{'{'})
	require.Error(t, err)
	require.IsType(t, NoParentError{}, err)
}

func Test_setParentRebindsInPlace(t *testing.T) {
	parent := NewInitial()
	child := NewInitial()

	s := New()
	s.Stack.Push(InterpreterElement(parent))
	s.Stack.Push(InterpreterElement(child))
	err := s.Run(context.Background(), []Symbol{'}'})
	require.NoError(t, err)

	got, err := s.Stack.PopInterpreter()
	require.NoError(t, err)
	p, err := got.Parent()
	require.NoError(t, err)
	require.Same(t, parent, p)
}

func Test_nullPushesNullInterpreter(t *testing.T) {
	s := New()
	err := s.Run(context.Background(), []Symbol{'0'})
	require.NoError(t, err)
	e, err := s.Stack.Pop()
	require.NoError(t, err)
	require.True(t, e.IsNullInterpreter())
}

func Test_uniformBuildsConstantMapping(t *testing.T) {
	s := New()
	s.Stack.Push(OperationElement(intrinsicOp(intrinsicDiscard)))
	err := s.Run(context.Background(), []Symbol{'1'})
	require.NoError(t, err)

	ip, err := s.Stack.PopInterpreter()
	require.NoError(t, err)
	op, err := ip.Extract('Q')
	require.NoError(t, err)
	require.True(t, op.IsIntrinsic())
	require.Equal(t, intrinsicDiscard, op.intrinsic)
}

func Test_dupDuplicatesTopElement(t *testing.T) {
	s := New()
	s.Stack.Push(SymbolElement('z'))
	err := s.Run(context.Background(), []Symbol{':'})
	require.NoError(t, err)
	require.Equal(t, 2, s.Stack.Len())
	a, _ := s.Stack.Pop()
	b, _ := s.Stack.Pop()
	require.Equal(t, a, b)
}

func Test_discardDropsTopElement(t *testing.T) {
	s := New()
	s.Stack.Push(SymbolElement('z'))
	s.Stack.Push(SymbolElement('y'))
	err := s.Run(context.Background(), []Symbol{'$'})
	require.NoError(t, err)
	require.Equal(t, 1, s.Stack.Len())
	top, _ := s.Stack.Peek()
	require.Equal(t, Symbol('z'), top.sym)
}

func Test_swapExchangesTopTwoElements(t *testing.T) {
	s := New()
	s.Stack.Push(SymbolElement('a'))
	s.Stack.Push(SymbolElement('b'))
	err := s.Run(context.Background(), []Symbol{'/'})
	require.NoError(t, err)
	top, _ := s.Stack.Pop()
	require.Equal(t, Symbol('a'), top.sym)
	bottom, _ := s.Stack.Pop()
	require.Equal(t, Symbol('b'), bottom.sym)
}

func Test_dequeueAnaloguePopOnEmptyStackErrors(t *testing.T) {
	s := New()
	err := s.Run(context.Background(), []Symbol{'$'})
	require.Error(t, err)
	require.IsType(t, EmptyStackError{}, err)
}

func Test_createBindsProgramToExplicitInterpreter(t *testing.T) {
	uniform := New()
	uniform.Stack.Push(OperationElement(intrinsicOp(intrinsicDiscard)))
	require.NoError(t, uniform.Run(context.Background(), []Symbol{'1'}))
	ip, err := uniform.Stack.PopInterpreter()
	require.NoError(t, err)

	s := New()
	s.Stack.PushQuotedString([]Symbol("xy"))
	s.Stack.Push(InterpreterElement(ip))
	require.NoError(t, s.Run(context.Background(), []Symbol{'*'}))

	op, err := s.Stack.PopOperation()
	require.NoError(t, err)
	require.True(t, op.IsProgram())
	require.Equal(t, []Symbol("xy"), op.body)
	require.NotSame(t, ip, op.env, "Create must capture a snapshot, not the popped interpreter itself")
	require.Equal(t, ip, op.env)
}

func Test_expandIntrinsicYieldsCanonicalSymbolAndInitial(t *testing.T) {
	s := New()
	s.Stack.Push(OperationElement(intrinsicOp(intrinsicDup)))
	require.NoError(t, s.Run(context.Background(), []Symbol{'@'}))

	got, err := s.Stack.PopInterpreter()
	require.NoError(t, err)
	require.Equal(t, variantInitial, got.variant)

	str, err := s.Stack.PopQuotedString()
	require.NoError(t, err)
	require.Equal(t, []Symbol{':'}, str)
}

func Test_expandCreateRoundTrip(t *testing.T) {
	s := New()
	s.Stack.PushQuotedString([]Symbol("'A."))
	s.Stack.Push(InterpreterElement(NewInitial()))
	require.NoError(t, s.Run(context.Background(), []Symbol{'*', '@', '*', '!'}))
	require.Equal(t, 0, s.Stack.Len())
}

func Test_stepLimitHalts(t *testing.T) {
	s := New(WithStepLimit(2))
	err := s.Run(context.Background(), []Symbol("000"))
	require.Error(t, err)
	require.IsType(t, ErrStepLimit{}, err)
}

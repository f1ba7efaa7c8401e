package mascarpone

import (
	"io"

	"github.com/esovm/gothird/internal/runeio"
)

// SymbolIO is the rune I/O channel Output/Input dispatch through. Like
// Emmental's SymbolIO it is exclusively owned by the running State.
type SymbolIO interface {
	ReadSymbol() (Symbol, error)
	WriteSymbol(sym Symbol) error
}

// StdIO channels through a live rune stream, using runeio for reading and
// the same ANSI-safe control-rune encoding on write as the teacher's dump
// tooling uses for display. End-of-input surfaces as io.ErrUnexpectedEOF,
// mirroring emmental.StdIO and original_source's StandardIO.
type StdIO struct {
	r runeio.Reader
	w io.Writer
}

// NewStdIO wraps r and w as a live SymbolIO channel.
func NewStdIO(r io.Reader, w io.Writer) *StdIO {
	return &StdIO{r: runeio.NewReader(r), w: w}
}

func (io_ *StdIO) ReadSymbol() (Symbol, error) {
	r, _, err := io_.r.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return r, nil
}

func (io_ *StdIO) WriteSymbol(sym Symbol) error {
	_, err := runeio.WriteANSIRune(io_.w, sym)
	return err
}

// StringIO channels through an in-memory rune buffer, yielding EOT on
// exhaustion rather than erroring, mirroring emmental.StringIO.
type StringIO struct {
	input  []Symbol
	pos    int
	Output []Symbol
}

// NewStringIO returns a StringIO whose input is a copy of input.
func NewStringIO(input []Symbol) *StringIO {
	cp := make([]Symbol, len(input))
	copy(cp, input)
	return &StringIO{input: cp}
}

func (sio *StringIO) ReadSymbol() (Symbol, error) {
	if sio.pos >= len(sio.input) {
		return EOT, nil
	}
	sym := sio.input[sio.pos]
	sio.pos++
	return sym, nil
}

func (sio *StringIO) WriteSymbol(sym Symbol) error {
	sio.Output = append(sio.Output, sym)
	return nil
}

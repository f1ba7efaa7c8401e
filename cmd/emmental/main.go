// Command emmental runs programs written in Emmental, the flat byte-symbol
// dialect described alongside Mascarpone: a single Stack, a single FIFO
// Queue, and one flat Interpreter mapping bytes to primitives.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/esovm/gothird/emmental"
	"github.com/esovm/gothird/internal/fileinput"
	"github.com/esovm/gothird/internal/logio"
)

func main() {
	var (
		stepLimit uint
		timeout   time.Duration
		trace     bool
		dump      bool
	)
	flag.UintVar(&stepLimit, "step-limit", 0, "enable a step limit")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "print a dump after execution")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	program, err := readProgram(flag.Args())
	if err != nil {
		log.Errorf("%+v", err)
		return
	}

	var opts []emmental.Option
	if trace {
		opts = append(opts, emmental.WithLogf(log.Leveledf("TRACE")))
	}
	opts = append(opts,
		emmental.WithStepLimit(stepLimit),
		emmental.WithIO(emmental.NewStdIO(os.Stdin, os.Stdout)),
	)
	s := emmental.New(opts...)

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer s.Dump(lw)
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.ErrorIf(s.Run(ctx, program))
}

// readProgram reads the symbol sequence to run: from the named files in
// order if any are given, or else the whole of stdin.
func readProgram(names []string) ([]emmental.Symbol, error) {
	var in fileinput.Input
	if len(names) == 0 {
		in.Queue = append(in.Queue, os.Stdin)
	} else {
		for _, name := range names {
			f, err := os.Open(name)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			in.Queue = append(in.Queue, f)
		}
	}

	var program []emmental.Symbol
	br := bufio.NewReader(ioRuneSource{&in})
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		program = append(program, b)
	}
	return program, nil
}

type ioRuneSource struct{ in *fileinput.Input }

func (s ioRuneSource) Read(p []byte) (int, error) {
	r, _, err := s.in.ReadRune()
	if err != nil {
		return 0, err
	}
	if r > 0xff {
		return 0, fmt.Errorf("emmental: program source must be single-byte symbols, got %q", r)
	}
	p[0] = byte(r)
	return 1, nil
}

// Command mascarpone runs programs written in Mascarpone, the reflective
// rune-symbol dialect built around a first-class Interpreter value and a
// heterogeneous data Stack.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/esovm/gothird/internal/fileinput"
	"github.com/esovm/gothird/internal/logio"
	"github.com/esovm/gothird/mascarpone"
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

	var opts []mascarpone.Option
	if trace {
		opts = append(opts, mascarpone.WithLogf(log.Leveledf("TRACE")))
	}
	opts = append(opts,
		mascarpone.WithStepLimit(stepLimit),
		mascarpone.WithIO(mascarpone.NewStdIO(os.Stdin, os.Stdout)),
	)
	s := mascarpone.New(opts...)

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
func readProgram(names []string) ([]mascarpone.Symbol, error) {
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

	var program []mascarpone.Symbol
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			break
		}
		program = append(program, r)
	}
	return program, nil
}

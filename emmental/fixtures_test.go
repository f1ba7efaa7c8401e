package emmental

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fixture is one entry of the golden program/output table, in the spirit
// of the teacher's generated vm_expects_test.go table but driven straight
// off program source rather than a code-generated expectation DSL.
type fixture struct {
	name    string
	program string
	input   string
	want    string
}

var goldenFixtures = []fixture{
	{"helloWorld", "#0#10#33#100#108#114#111#119#32#44#111#108#108#101#72...............", "", "Hello, world!\n\x00"},
	{"outputLiteral", "#65.", "", "A"},
	{"inputEchoesOneSymbol", "#0,.", "Q", "Q"},
	{"arithmeticWraps", "#255#1+.", "", "\x00"},
	{"enqueueDequeueRoundTrip", "#65^v..", "", "AA"},
	{"log2OfZeroIsEight", "#0~.", "", string(rune(8))},
}

// Test_goldenFixtures_concurrentTable drives the whole fixture table
// concurrently under a bounded errgroup, so a slow fixture can't dominate
// the table's wall-clock the way a sequential t.Run loop would. Each
// fixture gets its own isolated State; this is concurrency over
// independent machines, never concurrency within one program.
func Test_goldenFixtures_concurrentTable(t *testing.T) {
	var g errgroup.Group
	g.SetLimit(4)
	for _, tc := range goldenFixtures {
		tc := tc
		g.Go(func() error {
			sio := NewStringIO([]Symbol(tc.input))
			s := New(WithIO(sio))
			if err := s.Run(context.Background(), []Symbol(tc.program)); err != nil {
				return fmt.Errorf("%s: %w", tc.name, err)
			}
			if got := string(sio.Output); got != tc.want {
				return fmt.Errorf("%s: got %q want %q", tc.name, got, tc.want)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

package quote_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/rhpisos/quoting-api/internal/kv"
	"github.com/rhpisos/quoting-api/internal/quote"
)

func newSequence(mem *kv.Memory) *quote.Sequence {
	return quote.NewSequence(quote.SequenceConfig{KV: mem, Logger: zerolog.Nop()})
}

func TestNextStartsAboveSeed(t *testing.T) {
	seq := newSequence(kv.NewMemory())
	require.Equal(t, "00013802", seq.Next(context.Background()))
}

func TestNextStrictlyIncreases(t *testing.T) {
	seq := newSequence(kv.NewMemory())
	prev := seq.Next(context.Background())
	for i := 0; i < 50; i++ {
		next := seq.Next(context.Background())
		require.Greater(t, next, prev)
		require.Len(t, next, 8)
		prev = next
	}
}

func TestNextSurvivesRestart(t *testing.T) {
	mem := kv.NewMemory()
	seq := newSequence(mem)
	seq.Next(context.Background())
	seq.Next(context.Background())
	seq.Next(context.Background())

	restarted := newSequence(mem)
	require.Equal(t, "00013805", restarted.Next(context.Background()))
}

func TestNextAdvancesDespitePersistFailure(t *testing.T) {
	mem := kv.NewMemory()
	mem.FailWrites = context.DeadlineExceeded
	seq := newSequence(mem)
	require.Equal(t, "00013802", seq.Next(context.Background()))
	require.Equal(t, "00013803", seq.Next(context.Background()))
}

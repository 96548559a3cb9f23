package quote

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rhpisos/quoting-api/internal/kv"
	"github.com/rhpisos/quoting-api/internal/obs"
)

// DefaultNumberKey is the key-value entry holding the quote number counter.
const DefaultNumberKey = "quotes:number"

// DefaultNumberSeed is the counter value new installations start above; the
// first number drawn is seed+1.
const DefaultNumberSeed = 13801

// Sequence hands out 8-digit zero-padded, strictly increasing quote numbers.
// The counter is loaded lazily from the key-value store and written back
// after every draw, so numbering survives restarts. Every Next call burns a
// number whether or not a quote is finalized.
type Sequence struct {
	mu      sync.Mutex
	kv      kv.Store
	key     string
	seed    int64
	current int64
	loaded  bool
	logger  zerolog.Logger
}

// SequenceConfig groups Sequence dependencies.
type SequenceConfig struct {
	KV     kv.Store
	Key    string
	Seed   int64
	Logger zerolog.Logger
}

// NewSequence constructs a Sequence.
func NewSequence(cfg SequenceConfig) *Sequence {
	key := cfg.Key
	if key == "" {
		key = DefaultNumberKey
	}
	seed := cfg.Seed
	if seed <= 0 {
		seed = DefaultNumberSeed
	}
	return &Sequence{kv: cfg.KV, key: key, seed: seed, logger: cfg.Logger}
}

// Next increments the counter and returns the formatted number. A failed
// persistence write is logged and counted; the in-memory counter still
// advances so numbers never repeat within a process.
func (s *Sequence) Next(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.current = s.load(ctx)
		s.loaded = true
	}
	s.current++
	if err := s.kv.Set(ctx, s.key, []byte(strconv.FormatInt(s.current, 10))); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("persist quote number")
		if obs.PersistenceFailuresTotal != nil {
			obs.PersistenceFailuresTotal.WithLabelValues("sequence").Inc()
		}
	}
	return fmt.Sprintf("%08d", s.current)
}

func (s *Sequence) load(ctx context.Context) int64 {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("load quote number, using seed")
		return s.seed
	}
	if !ok {
		return s.seed
	}
	parsed, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil || parsed < s.seed {
		return s.seed
	}
	return parsed
}

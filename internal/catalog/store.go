package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rhpisos/quoting-api/internal/kv"
	"github.com/rhpisos/quoting-api/internal/obs"
)

// DefaultStorageKey is the key-value entry holding the full catalog.
const DefaultStorageKey = "catalog:materials"

// persisted mirrors the wire shape of the stored catalog: a state envelope
// with a static version field that is written but never checked.
type persisted struct {
	State struct {
		Materials []Material `json:"materiales"`
	} `json:"state"`
	Version int `json:"version"`
}

// Store keeps the material list in memory and mirrors every mutation to the
// key-value store. The store performs no field validation; the HTTP layer
// validates before calling in, so direct callers can bypass those checks.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	key    string
	logger zerolog.Logger
	items  []Material
}

// StoreConfig groups Store dependencies.
type StoreConfig struct {
	KV     kv.Store
	Key    string
	Logger zerolog.Logger
}

// NewStore constructs a Store, loading the persisted catalog. A missing or
// unreadable entry falls back to the seed catalog; the failure is logged and
// never fatal.
func NewStore(ctx context.Context, cfg StoreConfig) *Store {
	key := cfg.Key
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Store{kv: cfg.KV, key: key, logger: cfg.Logger}

	var stored persisted
	ok, err := kv.GetJSON(ctx, s.kv, s.key, &stored)
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("load catalog, falling back to defaults")
	}
	if err == nil && ok && len(stored.State.Materials) > 0 {
		s.items = stored.State.Materials
	} else {
		s.items = DefaultMaterials()
	}
	return s
}

// List returns all materials in insertion order.
func (s *Store) List() []Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// FindByCode returns the material with the given code.
func (s *Store) FindByCode(code string) (Material, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.items {
		if m.Code == code {
			return m, true
		}
	}
	return Material{}, false
}

// Search returns materials whose code or description contains query,
// case-insensitively. An empty query returns the full list.
func (s *Store) Search(query string) []Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.copyItems()
	}
	result := make([]Material, 0)
	for _, m := range s.items {
		if strings.Contains(strings.ToLower(m.Code), q) || strings.Contains(strings.ToLower(m.Description), q) {
			result = append(result, m)
		}
	}
	return result
}

// Upsert replaces the material with the same code in place, preserving its
// position, or appends a new one. The full list is persisted after the
// mutation.
func (s *Store) Upsert(ctx context.Context, m Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.items {
		if s.items[i].Code == m.Code {
			s.items[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, m)
	}
	s.persist(ctx)
}

// Patch carries the optional fields of a material update. Code is absent on
// purpose: it is the lookup key and cannot be renamed.
type Patch struct {
	Description *string
	UnitPrice   *decimal.Decimal
	Unit        *Unit
}

// Update merges patch into the material matched by code. A missing code is a
// silent no-op.
func (s *Store) Update(ctx context.Context, code string, patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Code != code {
			continue
		}
		if patch.Description != nil {
			s.items[i].Description = *patch.Description
		}
		if patch.UnitPrice != nil {
			s.items[i].UnitPrice = *patch.UnitPrice
		}
		if patch.Unit != nil {
			s.items[i].Unit = *patch.Unit
		}
		s.persist(ctx)
		return
	}
}

// Remove deletes the material matched by code. A missing code is a silent
// no-op and nothing is persisted.
func (s *Store) Remove(ctx context.Context, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Code == code {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// ResetToDefaults replaces the entire list with the seed catalog.
func (s *Store) ResetToDefaults(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = DefaultMaterials()
	s.persist(ctx)
}

// persist writes the full list synchronously. A failed write is logged and
// counted; the in-memory state stays authoritative.
func (s *Store) persist(ctx context.Context) {
	var p persisted
	p.State.Materials = s.items
	p.Version = 1
	if err := kv.SetJSON(ctx, s.kv, s.key, p); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("persist catalog")
		if obs.PersistenceFailuresTotal != nil {
			obs.PersistenceFailuresTotal.WithLabelValues("catalog").Inc()
		}
	}
}

func (s *Store) copyItems() []Material {
	out := make([]Material, len(s.items))
	copy(out, s.items)
	return out
}

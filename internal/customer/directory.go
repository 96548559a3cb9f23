package customer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rhpisos/quoting-api/internal/kv"
	"github.com/rhpisos/quoting-api/internal/obs"
)

// DefaultStorageKey is the key-value entry holding the saved customer list.
const DefaultStorageKey = "quotes:customers"

// SavedCustomer is a directory entry: a customer plus identity and
// bookkeeping timestamps.
type SavedCustomer struct {
	Customer
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Directory stores saved customers so an operator can reuse them across
// quote sessions. The whole list lives under one key and is rewritten after
// every mutation, like the catalog.
type Directory struct {
	mu     sync.Mutex
	kv     kv.Store
	key    string
	logger zerolog.Logger
	now    func() time.Time
	items  []SavedCustomer
}

// DirectoryConfig groups Directory dependencies.
type DirectoryConfig struct {
	KV     kv.Store
	Key    string
	Logger zerolog.Logger
	Now    func() time.Time
}

// NewDirectory constructs a Directory, loading the persisted list. A missing
// or unreadable entry starts empty.
func NewDirectory(ctx context.Context, cfg DirectoryConfig) *Directory {
	key := cfg.Key
	if key == "" {
		key = DefaultStorageKey
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	d := &Directory{kv: cfg.KV, key: key, logger: cfg.Logger, now: now}

	var stored []SavedCustomer
	ok, err := kv.GetJSON(ctx, d.kv, d.key, &stored)
	if err != nil {
		d.logger.Error().Err(err).Str("key", d.key).Msg("load customers, starting empty")
	}
	if err == nil && ok {
		d.items = stored
	}
	return d
}

// List returns all saved customers in insertion order.
func (d *Directory) List() []SavedCustomer {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]SavedCustomer, len(d.items))
	copy(out, d.items)
	return out
}

// Find returns the saved customer with the given id.
func (d *Directory) Find(id string) (SavedCustomer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.items {
		if c.ID == id {
			return c, true
		}
	}
	return SavedCustomer{}, false
}

// Save appends c as a new directory entry with a fresh id.
func (d *Directory) Save(ctx context.Context, c Customer) SavedCustomer {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	saved := SavedCustomer{Customer: c, ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	d.items = append(d.items, saved)
	d.persist(ctx)
	return saved
}

// Update replaces the customer data of the entry matched by id, keeping its
// creation timestamp. It reports whether the id existed.
func (d *Directory) Update(ctx context.Context, id string, c Customer) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.items {
		if d.items[i].ID != id {
			continue
		}
		d.items[i].Customer = c
		d.items[i].UpdatedAt = d.now()
		d.persist(ctx)
		return true
	}
	return false
}

// Delete removes the entry matched by id. A missing id is a silent no-op.
func (d *Directory) Delete(ctx context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			d.persist(ctx)
			return
		}
	}
}

func (d *Directory) persist(ctx context.Context) {
	if err := kv.SetJSON(ctx, d.kv, d.key, d.items); err != nil {
		d.logger.Error().Err(err).Str("key", d.key).Msg("persist customers")
		if obs.PersistenceFailuresTotal != nil {
			obs.PersistenceFailuresTotal.WithLabelValues("customers").Inc()
		}
	}
}

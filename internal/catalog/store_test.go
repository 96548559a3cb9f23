package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rhpisos/quoting-api/internal/catalog"
	"github.com/rhpisos/quoting-api/internal/kv"
)

func newStore(t *testing.T) (*catalog.Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	store := catalog.NewStore(context.Background(), catalog.StoreConfig{KV: mem, Logger: zerolog.Nop()})
	return store, mem
}

func TestSeedsDefaultsWhenEmpty(t *testing.T) {
	store, _ := newStore(t)
	items := store.List()
	require.Len(t, items, 10)
	require.Equal(t, "PROK02", items[0].Code)
}

func TestUpsertFindRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	m := catalog.Material{
		Code:        "NEW01",
		Description: "PINTURA EPOXI GRIS X 10 LTS",
		UnitPrice:   decimal.RequireFromString("61300.50"),
		Unit:        catalog.UnitLiter,
	}
	store.Upsert(context.Background(), m)

	got, ok := store.FindByCode("NEW01")
	require.True(t, ok)
	require.Equal(t, m.Code, got.Code)
	require.Equal(t, m.Description, got.Description)
	require.True(t, got.UnitPrice.Equal(m.UnitPrice))
	require.Equal(t, m.Unit, got.Unit)
}

func TestUpsertReplacesInPlace(t *testing.T) {
	store, _ := newStore(t)
	before := store.List()
	replacement := before[3]
	replacement.UnitPrice = decimal.RequireFromString("130000")
	store.Upsert(context.Background(), replacement)

	after := store.List()
	require.Len(t, after, len(before))
	require.Equal(t, before[3].Code, after[3].Code)
	require.True(t, after[3].UnitPrice.Equal(replacement.UnitPrice))
}

func TestSearchMatchesCodeAndDescription(t *testing.T) {
	store, _ := newStore(t)

	byCode := store.Search("epox")
	require.NotEmpty(t, byCode)
	for _, m := range byCode {
		require.True(t, containsFold(m.Code, "epox") || containsFold(m.Description, "epox"))
	}

	byDescription := store.Search("rodillo")
	require.Len(t, byDescription, 2)

	require.Len(t, store.Search(""), 10)
	require.Empty(t, store.Search("nonexistent"))
}

func TestUpdateMergesFields(t *testing.T) {
	store, _ := newStore(t)
	newPrice := decimal.RequireFromString("43000")
	store.Update(context.Background(), "PROK02", catalog.Patch{UnitPrice: &newPrice})

	got, ok := store.FindByCode("PROK02")
	require.True(t, ok)
	require.True(t, got.UnitPrice.Equal(newPrice))
	require.Equal(t, "LIGANTE ACRILICO X 8 LTS", got.Description)
}

func TestUpdateUnknownCodeIsNoOp(t *testing.T) {
	store, _ := newStore(t)
	before := store.List()
	desc := "SHOULD NOT APPEAR"
	store.Update(context.Background(), "NOPE", catalog.Patch{Description: &desc})
	require.Equal(t, before, store.List())
}

func TestRemoveUnknownCodeIsNoOp(t *testing.T) {
	store, _ := newStore(t)
	before := store.List()
	store.Remove(context.Background(), "NOPE")
	require.Equal(t, before, store.List())

	store.Remove(context.Background(), "PROK02")
	require.Len(t, store.List(), len(before)-1)
	_, ok := store.FindByCode("PROK02")
	require.False(t, ok)
}

func TestResetToDefaultsIsIdempotent(t *testing.T) {
	store, _ := newStore(t)
	store.Remove(context.Background(), "PROK02")
	store.Upsert(context.Background(), catalog.Material{Code: "X", Description: "X", UnitPrice: decimal.NewFromInt(1), Unit: catalog.UnitPiece})

	store.ResetToDefaults(context.Background())
	once := store.List()
	store.ResetToDefaults(context.Background())
	require.Equal(t, once, store.List())
	require.Len(t, once, 10)
}

func TestPersistedStateSurvivesRestart(t *testing.T) {
	store, mem := newStore(t)
	store.Upsert(context.Background(), catalog.Material{
		Code:        "NEW01",
		Description: "PINTURA EPOXI GRIS X 10 LTS",
		UnitPrice:   decimal.RequireFromString("61300.50"),
		Unit:        catalog.UnitLiter,
	})

	reloaded := catalog.NewStore(context.Background(), catalog.StoreConfig{KV: mem, Logger: zerolog.Nop()})
	got, ok := reloaded.FindByCode("NEW01")
	require.True(t, ok)
	require.True(t, got.UnitPrice.Equal(decimal.RequireFromString("61300.50")))
	require.Len(t, reloaded.List(), 11)
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	mem := kv.NewMemory()
	store := catalog.NewStore(context.Background(), catalog.StoreConfig{KV: mem, Logger: zerolog.Nop()})
	mem.FailWrites = errors.New("storage unavailable")

	store.Remove(context.Background(), "PROK02")
	_, ok := store.FindByCode("PROK02")
	require.False(t, ok)
	require.Len(t, store.List(), 9)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

package quote_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rhpisos/quoting-api/internal/customer"
	"github.com/rhpisos/quoting-api/internal/kv"
	"github.com/rhpisos/quoting-api/internal/quote"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDefaults() quote.Defaults {
	return quote.Defaults{
		Customer:    customer.WalkIn("2026-08-30"),
		DiscountPct: decimal.Zero,
		TaxPct:      dec("21"),
		Terms:       "Duración del trabajo: 2 DIAS\nAdelanto el 50% y el resto al finalizar el trabajo",
	}
}

func newSession(t *testing.T) *quote.Session {
	t.Helper()
	seq := newSequence(kv.NewMemory())
	return quote.NewSession(context.Background(), seq, testDefaults())
}

func TestNewSessionDrawsNumber(t *testing.T) {
	s := newSession(t)
	state := s.State()
	require.Equal(t, "00013802", state.Number)
	require.Equal(t, "CONSUMIDOR FINAL", state.Customer.CompanyName)
	require.Empty(t, state.Items)
	require.True(t, state.TaxPct.Equal(dec("21")))
}

func TestAddItemMergesByMaterialCode(t *testing.T) {
	s := newSession(t)
	first := s.AddItem(quote.ItemInput{
		MaterialCode: "PROK02",
		Description:  "PINTURA PROKRETE 205",
		Quantity:     dec("2"),
		UnitPrice:    dec("100"),
		DiscountPct:  dec("10"),
	})
	second := s.AddItem(quote.ItemInput{
		MaterialCode: "PROK02",
		Description:  "PINTURA PROKRETE 205",
		Quantity:     dec("3"),
		UnitPrice:    dec("999"), // ignored on merge, existing price wins
		DiscountPct:  dec("50"),
	})

	require.Equal(t, first.ID, second.ID)
	require.True(t, second.Quantity.Equal(dec("5")))
	require.True(t, second.UnitPrice.Equal(dec("100")))
	require.True(t, second.Subtotal.Equal(dec("450")))
	require.Len(t, s.State().Items, 1)
}

func TestAddItemWithoutCodeAlwaysAppends(t *testing.T) {
	s := newSession(t)
	a := s.AddItem(quote.ItemInput{Description: "MANO DE OBRA", Quantity: dec("1"), UnitPrice: dec("500")})
	b := s.AddItem(quote.ItemInput{Description: "MANO DE OBRA", Quantity: dec("1"), UnitPrice: dec("500")})
	require.NotEqual(t, a.ID, b.ID)
	require.Len(t, s.State().Items, 2)
}

func TestUpdateItemRepricesSubtotal(t *testing.T) {
	s := newSession(t)
	item := s.AddItem(quote.ItemInput{Description: "PINTURA", Quantity: dec("2"), UnitPrice: dec("100")})

	qty := dec("4")
	updated, ok := s.UpdateItem(item.ID, quote.ItemPatch{Quantity: &qty})
	require.True(t, ok)
	require.True(t, updated.Subtotal.Equal(dec("400")))

	desc := "PINTURA EPOXI"
	updated, ok = s.UpdateItem(item.ID, quote.ItemPatch{Description: &desc})
	require.True(t, ok)
	require.Equal(t, "PINTURA EPOXI", updated.Description)
	require.True(t, updated.Subtotal.Equal(dec("400")))
}

func TestUpdateItemUnknownIDReportsMissing(t *testing.T) {
	s := newSession(t)
	_, ok := s.UpdateItem("nope", quote.ItemPatch{})
	require.False(t, ok)
}

func TestRemoveItemUnknownIDIsNoOp(t *testing.T) {
	s := newSession(t)
	s.AddItem(quote.ItemInput{Description: "PINTURA", Quantity: dec("1"), UnitPrice: dec("100")})
	s.RemoveItem("nope")
	require.Len(t, s.State().Items, 1)
}

func TestComputeRequiresItems(t *testing.T) {
	s := newSession(t)
	_, ok := s.Compute()
	require.False(t, ok)
	_, ok = s.Snapshot()
	require.False(t, ok)
}

func TestComputeRequiresCustomer(t *testing.T) {
	seq := newSequence(kv.NewMemory())
	defaults := testDefaults()
	defaults.Customer = customer.Customer{}
	s := quote.NewSession(context.Background(), seq, defaults)
	s.AddItem(quote.ItemInput{Description: "PINTURA", Quantity: dec("1"), UnitPrice: dec("100")})

	_, ok := s.Compute()
	require.False(t, ok)
}

func TestComputeDerivesTotals(t *testing.T) {
	s := newSession(t)
	s.AddItem(quote.ItemInput{
		MaterialCode: "PROK02",
		Description:  "PINTURA PROKRETE 205",
		Quantity:     dec("3"),
		UnitPrice:    dec("100"),
		DiscountPct:  dec("10"),
	})
	s.AddItem(quote.ItemInput{Description: "MANO DE OBRA", Quantity: dec("1"), UnitPrice: dec("50")})
	pct := dec("10")
	s.ApplySettings(quote.SettingsPatch{DiscountPct: &pct})

	q, ok := s.Compute()
	require.True(t, ok)
	require.Equal(t, "00013802", q.Number)
	require.True(t, q.Subtotal.Equal(dec("320")))
	require.True(t, q.DiscountAmount.Equal(dec("32")))
	require.True(t, q.NetPrice.Equal(dec("288")))
	require.True(t, q.TaxAmount.Equal(dec("60.48")))
	require.True(t, q.Total.Equal(dec("348.48")))
	require.True(t, q.ItemCount.Equal(dec("4")))
}

func TestComputeKeepsSessionNumber(t *testing.T) {
	s := newSession(t)
	s.AddItem(quote.ItemInput{Description: "PINTURA", Quantity: dec("1"), UnitPrice: dec("100")})

	first, ok := s.Compute()
	require.True(t, ok)
	second, ok := s.Compute()
	require.True(t, ok)
	require.Equal(t, first.Number, second.Number)
}

func TestSnapshotStaysStaleAfterEdits(t *testing.T) {
	s := newSession(t)
	item := s.AddItem(quote.ItemInput{Description: "PINTURA", Quantity: dec("1"), UnitPrice: dec("100")})

	q, ok := s.Compute()
	require.True(t, ok)
	require.True(t, q.Total.Equal(dec("121")))

	qty := dec("10")
	_, ok = s.UpdateItem(item.ID, quote.ItemPatch{Quantity: &qty})
	require.True(t, ok)

	stale, ok := s.Snapshot()
	require.True(t, ok)
	require.True(t, stale.Total.Equal(dec("121")))
	require.True(t, stale.Items[0].Quantity.Equal(dec("1")))

	fresh, ok := s.Compute()
	require.True(t, ok)
	require.True(t, fresh.Total.Equal(dec("1210")))
}

func TestResetRestoresDefaultsAndDrawsNewNumber(t *testing.T) {
	s := newSession(t)
	s.AddItem(quote.ItemInput{Description: "PINTURA", Quantity: dec("1"), UnitPrice: dec("100")})
	s.SetCustomer(customer.Customer{CompanyName: "ACME SRL"})
	pct := dec("15")
	seller := "RAMIREZ"
	s.ApplySettings(quote.SettingsPatch{DiscountPct: &pct, Seller: &seller})
	_, ok := s.Compute()
	require.True(t, ok)

	s.Reset(context.Background())

	state := s.State()
	require.Equal(t, "00013803", state.Number)
	require.Equal(t, "CONSUMIDOR FINAL", state.Customer.CompanyName)
	require.Empty(t, state.Items)
	require.Empty(t, state.Seller)
	require.True(t, state.DiscountPct.IsZero())
	_, ok = s.Snapshot()
	require.False(t, ok)
}

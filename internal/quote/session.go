package quote

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rhpisos/quoting-api/internal/customer"
	"github.com/rhpisos/quoting-api/internal/pricing"
)

// Defaults are the values a fresh session (and every Reset) starts from.
type Defaults struct {
	Customer    customer.Customer
	DiscountPct decimal.Decimal
	TaxPct      decimal.Decimal
	Terms       string
}

// State is the editable session as the API reports it: everything the
// operator can change plus the quote number the next snapshot will carry.
type State struct {
	Number      string            `json:"number"`
	Customer    customer.Customer `json:"customer"`
	Seller      string            `json:"seller"`
	DueDate     string            `json:"dueDate"`
	DiscountPct decimal.Decimal   `json:"discountPct"`
	TaxPct      decimal.Decimal   `json:"taxPct"`
	Terms       string            `json:"terms"`
	Items       []LineItem        `json:"items"`
}

// ItemInput is the caller-supplied part of a new line item.
type ItemInput struct {
	MaterialCode string
	Description  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	DiscountPct  decimal.Decimal
}

// ItemPatch updates individual line item fields. Nil fields are left
// untouched; a change to quantity, price or discount recomputes the line
// subtotal.
type ItemPatch struct {
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	DiscountPct *decimal.Decimal
}

// SettingsPatch updates quote-level parameters.
type SettingsPatch struct {
	Seller      *string
	DueDate     *string
	DiscountPct *decimal.Decimal
	TaxPct      *decimal.Decimal
	Terms       *string
}

// Session is the single quote under edit. The app serves one session per
// process, but handlers run on concurrent requests, so every access goes
// through the mutex. A computed snapshot is pinned until the next Compute
// or Reset; mutating the session afterwards leaves the old snapshot stale
// rather than invalidating it.
type Session struct {
	mu          sync.Mutex
	seq         *Sequence
	defaults    Defaults
	number      string
	customer    customer.Customer
	customerSet bool
	seller      string
	dueDate     string
	discountPct decimal.Decimal
	taxPct      decimal.Decimal
	terms       string
	items       []LineItem
	snapshot    *Quote
}

// NewSession starts a session from the given defaults and draws its first
// quote number.
func NewSession(ctx context.Context, seq *Sequence, defaults Defaults) *Session {
	s := &Session{seq: seq, defaults: defaults}
	s.applyDefaults()
	s.number = seq.Next(ctx)
	return s
}

func (s *Session) applyDefaults() {
	s.customer = s.defaults.Customer
	s.customerSet = s.defaults.Customer.CompanyName != ""
	s.seller = ""
	s.dueDate = ""
	s.discountPct = s.defaults.DiscountPct
	s.taxPct = s.defaults.TaxPct
	s.terms = s.defaults.Terms
	s.items = nil
	s.snapshot = nil
}

// State returns a copy of the editable session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Number:      s.number,
		Customer:    s.customer,
		Seller:      s.seller,
		DueDate:     s.dueDate,
		DiscountPct: s.discountPct,
		TaxPct:      s.taxPct,
		Terms:       s.terms,
		Items:       copyItems(s.items),
	}
}

// SetCustomer replaces the active customer wholesale. An existing snapshot
// is left in place and simply goes stale.
func (s *Session) SetCustomer(c customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = c
	s.customerSet = true
}

// ApplySettings merges the patch into the quote-level parameters.
func (s *Session) ApplySettings(p SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Seller != nil {
		s.seller = *p.Seller
	}
	if p.DueDate != nil {
		s.dueDate = *p.DueDate
	}
	if p.DiscountPct != nil {
		s.discountPct = *p.DiscountPct
	}
	if p.TaxPct != nil {
		s.taxPct = *p.TaxPct
	}
	if p.Terms != nil {
		s.terms = *p.Terms
	}
}

// AddItem appends a priced line. Adding a material that is already on the
// quote accumulates quantity on the existing line instead of duplicating
// it; lines without a material code always append.
func (s *Session) AddItem(in ItemInput) LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.MaterialCode != "" {
		for i := range s.items {
			if s.items[i].MaterialCode == in.MaterialCode {
				s.items[i].Quantity = s.items[i].Quantity.Add(in.Quantity)
				s.items[i].Subtotal = pricing.LineSubtotal(
					s.items[i].Quantity, s.items[i].UnitPrice, s.items[i].DiscountPct)
				return s.items[i]
			}
		}
	}
	item := LineItem{
		ID:           uuid.NewString(),
		MaterialCode: in.MaterialCode,
		Description:  in.Description,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		DiscountPct:  in.DiscountPct,
		Subtotal:     pricing.LineSubtotal(in.Quantity, in.UnitPrice, in.DiscountPct),
	}
	s.items = append(s.items, item)
	return item
}

// UpdateItem merges the patch into the line with the given id and reports
// whether the line existed.
func (s *Session) UpdateItem(id string, p ItemPatch) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if p.Description != nil {
			s.items[i].Description = *p.Description
		}
		reprice := false
		if p.Quantity != nil {
			s.items[i].Quantity = *p.Quantity
			reprice = true
		}
		if p.UnitPrice != nil {
			s.items[i].UnitPrice = *p.UnitPrice
			reprice = true
		}
		if p.DiscountPct != nil {
			s.items[i].DiscountPct = *p.DiscountPct
			reprice = true
		}
		if reprice {
			s.items[i].Subtotal = pricing.LineSubtotal(
				s.items[i].Quantity, s.items[i].UnitPrice, s.items[i].DiscountPct)
		}
		return s.items[i], true
	}
	return LineItem{}, false
}

// RemoveItem deletes the line with the given id. Unknown ids are a no-op.
func (s *Session) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Compute derives a snapshot from the current session under the current
// quote number. It returns false, leaving any previous snapshot in place,
// when no customer is set or the quote has no lines.
func (s *Session) Compute() (Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.customerSet || len(s.items) == 0 {
		return Quote{}, false
	}
	lines := make([]pricing.Line, len(s.items))
	for i, it := range s.items {
		lines[i] = pricing.Line{Quantity: it.Quantity, Subtotal: it.Subtotal}
	}
	subtotal := pricing.Subtotal(lines)
	q := Quote{
		Number:         s.number,
		Customer:       s.customer,
		Seller:         s.seller,
		Items:          copyItems(s.items),
		Subtotal:       subtotal,
		DiscountPct:    s.discountPct,
		DiscountAmount: pricing.DiscountAmount(subtotal, s.discountPct),
		NetPrice:       pricing.NetPrice(subtotal, s.discountPct),
		TaxPct:         s.taxPct,
		TaxAmount:      pricing.TaxAmount(pricing.NetPrice(subtotal, s.discountPct), s.taxPct),
		Total:          pricing.GrandTotal(subtotal, s.discountPct, s.taxPct),
		ItemCount:      pricing.TotalQuantity(lines),
		DueDate:        s.dueDate,
		Terms:          s.terms,
	}
	s.snapshot = &q
	return q, true
}

// Snapshot returns the last computed quote, which may lag behind the
// session if it was edited after Compute.
func (s *Session) Snapshot() (Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return Quote{}, false
	}
	return *s.snapshot, true
}

// Reset restores the defaults, clears lines and the snapshot, and draws a
// fresh quote number.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyDefaults()
	s.number = s.seq.Next(ctx)
}

func copyItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// Package quote holds the single editing session behind the quoting screen:
// the active customer, the line items being assembled, and the finalized
// snapshot the export collaborator consumes.
package quote

import (
	"github.com/shopspring/decimal"

	"github.com/rhpisos/quoting-api/internal/customer"
)

// LineItem is one priced row of the quote under edit. Description and
// UnitPrice are denormalized copies taken from the catalog at add time;
// later catalog edits do not flow back into existing lines.
type LineItem struct {
	ID           string          `json:"id"`
	MaterialCode string          `json:"materialCode,omitempty"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	DiscountPct  decimal.Decimal `json:"discountPct"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Quote is the immutable snapshot produced by Compute. It carries value
// copies only; mutating the session afterwards never changes an existing
// snapshot.
type Quote struct {
	Number         string            `json:"number"`
	Customer       customer.Customer `json:"customer"`
	Seller         string            `json:"seller,omitempty"`
	Items          []LineItem        `json:"items"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	DiscountPct    decimal.Decimal   `json:"discountPct"`
	DiscountAmount decimal.Decimal   `json:"discountAmount"`
	NetPrice       decimal.Decimal   `json:"netPrice"`
	TaxPct         decimal.Decimal   `json:"taxPct"`
	TaxAmount      decimal.Decimal   `json:"taxAmount"`
	Total          decimal.Decimal   `json:"total"`
	ItemCount      decimal.Decimal   `json:"itemCount"`
	DueDate        string            `json:"dueDate,omitempty"`
	Terms          string            `json:"terms"`
}

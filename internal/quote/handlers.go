package quote

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rhpisos/quoting-api/internal/common"
	"github.com/rhpisos/quoting-api/internal/customer"
	"github.com/rhpisos/quoting-api/internal/obs"
)

// Handler exposes the quote session endpoints.
type Handler struct {
	Session  *Session
	Validate *validator.Validate
}

type itemPayload struct {
	MaterialCode string          `json:"materialCode"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	DiscountPct  decimal.Decimal `json:"discountPct"`
}

type itemPatchPayload struct {
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	DiscountPct *decimal.Decimal `json:"discountPct"`
}

type settingsPayload struct {
	Seller      *string          `json:"seller"`
	DueDate     *string          `json:"dueDate"`
	DiscountPct *decimal.Decimal `json:"discountPct"`
	TaxPct      *decimal.Decimal `json:"taxPct"`
	Terms       *string          `json:"terms"`
}

// Get handles GET /api/v1/quote.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Session.State()})
}

// SetCustomer handles PUT /api/v1/quote/customer. The customer is replaced
// wholesale after validation; there is no partial merge.
func (h *Handler) SetCustomer(w http.ResponseWriter, r *http.Request) {
	var c customer.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		common.WriteError(w, common.BadRequest("invalid request body", err))
		return
	}
	if err := customer.Validate(h.Validate, c); err != nil {
		common.WriteError(w, err)
		return
	}
	h.Session.SetCustomer(c)
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Session.State()})
}

// UpdateSettings handles PUT /api/v1/quote/settings with partial fields.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.WriteError(w, common.BadRequest("invalid request body", err))
		return
	}
	if err := validateSettings(payload); err != nil {
		common.WriteError(w, err)
		return
	}
	h.Session.ApplySettings(SettingsPatch{
		Seller:      payload.Seller,
		DueDate:     payload.DueDate,
		DiscountPct: payload.DiscountPct,
		TaxPct:      payload.TaxPct,
		Terms:       payload.Terms,
	})
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Session.State()})
}

// AddItem handles POST /api/v1/quote/items. Adding an already-quoted
// material accumulates quantity on the existing line.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.WriteError(w, common.BadRequest("invalid request body", err))
		return
	}
	if err := validateItem(payload); err != nil {
		common.WriteError(w, err)
		return
	}
	item := h.Session.AddItem(ItemInput{
		MaterialCode: payload.MaterialCode,
		Description:  payload.Description,
		Quantity:     payload.Quantity,
		UnitPrice:    payload.UnitPrice,
		DiscountPct:  payload.DiscountPct,
	})
	common.JSON(w, http.StatusCreated, map[string]any{"data": item})
}

// UpdateItem handles PATCH /api/v1/quote/items/{id}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload itemPatchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.WriteError(w, common.BadRequest("invalid request body", err))
		return
	}
	if err := validateItemPatch(payload); err != nil {
		common.WriteError(w, err)
		return
	}
	item, ok := h.Session.UpdateItem(id, ItemPatch{
		Description: payload.Description,
		Quantity:    payload.Quantity,
		UnitPrice:   payload.UnitPrice,
		DiscountPct: payload.DiscountPct,
	})
	if !ok {
		common.WriteError(w, common.NotFound("line item not found"))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": item})
}

// RemoveItem handles DELETE /api/v1/quote/items/{id}. Removing an unknown id
// is a no-op and still answers 204.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.Session.RemoveItem(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Compute handles POST /api/v1/quote/compute, producing the immutable
// snapshot the export endpoint serves.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	q, ok := h.Session.Compute()
	if !ok {
		common.WriteError(w, common.Conflict("QUOTE_NOT_READY", "quote needs a customer and at least one line item"))
		return
	}
	if obs.QuotesComputedTotal != nil {
		obs.QuotesComputedTotal.Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": q})
}

// Reset handles POST /api/v1/quote/reset.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Session.Reset(r.Context())
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Session.State()})
}

func validateItem(p itemPayload) error {
	if p.Description == "" {
		return common.ValidationError("description", "description is required")
	}
	if p.Quantity.Sign() <= 0 {
		return common.ValidationError("quantity", "quantity must be greater than zero")
	}
	if p.UnitPrice.Sign() < 0 {
		return common.ValidationError("unitPrice", "unit price cannot be negative")
	}
	if !pctInRange(p.DiscountPct) {
		return common.ValidationError("discountPct", "discount must be between 0 and 100")
	}
	return nil
}

func validateItemPatch(p itemPatchPayload) error {
	if p.Description != nil && *p.Description == "" {
		return common.ValidationError("description", "description cannot be empty")
	}
	if p.Quantity != nil && p.Quantity.Sign() <= 0 {
		return common.ValidationError("quantity", "quantity must be greater than zero")
	}
	if p.UnitPrice != nil && p.UnitPrice.Sign() < 0 {
		return common.ValidationError("unitPrice", "unit price cannot be negative")
	}
	if p.DiscountPct != nil && !pctInRange(*p.DiscountPct) {
		return common.ValidationError("discountPct", "discount must be between 0 and 100")
	}
	return nil
}

func validateSettings(p settingsPayload) error {
	if p.DiscountPct != nil && !pctInRange(*p.DiscountPct) {
		return common.ValidationError("discountPct", "discount must be between 0 and 100")
	}
	if p.TaxPct != nil && !pctInRange(*p.TaxPct) {
		return common.ValidationError("taxPct", "tax must be between 0 and 100")
	}
	return nil
}

var maxPct = decimal.NewFromInt(100)

func pctInRange(pct decimal.Decimal) bool {
	return pct.Sign() >= 0 && pct.LessThanOrEqual(maxPct)
}

package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rhpisos/quoting-api/internal/common"
	"github.com/rhpisos/quoting-api/internal/obs"
)

// Handler exposes the material catalog endpoints.
type Handler struct {
	Store    *Store
	Validate *validator.Validate
}

type materialPayload struct {
	Code        string          `json:"code" validate:"required"`
	Description string          `json:"description" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"-"`
	Unit        Unit            `json:"unit" validate:"required,oneof=unit liter m2 kg meter"`
}

type materialPatchPayload struct {
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	Unit        *Unit            `json:"unit"`
}

// List handles GET /api/v1/materials with an optional ?q= filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Store.Search(query)})
}

// Get handles GET /api/v1/materials/{code}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	m, ok := h.Store.FindByCode(code)
	if !ok {
		common.WriteError(w, common.NotFound("material not found"))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": m})
}

// Create handles POST /api/v1/materials. Posting an existing code replaces
// the record in place, preserving its position.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload materialPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.WriteError(w, common.BadRequest("invalid request body", err))
		return
	}
	if err := h.validatePayload(payload); err != nil {
		common.WriteError(w, err)
		return
	}
	material := Material{
		Code:        payload.Code,
		Description: payload.Description,
		UnitPrice:   payload.UnitPrice,
		Unit:        payload.Unit,
	}
	h.Store.Upsert(r.Context(), material)
	if obs.CatalogMutationsTotal != nil {
		obs.CatalogMutationsTotal.WithLabelValues("upsert").Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": material})
}

// Update handles PUT /api/v1/materials/{code} with partial fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if _, ok := h.Store.FindByCode(code); !ok {
		common.WriteError(w, common.NotFound("material not found"))
		return
	}
	var payload materialPatchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.WriteError(w, common.BadRequest("invalid request body", err))
		return
	}
	if err := validatePatch(payload); err != nil {
		common.WriteError(w, err)
		return
	}
	h.Store.Update(r.Context(), code, Patch{
		Description: payload.Description,
		UnitPrice:   payload.UnitPrice,
		Unit:        payload.Unit,
	})
	if obs.CatalogMutationsTotal != nil {
		obs.CatalogMutationsTotal.WithLabelValues("update").Inc()
	}
	updated, _ := h.Store.FindByCode(code)
	common.JSON(w, http.StatusOK, map[string]any{"data": updated})
}

// Delete handles DELETE /api/v1/materials/{code}. Deleting an absent code is
// a no-op and still answers 204.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	h.Store.Remove(r.Context(), code)
	if obs.CatalogMutationsTotal != nil {
		obs.CatalogMutationsTotal.WithLabelValues("remove").Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /api/v1/materials/reset, restoring the seed catalog.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Store.ResetToDefaults(r.Context())
	if obs.CatalogMutationsTotal != nil {
		obs.CatalogMutationsTotal.WithLabelValues("reset").Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Store.List()})
}

func (h *Handler) validatePayload(payload materialPayload) error {
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			return asValidationError(err)
		}
	}
	if payload.UnitPrice.Sign() <= 0 {
		return common.ValidationError("unitPrice", "unit price must be greater than zero")
	}
	return nil
}

func validatePatch(payload materialPatchPayload) error {
	if payload.Description != nil && *payload.Description == "" {
		return common.ValidationError("description", "description cannot be empty")
	}
	if payload.UnitPrice != nil && payload.UnitPrice.Sign() <= 0 {
		return common.ValidationError("unitPrice", "unit price must be greater than zero")
	}
	if payload.Unit != nil && !ValidUnit(*payload.Unit) {
		return common.ValidationError("unit", "unknown unit")
	}
	return nil
}

func asValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return common.ValidationError(first.Field(), "invalid value for "+first.Field())
	}
	return common.BadRequest("invalid request", err)
}

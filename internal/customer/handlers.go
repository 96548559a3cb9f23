package customer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rhpisos/quoting-api/internal/common"
)

// Handler exposes the saved-customer directory endpoints.
type Handler struct {
	Directory *Directory
	Validate  *validator.Validate
}

// List handles GET /api/v1/customers.
func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Directory.List()})
}

// Create handles POST /api/v1/customers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.WriteError(w, common.BadRequest("invalid request body", err))
		return
	}
	if err := Validate(h.Validate, payload); err != nil {
		common.WriteError(w, err)
		return
	}
	saved := h.Directory.Save(r.Context(), payload)
	common.JSON(w, http.StatusCreated, map[string]any{"data": saved})
}

// Update handles PUT /api/v1/customers/{id}. The customer record is replaced
// wholesale.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.WriteError(w, common.BadRequest("invalid request body", err))
		return
	}
	if err := Validate(h.Validate, payload); err != nil {
		common.WriteError(w, err)
		return
	}
	if !h.Directory.Update(r.Context(), id, payload) {
		common.WriteError(w, common.NotFound("customer not found"))
		return
	}
	updated, _ := h.Directory.Find(id)
	common.JSON(w, http.StatusOK, map[string]any{"data": updated})
}

// Delete handles DELETE /api/v1/customers/{id}. Deleting an absent id
// remains a 204 no-op.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Directory.Delete(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

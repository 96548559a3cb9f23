package export

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rhpisos/quoting-api/internal/common"
	"github.com/rhpisos/quoting-api/internal/obs"
	"github.com/rhpisos/quoting-api/internal/quote"
)

// SnapshotSource hands out the last computed quote. Satisfied by
// quote.Session.
type SnapshotSource interface {
	Snapshot() (quote.Quote, bool)
}

// Handler serves the quote document download.
type Handler struct {
	Source    SnapshotSource
	Generator Generator
	Logger    zerolog.Logger
}

// Download handles GET /api/v1/quote/pdf. It serves the last computed
// snapshot as-is; edits made after Compute are not reflected until the
// operator computes again.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	q, ok := h.Source.Snapshot()
	if !ok {
		common.WriteError(w, common.Conflict("QUOTE_NOT_COMPUTED", "compute the quote before exporting"))
		return
	}

	start := time.Now()
	data, err := h.Generator.Generate(q)
	if err != nil {
		h.Logger.Error().Err(err).Str("number", q.Number).Msg("quote export failed")
		if obs.QuoteExportTotal != nil {
			obs.QuoteExportTotal.WithLabelValues("error").Inc()
		}
		common.WriteError(w, &common.AppError{
			Code:       "EXPORT_FAILED",
			Message:    "could not generate the quote document",
			HTTPStatus: http.StatusInternalServerError,
			Err:        err,
		})
		return
	}
	if obs.QuoteExportDuration != nil {
		obs.QuoteExportDuration.Observe(float64(time.Since(start).Milliseconds()))
	}
	if obs.QuoteExportTotal != nil {
		obs.QuoteExportTotal.WithLabelValues("ok").Inc()
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+Filename(q)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

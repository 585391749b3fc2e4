package report

import (
	"context"
	"net/http"

	"expensetracker/internal"
	"expensetracker/internal/transport"
)

type ServiceAPI interface {
	MonthlyReport(ctx context.Context, userID int64) (Report, error)
	DailyReport(ctx context.Context, userID int64, date string) (Report, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rep, err := h.Service.MonthlyReport(r.Context(), user.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Monthly report generated successfully", rep)
}

func (h *Handler) DailyReport(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rep, err := h.Service.DailyReport(r.Context(), user.ID, r.URL.Query().Get("date"))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Daily report generated successfully", rep)
}

package expense

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"expensetracker/internal"
	"expensetracker/internal/transport"

	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateExpense(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error)
	GetMyExpenses(ctx context.Context, userID int64) ([]*Expense, error)
	GetExpensesByUserID(ctx context.Context, userID int64) ([]*Expense, error)
	GetExpensesBetween(ctx context.Context, userID int64, from, to time.Time) ([]*Expense, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateExpense(r.Context(), user.ID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, "Expense created successfully", created)
}

func (h *Handler) GetMyExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenses, err := h.Service.GetMyExpenses(r.Context(), user.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Expenses retrieved successfully", expenses)
}

// GetExpensesByUserID serves any user's expenses to any authenticated caller.
func (h *Handler) GetExpensesByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	expenses, err := h.Service.GetExpensesByUserID(r.Context(), userID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Expenses retrieved successfully", expenses)
}

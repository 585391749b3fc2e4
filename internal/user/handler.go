package user

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"expensetracker/internal"
	"expensetracker/internal/expense"
	"expensetracker/internal/transport"

	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	UpdateProfile(ctx context.Context, userID int64, dto UpdateProfileDTO) (*Profile, error)
	GetUsers(ctx context.Context) ([]*Profile, error)
	UsersCount(ctx context.Context) (int64, error)
	GetUser(ctx context.Context, id int64) (*Profile, error)
	GetUserTransactions(ctx context.Context, id int64) ([]*expense.Expense, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateProfile(r.Context(), user.ID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Profile updated successfully", updated)
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetUsers(r.Context())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteDataWithCount(w, http.StatusOK, "Users retrieved successfully", int64(len(users)), users)
}

func (h *Handler) GetUsersCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.UsersCount(r.Context())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Users count retrieved successfully", map[string]int64{"count": count})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "User retrieved successfully", u)
}

func (h *Handler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	transactions, err := h.Service.GetUserTransactions(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Transactions retrieved successfully", transactions)
}

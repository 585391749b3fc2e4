package category

import (
	"context"
	"encoding/json"
	"net/http"

	"expensetracker/internal"
	"expensetracker/internal/transport"
)

type ServiceAPI interface {
	GetCategories(ctx context.Context, userID int64) ([]*Category, error)
	CreateCategory(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error)
	IsUsableBy(ctx context.Context, categoryID, userID int64) (bool, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categories, err := h.Service.GetCategories(r.Context(), user.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateCategory(r.Context(), user.ID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, "Category created successfully", created)
}

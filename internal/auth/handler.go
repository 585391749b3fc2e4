package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"expensetracker/internal"
	"expensetracker/internal/transport"
)

type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, dto ForgotPasswordDTO) (string, error)
	ResetPassword(ctx context.Context, dto ResetPasswordDTO) error
}

type FederatedAPI interface {
	Login(ctx context.Context, dto SocialLoginDTO) (*SocialLoginResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service   ServiceAPI
	Federated FederatedAPI
	Tokens    TokenAPI
	Repo      RepositoryAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, federated FederatedAPI, tokens TokenAPI, repo RepositoryAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     svc,
		Federated:   federated,
		Tokens:      tokens,
		Repo:        repo,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, "User registered successfully", resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Login successful", resp)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var dto ForgotPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.Service.ForgotPassword(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, message, nil)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var dto ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ResetPassword(r.Context(), dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Password reset successful", nil)
}

func (h *Handler) SocialLogin(w http.ResponseWriter, r *http.Request) {
	var dto SocialLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Federated.Login(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// AuthMiddleware verifies the bearer token and attaches the caller identity
// to the request context. Reset tokens are not session tokens and are
// rejected here regardless of validity.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "No token provided, authorization denied")
			return
		}

		result := h.Tokens.Verify(token)
		if !result.Valid {
			if result.Expired {
				h.WriteError(w, http.StatusUnauthorized, "Token expired")
			} else {
				h.WriteError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}
		if result.Claims.Purpose != "" {
			h.WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		u, err := h.Repo.GetByID(r.Context(), result.Claims.UserID)
		if err != nil {
			h.Logger.Error("auth middleware: user lookup failed", "user_id", result.Claims.UserID, "error", err)
			h.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if u == nil {
			h.WriteError(w, http.StatusUnauthorized, "User no longer exists")
			return
		}

		ctx := internal.ContextWithUser(r.Context(), &internal.SessionUser{ID: u.ID, Email: u.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

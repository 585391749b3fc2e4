package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"expensetracker/internal"
	"expensetracker/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers.
type BaseHandler struct {
	Logger  *slog.Logger
	DevMode bool
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// envelope is the response shape every endpoint uses:
// {success, message, data} on success, {success:false, message} on error.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int64      `json:"count,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

// WriteJSON writes a raw JSON response without the envelope.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteData writes a success envelope.
func (h *BaseHandler) WriteData(w http.ResponseWriter, status int, message string, data interface{}) {
	h.WriteJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// WriteDataWithCount writes a success envelope that carries a total count
// alongside the data, used by the user listing endpoints.
func (h *BaseHandler) WriteDataWithCount(w http.ResponseWriter, status int, message string, count int64, data interface{}) {
	h.WriteJSON(w, status, envelope{Success: true, Message: message, Count: &count, Data: data})
}

// WriteError writes an error envelope with an explicit status and message.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.WriteJSON(w, status, envelope{Success: false, Message: message})
}

// WriteAppError maps a domain error onto the error envelope. Unrecognized
// errors are downgraded to a generic 500 so internals never leak; outside
// production the stack is attached for debugging.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		if internal.IsDuplicateKey(err) {
			appErr = internal.NewConflictError("Duplicate entry found", internal.ErrCodeDuplicateEntry)
		} else {
			appErr = internal.NewInternalError("Internal Server Error", err)
		}
	}

	if appErr.Cause != nil {
		h.Logger.Error("request failed", "status", appErr.StatusCode, "message", appErr.Message, "cause", appErr.Cause)
	} else {
		h.Logger.Warn("request failed", "status", appErr.StatusCode, "message", appErr.Message)
	}

	resp := envelope{Success: false, Message: appErr.Message}
	if h.DevMode && appErr.StatusCode >= http.StatusInternalServerError {
		resp.Stack = string(debug.Stack())
	}
	h.WriteJSON(w, appErr.StatusCode, resp)
}

// ExtractTokenFromHeader extracts the Bearer token from the Authorization
// header.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}

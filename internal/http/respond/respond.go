package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/student-spending/spendboard/internal/backend"
)

type errorResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorResponse{Message: message})
}

// BackendStatus picks the status to answer with when the remote service failed.
// Authentication problems are passed through so the browser can log in again.
func BackendStatus(err error) int {
	var apiErr *backend.Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}

	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apiErr.Status
	case 0:
		return http.StatusServiceUnavailable
	}

	return http.StatusBadGateway
}

func BackendError(w http.ResponseWriter, err error) {
	status := BackendStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("unexpected backend failure", "error", err)
		Error(w, status, "internal error")

		return
	}

	var apiErr *backend.Error
	errors.As(err, &apiErr)

	Error(w, status, apiErr.Message)
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

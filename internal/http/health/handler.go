package health

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/http/respond"
)

type Checker interface {
	Health(ctx context.Context) (*backend.HealthStatus, error)
}

type Handler struct {
	name    string
	checker Checker
}

func NewHandler(name string, checker Checker) *Handler {
	return &Handler{name: name, checker: checker}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.health)
}

type healthResponse struct {
	Status  string                `json:"status"`
	Service string                `json:"service"`
	Backend *backend.HealthStatus `json:"backend,omitempty"`
	Message string                `json:"message,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	remote, err := h.checker.Health(r.Context())
	if err != nil {
		respond.JSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "degraded",
			Service: h.name,
			Message: err.Error(),
		})

		return
	}

	respond.JSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: h.name, Backend: remote})
}

package stats

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/http/respond"
	"github.com/student-spending/spendboard/internal/stats"
)

const chartWidth = 40

type Handler struct {
	svc *stats.Service
	now func() time.Time
}

func NewHandler(svc *stats.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.aggregate)
	r.Post("/classify", h.classify)
}

type aggregateResponse struct {
	*backend.AggregateResult
	Chart []stats.Bar `json:"chart"`
}

func (h *Handler) aggregate(w http.ResponseWriter, r *http.Request) {
	q := stats.DefaultQuery(h.now())

	if s := r.URL.Query().Get("start"); s != "" {
		q.Start = s
	}

	if s := r.URL.Query().Get("end"); s != "" {
		q.End = s
	}

	if s := r.URL.Query().Get("range"); s != "" {
		q.Range = backend.Range(s)
	}

	result, err := h.svc.Aggregate(r.Context(), respond.BearerToken(r), q)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidQuery) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.BackendError(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, aggregateResponse{
		AggregateResult: result,
		Chart:           stats.Bars(result.ByCategory, chartWidth),
	})
}

func (h *Handler) classify(w http.ResponseWriter, r *http.Request) {
	useLLM := false

	if s := r.URL.Query().Get("use_llm"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "use_llm must be a boolean")
			return
		}

		useLLM = v
	}

	result, err := h.svc.Classify(r.Context(), respond.BearerToken(r), useLLM)
	if err != nil {
		respond.BackendError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}

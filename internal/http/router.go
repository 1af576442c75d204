package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/student-spending/spendboard/internal/http/health"
	"github.com/student-spending/spendboard/internal/http/ingest"
	"github.com/student-spending/spendboard/internal/http/stats"
)

func New(
	allowedOrigins []string,
	limiter *rate.Limiter,
	ingestV1 *ingest.Handler,
	statsV1 *stats.Handler,
	healthV1 *health.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimit(limiter))

		r.Route("/import", ingestV1.ImportRoutes)

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ingestV1.TransactionRoutes(r)
		})

		statsV1.Routes(r)
		healthV1.Routes(r)
	})

	return router
}

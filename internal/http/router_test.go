package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/student-spending/spendboard/internal/backend"
	spendHttp "github.com/student-spending/spendboard/internal/http"
	"github.com/student-spending/spendboard/internal/http/health"
	"github.com/student-spending/spendboard/internal/http/ingest"
	statsHandler "github.com/student-spending/spendboard/internal/http/stats"
	"github.com/student-spending/spendboard/internal/importer"
	"github.com/student-spending/spendboard/internal/stats"
	"github.com/student-spending/spendboard/internal/upload"
)

type okChecker struct{}

func (okChecker) Health(context.Context) (*backend.HealthStatus, error) {
	return &backend.HealthStatus{Status: "healthy"}, nil
}

func newRouter() http.Handler {
	return newLimitedRouter(rate.NewLimiter(rate.Inf, 0))
}

func newLimitedRouter(limiter *rate.Limiter) http.Handler {
	statsSvc := stats.NewService(func(string) stats.Backend { return nil }, time.Minute)

	return spendHttp.New(
		[]string{"http://localhost:3000"},
		limiter,
		ingest.NewHandler(importer.NewService(), func(string) upload.Client { return nil }, statsSvc.Invalidate, 1<<20),
		statsHandler.NewHandler(statsSvc),
		health.NewHandler("Spendboard", okChecker{}),
	)
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/import/validate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_TransactionsRequireJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/", strings.NewReader("date,time"))
	req.Header.Set("Content-Type", "text/csv")

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	router := newLimitedRouter(rate.NewLimiter(rate.Every(time.Hour), 2))

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

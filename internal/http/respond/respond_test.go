package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/http/respond"
)

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc.def":  "abc.def",
		"bearer  abc ":    "abc",
		"Token abc":       "",
		"Bearer":          "",
		"":                "",
		"Basic dXNlcjpwdw": "",
	}

	for header, want := range tests {
		t.Run(header, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				r.Header.Set("Authorization", header)
			}

			assert.Equal(t, want, respond.BearerToken(r))
		})
	}
}

func TestBackendStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Unauthorized", err: &backend.Error{Status: 401}, want: http.StatusUnauthorized},
		{name: "Wrapped", err: fmt.Errorf("x: %w", &backend.Error{Status: 403}), want: http.StatusForbidden},
		{name: "Network", err: &backend.Error{Status: 0}, want: http.StatusServiceUnavailable},
		{name: "ServerError", err: &backend.Error{Status: 500}, want: http.StatusBadGateway},
		{name: "Other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond.BackendStatus(tt.err))
		})
	}
}

func TestBackendError(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.BackendError(rec, &backend.Error{Status: 500, Message: "database down"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"message":"database down"}`, rec.Body.String())
}

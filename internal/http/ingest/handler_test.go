package ingest_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/http/ingest"
	"github.com/student-spending/spendboard/internal/importer"
	"github.com/student-spending/spendboard/internal/upload"
)

const batchCSV = "date,time,merchant,memo,amount_krw,payment_type,city,channel\n" +
	"2024-01-05,09:30,Cafe,,4500,credit_card,Seoul,offline\n" +
	"2024-01-05,12:10,Gimbap,lunch,0,debit_card,Seoul,offline\n" +
	"2024-01-06,08:05,Subway,,1450,transport_card,Seoul,offline\n" +
	"2024-01-06,19:00,Bar,,12000,crypto,Seoul,offline\n" +
	"2024-01-07,21:15,Delivery,,18000,mobile_pay,Seoul,app\n"

type fixture struct {
	client   *upload.MockClient
	tokens   []string
	uploaded []string
	router   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{client: upload.NewMockClient(gomock.NewController(t))}

	h := ingest.NewHandler(
		importer.NewService(),
		func(token string) upload.Client {
			f.tokens = append(f.tokens, token)
			return f.client
		},
		func(token string) { f.uploaded = append(f.uploaded, token) },
		1<<20,
	)

	r := chi.NewRouter()
	r.Route("/import", h.ImportRoutes)
	r.Route("/transactions", h.TransactionRoutes)
	f.router = r

	return f
}

func multipartRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer tok")

	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	return got
}

func TestHandler_Validate(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, multipartRequest(t, "/import/validate", "january.csv", batchCSV))

	require.Equal(t, http.StatusOK, rec.Code)

	got := decode(t, rec)
	assert.Equal(t, map[string]any{"total": 5.0, "valid": 3.0, "invalid": 2.0}, got["summary"])

	invalid := got["invalid"].([]any)
	assert.Equal(t, 2.0, invalid[0].(map[string]any)["row"])
	assert.Equal(t, 4.0, invalid[1].(map[string]any)["row"])

	assert.Empty(t, f.tokens, "validation never talks to the backend")
}

func TestHandler_Validate_BadFiles(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantMsg  string
	}{
		{name: "Extension", filename: "january.xlsx", content: batchCSV, wantMsg: "unsupported file type"},
		{name: "BrokenJSONL", filename: "batch.jsonl", content: "{}\n{oops\n", wantMsg: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, multipartRequest(t, "/import/validate", tt.filename, tt.content))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode(t, rec)["message"], tt.wantMsg)
		})
	}
}

func TestHandler_Validate_MissingFile(t *testing.T) {
	f := newFixture(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import/validate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Upload(t *testing.T) {
	f := newFixture(t)

	f.client.EXPECT().
		UploadTransactions(gomock.Any(), gomock.Len(3)).
		Return(&backend.UploadResult{
			Accepted: 2,
			Rejected: 1,
			Reasons:  []backend.RejectReason{{Row: 3, Reason: "duplicate transaction"}},
		}, nil)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, multipartRequest(t, "/import/upload", "january.csv", batchCSV))

	require.Equal(t, http.StatusOK, rec.Code)

	got := decode(t, rec)
	assert.Equal(t, map[string]any{
		"accepted": 2.0,
		"rejected": 1.0,
		"reasons":  []any{map[string]any{"row": 3.0, "reason": "duplicate transaction"}},
	}, got["upload"])

	assert.Equal(t, []string{"tok"}, f.tokens)
	assert.Equal(t, []string{"tok"}, f.uploaded)
}

func TestHandler_Upload_NothingValid(t *testing.T) {
	f := newFixture(t)

	csv := "date,time,merchant,memo,amount_krw,payment_type,city,channel\n" +
		"2024-01-05,09:30,,,4500,credit_card,Seoul,offline\n"

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, multipartRequest(t, "/import/upload", "january.csv", csv))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, upload.ErrEmptyBatch.Error(), decode(t, rec)["message"])
	assert.Empty(t, f.uploaded)
}

func TestHandler_Upload_BackendErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "Unauthorized", err: &backend.Error{Status: 401, Message: "token expired"}, wantStatus: http.StatusUnauthorized},
		{name: "ServerError", err: &backend.Error{Status: 500, Message: "database down"}, wantStatus: http.StatusBadGateway},
		{name: "Network", err: &backend.Error{Message: "connection refused"}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.client.EXPECT().UploadTransactions(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, multipartRequest(t, "/import/upload", "january.csv", batchCSV))

			assert.Equal(t, tt.wantStatus, rec.Code)

			got := decode(t, rec)
			assert.NotContains(t, got, "upload")
			assert.Contains(t, got, "validation")
			assert.Empty(t, f.uploaded)
		})
	}
}

func TestHandler_Manual(t *testing.T) {
	f := newFixture(t)

	f.client.EXPECT().
		UploadTransactions(gomock.Any(), gomock.Len(1)).
		Return(&backend.UploadResult{Accepted: 1, Reasons: []backend.RejectReason{}}, nil)

	body := `{"transactions":[
		{"date":"2024-01-05","time":"09:30","merchant":"Cafe","amount_krw":4500,"payment_type":"credit_card","city":"Seoul","channel":"offline"},
		{"date":"2024-01-05","time":"09:30","merchant":"Cafe","amount_krw":"4500","payment_type":"credit_card","city":"Seoul","channel":"offline"}
	]}`

	req := httptest.NewRequest(http.MethodPost, "/transactions/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	got := decode(t, rec)
	validation := got["validation"].(map[string]any)
	assert.Equal(t, map[string]any{"total": 2.0, "valid": 1.0, "invalid": 1.0}, validation["summary"])
	assert.Equal(t, []string{""}, f.tokens, "requests without a bearer header go out anonymous")
}

func TestHandler_Manual_BadBody(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/transactions/", strings.NewReader(`{"transactions":[1,2]}`))

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

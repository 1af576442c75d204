package ingest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/http/respond"
	"github.com/student-spending/spendboard/internal/importer"
	"github.com/student-spending/spendboard/internal/transaction"
	"github.com/student-spending/spendboard/internal/upload"
)

// ClientFactory returns an upload client acting for the given bearer token.
type ClientFactory func(token string) upload.Client

type Handler struct {
	importSvc  *importer.Service
	clients    ClientFactory
	onUploaded func(token string)
	maxBytes   int64
}

func NewHandler(importSvc *importer.Service, clients ClientFactory, onUploaded func(token string), maxBytes int64) *Handler {
	return &Handler{
		importSvc:  importSvc,
		clients:    clients,
		onUploaded: onUploaded,
		maxBytes:   maxBytes,
	}
}

// ImportRoutes serves file validation and upload.
func (h *Handler) ImportRoutes(r chi.Router) {
	r.Post("/validate", h.validateFile)
	r.Post("/upload", h.uploadFile)
}

// TransactionRoutes serves manually entered batches.
func (h *Handler) TransactionRoutes(r chi.Router) {
	r.Post("/", h.uploadManual)
}

type validationResponse struct {
	Summary transaction.Summary       `json:"summary"`
	Valid   []transaction.Transaction `json:"valid"`
	Invalid []transaction.InvalidRow  `json:"invalid"`
}

type submissionResponse struct {
	Validation validationResponse    `json:"validation"`
	Upload     *backend.UploadResult `json:"upload,omitempty"`
	Message    string                `json:"message,omitempty"`
}

type manualRequest struct {
	Transactions []transaction.Record `json:"transactions"`
}

func (h *Handler) validateFile(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ingest(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toValidationResponse(result))
}

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	result, ok := h.ingest(w, r)
	if !ok {
		return
	}

	h.submit(w, r, result)
}

func (h *Handler) uploadManual(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	var req manualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result := h.importSvc.ValidateBatch(req.Transactions)
	h.submit(w, r, &result)
}

func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) (*transaction.ValidationResult, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return nil, false
	}
	defer file.Close()

	result, err := h.importSvc.Ingest(header.Filename, file)
	if err != nil {
		var pe *importer.ParseError
		if errors.As(err, &pe) {
			respond.Error(w, http.StatusBadRequest, pe.Error())
			return nil, false
		}

		slog.Error("failed to ingest file", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return nil, false
	}

	summary := result.Summary()
	slog.Info("ingested file", "rows", summary.Total, "valid", summary.Valid, "invalid", summary.Invalid)

	return result, true
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, result *transaction.ValidationResult) {
	resp := submissionResponse{Validation: toValidationResponse(result)}
	token := respond.BearerToken(r)

	uploaded, err := upload.NewUploader(h.clients(token)).Submit(r.Context(), result.Valid)
	if err != nil {
		if errors.Is(err, upload.ErrEmptyBatch) {
			resp.Message = err.Error()
			respond.JSON(w, http.StatusUnprocessableEntity, resp)

			return
		}

		var apiErr *backend.Error
		if !errors.As(err, &apiErr) {
			slog.Error("failed to upload batch", "error", err)
			respond.Error(w, http.StatusInternalServerError, "internal error")

			return
		}

		resp.Message = apiErr.Message
		respond.JSON(w, respond.BackendStatus(err), resp)

		return
	}

	if uploaded.Accepted > 0 && h.onUploaded != nil {
		h.onUploaded(token)
	}

	resp.Upload = uploaded
	respond.JSON(w, http.StatusOK, resp)
}

func toValidationResponse(result *transaction.ValidationResult) validationResponse {
	return validationResponse{
		Summary: result.Summary(),
		Valid:   result.Valid,
		Invalid: result.Invalid,
	}
}

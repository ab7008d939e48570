package importhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	importservice "github.com/rosterhq/roster-import/app/modules/playerimport/application"
	"github.com/rosterhq/roster-import/app/modules/playerimport/application/readers"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace"
)

// ActingUserHeader carries the identity of the person performing the import.
// Authentication happens upstream; this layer only requires the header to be
// a well-formed UUID.
const ActingUserHeader = "X-Acting-User"

// multipartMemoryLimit bounds the in-memory portion of multipart parsing.
const multipartMemoryLimit = 8 << 20

// ImportHandlers implements the Handlers interface over HTTP.
type ImportHandlers struct {
	service importservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	limits  importservice.Limits
}

// NewImportHandlers creates a new ImportHandlers instance.
func NewImportHandlers(
	service importservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	limits importservice.Limits,
) Handlers {
	if limits.MaxFileBytes <= 0 {
		limits = importservice.DefaultLimits
	}
	return &ImportHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		limits:  limits,
	}
}

// HandleUpload accepts a multipart upload under the "file" field and responds
// with the validation summary.
func (h *ImportHandlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	// The multipart envelope adds headers and boundaries on top of the file
	// itself, so allow some slack before the body limit trips.
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxFileBytes+(1<<20))

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("File exceeds the %d byte limit", h.limits.MaxFileBytes))
			return
		}
		h.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Request is not valid multipart form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "MISSING_FILE", `Multipart field "file" is required`)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to read uploaded file", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to read uploaded file")
		return
	}

	summary, err := h.service.ValidateUpload(ctx, clubID, header.Filename, data)
	if err != nil {
		h.respondServiceError(ctx, w, err)
		return
	}

	h.respondJSON(ctx, w, http.StatusOK, summary)
}

// revalidateRequest is the input for HandleRevalidate.
type revalidateRequest struct {
	Rows []*importdomain.ImportRow `json:"rows"`
}

// HandleRevalidate re-runs validation and duplicate detection over edited rows.
func (h *ImportHandlers) HandleRevalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	var input revalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Request body is not valid JSON")
		return
	}

	summary, err := h.service.Revalidate(ctx, clubID, input.Rows)
	if err != nil {
		h.respondServiceError(ctx, w, err)
		return
	}

	h.respondJSON(ctx, w, http.StatusOK, summary)
}

// commitRequest is the input for HandleCommit.
type commitRequest struct {
	FileName string                    `json:"fileName"`
	Rows     []*importdomain.ImportRow `json:"rows"`
}

// HandleCommit persists marked rows as players.
func (h *ImportHandlers) HandleCommit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	actingUser, err := uuid.Parse(r.Header.Get(ActingUserHeader))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "INVALID_ACTING_USER",
			fmt.Sprintf("%s header must be a valid UUID", ActingUserHeader))
		return
	}

	var input commitRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Request body is not valid JSON")
		return
	}

	result, err := h.service.Commit(ctx, clubID, actingUser, input.FileName, input.Rows)
	if err != nil {
		h.respondServiceError(ctx, w, err)
		return
	}

	h.respondJSON(ctx, w, http.StatusCreated, result)
}

// HandleGetImport returns one import audit with its row entries.
func (h *ImportHandlers) HandleGetImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clubID, ok := h.clubID(w, r)
	if !ok {
		return
	}

	importID, err := uuid.Parse(chi.URLParam(r, "importID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "INVALID_IMPORT_ID", "importID must be a valid UUID")
		return
	}

	audit, err := h.service.GetImport(ctx, clubID, importID)
	if err != nil {
		h.respondServiceError(ctx, w, err)
		return
	}

	h.respondJSON(ctx, w, http.StatusOK, audit)
}

// HandleTemplate serves a downloadable starter file. Format comes from the
// "format" query parameter and defaults to CSV.
func (h *ImportHandlers) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.service.GenerateTemplate(r.URL.Query().Get("format"))
	if err != nil {
		if errors.Is(err, readers.ErrUnsupportedFormat) {
			h.respondError(w, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Format must be csv or xlsx")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to generate template", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to generate template")
		return
	}

	w.Header().Set("Content-Type", tmpl.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tmpl.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(tmpl.Data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write template response", slog.Any("error", err))
	}
}

// clubID parses the club route parameter, responding with 400 on failure.
func (h *ImportHandlers) clubID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	clubID, err := uuid.Parse(chi.URLParam(r, "clubID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "INVALID_CLUB_ID", "clubID must be a valid UUID")
		return uuid.Nil, false
	}
	return clubID, true
}

// respondServiceError maps service errors onto HTTP statuses.
func (h *ImportHandlers) respondServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, importservice.ErrFileTooLarge):
		h.respondError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, importservice.ErrTooManyRows):
		h.respondError(w, http.StatusBadRequest, "TOO_MANY_ROWS", err.Error())
	case errors.Is(err, importservice.ErrCommitRejected):
		h.respondError(w, http.StatusBadRequest, "COMMIT_REJECTED", err.Error())
	case errors.Is(err, readers.ErrUnsupportedFormat):
		h.respondError(w, http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error())
	case errors.Is(err, readers.ErrEmptyFile):
		h.respondError(w, http.StatusBadRequest, "EMPTY_FILE", err.Error())
	case errors.Is(err, readers.ErrMalformedContent):
		h.respondError(w, http.StatusBadRequest, "MALFORMED_CONTENT", err.Error())
	case errors.Is(err, importdb.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "NOT_FOUND", "Import not found")
	default:
		h.logger.ErrorContext(ctx, "Import request failed", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *ImportHandlers) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: code, Message: message})
}

func (h *ImportHandlers) respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode response", slog.Any("error", err))
	}
}

package http

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/leave-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead is allowed on top of the document size for the other form fields.
const multipartOverhead = 1 << 20

type SicknessHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Document(w http.ResponseWriter, r *http.Request)
	MarkViewed(w http.ResponseWriter, r *http.Request)
	ResendEmail(w http.ResponseWriter, r *http.Request)
	UnviewedCount(w http.ResponseWriter, r *http.Request)
}

type SicknessHandlerImpl struct {
	sicknessService sickness.SicknessService
	maxFileSize     int64
}

// List implements SicknessHandler.
func (h *SicknessHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var errs validator.ValidationErrors
	skip, limit := parsePaging(r, &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	declarations, err := h.sicknessService.List(r.Context(), actor, sickness.ListQuery{Skip: skip, Limit: limit})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, declarations, &response.Meta{Skip: skip, Limit: limit, Count: len(declarations)})
}

// Get implements SicknessHandler.
func (h *SicknessHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	declaration, err := h.sicknessService.GetByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, declaration)
}

// Create implements SicknessHandler.
func (h *SicknessHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.HandleError(w, sickness.ErrDocumentTooLarge)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := sickness.CreateDeclarationRequest{
		StartDate: r.FormValue("start_date"),
		EndDate:   r.FormValue("end_date"),
	}
	if values, ok := r.MultipartForm.Value["description"]; ok && len(values) > 0 {
		description := values[0]
		req.Description = &description
	}

	document, header, err := r.FormFile("pdf_file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if document != nil {
		defer document.Close()
		req.Document = document
		req.DocumentName = header.Filename
		req.DocumentSize = header.Size
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.sicknessService.Create(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sickness declaration submitted", created)
}

// Document implements SicknessHandler. The PDF is streamed inline under its original name.
func (h *SicknessHandlerImpl) Document(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rc, filename, err := h.sicknessService.OpenDocument(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", file.PDFContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("Failed to stream sickness document", "error", err)
	}
}

// MarkViewed implements SicknessHandler.
func (h *SicknessHandlerImpl) MarkViewed(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	declaration, err := h.sicknessService.MarkViewed(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Declaration marked as viewed", declaration)
}

// ResendEmail implements SicknessHandler.
func (h *SicknessHandlerImpl) ResendEmail(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	declaration, err := h.sicknessService.ResendEmail(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("ResendEmail service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification email sent", declaration)
}

// UnviewedCount implements SicknessHandler.
func (h *SicknessHandlerImpl) UnviewedCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.sicknessService.UnviewedCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"unviewed_count": count})
}

func NewSicknessHandler(sicknessService sickness.SicknessService, maxFileSize int64) SicknessHandler {
	return &SicknessHandlerImpl{
		sicknessService: sicknessService,
		maxFileSize:     maxFileSize,
	}
}

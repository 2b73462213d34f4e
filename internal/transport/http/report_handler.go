// Package http contains the HTTP handlers, one handler type per
// resource, each exposing its routes as a chi.Router.
package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "khazna/internal/errors"
	"khazna/internal/services"
	"khazna/pkg/contracts/domain"
)

var validate = validator.New()

// ReportRequest is the form payload accompanying a workbook upload.
type ReportRequest struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

// ReportResponse is the JSON body returned by report generation.
type ReportResponse struct {
	Data   *domain.ReportBundle     `json:"data"`
	Errors []domain.ValidationError `json:"errors"`
}

// ReportHandler handles report generation requests.
type ReportHandler struct {
	service        services.ReportService
	errorHandler   *apierrors.ErrorHandler
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewReportHandler creates a report handler.
func NewReportHandler(service services.ReportService, errorHandler *apierrors.ErrorHandler, logger *slog.Logger, maxUploadBytes int64) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:        service,
		errorHandler:   errorHandler,
		logger:         logger.With(slog.String("handler", "report")),
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.Generate)
	return r
}

// Generate handles POST /api/report. It expects a multipart form with
// a "file" part holding the workbook and a "date" field (YYYY-MM-DD).
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("invalid multipart form", err))
		return
	}

	req := ReportRequest{Date: r.FormValue("date")}
	if err := validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("date must be provided in YYYY-MM-DD format", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("missing workbook file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewParsingError("failed to read uploaded file", err))
		return
	}

	bundle, verrs, err := h.service.GenerateReport(r.Context(), header.Filename, data, req.Date)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if verrs == nil {
		verrs = []domain.ValidationError{}
	}
	render.JSON(w, r, ReportResponse{Data: bundle, Errors: verrs})
}

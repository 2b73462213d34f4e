// Package services contains the application services sitting between
// the HTTP transport and the extraction engine.
package services

import (
	"context"
	"log/slog"
	"time"

	"khazna/internal/dataprocessing"
	apperrors "khazna/internal/errors"
	"khazna/internal/validation"
	"khazna/internal/workbook"
	"khazna/pkg/contracts/domain"
)

// decodeFailureMessage is shown to the user when the uploaded buffer
// cannot be opened as an xlsx workbook.
const decodeFailureMessage = "فشل في قراءة الملف. تأكد من أن الملف بصيغة Excel صحيحة (.xlsx)"

// ReportService generates report bundles from uploaded workbooks.
type ReportService interface {
	GenerateReport(ctx context.Context, filename string, data []byte, targetDate string) (*domain.ReportBundle, []domain.ValidationError, error)
}

type reportService struct {
	validator *validation.UploadValidator
	assembler *dataprocessing.Assembler
	logger    *slog.Logger
}

// NewReportService creates a report service. A nil logger falls back
// to slog.Default.
func NewReportService(validator *validation.UploadValidator, assembler *dataprocessing.Assembler, logger *slog.Logger) ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &reportService{
		validator: validator,
		assembler: assembler,
		logger:    logger,
	}
}

// GenerateReport validates the upload, decodes the workbook and runs
// the extraction pipeline for targetDate (YYYY-MM-DD).
//
// Caller faults (bad date, rejected upload) are returned as error.
// Workbook-content problems are returned as ValidationErrors alongside
// whatever data could still be extracted; a decode failure yields a
// single file-kind ValidationError and nil data.
func (s *reportService) GenerateReport(ctx context.Context, filename string, data []byte, targetDate string) (*domain.ReportBundle, []domain.ValidationError, error) {
	if _, err := time.Parse("2006-01-02", targetDate); err != nil {
		return nil, nil, apperrors.NewValidationError("target date must be in YYYY-MM-DD format", err).
			WithContext("target_date", targetDate)
	}

	if err := s.validator.Validate(filename, data); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	s.logger.InfoContext(ctx, "report generation started",
		slog.String("filename", filename),
		slog.String("target_date", targetDate),
		slog.Int("size", len(data)))

	wb, err := workbook.Open(data)
	if err != nil {
		s.logger.WarnContext(ctx, "workbook decode failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return nil, []domain.ValidationError{{
			Kind:    domain.ErrorKindFile,
			Message: decodeFailureMessage,
		}}, nil
	}
	defer wb.Close()

	bundle, verrs := s.assembler.Assemble(ctx, wb, targetDate)

	s.logger.InfoContext(ctx, "report generation completed",
		slog.String("filename", filename),
		slog.String("target_date", targetDate),
		slog.Int("validation_errors", len(verrs)),
		slog.String("duration", time.Since(start).String()))

	return bundle, verrs, nil
}

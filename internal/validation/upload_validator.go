// Package validation checks uploaded workbook files before parsing.
package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"khazna/internal/config"
	apperrors "khazna/internal/errors"
)

// xlsx files are zip archives, so a valid upload starts with the zip
// local file header.
var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// UploadValidator validates uploaded workbook files against the
// configured size and extension limits.
type UploadValidator struct {
	cfg    config.UploadConfig
	logger *slog.Logger
}

// NewUploadValidator creates an upload validator.
func NewUploadValidator(cfg config.UploadConfig, logger *slog.Logger) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{cfg: cfg, logger: logger}
}

// Validate checks the uploaded file name and content. It returns an
// AppError of type validation on any failure.
func (v *UploadValidator) Validate(filename string, data []byte) error {
	if len(data) == 0 {
		return apperrors.NewValidationError("uploaded file is empty", nil).
			WithContext("filename", filename)
	}

	if int64(len(data)) > v.cfg.MaxSizeBytes {
		v.logger.Warn("upload exceeds size limit",
			slog.String("filename", filename),
			slog.Int("size", len(data)),
			slog.Int64("limit", v.cfg.MaxSizeBytes))
		return apperrors.NewValidationError(
			fmt.Sprintf("file exceeds maximum size of %d bytes", v.cfg.MaxSizeBytes), nil).
			WithContext("filename", filename).
			WithContext("size", len(data))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !v.extensionAllowed(ext) {
		return apperrors.NewValidationError(
			fmt.Sprintf("unsupported file extension %q, allowed: %s", ext, strings.Join(v.cfg.AllowedExtensions, ", ")), nil).
			WithContext("filename", filename)
	}

	// Excel lock files start with ~$ and are not real workbooks.
	if strings.HasPrefix(filepath.Base(filename), "~$") {
		return apperrors.NewValidationError("file is a temporary Excel lock file", nil).
			WithContext("filename", filename)
	}

	if !bytes.HasPrefix(data, zipMagic) {
		return apperrors.NewValidationError("file content is not a valid xlsx workbook", nil).
			WithContext("filename", filename)
	}

	v.logger.Debug("upload validated",
		slog.String("filename", filename),
		slog.Int("size", len(data)))
	return nil
}

func (v *UploadValidator) extensionAllowed(ext string) bool {
	for _, allowed := range v.cfg.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

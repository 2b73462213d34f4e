package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khazna/internal/config"
	apperrors "khazna/internal/errors"
)

func newTestValidator() *UploadValidator {
	return NewUploadValidator(config.UploadConfig{
		MaxSizeBytes:      1024,
		AllowedExtensions: []string{".xlsx", ".xlsm"},
	}, nil)
}

func xlsxBytes(n int) []byte {
	data := make([]byte, n)
	copy(data, []byte{0x50, 0x4B, 0x03, 0x04})
	return data
}

func TestValidate_OK(t *testing.T) {
	v := newTestValidator()
	assert.NoError(t, v.Validate("book.xlsx", xlsxBytes(100)))
	assert.NoError(t, v.Validate("Book.XLSM", xlsxBytes(100)))
}

func TestValidate_Rejections(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{"empty file", "book.xlsx", nil},
		{"too large", "book.xlsx", xlsxBytes(2048)},
		{"bad extension", "book.csv", xlsxBytes(100)},
		{"lock file", "~$book.xlsx", xlsxBytes(100)},
		{"not a zip", "book.xlsx", []byte("plain text content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.filename, tt.data)
			require.Error(t, err)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
		})
	}
}

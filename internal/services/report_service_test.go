package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"khazna/internal/config"
	"khazna/internal/dataprocessing"
	apperrors "khazna/internal/errors"
	"khazna/internal/validation"
	"khazna/pkg/contracts/domain"
)

func newTestService(t *testing.T) ReportService {
	t.Helper()
	v := validation.NewUploadValidator(config.UploadConfig{
		MaxSizeBytes:      10 << 20,
		AllowedExtensions: []string{".xlsx"},
	}, nil)
	return NewReportService(v, dataprocessing.NewAssembler(nil), nil)
}

// buildDailyWorkbook creates an xlsx with the three daily sheets and a
// single expense row on 2024-01-15.
func buildDailyWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("الخزينه")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("الخزينه", "A1", &[]any{
		"التاريخ", "البيان", "اسم الشركه المنصرف لها", "اسم الموظف المنصرف له",
		"القسم", "الفرع", "نوع المصروف", "رقم الفاتورة", "المنصرف", "ملاحظات",
	}))
	require.NoError(t, f.SetSheetRow("الخزينه", "A2", &[]any{
		"15/01/2024", "قرطاسية", "", "احمد", "الادارة", "الرئيسي", "مكتبية", "123", 500.0, "",
	}))

	for _, name := range []string{"خزينه السلف", "العهد"} {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	require.NoError(t, f.SetSheetRow("خزينه السلف", "A1", &[]any{
		"التاريخ", "اسم الموظف", "الكود", "القسم", "الفرع",
		"سلفه / سداد", "السلفه", "طريق السداد", "ملاحظات",
	}))
	require.NoError(t, f.SetSheetRow("العهد", "A1", &[]any{
		"التاريخ", "البيان", "المنصرف اليه", "القسم", "التصنيف",
		"نوع المصروف", "رقم الفاتورة / كود موظف", "رقم إيصال الصرف/ استلام",
		"العهدة / سداد", "العهدة", "ملاحظات",
	}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestGenerateReport_Success(t *testing.T) {
	svc := newTestService(t)
	data := buildDailyWorkbook(t)

	bundle, verrs, err := svc.GenerateReport(context.Background(), "book.xlsx", data, "2024-01-15")
	require.NoError(t, err)
	require.NotNil(t, bundle)
	require.NotNil(t, bundle.Daily)

	assert.Len(t, bundle.Daily.Expenses, 1)
	assert.Equal(t, 500.0, bundle.Daily.Totals.ExpensesTotal)

	// report and revenues sheets are absent, each is its own error
	var sheetErrs int
	for _, ve := range verrs {
		if ve.Kind == domain.ErrorKindSheet {
			sheetErrs++
		}
	}
	assert.Equal(t, 2, sheetErrs)
}

func TestGenerateReport_BadDate(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.GenerateReport(context.Background(), "book.xlsx", buildDailyWorkbook(t), "15-01-2024")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
}

func TestGenerateReport_RejectedUpload(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.GenerateReport(context.Background(), "book.csv", buildDailyWorkbook(t), "2024-01-15")
	require.Error(t, err)
}

func TestGenerateReport_DecodeFailure(t *testing.T) {
	svc := newTestService(t)

	// zip magic followed by garbage passes upload validation but is not
	// a readable workbook
	data := append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("not really a zip")...)

	bundle, verrs, err := svc.GenerateReport(context.Background(), "book.xlsx", data, "2024-01-15")
	require.NoError(t, err)
	assert.Nil(t, bundle)
	require.Len(t, verrs, 1)
	assert.Equal(t, domain.ErrorKindFile, verrs[0].Kind)
	assert.Equal(t, decodeFailureMessage, verrs[0].Message)
}

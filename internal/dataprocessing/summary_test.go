package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khazna/internal/workbook"
	"khazna/pkg/contracts/domain"
)

func num(f float64) workbook.Cell   { return workbook.NumberCell(f) }
func txt(s string) workbook.Cell    { return workbook.TextCell(s) }
func none() workbook.Cell           { return workbook.Empty() }

func TestDetectReportDate(t *testing.T) {
	matrix := [][]workbook.Cell{
		{txt("تقرير الخزينة"), none()},
		{txt("بتاريخ"), txt("15/01/2024")},
	}

	date, ok := detectReportDate(matrix)
	require.True(t, ok)
	assert.Equal(t, "2024-01-15", date)

	_, ok = detectReportDate([][]workbook.Cell{{txt("لا تاريخ")}})
	assert.False(t, ok)
}

func TestExtractKPIs(t *testing.T) {
	// labels sit more than the search radius apart so each resolves to
	// its own neighbor
	blank := []workbook.Cell{none(), none(), none()}
	matrix := [][]workbook.Cell{
		{txt("رصيد البنك"), num(120000), none()},
		blank, blank, blank,
		{txt("رصيد الخزينة"), none(), num(4500)},
		blank, blank, blank,
		{txt("اجمالي السلف"), txt("١٠٠٠"), none()},
		{txt("بدون رقم قريب"), none(), none()},
	}

	kpis := extractKPIs(matrix)
	require.NotNil(t, kpis.BankBalance)
	assert.Equal(t, 120000.0, *kpis.BankBalance)
	require.NotNil(t, kpis.SafeBalance)
	assert.Equal(t, 4500.0, *kpis.SafeBalance)
	require.NotNil(t, kpis.TotalLoans)
	assert.Equal(t, 1000.0, *kpis.TotalLoans)
	assert.Nil(t, kpis.TotalCustody)
}

func TestExtractMonthlyExpenses(t *testing.T) {
	matrix := [][]workbook.Cell{
		{txt("المصروفات الشهريه")},
		{txt("البند"), txt("المبلغ"), txt("المدفوع"), txt("الباقي"), txt("ملاحظات")},
		{txt("ايجار"), num(10000), num(10000), num(0), none()},
		{none(), num(0), num(0), num(0), txt("بند بملاحظة فقط")},
		{none(), num(0), num(0), num(0), none()}, // fully trivial, dropped
		{txt("كهرباء"), num(3000), num(1000), num(2000), txt("متأخر")},
		{txt("الإجمالي"), num(13000), num(11000), num(2000), none()},
		{txt("بعد الإجمالي"), num(1), num(1), num(1), none()},
	}

	monthly, errs := extractMonthlyExpenses(matrix)
	assert.Empty(t, errs)
	assert.True(t, monthly.Found)
	require.Len(t, monthly.Lines, 3)

	assert.Equal(t, "ايجار", monthly.Lines[0].Name)
	assert.Equal(t, unnamedLine, monthly.Lines[1].Name)
	assert.Equal(t, "بند بملاحظة فقط", monthly.Lines[1].Notes)
	assert.Equal(t, "كهرباء", monthly.Lines[2].Name)
	assert.Equal(t, "متأخر", monthly.Lines[2].Notes)

	assert.Equal(t, 13000.0, monthly.Totals.Amount)
	assert.Equal(t, 11000.0, monthly.Totals.Paid)
	assert.Equal(t, 2000.0, monthly.Totals.Remaining)
}

func TestExtractMonthlyExpenses_HeaderNotFound(t *testing.T) {
	matrix := [][]workbook.Cell{
		{txt("المصروفات الشهريه")},
		{txt("جدول آخر تماما")},
	}

	monthly, errs := extractMonthlyExpenses(matrix)
	assert.False(t, monthly.Found)
	assert.Empty(t, monthly.Lines)
	assert.Equal(t, monthlyExpenseHeaders, monthly.MissingHeaders)

	require.Len(t, errs, 1)
	assert.Equal(t, domain.ErrorKindTable, errs[0].Kind)
}

func receivableHeaderCells() []workbook.Cell {
	return []workbook.Cell{
		txt("الشهر"), txt("العميل"), txt("المطلوب تحويله"),
		txt("المبلغ المسدد"), txt("المستحق"), txt("14%"),
	}
}

func receivableRow(month, customer string, toTransfer, paid, receivable, tax float64) []workbook.Cell {
	return []workbook.Cell{
		txt(month), txt(customer), num(toTransfer), num(paid), num(receivable), num(tax),
	}
}

func TestExtractReceivables_Threshold(t *testing.T) {
	matrix := [][]workbook.Cell{
		{none()}, {none()},
		receivableHeaderCells(),
		receivableRow("Jan 24", "شركة النور", 500, 200, 1.0, 0),  // exactly 1, excluded
		receivableRow("Jan 24", "شركة النور", 500, 200, 1.01, 0), // included
	}

	receivables, errs := NewSummaryExtractor(nil).extractReceivables(context.Background(), matrix)
	assert.Empty(t, errs)
	assert.True(t, receivables.Found)
	require.Len(t, receivables.Rows, 1)
	assert.Equal(t, 1.01, receivables.Rows[0].Receivable)
	assert.Equal(t, "يناير", receivables.Rows[0].MonthLabel)
	assert.Equal(t, "2024-01", receivables.Rows[0].MonthKey)
}

func TestExtractReceivables_EmptyRunAndTotalRow(t *testing.T) {
	emptyRow := []workbook.Cell{none(), none(), none(), none(), none(), none()}

	matrix := [][]workbook.Cell{
		{none()}, {none()},
		receivableHeaderCells(),
		receivableRow("مارس 2024", "عميل أ", 100, 50, 300, 42),
		emptyRow, // single blank row skipped
		receivableRow("مارس 2024", "عميل ب", 100, 50, 200, 28),
		emptyRow, emptyRow, emptyRow, // three in a row end the table
		receivableRow("مارس 2024", "عميل ج", 100, 50, 900, 0),
	}

	receivables, _ := NewSummaryExtractor(nil).extractReceivables(context.Background(), matrix)
	require.Len(t, receivables.Rows, 2)
	assert.Equal(t, 500.0, receivables.Totals.Receivable)
	assert.Equal(t, 70.0, receivables.Totals.Tax14)

	matrix = [][]workbook.Cell{
		{none()}, {none()},
		receivableHeaderCells(),
		receivableRow("مارس 2024", "عميل أ", 100, 50, 300, 0),
		{txt("Total"), none(), none(), none(), num(99999), none()},
		receivableRow("مارس 2024", "عميل ب", 100, 50, 200, 0),
	}

	receivables, _ = NewSummaryExtractor(nil).extractReceivables(context.Background(), matrix)
	require.Len(t, receivables.Rows, 1)
	assert.Equal(t, "عميل أ", receivables.Rows[0].Customer)
}

func TestExtractReceivables_BestCandidateWins(t *testing.T) {
	// a decoy header row sits at the top with a single data row; the
	// real table further down yields more rows and must be selected
	matrix := [][]workbook.Cell{
		receivableHeaderCells(),
		receivableRow("Jan 24", "عميل الديكور", 10, 5, 50, 0),
		{txt("Total"), none(), none(), none(), none(), none()},
		{none(), none(), none(), none(), none(), none()},
		receivableHeaderCells(),
		receivableRow("Feb 24", "عميل أ", 10, 5, 100, 0),
		receivableRow("Feb 24", "عميل ب", 10, 5, 150, 0),
		receivableRow("Feb 24", "عميل ج", 10, 5, 200, 0),
	}

	receivables, _ := NewSummaryExtractor(nil).extractReceivables(context.Background(), matrix)
	require.Len(t, receivables.Rows, 3)
	assert.Equal(t, "عميل أ", receivables.Rows[0].Customer)
}

func TestExtractReceivables_HeadersMissing(t *testing.T) {
	matrix := [][]workbook.Cell{{txt("لا جداول هنا")}}

	receivables, errs := NewSummaryExtractor(nil).extractReceivables(context.Background(), matrix)
	assert.False(t, receivables.Found)
	assert.Empty(t, receivables.Rows)
	assert.Equal(t, receivableHeaders, receivables.MissingHeaders)

	require.Len(t, errs, 1)
	assert.Equal(t, domain.ErrorKindTable, errs[0].Kind)
}

func TestSummarizeCustomers_Ordering(t *testing.T) {
	rows := []domain.ReceivableRow{
		{Customer: "A", Receivable: 300},
		{Customer: "B", Receivable: 400},
		{Customer: "C", Receivable: 900},
		{Customer: "B", Receivable: 500},
	}

	summary := summarizeCustomers(rows)
	require.Len(t, summary, 3)

	// B and C tie at 900; B appeared first so it stays ahead
	assert.Equal(t, "B", summary[0].Customer)
	assert.Equal(t, 900.0, summary[0].Receivable)
	assert.Equal(t, "C", summary[1].Customer)
	assert.Equal(t, "A", summary[2].Customer)
}

func TestSummaryExtract_MissingSheets(t *testing.T) {
	wb := buildLedgerWorkbook(t, map[string][][]any{
		"غير ذي صلة": {{"x"}},
	})

	report, errs := NewSummaryExtractor(nil).Extract(context.Background(), wb, "2024-01-15")
	require.NotNil(t, report)
	require.Len(t, errs, 2)
	assert.Equal(t, domain.ErrorKindSheet, errs[0].Kind)
	assert.Equal(t, domain.ErrorKindSheet, errs[1].Kind)
	assert.False(t, report.MonthlyExpenses.Found)
	assert.False(t, report.Receivables.Found)
	assert.Nil(t, report.ReportDate)
}

func TestSummaryExtract_FullSheets(t *testing.T) {
	wb := buildLedgerWorkbook(t, map[string][][]any{
		"Report": {
			{"تقرير يومي", "15/01/2024"},
			{"رصيد البنك", 120000.0},
			{"رصيد الخزينه", 4500.0},
			{},
			{"المصروفات الشهريه"},
			{"البند", "المبلغ", "المدفوع", "الباقي"},
			{"ايجار", 10000.0, 10000.0, 0.0},
		},
		"الإيرادات": {
			{},
			{},
			{"الشهر", "العميل", "المطلوب تحويله", "المبلغ المسدد", "المستحق", "14%"},
			{"Jan 24", "شركة النور", 500.0, 200.0, 300.0, 42.0},
		},
	})

	report, errs := NewSummaryExtractor(nil).Extract(context.Background(), wb, "2024-01-16")
	assert.Empty(t, errs)

	require.NotNil(t, report.ReportDate)
	assert.Equal(t, "2024-01-15", *report.ReportDate)
	assert.True(t, report.DateWarning)

	require.NotNil(t, report.KPIs.BankBalance)
	assert.Equal(t, 120000.0, *report.KPIs.BankBalance)

	assert.True(t, report.MonthlyExpenses.Found)
	require.Len(t, report.MonthlyExpenses.Lines, 1)

	assert.True(t, report.Receivables.Found)
	require.Len(t, report.Receivables.Rows, 1)
	assert.Equal(t, "شركة النور", report.Receivables.Rows[0].Customer)
	require.Len(t, report.Receivables.CustomerSummary, 1)
}

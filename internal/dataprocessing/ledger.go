package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"khazna/internal/workbook"
	"khazna/pkg/contracts/domain"
)

// The three daily ledger sheets, resolved by trimmed-name match.
const (
	SheetExpenses = "الخزينه"
	SheetLoans    = "خزينه السلف"
	SheetCustody  = "العهد"
)

// Required column sets per daily sheet. Column matching tolerates spacing
// and case drift but the Arabic spellings themselves are fixed.
var (
	expenseColumns = []string{
		"التاريخ", "البيان", "اسم الشركه المنصرف لها", "اسم الموظف المنصرف له",
		"القسم", "الفرع", "نوع المصروف", "رقم الفاتورة", "المنصرف", "ملاحظات",
	}
	loanColumns = []string{
		"التاريخ", "اسم الموظف", "الكود", "القسم", "الفرع",
		"سلفه / سداد", "السلفه", "طريق السداد", "ملاحظات",
	}
	custodyColumns = []string{
		"التاريخ", "البيان", "المنصرف اليه", "القسم", "التصنيف",
		"نوع المصروف", "رقم الفاتورة / كود موظف", "رقم إيصال الصرف/ استلام",
		"العهدة / سداد", "العهدة", "ملاحظات",
	}
)

// Direction vocabulary for loan/custody flow classification. Matching is
// substring containment on free text, so a degenerate cell mentioning both
// a disbursement and a repayment marker counts on both sides; that
// ambiguity is inherited from the source data and deliberately not
// deduplicated.
var (
	loanOutMarkers    = []string{"سلفه", "سلفة"}
	custodyOutMarkers = []string{"عهدة", "العهدة"}
	repaymentMarkers  = []string{"سداد"}
)

// LedgerExtractor extracts the three daily row collections for one target
// date and computes their totals.
type LedgerExtractor struct {
	logger *slog.Logger
}

// NewLedgerExtractor creates a ledger extractor. A nil logger falls back to
// the default slog logger.
func NewLedgerExtractor(logger *slog.Logger) *LedgerExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerExtractor{logger: logger}
}

// MissingDailySheets returns the daily sheet names absent from the
// workbook, in the fixed expenses/loans/custody order.
func MissingDailySheets(wb *workbook.Workbook) []string {
	var missing []string
	for _, name := range []string{SheetExpenses, SheetLoans, SheetCustody} {
		if !wb.HasSheet(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Extract pulls the expense, loan and custody rows dated targetDate out of
// the workbook and computes the daily totals. The caller has already
// verified sheet presence; residual missing columns surface as column-kind
// validation errors while extraction proceeds best-effort.
func (e *LedgerExtractor) Extract(ctx context.Context, wb *workbook.Workbook, targetDate string) (*domain.DailyLedger, []domain.ValidationError) {
	var errs []domain.ValidationError

	expenses, missing, err := extractSheetRows(wb, SheetExpenses, expenseColumns, targetDate, expenseFromRow)
	errs = appendColumnError(errs, SheetExpenses, missing, err)

	loans, missing, err := extractSheetRows(wb, SheetLoans, loanColumns, targetDate, loanFromRow)
	errs = appendColumnError(errs, SheetLoans, missing, err)

	custody, missing, err := extractSheetRows(wb, SheetCustody, custodyColumns, targetDate, custodyFromRow)
	errs = appendColumnError(errs, SheetCustody, missing, err)

	ledger := &domain.DailyLedger{
		Date:     targetDate,
		Expenses: expenses,
		Loans:    loans,
		Custody:  custody,
		Totals:   computeTotals(expenses, loans, custody),
	}

	e.logger.InfoContext(ctx, "daily ledger extracted",
		slog.String("target_date", targetDate),
		slog.Int("expense_rows", len(expenses)),
		slog.Int("loan_rows", len(loans)),
		slog.Int("custody_rows", len(custody)),
		slog.Float64("total_out", ledger.Totals.TotalOut))

	return ledger, errs
}

// extractSheetRows resolves the best header offset for one daily sheet and
// converts every row whose date cell matches the target canonical date.
// Non-matching and unparseable dates drop the row silently.
func extractSheetRows[T any](wb *workbook.Workbook, sheetName string, required []string, targetDate string, convert func(workbook.Row, string) T) ([]T, []string, error) {
	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		// Presence is validated up front; treat a race here as empty.
		return nil, nil, nil
	}

	offset, missing, err := ResolveHeaderOffset(sheet, required)
	if err != nil {
		return nil, nil, err
	}
	rows, err := sheet.RowObjects(offset)
	if err != nil {
		return nil, missing, err
	}

	out := make([]T, 0)
	for _, row := range rows {
		dateCell, ok := Column(row, "التاريخ")
		if !ok {
			continue
		}
		date, ok := ParseDate(dateCell)
		if !ok || date != targetDate {
			continue
		}
		out = append(out, convert(row, date))
	}
	return out, missing, nil
}

func expenseFromRow(row workbook.Row, date string) domain.ExpenseRow {
	return domain.ExpenseRow{
		Date:        date,
		Description: ColumnText(row, "البيان"),
		CompanyName: ColumnText(row, "اسم الشركه المنصرف لها"),
		Employee:    ColumnText(row, "اسم الموظف المنصرف له"),
		Department:  ColumnText(row, "القسم"),
		Branch:      ColumnText(row, "الفرع"),
		ExpenseType: ColumnText(row, "نوع المصروف"),
		InvoiceNo:   ColumnText(row, "رقم الفاتورة"),
		Amount:      ColumnAmount(row, "المنصرف"),
		Notes:       ColumnText(row, "ملاحظات"),
	}
}

func loanFromRow(row workbook.Row, date string) domain.LoanRow {
	return domain.LoanRow{
		Date:          date,
		Employee:      ColumnText(row, "اسم الموظف"),
		EmployeeCode:  ColumnText(row, "الكود"),
		Department:    ColumnText(row, "القسم"),
		Branch:        ColumnText(row, "الفرع"),
		Direction:     ColumnText(row, "سلفه / سداد"),
		Amount:        ColumnAmount(row, "السلفه"),
		PaymentMethod: ColumnText(row, "طريق السداد"),
		Notes:         ColumnText(row, "ملاحظات"),
	}
}

func custodyFromRow(row workbook.Row, date string) domain.CustodyRow {
	return domain.CustodyRow{
		Date:        date,
		Description: ColumnText(row, "البيان"),
		PaidTo:      ColumnText(row, "المنصرف اليه"),
		Department:  ColumnText(row, "القسم"),
		Category:    ColumnText(row, "التصنيف"),
		ExpenseType: ColumnText(row, "نوع المصروف"),
		InvoiceNo:   ColumnText(row, "رقم الفاتورة / كود موظف"),
		ReceiptNo:   ColumnText(row, "رقم إيصال الصرف/ استلام"),
		Direction:   ColumnText(row, "العهدة / سداد"),
		Amount:      ColumnAmount(row, "العهدة"),
		Notes:       ColumnText(row, "ملاحظات"),
	}
}

func computeTotals(expenses []domain.ExpenseRow, loans []domain.LoanRow, custody []domain.CustodyRow) domain.DailyTotals {
	var totals domain.DailyTotals
	for _, row := range expenses {
		totals.ExpensesTotal += row.Amount
	}
	for _, row := range loans {
		if containsAny(row.Direction, loanOutMarkers) {
			totals.LoansOut += row.Amount
		}
		if containsAny(row.Direction, repaymentMarkers) {
			totals.LoansIn += row.Amount
		}
	}
	for _, row := range custody {
		if containsAny(row.Direction, custodyOutMarkers) {
			totals.CustodyOut += row.Amount
		}
		if containsAny(row.Direction, repaymentMarkers) {
			totals.CustodyIn += row.Amount
		}
	}
	totals.TotalOut = totals.ExpensesTotal + totals.LoansOut + totals.CustodyOut
	return totals
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func appendColumnError(errs []domain.ValidationError, sheetName string, missing []string, err error) []domain.ValidationError {
	if err != nil {
		return append(errs, domain.ValidationError{
			Kind:    domain.ErrorKindColumn,
			Message: fmt.Sprintf("تعذر قراءة صفحة \"%s\"", sheetName),
			Details: []string{err.Error()},
		})
	}
	if len(missing) > 0 {
		return append(errs, domain.ValidationError{
			Kind:    domain.ErrorKindColumn,
			Message: fmt.Sprintf("أعمدة مفقودة في صفحة \"%s\"", sheetName),
			Details: missing,
		})
	}
	return errs
}

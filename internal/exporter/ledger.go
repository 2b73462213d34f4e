package exporter

import (
	"log/slog"
	"path/filepath"
	"strconv"

	"khazna/internal/dataprocessing"
	"khazna/pkg/contracts/domain"
)

// LedgerExporter writes a daily ledger as one CSV per sheet plus a
// totals file.
type LedgerExporter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewLedgerExporter creates a ledger exporter.
func NewLedgerExporter(logger *slog.Logger) *LedgerExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerExporter{csv: NewCSVWriter(logger), logger: logger}
}

// Export writes expenses.csv, loans.csv, custody.csv and totals.csv
// into outputDir. Dates are rendered in DD/MM/YYYY display form.
func (e *LedgerExporter) Export(ledger *domain.DailyLedger, outputDir string) error {
	if err := e.csv.WriteCSV(filepath.Join(outputDir, "expenses.csv"), WriteOptions{
		Headers:   []string{"التاريخ", "البيان", "اسم الشركه المنصرف لها", "اسم الموظف المنصرف له", "القسم", "الفرع", "نوع المصروف", "رقم الفاتورة", "المنصرف", "ملاحظات"},
		Records:   expenseRecords(ledger.Expenses),
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	if err := e.csv.WriteCSV(filepath.Join(outputDir, "loans.csv"), WriteOptions{
		Headers:   []string{"التاريخ", "اسم الموظف", "الكود", "القسم", "الفرع", "سلفه / سداد", "السلفه", "طريق السداد", "ملاحظات"},
		Records:   loanRecords(ledger.Loans),
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	if err := e.csv.WriteCSV(filepath.Join(outputDir, "custody.csv"), WriteOptions{
		Headers:   []string{"التاريخ", "البيان", "المنصرف اليه", "القسم", "التصنيف", "نوع المصروف", "رقم الفاتورة / كود موظف", "رقم إيصال الصرف/ استلام", "العهدة / سداد", "العهدة", "ملاحظات"},
		Records:   custodyRecords(ledger.Custody),
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	totals := ledger.Totals
	if err := e.csv.WriteCSV(filepath.Join(outputDir, "totals.csv"), WriteOptions{
		Headers: []string{"expenses_total", "loans_out", "loans_in", "custody_out", "custody_in", "total_out"},
		Records: [][]string{{
			formatFloat(totals.ExpensesTotal),
			formatFloat(totals.LoansOut),
			formatFloat(totals.LoansIn),
			formatFloat(totals.CustodyOut),
			formatFloat(totals.CustodyIn),
			formatFloat(totals.TotalOut),
		}},
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	e.logger.Info("daily ledger exported",
		slog.String("output_dir", outputDir),
		slog.String("date", ledger.Date),
		slog.Int("expense_rows", len(ledger.Expenses)),
		slog.Int("loan_rows", len(ledger.Loans)),
		slog.Int("custody_rows", len(ledger.Custody)))
	return nil
}

func expenseRecords(rows []domain.ExpenseRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			dataprocessing.FormatForDisplay(r.Date), r.Description, r.CompanyName, r.Employee,
			r.Department, r.Branch, r.ExpenseType, r.InvoiceNo, formatFloat(r.Amount), r.Notes,
		})
	}
	return records
}

func loanRecords(rows []domain.LoanRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			dataprocessing.FormatForDisplay(r.Date), r.Employee, r.EmployeeCode, r.Department,
			r.Branch, r.Direction, formatFloat(r.Amount), r.PaymentMethod, r.Notes,
		})
	}
	return records
}

func custodyRecords(rows []domain.CustodyRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			dataprocessing.FormatForDisplay(r.Date), r.Description, r.PaidTo, r.Department,
			r.Category, r.ExpenseType, r.InvoiceNo, r.ReceiptNo, r.Direction,
			formatFloat(r.Amount), r.Notes,
		})
	}
	return records
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"khazna/internal/workbook"
	"khazna/pkg/contracts/domain"
)

// Summary sheet names. The report sheet matches any casing of "report";
// the revenues sheet accepts both hamza spellings.
const SheetReport = "report"

var revenueSheetNames = []string{"الايرادات", "الإيرادات"}

// KPI label variants, covering the common spelling drift of "الخزينة".
var (
	bankBalanceLabels  = []string{"رصيد البنك"}
	safeBalanceLabels  = []string{"رصيد الخزينه", "رصيد الخزينة"}
	totalLoansLabels   = []string{"اجمالي السلف"}
	totalCustodyLabels = []string{"اجمالي العهد"}
)

var (
	monthlySectionLabels  = []string{"المصروفات الشهريه", "المصروفات الشهرية"}
	monthlyExpenseHeaders = []string{"المبلغ", "المدفوع", "الباقي"}
	notesHeader           = "ملاحظات"

	receivableHeaders = []string{"الشهر", "العميل", "المطلوب تحويله", "المبلغ المسدد", "المستحق", "14%"}
	// Preferred receivable header start rows: the table usually sits under
	// a two-row banner, so row 2 is tried before a full scan from the top.
	receivableStartRows = []int{2, 0}
)

const (
	// dateScanWindow bounds the report-date search to the top-left block.
	dateScanWindow = 20
	// nearestNumberRadius is the Manhattan search radius around KPI labels.
	nearestNumberRadius = 3
	// receivableThreshold drops noise rows; kept rows need a receivable
	// strictly above it.
	receivableThreshold = 1.0
	// maxConsecutiveEmpty ends the receivables walk after this many empty
	// rows in a row.
	maxConsecutiveEmpty = 3

	unnamedLine      = "غير مسمى"
	unspecifiedMonth = "غير محدد"
)

// SummaryExtractor extracts the KPI balances, monthly expenses table and
// receivables table from the report and revenues sheets.
type SummaryExtractor struct {
	logger *slog.Logger
}

// NewSummaryExtractor creates a summary extractor. A nil logger falls back
// to the default slog logger.
func NewSummaryExtractor(logger *slog.Logger) *SummaryExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryExtractor{logger: logger}
}

// Extract reads both summary sheets. Each missing sheet is an independent
// sheet-kind error and the other sheet's extraction still proceeds; the
// returned report always carries valid (possibly empty) sub-sections.
func (e *SummaryExtractor) Extract(ctx context.Context, wb *workbook.Workbook, targetDate string) (*domain.SummaryReport, []domain.ValidationError) {
	var errs []domain.ValidationError
	report := &domain.SummaryReport{
		MonthlyExpenses: domain.MonthlyExpenses{Lines: []domain.MonthlyExpenseLine{}, MissingHeaders: []string{}},
		Receivables: domain.Receivables{
			Rows:            []domain.ReceivableRow{},
			CustomerSummary: []domain.CustomerReceivable{},
			MissingHeaders:  []string{},
		},
	}

	if sheet, ok := wb.SheetFold(SheetReport); ok {
		matrix, err := sheet.Matrix()
		if err != nil {
			errs = append(errs, domain.ValidationError{
				Kind:    domain.ErrorKindSheet,
				Message: "تعذر قراءة شيت report",
				Details: []string{err.Error()},
			})
		} else {
			if date, ok := detectReportDate(matrix); ok {
				report.ReportDate = &date
				report.DateWarning = date != targetDate
			}
			report.KPIs = extractKPIs(matrix)

			monthly, tableErrs := extractMonthlyExpenses(matrix)
			report.MonthlyExpenses = monthly
			errs = append(errs, tableErrs...)
		}
	} else {
		errs = append(errs, domain.ValidationError{
			Kind:    domain.ErrorKindSheet,
			Message: "شيت report غير موجود",
		})
	}

	if sheet, ok := wb.SheetFold(revenueSheetNames...); ok {
		matrix, err := sheet.Matrix()
		if err != nil {
			errs = append(errs, domain.ValidationError{
				Kind:    domain.ErrorKindSheet,
				Message: "تعذر قراءة شيت الإيرادات",
				Details: []string{err.Error()},
			})
		} else {
			receivables, tableErrs := e.extractReceivables(ctx, matrix)
			report.Receivables = receivables
			errs = append(errs, tableErrs...)
		}
	} else {
		errs = append(errs, domain.ValidationError{
			Kind:    domain.ErrorKindSheet,
			Message: "شيت الإيرادات غير موجود",
		})
	}

	return report, errs
}

// detectReportDate returns the canonical date of the first cell in the top
// 20x20 block that parses as a date, scanning row-major.
func detectReportDate(matrix [][]workbook.Cell) (string, bool) {
	maxRows := min(dateScanWindow, len(matrix))
	for r := 0; r < maxRows; r++ {
		maxCols := min(dateScanWindow, len(matrix[r]))
		for c := 0; c < maxCols; c++ {
			if date, ok := ParseDate(matrix[r][c]); ok {
				return date, true
			}
		}
	}
	return "", false
}

func extractKPIs(matrix [][]workbook.Cell) domain.BasicBalances {
	return domain.BasicBalances{
		BankBalance:  extractKPI(matrix, bankBalanceLabels),
		SafeBalance:  extractKPI(matrix, safeBalanceLabels),
		TotalLoans:   extractKPI(matrix, totalLoansLabels),
		TotalCustody: extractKPI(matrix, totalCustodyLabels),
	}
}

// extractKPI takes the first successful nearest-number hit across all label
// matches, in match order. Nil when no label is found or no number sits
// within the search radius of any match.
func extractKPI(matrix [][]workbook.Cell, labels []string) *float64 {
	for _, match := range FindCellsByLabel(matrix, labels) {
		if value, ok := FindNearestNumber(matrix, match.Row, match.Col, nearestNumberRadius); ok {
			return &value
		}
	}
	return nil
}

// extractMonthlyExpenses anchors the search at the section label when
// present (row 0 otherwise) and requires the amount/paid/remaining header
// row at or after the anchor. A missing header row marks the table as not
// found; it never aborts the run.
func extractMonthlyExpenses(matrix [][]workbook.Cell) (domain.MonthlyExpenses, []domain.ValidationError) {
	startRow := 0
	if anchors := FindCellsByLabel(matrix, monthlySectionLabels); len(anchors) > 0 {
		startRow = anchors[0].Row
	}

	table := LocateHeaderRow(matrix, monthlyExpenseHeaders, startRow)
	if table == nil {
		missing := append([]string{}, monthlyExpenseHeaders...)
		return domain.MonthlyExpenses{
				Lines:          []domain.MonthlyExpenseLine{},
				MissingHeaders: missing,
			}, []domain.ValidationError{{
				Kind:    domain.ErrorKindTable,
				Message: "تعذر العثور على عناوين جدول المصروفات الشهرية",
				Details: missing,
			}}
	}

	headerRow := matrix[table.HeaderRow]
	notesCol := -1
	for c, cell := range headerRow {
		if cell.Kind == workbook.KindText && strings.TrimSpace(cell.Text) == notesHeader {
			notesCol = c
			break
		}
	}

	used := make(map[int]bool, len(table.Columns)+1)
	for _, c := range table.Columns {
		used[c] = true
	}
	if notesCol != -1 {
		used[notesCol] = true
	}

	lines := []domain.MonthlyExpenseLine{}
	var totals domain.MonthlyExpenseTotals
	for _, row := range table.Rows {
		if IsEmptyRow(row) || IsTotalRow(row) {
			break
		}

		line := domain.MonthlyExpenseLine{
			Name:      nameCell(row, used),
			Amount:    cellAmountAt(row, table.Columns["المبلغ"]),
			Paid:      cellAmountAt(row, table.Columns["المدفوع"]),
			Remaining: cellAmountAt(row, table.Columns["الباقي"]),
		}
		if notesCol != -1 && notesCol < len(row) {
			line.Notes = strings.TrimSpace(row[notesCol].String())
		}

		// A line survives if any single field is non-trivial.
		if line.Name == "" && line.Amount == 0 && line.Paid == 0 && line.Remaining == 0 && line.Notes == "" {
			continue
		}
		if line.Name == "" {
			line.Name = unnamedLine
		}
		lines = append(lines, line)
		totals.Amount += line.Amount
		totals.Paid += line.Paid
		totals.Remaining += line.Remaining
	}

	return domain.MonthlyExpenses{
		Lines:          lines,
		Totals:         totals,
		MissingHeaders: []string{},
		Found:          true,
	}, nil
}

// nameCell picks the line name: the leftmost non-blank text cell outside
// the mapped amount/paid/remaining/notes columns.
func nameCell(row []workbook.Cell, excluded map[int]bool) string {
	for c, cell := range row {
		if excluded[c] || cell.Kind != workbook.KindText {
			continue
		}
		if trimmed := strings.TrimSpace(cell.Text); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// extractReceivables collects every qualifying header-row candidate across
// the preferred start rows, parses each candidate's data region
// independently, and keeps the candidate producing the most rows. That
// guards against decoy header-like rows elsewhere in the sheet.
func (e *SummaryExtractor) extractReceivables(ctx context.Context, matrix [][]workbook.Cell) (domain.Receivables, []domain.ValidationError) {
	candidates := LocateHeaderRowCandidates(matrix, receivableHeaders, receivableStartRows)
	if len(candidates) == 0 {
		missing := append([]string{}, receivableHeaders...)
		return domain.Receivables{
				Rows:            []domain.ReceivableRow{},
				CustomerSummary: []domain.CustomerReceivable{},
				MissingHeaders:  missing,
			}, []domain.ValidationError{{
				Kind:    domain.ErrorKindTable,
				Message: "تعذر العثور على جدول الإيرادات والمستحقات",
				Details: missing,
			}}
	}

	best := candidates[0]
	bestRows := parseReceivableRows(best)
	for _, candidate := range candidates[1:] {
		if rows := parseReceivableRows(candidate); len(rows) > len(bestRows) {
			best, bestRows = candidate, rows
		}
	}

	e.logger.DebugContext(ctx, "receivables table selected",
		slog.Int("header_row", best.HeaderRow),
		slog.Int("candidates", len(candidates)),
		slog.Int("rows", len(bestRows)))

	var totals domain.ReceivableTotals
	for _, row := range bestRows {
		totals.Receivable += row.Receivable
		totals.ToTransfer += row.ToTransfer
		totals.Paid += row.Paid
		if row.Tax14 != nil {
			totals.Tax14 += *row.Tax14
		}
	}

	return domain.Receivables{
		Rows:            bestRows,
		Totals:          totals,
		CustomerSummary: summarizeCustomers(bestRows),
		MissingHeaders:  []string{},
		Found:           true,
	}, nil
}

// parseReceivableRows walks a candidate's data region. Three consecutive
// empty rows end the table; a total row ends it immediately; single empty
// rows are skipped. A row is kept only when its receivable amount clears
// the noise threshold, strictly greater than 1.
func parseReceivableRows(table *HeaderTable) []domain.ReceivableRow {
	rows := []domain.ReceivableRow{}
	consecutiveEmpty := 0

	for _, row := range table.Rows {
		if IsEmptyRow(row) {
			consecutiveEmpty++
			if consecutiveEmpty >= maxConsecutiveEmpty {
				break
			}
			continue
		}
		consecutiveEmpty = 0

		if IsTotalRow(row) {
			break
		}

		receivable := cellAmountAt(row, table.Columns["المستحق"])
		if receivable <= receivableThreshold {
			continue
		}

		month := resolveMonthCell(cellAt(row, table.Columns["الشهر"]))
		tax := cellAmountAt(row, table.Columns["14%"])
		rows = append(rows, domain.ReceivableRow{
			MonthLabel:  month.label,
			MonthKey:    month.key,
			Year:        month.year,
			MonthNumber: month.monthNumber,
			Customer:    strings.TrimSpace(cellAt(row, table.Columns["العميل"]).String()),
			ToTransfer:  cellAmountAt(row, table.Columns["المطلوب تحويله"]),
			Paid:        cellAmountAt(row, table.Columns["المبلغ المسدد"]),
			Receivable:  receivable,
			Tax14:       &tax,
		})
	}
	return rows
}

// summarizeCustomers sums receivables per customer, sorted descending by
// amount with ties kept in first-appearance order.
func summarizeCustomers(rows []domain.ReceivableRow) []domain.CustomerReceivable {
	sums := make(map[string]float64)
	var order []string
	for _, row := range rows {
		if _, seen := sums[row.Customer]; !seen {
			order = append(order, row.Customer)
		}
		sums[row.Customer] += row.Receivable
	}

	summary := make([]domain.CustomerReceivable, 0, len(order))
	for _, customer := range order {
		summary = append(summary, domain.CustomerReceivable{Customer: customer, Receivable: sums[customer]})
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Receivable > summary[j].Receivable
	})
	return summary
}

func cellAt(row []workbook.Cell, col int) workbook.Cell {
	if col < 0 || col >= len(row) {
		return workbook.Empty()
	}
	return row[col]
}

func cellAmountAt(row []workbook.Cell, col int) float64 {
	amount, ok := ParseAmount(cellAt(row, col))
	if !ok {
		return 0
	}
	return amount
}

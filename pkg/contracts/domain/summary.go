package domain

// BasicBalances holds the four top-level KPI balances read from the report
// sheet. Each balance is independently resolvable; nil means the label was
// never found or no number was located near it.
type BasicBalances struct {
	BankBalance  *float64 `json:"bank_balance"`
	SafeBalance  *float64 `json:"safe_balance"`
	TotalLoans   *float64 `json:"total_loans"`
	TotalCustody *float64 `json:"total_custody"`
}

// MonthlyExpenseLine is one named line item of the monthly expenses table.
type MonthlyExpenseLine struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Paid      float64 `json:"paid"`
	Remaining float64 `json:"remaining"`
	Notes     string  `json:"notes"`
}

// MonthlyExpenseTotals are the column sums over all kept lines.
type MonthlyExpenseTotals struct {
	Amount    float64 `json:"amount"`
	Paid      float64 `json:"paid"`
	Remaining float64 `json:"remaining"`
}

// MonthlyExpenses is the monthly expenses sub-table of the report sheet.
// Found distinguishes "header row located" from "table absent"; an empty
// Lines with Found=true means the table exists but has no data rows.
type MonthlyExpenses struct {
	Lines          []MonthlyExpenseLine `json:"lines"`
	Totals         MonthlyExpenseTotals `json:"totals"`
	MissingHeaders []string             `json:"missing_headers"`
	Found          bool                 `json:"found"`
}

// ReceivableRow is one per-customer-per-month receivable entry from the
// revenues sheet. MonthKey is a sortable "YYYY-MM" key when the month cell
// could be resolved; otherwise it falls back to the raw label. Year and
// MonthNumber are nil when unknown. Tax14 is nil only when the 14% column
// was never mapped.
type ReceivableRow struct {
	MonthLabel  string   `json:"month_label"`
	MonthKey    string   `json:"month_key"`
	Year        *int     `json:"year"`
	MonthNumber *int     `json:"month_number"`
	Customer    string   `json:"customer"`
	ToTransfer  float64  `json:"to_transfer"`
	Paid        float64  `json:"paid"`
	Receivable  float64  `json:"receivable"`
	Tax14       *float64 `json:"tax14"`
}

// ReceivableTotals are the column sums over all kept receivable rows.
type ReceivableTotals struct {
	Receivable float64 `json:"receivable"`
	ToTransfer float64 `json:"to_transfer"`
	Paid       float64 `json:"paid"`
	Tax14      float64 `json:"tax14"`
}

// CustomerReceivable is one entry of the per-customer summary, receivable
// amounts summed per customer.
type CustomerReceivable struct {
	Customer   string  `json:"customer"`
	Receivable float64 `json:"receivable"`
}

// Receivables is the receivables sub-table of the revenues sheet. The
// customer summary is sorted descending by summed receivable, ties kept in
// first-appearance order.
type Receivables struct {
	Rows            []ReceivableRow      `json:"rows"`
	Totals          ReceivableTotals     `json:"totals"`
	CustomerSummary []CustomerReceivable `json:"customer_summary"`
	MissingHeaders  []string             `json:"missing_headers"`
	Found           bool                 `json:"found"`
}

// SummaryReport bundles everything extracted from the report and revenues
// sheets. ReportDate is the first date found on the report sheet (nil when
// none); DateWarning is set when that date differs from the target date.
type SummaryReport struct {
	ReportDate      *string         `json:"report_date"`
	DateWarning     bool            `json:"date_warning"`
	KPIs            BasicBalances   `json:"kpis"`
	MonthlyExpenses MonthlyExpenses `json:"monthly_expenses"`
	Receivables     Receivables     `json:"receivables"`
}

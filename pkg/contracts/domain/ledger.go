package domain

// ExpenseRow represents a single expense entry from the daily treasury sheet
// ("الخزينه"), already filtered to the report's target date.
type ExpenseRow struct {
	Date        string  `json:"date" validate:"required"`
	Description string  `json:"description"`
	CompanyName string  `json:"company_name"`
	Employee    string  `json:"employee"`
	Department  string  `json:"department"`
	Branch      string  `json:"branch"`
	ExpenseType string  `json:"expense_type"`
	InvoiceNo   string  `json:"invoice_no"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
}

// LoanRow represents a single employee loan movement from the loan treasury
// sheet ("خزينه السلف"). Direction is the free-text "سلفه / سداد" cell; it
// distinguishes a disbursement from a repayment by substring vocabulary,
// not by a fixed enum.
type LoanRow struct {
	Date          string  `json:"date" validate:"required"`
	Employee      string  `json:"employee"`
	EmployeeCode  string  `json:"employee_code"`
	Department    string  `json:"department"`
	Branch        string  `json:"branch"`
	Direction     string  `json:"direction"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

// CustodyRow represents a single custody (float advance) movement from the
// custody sheet ("العهد").
type CustodyRow struct {
	Date        string  `json:"date" validate:"required"`
	Description string  `json:"description"`
	PaidTo      string  `json:"paid_to"`
	Department  string  `json:"department"`
	Category    string  `json:"category"`
	ExpenseType string  `json:"expense_type"`
	InvoiceNo   string  `json:"invoice_no"`
	ReceiptNo   string  `json:"receipt_no"`
	Direction   string  `json:"direction"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
}

// DailyTotals holds the aggregates computed over one day's ledger rows.
// They are recomputed in full on every extraction.
type DailyTotals struct {
	ExpensesTotal float64 `json:"expenses_total"`
	LoansOut      float64 `json:"loans_out"`
	LoansIn       float64 `json:"loans_in"`
	CustodyOut    float64 `json:"custody_out"`
	CustodyIn     float64 `json:"custody_in"`
	TotalOut      float64 `json:"total_out"`
}

// DailyLedger is the full daily extraction result for one target date:
// the three typed row collections plus their totals.
type DailyLedger struct {
	Date     string       `json:"date" validate:"required"`
	Expenses []ExpenseRow `json:"expenses"`
	Loans    []LoanRow    `json:"loans"`
	Custody  []CustodyRow `json:"custody"`
	Totals   DailyTotals  `json:"totals"`
}

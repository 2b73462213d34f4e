package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khazna/pkg/contracts/domain"
)

func TestExport_WritesAllFiles(t *testing.T) {
	dir := t.TempDir()

	ledger := &domain.DailyLedger{
		Date: "2024-01-15",
		Expenses: []domain.ExpenseRow{
			{Date: "2024-01-15", Description: "قرطاسية", Employee: "احمد", Amount: 500},
		},
		Loans: []domain.LoanRow{
			{Date: "2024-01-15", Employee: "سعيد", Direction: "سلفه", Amount: 2000},
		},
		Totals: domain.DailyTotals{ExpensesTotal: 500, LoansOut: 2000, TotalOut: 2500},
	}

	require.NoError(t, NewLedgerExporter(nil).Export(ledger, dir))

	for _, name := range []string{"expenses.csv", "loans.csv", "custody.csv", "totals.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"), "missing BOM in %s", name)
	}

	expenses, err := os.ReadFile(filepath.Join(dir, "expenses.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(expenses), "15/01/2024")
	assert.Contains(t, string(expenses), "قرطاسية")

	totals, err := os.ReadFile(filepath.Join(dir, "totals.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(totals), "2500")
}

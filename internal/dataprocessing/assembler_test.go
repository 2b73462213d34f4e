package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khazna/pkg/contracts/domain"
)

func TestAssemble_MissingDailySheetIsFatal(t *testing.T) {
	// loans data exists but the expenses sheet is absent; nothing may be
	// extracted
	wb := buildLedgerWorkbook(t, map[string][][]any{
		SheetLoans: {
			loanHeaderRow,
			{"15/01/2024", "احمد", "E1", "", "", "سلفه", 2000.0, "نقدي", ""},
		},
		SheetCustody: {custodyHeaderRow},
	})

	bundle, errs := NewAssembler(nil).Assemble(context.Background(), wb, "2024-01-15")
	assert.Nil(t, bundle)
	require.Len(t, errs, 1)
	assert.Equal(t, domain.ErrorKindSheet, errs[0].Kind)
	assert.Equal(t, []string{SheetExpenses}, errs[0].Details)
}

func TestAssemble_ErrorsConcatenate(t *testing.T) {
	// daily sheets present, summary sheets absent: extraction proceeds
	// and the two summary sheet errors follow the (empty) ledger errors
	wb := buildLedgerWorkbook(t, map[string][][]any{
		SheetExpenses: {
			expenseHeaderRow,
			{"15/01/2024", "بند", "", "", "", "", "", "", 100.0, ""},
		},
		SheetLoans:   {loanHeaderRow},
		SheetCustody: {custodyHeaderRow},
	})

	bundle, errs := NewAssembler(nil).Assemble(context.Background(), wb, "2024-01-15")
	require.NotNil(t, bundle)
	require.NotNil(t, bundle.Daily)
	require.NotNil(t, bundle.Summary)

	assert.Equal(t, 100.0, bundle.Daily.Totals.ExpensesTotal)
	require.Len(t, errs, 2)
	for _, ve := range errs {
		assert.Equal(t, domain.ErrorKindSheet, ve.Kind)
	}
}

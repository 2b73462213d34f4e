package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khazna/internal/workbook"
)

func TestResolveMonthCell_EnglishTokens(t *testing.T) {
	tests := []struct {
		input string
		label string
		key   string
		year  int
		month int
	}{
		{"Jan 24", "يناير", "2024-01", 2024, 1},
		{"january 2024", "يناير", "2024-01", 2024, 1},
		{"Sept-23", "سبتمبر", "2023-09", 2023, 9},
		{"DEC/25", "ديسمبر", "2025-12", 2025, 12},
	}

	for _, tt := range tests {
		info := resolveMonthCell(workbook.TextCell(tt.input))
		assert.Equal(t, tt.label, info.label, tt.input)
		assert.Equal(t, tt.key, info.key, tt.input)
		require.NotNil(t, info.year, tt.input)
		assert.Equal(t, tt.year, *info.year, tt.input)
		require.NotNil(t, info.monthNumber, tt.input)
		assert.Equal(t, tt.month, *info.monthNumber, tt.input)
	}
}

func TestResolveMonthCell_ArabicTokens(t *testing.T) {
	info := resolveMonthCell(workbook.TextCell("مارس 2024"))
	assert.Equal(t, "مارس", info.label)
	assert.Equal(t, "2024-03", info.key)

	// hamza variants fold onto the bare alef spelling
	info = resolveMonthCell(workbook.TextCell("أبريل ٢٠٢٤"))
	assert.Equal(t, "أبريل", info.label)
	assert.Equal(t, "2024-04", info.key)

	// month name without a year keeps the label as the sort key
	info = resolveMonthCell(workbook.TextCell("يوليو"))
	assert.Equal(t, "يوليو", info.label)
	assert.Equal(t, "يوليو", info.key)
	assert.Nil(t, info.year)
	require.NotNil(t, info.monthNumber)
	assert.Equal(t, 7, *info.monthNumber)
}

func TestNormalizeYear(t *testing.T) {
	assert.Equal(t, 2024, normalizeYear("24"))
	assert.Equal(t, 2049, normalizeYear("49"))
	assert.Equal(t, 1950, normalizeYear("50"))
	assert.Equal(t, 1999, normalizeYear("99"))
	assert.Equal(t, 2024, normalizeYear("2024"))
	assert.Equal(t, 0, normalizeYear("xx"))
}

func TestResolveMonthCell_DateInputs(t *testing.T) {
	// date serial for 2024-01-15
	info := resolveMonthCell(workbook.NumberCell(45306))
	assert.Equal(t, "2024-01", info.key)
	assert.Equal(t, "يناير", info.label)

	info = resolveMonthCell(workbook.TextCell("15/03/2024"))
	assert.Equal(t, "2024-03", info.key)

	info = resolveMonthCell(workbook.TextCell("January 2006"))
	assert.Equal(t, "2006-01", info.key)
}

func TestResolveMonthCell_Fallbacks(t *testing.T) {
	info := resolveMonthCell(workbook.TextCell("ربع سنوي"))
	assert.Equal(t, "ربع سنوي", info.label)
	assert.Equal(t, "ربع سنوي", info.key)
	assert.Nil(t, info.year)
	assert.Nil(t, info.monthNumber)

	info = resolveMonthCell(workbook.Empty())
	assert.Equal(t, unspecifiedMonth, info.label)
}

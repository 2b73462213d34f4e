package dataprocessing

import (
	"strings"

	"khazna/internal/workbook"
)

// maxHeaderOffset bounds the header-row search: source sheets sometimes
// carry a title row or two above the real header, never more than three.
const maxHeaderOffset = 3

// normalizeColumnName collapses runs of whitespace to single spaces, trims,
// and case-folds, so header spelling drift (double spaces, stray NBSP,
// casing) does not break column matching.
func normalizeColumnName(name string) string {
	fields := strings.Fields(strings.ReplaceAll(name, " ", " "))
	return strings.ToLower(strings.Join(fields, " "))
}

// ResolveHeaderOffset finds the header row offset in [0, maxHeaderOffset]
// whose header set leaves the fewest required columns unmatched. The first
// offset reaching zero missing wins immediately; otherwise the earliest
// best offset is kept. The residual missing list is returned alongside.
func ResolveHeaderOffset(sheet *workbook.Sheet, required []string) (int, []string, error) {
	bestOffset := 0
	var bestMissing []string
	first := true

	for offset := 0; offset <= maxHeaderOffset; offset++ {
		headers, err := sheet.Headers(offset)
		if err != nil {
			return 0, nil, err
		}
		if len(headers) == 0 {
			continue
		}

		present := make(map[string]bool, len(headers))
		for _, h := range headers {
			if n := normalizeColumnName(h); n != "" {
				present[n] = true
			}
		}

		var missing []string
		for _, col := range required {
			if !present[normalizeColumnName(col)] {
				missing = append(missing, col)
			}
		}

		if first || len(missing) < len(bestMissing) {
			first = false
			bestOffset = offset
			bestMissing = missing
			if len(missing) == 0 {
				break
			}
		}
	}

	if first {
		// Sheet had no readable rows at any offset; every column is missing.
		bestMissing = append(bestMissing, required...)
	}
	return bestOffset, bestMissing, nil
}

// Column looks a target column up in a header-keyed row, matching keys with
// the same whitespace/case normalization used for header resolution. The
// second return is false when no key matches.
func Column(row workbook.Row, target string) (workbook.Cell, bool) {
	want := normalizeColumnName(target)
	for key, cell := range row {
		if normalizeColumnName(key) == want {
			return cell, true
		}
	}
	return workbook.Empty(), false
}

// ColumnText returns the trimmed text rendering of a column, or "" when the
// column is absent or empty.
func ColumnText(row workbook.Row, target string) string {
	cell, ok := Column(row, target)
	if !ok {
		return ""
	}
	return strings.TrimSpace(cell.String())
}

// ColumnAmount returns the parsed amount of a column, defaulting to 0 when
// the column is absent or unparseable. Ledger totals must never be NaN.
func ColumnAmount(row workbook.Row, target string) float64 {
	cell, ok := Column(row, target)
	if !ok {
		return 0
	}
	amount, ok := ParseAmount(cell)
	if !ok {
		return 0
	}
	return amount
}

package dataprocessing

import (
	"strings"

	"khazna/internal/workbook"
)

// Coord addresses one cell of a sheet matrix, zero-based.
type Coord struct {
	Row int
	Col int
}

// HeaderTable is a located header row with its column map and the data
// region beneath it.
type HeaderTable struct {
	HeaderRow int
	Columns   map[string]int
	Rows      [][]workbook.Cell
}

// totalRowMarkers end a data table when any cell matches one of them.
var totalRowMarkers = map[string]bool{
	"total":       true,
	"grand total": true,
	"اجمالي":      true,
	"الإجمالي":    true,
}

// FindCellsByLabel scans the matrix row-major and returns the coordinates
// of every text cell whose trimmed, case-folded value equals one of the
// label variants exactly.
func FindCellsByLabel(matrix [][]workbook.Cell, variants []string) []Coord {
	targets := make(map[string]bool, len(variants))
	for _, v := range variants {
		targets[strings.ToLower(strings.TrimSpace(v))] = true
	}

	var matches []Coord
	for r, row := range matrix {
		for c, cell := range row {
			if cell.Kind != workbook.KindText {
				continue
			}
			if targets[strings.ToLower(strings.TrimSpace(cell.Text))] {
				matches = append(matches, Coord{Row: r, Col: c})
			}
		}
	}
	return matches
}

// FindNearestNumber walks cells at Manhattan distance 1..radius around the
// origin (origin excluded) and returns the first cell that parses as a
// number. Equal distances resolve in scan order, row offset outer and
// column offset inner, so this is a label-adjacency heuristic rather than
// a true nearest-in-space search.
func FindNearestNumber(matrix [][]workbook.Cell, r, c, radius int) (float64, bool) {
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			distance := abs(dr) + abs(dc)
			if distance == 0 || distance > radius {
				continue
			}
			rr, cc := r+dr, c+dc
			if rr < 0 || rr >= len(matrix) || cc < 0 || cc >= len(matrix[rr]) {
				continue
			}
			if value, ok := ParseAmount(matrix[rr][cc]); ok {
				return value, true
			}
		}
	}
	return 0, false
}

// normalizeHeaderCell prepares a cell for header-name comparison: digit
// normalization plus the whitespace/case folding shared with column lookup.
func normalizeHeaderCell(cell workbook.Cell) string {
	if cell.Kind == workbook.KindEmpty {
		return ""
	}
	return normalizeColumnName(NormalizeDigits(cell.String()))
}

// LocateHeaderRow scans rows from startRow down and returns the first row
// containing every required header name, order-independent, with the first
// matching column index winning per name. Nil when no row in the remaining
// range qualifies.
func LocateHeaderRow(matrix [][]workbook.Cell, required []string, startRow int) *HeaderTable {
	if startRow < 0 {
		startRow = 0
	}
	for r := startRow; r < len(matrix); r++ {
		if columns, ok := matchHeaderRow(matrix[r], required); ok {
			return &HeaderTable{HeaderRow: r, Columns: columns, Rows: matrix[r+1:]}
		}
	}
	return nil
}

// LocateHeaderRowCandidates tries several preferred starting rows and
// collects every qualifying header row across them, deduplicated by row
// index. Callers score the candidates (typically by parsed row count) to
// pick the interpretation yielding the most plausible data.
func LocateHeaderRowCandidates(matrix [][]workbook.Cell, required []string, startRows []int) []*HeaderTable {
	var candidates []*HeaderTable
	seen := make(map[int]bool)

	for _, start := range startRows {
		if start < 0 {
			start = 0
		}
		for r := start; r < len(matrix); r++ {
			if seen[r] {
				continue
			}
			if columns, ok := matchHeaderRow(matrix[r], required); ok {
				candidates = append(candidates, &HeaderTable{HeaderRow: r, Columns: columns, Rows: matrix[r+1:]})
				seen[r] = true
			}
		}
	}
	return candidates
}

func matchHeaderRow(row []workbook.Cell, required []string) (map[string]int, bool) {
	columns := make(map[string]int, len(required))
	for _, name := range required {
		want := normalizeColumnName(NormalizeDigits(name))
		found := false
		for c, cell := range row {
			if normalizeHeaderCell(cell) == want {
				columns[name] = c
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return columns, true
}

// IsEmptyRow reports whether every cell of the row is absent or
// blank/whitespace-only.
func IsEmptyRow(row []workbook.Cell) bool {
	for _, cell := range row {
		if !cell.IsEmpty() {
			return false
		}
	}
	return true
}

// IsTotalRow reports whether any cell of the row carries a recognized
// total-row marker, the sentinel that ends a data table.
func IsTotalRow(row []workbook.Cell) bool {
	for _, cell := range row {
		if cell.Kind != workbook.KindText {
			continue
		}
		if totalRowMarkers[strings.ToLower(strings.TrimSpace(cell.Text))] {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

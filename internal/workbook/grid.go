package workbook

import (
	"github.com/xuri/excelize/v2"
)

// Matrix reads the sheet's used range into a dense rectangular grid of
// cells, row-major, padded with empty cells to the widest row. Raw cell
// values are requested so numeric cells (including date serials) arrive as
// numbers rather than display strings.
func (s *Sheet) Matrix() ([][]Cell, error) {
	rows, err := s.file.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	matrix := make([][]Cell, len(rows))
	for r, row := range rows {
		cells := make([]Cell, width)
		for c := range cells {
			if c < len(row) {
				cells[c] = classifyCell(row[c])
			} else {
				cells[c] = Empty()
			}
		}
		matrix[r] = cells
	}
	return matrix, nil
}

// Row is one data row keyed by header text. Missing and blank cells are
// empty cells, mirroring a blank-default row conversion.
type Row map[string]Cell

// RowObjects reinterprets the sheet as a header row at the given offset
// followed by data rows. Columns whose header cell is blank are dropped;
// duplicate header names keep the first (leftmost) column.
func (s *Sheet) RowObjects(headerOffset int) ([]Row, error) {
	matrix, err := s.Matrix()
	if err != nil {
		return nil, err
	}
	if headerOffset < 0 || headerOffset >= len(matrix) {
		return nil, nil
	}

	headers := make([]string, len(matrix[headerOffset]))
	for c, cell := range matrix[headerOffset] {
		headers[c] = cell.String()
	}

	var out []Row
	for r := headerOffset + 1; r < len(matrix); r++ {
		row := make(Row, len(headers))
		for c, name := range headers {
			if name == "" {
				continue
			}
			if _, dup := row[name]; dup {
				continue
			}
			row[name] = matrix[r][c]
		}
		out = append(out, row)
	}
	return out, nil
}

// Headers returns the header names found at the given row offset, in
// column order, blanks included.
func (s *Sheet) Headers(headerOffset int) ([]string, error) {
	matrix, err := s.Matrix()
	if err != nil {
		return nil, err
	}
	if headerOffset < 0 || headerOffset >= len(matrix) {
		return nil, nil
	}
	headers := make([]string, len(matrix[headerOffset]))
	for c, cell := range matrix[headerOffset] {
		headers[c] = cell.String()
	}
	return headers, nil
}

// Package workbook adapts a decoded xlsx container into the two views the
// extraction engine works with: a dense cell matrix and header-keyed row
// objects. Decoding itself is delegated to excelize; this package never
// interprets business semantics.
package workbook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only view over one decoded spreadsheet container.
// It is created once per report run and discarded afterwards.
type Workbook struct {
	file   *excelize.File
	sheets []string
}

// Open decodes an in-memory xlsx buffer. A malformed buffer returns an
// error; no partial workbook is ever produced.
func Open(buf []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to decode workbook: %w", err)
	}
	return &Workbook{file: f, sheets: f.GetSheetList()}, nil
}

// Close releases the underlying container resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns the sheet names in workbook order, untrimmed.
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.sheets))
	copy(out, w.sheets)
	return out
}

// Sheet resolves a sheet by trimmed-name equality. Sheet names in source
// files often carry incidental whitespace, so lookups always trim both
// sides before comparing.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	want := strings.TrimSpace(name)
	for _, actual := range w.sheets {
		if strings.TrimSpace(actual) == want {
			return &Sheet{file: w.file, name: actual}, true
		}
	}
	return nil, false
}

// SheetFold resolves a sheet by trimmed, case-insensitive name equality,
// used for the report/revenues pair whose casing is not fixed.
func (w *Workbook) SheetFold(names ...string) (*Sheet, bool) {
	for _, actual := range w.sheets {
		folded := strings.ToLower(strings.TrimSpace(actual))
		for _, want := range names {
			if folded == strings.ToLower(strings.TrimSpace(want)) {
				return &Sheet{file: w.file, name: actual}, true
			}
		}
	}
	return nil, false
}

// HasSheet reports whether a sheet with the given trimmed name exists.
func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.Sheet(name)
	return ok
}

// Sheet is a handle onto one sheet of an open workbook.
type Sheet struct {
	file *excelize.File
	name string
}

// Name returns the sheet's actual (untrimmed) name.
func (s *Sheet) Name() string {
	return s.name
}

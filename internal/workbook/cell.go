package workbook

import (
	"strconv"
	"time"
)

// CellKind discriminates the closed set of cell value shapes a sheet can
// hold after decoding.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
	KindDate
)

// Cell is a tagged variant over {empty, text, number, date}. Exactly one of
// the payload fields is meaningful, selected by Kind. Cells are immutable
// after decoding.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// Empty returns the absent-cell value.
func Empty() Cell {
	return Cell{Kind: KindEmpty}
}

// TextCell returns a text cell. An empty string is still a text cell; callers
// that treat blank text as absent do so explicitly.
func TextCell(s string) Cell {
	return Cell{Kind: KindText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: KindNumber, Number: f}
}

// DateCell returns a native date cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: KindDate, Date: t}
}

// IsEmpty reports whether the cell is absent or blank/whitespace-only text.
func (c Cell) IsEmpty() bool {
	if c.Kind == KindEmpty {
		return true
	}
	if c.Kind == KindText {
		for _, r := range c.Text {
			if r != ' ' && r != '\t' && r != '\n' && r != '\r' && r != ' ' {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the cell the way a header or label consumer sees it.
// Numbers use the shortest round-trip representation, dates the canonical
// calendar form.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindDate:
		return c.Date.UTC().Format("2006-01-02")
	default:
		return ""
	}
}

// classifyCell maps a raw stored cell string onto the variant. The xlsx
// container stores numbers (including date serials) as plain numeric text,
// so anything float-parseable becomes a number cell; date typing is left to
// the normalizer, which treats serials as dates on demand.
func classifyCell(raw string) Cell {
	if raw == "" {
		return Empty()
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return NumberCell(f)
	}
	return TextCell(raw)
}

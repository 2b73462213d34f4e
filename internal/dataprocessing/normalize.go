package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"khazna/internal/workbook"
)

const canonicalDateLayout = "2006-01-02"

var (
	dayFirstDatePattern  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})$`)
	yearFirstDatePattern = regexp.MustCompile(`^(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})$`)
)

// NormalizeDigits maps Eastern Arabic-Indic digits onto ASCII digits.
// Every other rune passes through unchanged.
func NormalizeDigits(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { return r >= '٠' && r <= '٩' }) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '٠' && r <= '٩' {
			b.WriteRune('0' + (r - '٠'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount coerces a cell into a signed amount. The second return is
// false when the cell holds no usable value; that is distinct from a parsed
// zero, and callers decide whether to default to 0.
//
// String cells go through digit normalization, Eastern Arabic separator
// conversion (٬ thousands, ٫ decimal), parenthesized-negative stripping,
// and removal of thousands commas and internal whitespace.
func ParseAmount(cell workbook.Cell) (float64, bool) {
	switch cell.Kind {
	case workbook.KindNumber:
		if math.IsNaN(cell.Number) {
			return 0, false
		}
		return cell.Number, true
	case workbook.KindText:
		return parseAmountString(cell.Text)
	default:
		return 0, false
	}
}

func parseAmountString(s string) (float64, bool) {
	normalized := NormalizeDigits(s)
	normalized = strings.ReplaceAll(normalized, "٬", ",")
	normalized = strings.ReplaceAll(normalized, "٫", ".")

	trimmed := strings.TrimSpace(normalized)
	sign := 1.0
	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		sign = -1.0
		trimmed = trimmed[1 : len(trimmed)-1]
	}

	cleaned := strings.ReplaceAll(trimmed, ",", "")
	cleaned = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, cleaned)

	if cleaned == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) {
		return 0, false
	}
	return parsed * sign, true
}

// ParseDate coerces a cell into a canonical "YYYY-MM-DD" date string.
//
// Numeric cells are spreadsheet date serials: days since the 1899-12-30
// epoch, with serials above 60 decremented to compensate for the phantom
// 1900-02-29 the format inherited, resolved in UTC. String cells accept
// only D-M-YYYY or YYYY-M-D shapes (slash or dash, 1-2 digit day/month);
// no free-text parsing happens on this path. Native date cells pass
// through when valid.
func ParseDate(cell workbook.Cell) (string, bool) {
	switch cell.Kind {
	case workbook.KindNumber:
		if math.IsNaN(cell.Number) || cell.Number <= 0 {
			return "", false
		}
		return FormatCanonical(serialToTime(cell.Number)), true
	case workbook.KindText:
		return parseDateString(cell.Text)
	case workbook.KindDate:
		if cell.Date.IsZero() {
			return "", false
		}
		return FormatCanonical(cell.Date), true
	default:
		return "", false
	}
}

func parseDateString(s string) (string, bool) {
	trimmed := strings.TrimSpace(NormalizeDigits(s))
	if m := dayFirstDatePattern.FindStringSubmatch(trimmed); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return formatYMD(year, month, day), true
	}
	if m := yearFirstDatePattern.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return formatYMD(year, month, day), true
	}
	return "", false
}

// serialToTime converts an Excel date serial into a UTC calendar date.
// Serial 60 is the phantom 1900-02-29, so later serials shift down by one
// before the epoch offset is applied.
func serialToTime(serial float64) time.Time {
	days := int(math.Floor(serial))
	if days > 60 {
		days--
	}
	epoch := time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
	return epoch.AddDate(0, 0, days)
}

// FormatCanonical renders a date as the canonical "YYYY-MM-DD" comparison
// form, always from UTC fields to avoid timezone drift.
func FormatCanonical(t time.Time) string {
	return t.UTC().Format(canonicalDateLayout)
}

// FormatForDisplay renders a canonical "YYYY-MM-DD" string as the
// "DD/MM/YYYY" display form. Inputs in any other shape pass through as-is.
func FormatForDisplay(canonical string) string {
	parts := strings.Split(canonical, "-")
	if len(parts) != 3 {
		return canonical
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

func formatYMD(year, month, day int) string {
	return strconv.Itoa(year) + "-" + pad2(month) + "-" + pad2(day)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

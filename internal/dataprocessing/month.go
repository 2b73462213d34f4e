package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"khazna/internal/workbook"
)

// monthInfo is the resolved interpretation of a receivables month cell:
// a human-readable Arabic label, a sortable key ("YYYY-MM" when the month
// could be anchored to a year), and the numeric parts when known.
type monthInfo struct {
	label       string
	key         string
	year        *int
	monthNumber *int
}

// Arabic month display names, indexed by month number - 1.
var arabicMonthNames = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var englishMonthNumbers = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// Arabic month-name tokens after hamza folding (إ/أ/آ → ا), including the
// common alternate spellings seen in source sheets.
var arabicMonthNumbers = map[string]int{
	"يناير":  1,
	"فبراير": 2,
	"مارس":   3,
	"ابريل":  4,
	"مايو":   5,
	"يونيو":  6,
	"يونيه":  6,
	"يوليو":  7,
	"يوليه":  7,
	"اغسطس":  8,
	"سبتمبر": 9,
	"اكتوبر": 10,
	"نوفمبر": 11,
	"ديسمبر": 12,
}

var englishMonthYearPattern = regexp.MustCompile(
	`^(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)[\s\-/]+(\d{2,4})$`)

var hamzaFolder = strings.NewReplacer("إ", "ا", "أ", "ا", "آ", "ا")

// freeTextDateLayouts is the fallback set for month cells that are full
// date strings in some other shape than the strict D-M-YYYY / YYYY-M-D
// forms the normalizer accepts.
var freeTextDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"2006/01/02",
}

// resolveMonthCell interprets a month cell: first as a month-name token
// with an optional year, then as a date via the normalizer, then as a
// free-text date string, and finally as raw text used for both label and
// sort key with year/month unknown.
func resolveMonthCell(cell workbook.Cell) monthInfo {
	if info, ok := parseMonthYearToken(cell); ok {
		return info
	}

	if canonical, ok := ParseDate(cell); ok {
		if t, err := time.Parse(canonicalDateLayout, canonical); err == nil {
			return monthInfoFromDate(t)
		}
	}

	if cell.Kind == workbook.KindText {
		trimmed := strings.TrimSpace(cell.Text)
		for _, layout := range freeTextDateLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return monthInfoFromDate(t)
			}
		}
	}

	fallback := strings.TrimSpace(cell.String())
	if fallback == "" {
		fallback = unspecifiedMonth
	}
	return monthInfo{label: fallback, key: fallback}
}

// parseMonthYearToken matches an English month name (abbreviated or full)
// followed by a 2-or-4-digit year, or an Arabic month name with an
// optional year part.
func parseMonthYearToken(cell workbook.Cell) (monthInfo, bool) {
	if cell.Kind != workbook.KindText {
		return monthInfo{}, false
	}
	raw := strings.TrimSpace(NormalizeDigits(cell.Text))
	if raw == "" {
		return monthInfo{}, false
	}

	lowered := strings.ToLower(raw)
	if m := englishMonthYearPattern.FindStringSubmatch(lowered); m != nil {
		month := englishMonthNumbers[m[1]]
		year := normalizeYear(m[2])
		return makeMonthInfo(year, month), true
	}

	folded := hamzaFolder.Replace(lowered)
	parts := strings.FieldsFunc(folded, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == '/'
	})
	if len(parts) == 0 {
		return monthInfo{}, false
	}
	month, ok := arabicMonthNumbers[parts[0]]
	if !ok {
		return monthInfo{}, false
	}
	if len(parts) >= 2 {
		year := normalizeYear(parts[1])
		return makeMonthInfo(year, month), true
	}
	// Month name with no year: label doubles as the sort key.
	label := arabicMonthNames[month-1]
	return monthInfo{label: label, key: label, monthNumber: &month}, true
}

// normalizeYear maps 2-digit years onto centuries: 50 and above is 19xx,
// below 50 is 20xx. 4-digit years pass through.
func normalizeYear(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	if len(s) == 2 {
		if n >= 50 {
			return 1900 + n
		}
		return 2000 + n
	}
	return n
}

func makeMonthInfo(year, month int) monthInfo {
	return monthInfo{
		label:       arabicMonthNames[month-1],
		key:         strconv.Itoa(year) + "-" + pad2(month),
		year:        &year,
		monthNumber: &month,
	}
}

func monthInfoFromDate(t time.Time) monthInfo {
	year := t.UTC().Year()
	month := int(t.UTC().Month())
	return makeMonthInfo(year, month)
}

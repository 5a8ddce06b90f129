package facultycert

import (
	"fmt"
	"strconv"
	"strings"
)

// Period suffixes of a six digit term code.
const (
	PeriodSpring       = "25"
	PeriodIntersession = "30"
	PeriodFall         = "35"
)

// MaxTermRange caps the number of terms returned by TermRange.
const MaxTermRange = 50

var seasonWords = []string{
	"Spring", "Fall", "Intersession",
	// legacy imports were labelled in Spanish
	"Primavera", "Otoño", "Interperiodo",
}

// FormatTermLabel turns "202525" into "Spring 2025". Codes it does not recognize, and labels
// that were already formatted, are returned unchanged.
func FormatTermLabel(code string) string {
	for _, word := range seasonWords {
		if strings.Contains(code, word) {
			return code
		}
	}

	if len(code) != 6 {
		return code
	}

	year, period := code[:4], code[4:]
	switch period {
	case PeriodSpring:
		return "Spring " + year
	case PeriodIntersession:
		return "Intersession " + year
	case PeriodFall:
		return "Fall " + year
	default:
		return code
	}
}

// IsTermCode reports whether code is six digits.
func IsTermCode(code string) bool {
	return len(code) == 6 && isDigits(code)
}

// NextTerm returns the term following code: 25 -> 30 -> 35 -> next year's 25.
func NextTerm(code string) (string, error) {
	if !IsTermCode(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTermCode, code)
	}

	year, _ := strconv.Atoi(code[:4])
	switch code[4:] {
	case PeriodSpring:
		return fmt.Sprintf("%d%s", year, PeriodIntersession), nil
	case PeriodIntersession:
		return fmt.Sprintf("%d%s", year, PeriodFall), nil
	case PeriodFall:
		return fmt.Sprintf("%d%s", year+1, PeriodSpring), nil
	default:
		return "", fmt.Errorf("%w: unknown period in %q", ErrInvalidTermCode, code)
	}
}

// TermRange lists every term from start to end inclusive. An end before start yields only
// start. The list never exceeds MaxTermRange entries.
func TermRange(start, end string) ([]string, error) {
	if !IsTermCode(end) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTermCode, end)
	}
	if _, err := NextTerm(start); err != nil {
		return nil, err
	}

	terms := []string{start}
	current := start
	for current < end && len(terms) < MaxTermRange {
		next, err := NextTerm(current)
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
		current = next
	}

	return terms, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

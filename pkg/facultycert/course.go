package facultycert

import (
	"slices"
	"strings"
	"time"
)

// CourseRecord is a single course section taught by a professor in a term.
type CourseRecord struct {
	ProfessorID     string
	ProfessorName   string
	Term            string
	Subject         string
	SubjectCode     string
	ReferenceNumber string
	StartDate       time.Time
	EndDate         time.Time
	ContactHours    int
	// Sections sharing a non-empty cross-list code are taught jointly.
	CrossListCode string
}

// FilterByTerms keeps the courses whose term is listed. An empty filter, or a filter that
// matches nothing, returns the courses unchanged.
func FilterByTerms(courses []CourseRecord, terms []string) []CourseRecord {
	if len(terms) == 0 {
		return courses
	}

	filtered := make([]CourseRecord, 0, len(courses))
	for _, c := range courses {
		if slices.Contains(terms, strings.TrimSpace(c.Term)) {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) == 0 {
		return courses
	}

	return filtered
}

// SplitCurrentTerm separates the courses of the current term from the historical ones.
func SplitCurrentTerm(courses []CourseRecord, currentTerm string) (past []CourseRecord, current []CourseRecord) {
	currentTerm = strings.TrimSpace(currentTerm)
	if currentTerm == "" {
		return courses, nil
	}

	for _, c := range courses {
		if strings.TrimSpace(c.Term) == currentTerm {
			current = append(current, c)
		} else {
			past = append(past, c)
		}
	}

	return past, current
}

package facultycert

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// GroupSeparator joins merged subject names and reference numbers.
const GroupSeparator = "/"

// GroupedCourseRow is one line of the certificate course table. A row is either a single
// course or the merge of every section sharing a cross-list code.
type GroupedCourseRow struct {
	Term          string
	StartDate     time.Time
	EndDate       time.Time
	CrossListCode string

	// Deduplicated, in first-seen order.
	SubjectNames []string
	// One entry per constituent course.
	SubjectCodes     []string
	ReferenceNumbers []string

	ContactHours int
	Count        int
	Grouped      bool
	Constituents []CourseRecord
}

func (r GroupedCourseRow) Subject() string {
	return strings.Join(r.SubjectNames, GroupSeparator)
}

func (r GroupedCourseRow) ReferenceNumber() string {
	return strings.Join(r.ReferenceNumbers, GroupSeparator)
}

// SubjectCode returns the code of the representative course.
func (r GroupedCourseRow) SubjectCode() string {
	if len(r.SubjectCodes) == 0 {
		return ""
	}
	return r.SubjectCodes[0]
}

// GroupCourses partitions the courses of one professor by cross-list code and merges each
// partition into a single row. Courses without a code are never merged. The result is
// sorted by term, then subject.
func GroupCourses(courses []CourseRecord) []GroupedCourseRow {
	keys := make([]string, 0, len(courses))
	groups := make(map[string][]CourseRecord, len(courses))

	for i, course := range courses {
		key := groupKey(course, i)
		if _, exists := groups[key]; !exists {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], course)
	}

	rows := make([]GroupedCourseRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, buildGroupedRow(groups[key]))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Term != rows[j].Term {
			return rows[i].Term < rows[j].Term
		}
		return rows[i].Subject() < rows[j].Subject()
	})

	return rows
}

func groupKey(course CourseRecord, index int) string {
	code := strings.TrimSpace(course.CrossListCode)
	if code == "" {
		return fmt.Sprintf("single_%d", index)
	}
	return "xlist_" + code
}

func buildGroupedRow(courses []CourseRecord) GroupedCourseRow {
	base := courses[0]

	row := GroupedCourseRow{
		Term:          base.Term,
		StartDate:     base.StartDate,
		EndDate:       base.EndDate,
		CrossListCode: strings.TrimSpace(base.CrossListCode),
		Count:         len(courses),
		Grouped:       len(courses) > 1,
		Constituents:  courses,
	}

	seen := make(map[string]bool, len(courses))
	for _, c := range courses {
		if !seen[c.Subject] {
			seen[c.Subject] = true
			row.SubjectNames = append(row.SubjectNames, c.Subject)
		}
		row.SubjectCodes = append(row.SubjectCodes, c.SubjectCode)
		row.ReferenceNumbers = append(row.ReferenceNumbers, c.ReferenceNumber)
		row.ContactHours += c.ContactHours
	}

	return row
}

package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"github.com/xuri/excelize/v2"
)

// Sheet headers, compared case-insensitively.
const (
	colProfessorID     = "id_docente"
	colProfessorName   = "profesor"
	colTerm            = "periodo"
	colSubject         = "materia"
	colSubjectCode     = "clave"
	colReferenceNumber = "nrc"
	colStartDate       = "fecha_inicio"
	colEndDate         = "fecha_fin"
	colContactHours    = "hr_cont"
	colCrossList       = "listas_cruzadas"
	colLevel           = "nivel"
	colCampus          = "campus"
	colSection         = "secc"
	colCredits         = "cred"
	colWeeklyHours     = "hr_semana"
	colDays            = "dias"
	colSchedule        = "hora"
	colClassroom       = "salon"
)

var RequiredColumns = []string{
	colProfessorID, colProfessorName, colTerm, colSubject, colSubjectCode,
	colReferenceNumber, colStartDate, colEndDate, colContactHours,
}

// 9999-12-31
const maxExcelSerial = 2958466

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
}

type ParseResult struct {
	// Unique by professor, reference number and term. A later row replaces an earlier one.
	Courses []model.CourseHistory
	Errors  []RowError
	// Non-blank data rows
	Total int
	Valid int
}

type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := h[key]; key != "" && !dup {
			h[key] = i
		}
	}
	return h
}

func (h header) missing() []string {
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Parse maps the rows to course histories. The first row is the header.
func Parse(rows [][]string) (*ParseResult, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	h := newHeader(rows[0])
	if missing := h.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	result := &ParseResult{Errors: []RowError{}}
	index := map[string]int{}

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		result.Total++

		course, err := h.parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 2, Message: err.Error()})
			continue
		}
		result.Valid++

		key := course.ProfessorID + "|" + course.ReferenceNumber + "|" + course.Term
		if at, ok := index[key]; ok {
			result.Courses[at] = course
			continue
		}
		index[key] = len(result.Courses)
		result.Courses = append(result.Courses, course)
	}

	if result.Total == 0 {
		return nil, ErrNoData
	}

	return result, nil
}

func (h header) parseRow(row []string) (model.CourseHistory, error) {
	c := model.CourseHistory{
		ProfessorID:     normalizeCode(h.get(row, colProfessorID)),
		ProfessorName:   h.get(row, colProfessorName),
		Term:            normalizeCode(h.get(row, colTerm)),
		Subject:         h.get(row, colSubject),
		SubjectCode:     h.get(row, colSubjectCode),
		ReferenceNumber: normalizeCode(h.get(row, colReferenceNumber)),
		CrossListCode:   h.get(row, colCrossList),
		Level:           h.get(row, colLevel),
		Campus:          normalizeCode(h.get(row, colCampus)),
		Section:         h.get(row, colSection),
		Days:            h.get(row, colDays),
		Schedule:        h.get(row, colSchedule),
		Classroom:       h.get(row, colClassroom),
	}

	switch {
	case c.ProfessorID == "":
		return c, fmt.Errorf("missing %s", colProfessorID)
	case len(c.ProfessorID) > 9:
		return c, fmt.Errorf("%s %q is longer than 9 characters", colProfessorID, c.ProfessorID)
	case c.ProfessorName == "":
		return c, fmt.Errorf("missing %s", colProfessorName)
	case !facultycert.IsTermCode(c.Term):
		return c, fmt.Errorf("%s %q is not a 6 digit term code", colTerm, c.Term)
	case c.Subject == "":
		return c, fmt.Errorf("missing %s", colSubject)
	case c.SubjectCode == "":
		return c, fmt.Errorf("missing %s", colSubjectCode)
	case c.ReferenceNumber == "":
		return c, fmt.Errorf("missing %s", colReferenceNumber)
	case len(c.ReferenceNumber) > 5:
		return c, fmt.Errorf("%s %q is longer than 5 characters", colReferenceNumber, c.ReferenceNumber)
	case len(c.CrossListCode) > 5:
		return c, fmt.Errorf("%s %q is longer than 5 characters", colCrossList, c.CrossListCode)
	}

	var err error
	if c.StartDate, err = parseDate(h.get(row, colStartDate)); err != nil {
		return c, fmt.Errorf("%s: %w", colStartDate, err)
	}
	if c.EndDate, err = parseDate(h.get(row, colEndDate)); err != nil {
		return c, fmt.Errorf("%s: %w", colEndDate, err)
	}
	if c.EndDate.Before(c.StartDate) {
		return c, fmt.Errorf("%s is before %s", colEndDate, colStartDate)
	}

	if c.ContactHours, err = parseNumber(h.get(row, colContactHours)); err != nil {
		return c, fmt.Errorf("%s: %w", colContactHours, err)
	}
	if c.ContactHours < 0 {
		return c, fmt.Errorf("%s must not be negative", colContactHours)
	}

	// descriptive columns are kept when they parse and ignored otherwise
	if v := h.get(row, colCredits); v != "" {
		c.Credits, _ = parseNumber(v)
	}
	if v := h.get(row, colWeeklyHours); v != "" {
		c.WeeklyHours, _ = parseNumber(v)
	}

	return c, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	// unformatted spreadsheet cells hold the Excel serial number
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 && serial < maxExcelSerial {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// parseNumber accepts integers and decimals, decimals are truncated.
func parseNumber(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("missing number")
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", value)
	}

	return int(f), nil
}

// normalizeCode drops the ".0" a numeric spreadsheet cell gains on export.
func normalizeCode(value string) string {
	if whole, ok := strings.CutSuffix(value, ".0"); ok && whole != "" {
		if _, err := strconv.ParseUint(whole, 10, 64); err == nil {
			return whole
		}
	}
	return value
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package facultycert

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/tdewolff/canvas"
)

// Column widths in inches, scaled down when the selection is wider than the page.
var fieldWidthInches = map[Field]float64{
	FieldTerm:            1.1,
	FieldSubject:         2.0,
	FieldSubjectCode:     0.9,
	FieldReferenceNumber: 0.7,
	FieldStartDate:       1.0,
	FieldEndDate:         1.0,
	FieldHours:           0.8,
}

const (
	cellPadding   = 1.5
	minCellHeight = 4.0
)

type tableStyle struct {
	header      *canvas.FontFace
	body        *canvas.FontFace
	headerFill  color.Color
	groupedFill color.Color
	border      color.Color
}

func columnWidths(fields []Field, available float64) []float64 {
	widths := make([]float64, len(fields))
	total := 0.0
	for i, f := range fields {
		widths[i] = inches(fieldWidthInches[f])
		total += widths[i]
	}

	if total > available {
		scale := available / total
		for i := range widths {
			widths[i] *= scale
		}
	}

	return widths
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// cellText renders one field of a row. Grouped rows list one constituent per line.
func cellText(row GroupedCourseRow, field Field) string {
	switch field {
	case FieldTerm:
		return FormatTermLabel(row.Term)
	case FieldSubject:
		return strings.Join(row.SubjectNames, "\n")
	case FieldSubjectCode:
		return strings.Join(row.SubjectCodes, "\n")
	case FieldReferenceNumber:
		return strings.Join(row.ReferenceNumbers, "\n")
	case FieldStartDate:
		return formatDate(row.StartDate)
	case FieldEndDate:
		return formatDate(row.EndDate)
	case FieldHours:
		if row.Grouped {
			return fmt.Sprintf("%d (%d)", row.ContactHours, row.Count)
		}
		return strconv.Itoa(row.ContactHours)
	default:
		return ""
	}
}

type tableRow struct {
	boxes  []*canvas.Text
	height float64
}

func layoutRow(cells []string, widths []float64, face *canvas.FontFace) tableRow {
	row := tableRow{boxes: make([]*canvas.Text, len(cells)), height: minCellHeight}
	for i, text := range cells {
		row.boxes[i] = textBox(face, text, widths[i]-2*cellPadding, canvas.Center)
		row.height = max(row.height, row.boxes[i].Bounds().H()+2*cellPadding)
	}
	return row
}

func (f *flow) drawRow(x float64, row tableRow, widths []float64, fill, border color.Color) {
	ctx := f.ctx()
	yTop := f.top()
	for i, box := range row.boxes {
		if fill != nil {
			fillRect(ctx, x, yTop, widths[i], row.height, fill)
		}
		strokeRect(ctx, x, yTop, widths[i], row.height, 0.2, border)

		offset := (row.height - box.Bounds().H()) / 2
		ctx.DrawText(x+cellPadding, yTop-offset, box)
		x += widths[i]
	}
	f.cursor += row.height
}

// table draws the rows, repeating the header on every page it spans.
func (f *flow) table(fields []Field, rows []GroupedCourseRow, style tableStyle) {
	widths := columnWidths(fields, f.contentWidth())
	tableWidth := 0.0
	for _, w := range widths {
		tableWidth += w
	}
	x := f.margin + (f.contentWidth()-tableWidth)/2

	labels := make([]string, len(fields))
	for i, field := range fields {
		labels[i] = field.Label()
	}
	header := layoutRow(labels, widths, style.header)

	body := make([]tableRow, len(rows))
	for i, r := range rows {
		cells := make([]string, len(fields))
		for j, field := range fields {
			cells[j] = cellText(r, field)
		}
		body[i] = layoutRow(cells, widths, style.body)
	}

	first := 0.0
	if len(body) > 0 {
		first = body[0].height
	}
	f.ensure(header.height + first)
	f.drawRow(x, header, widths, style.headerFill, style.border)

	for i, row := range body {
		if row.height > f.remaining() {
			f.newPage()
			f.drawRow(x, header, widths, style.headerFill, style.border)
		}

		var fill color.Color
		if rows[i].Grouped {
			fill = style.groupedFill
		}
		f.drawRow(x, row, widths, fill, style.border)
	}
}

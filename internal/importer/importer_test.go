package importer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const sampleCSV = "\ufeffID_Docente,Profesor,Periodo,Materia,Clave,NRC,Fecha_Inicio,Fecha_Fin,Hr_Cont,Listas_Cruzadas,Salon\n" +
	"900000001,Ada Lovelace,202435,Physics I,FIS101,10002,2024-08-12,2024-12-06,48,XL1,A-101\n" +
	"900000001,Ada Lovelace,202435,Physics I Lab,FIS101L,10003,08/12/2024,12/06/2024,16.0,XL1,\n" +
	",,,,,,,,,,\n" +
	"900000001,Ada Lovelace,2024,Calculus,MAT101,10001,2024-01-15,2024-05-10,64,,\n" +
	"900000002,Alan Turing,202525,Logic,MAT201,10004,2025-05-09,2025-01-13,64,,\n" +
	"900000002,Alan Turing,202525,Logic,MAT201,10004,2025-01-13,2025-05-09,sixty,,\n"

func TestParseCSV(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(sampleCSV), FormatCSV)
	if err != nil {
		t.Fatalf("ReadRows() error: %v", err)
	}

	result, err := Parse(rows)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if result.Total != 5 || result.Valid != 2 {
		t.Fatalf("total = %d, valid = %d, want 5 and 2", result.Total, result.Valid)
	}
	if len(result.Courses) != 2 {
		t.Fatalf("courses = %d, want 2", len(result.Courses))
	}

	wantRows := []int{5, 6, 7}
	if len(result.Errors) != len(wantRows) {
		t.Fatalf("errors = %+v", result.Errors)
	}
	for i, row := range wantRows {
		if result.Errors[i].Row != row {
			t.Errorf("error %d on row %d, want %d", i, result.Errors[i].Row, row)
		}
	}

	first := result.Courses[0]
	if first.ProfessorID != "900000001" || first.CrossListCode != "XL1" || first.Classroom != "A-101" || first.ContactHours != 48 {
		t.Errorf("unexpected first course: %+v", first)
	}
	if want := time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC); !result.Courses[1].StartDate.Equal(want) {
		t.Errorf("start date = %v, want %v", result.Courses[1].StartDate, want)
	}
	if result.Courses[1].ContactHours != 16 {
		t.Errorf("hours = %d, want 16", result.Courses[1].ContactHours)
	}
}

func TestParseMissingColumns(t *testing.T) {
	_, err := Parse([][]string{{"ID_Docente", "Profesor", "Periodo"}, {"1", "x", "202425"}})
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("Parse() error = %v, want ErrMissingColumns", err)
	}
	if !strings.Contains(err.Error(), "hr_cont") {
		t.Errorf("error does not name the missing column: %v", err)
	}
}

func TestParseNoData(t *testing.T) {
	header := []string{"ID_Docente", "Profesor", "Periodo", "Materia", "Clave", "NRC", "Fecha_Inicio", "Fecha_Fin", "Hr_Cont"}
	tests := []struct {
		name string
		rows [][]string
	}{
		{"empty", nil},
		{"header only", [][]string{header}},
		{"blank rows", [][]string{header, {"", " "}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.rows); !errors.Is(err, ErrNoData) {
				t.Fatalf("Parse() error = %v, want ErrNoData", err)
			}
		})
	}
}

func TestParseLaterDuplicateWins(t *testing.T) {
	rows := [][]string{
		{"id_docente", "profesor", "periodo", "materia", "clave", "nrc", "fecha_inicio", "fecha_fin", "hr_cont"},
		{"900000001", "Ada Lovelace", "202435", "Physics", "FIS101", "10002", "2024-08-12", "2024-12-06", "40"},
		{"900000001.0", "Ada Lovelace", "202435", "Physics I", "FIS101", "10002.0", "2024-08-12", "2024-12-06", "48"},
	}

	result, err := Parse(rows)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(result.Courses) != 1 || result.Valid != 2 {
		t.Fatalf("courses = %d, valid = %d, want 1 and 2", len(result.Courses), result.Valid)
	}
	if got := result.Courses[0]; got.Subject != "Physics I" || got.ContactHours != 48 {
		t.Errorf("kept %+v, want the later row", got)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "2024-08-12"},
		{in: "2024-08-12 00:00:00"},
		{in: "2024/08/12"},
		{in: "08/12/2024"},
		{in: "8/12/2024"},
		{in: "08-12-24"},
		{in: "45516"},
		{in: "", wantErr: true},
		{in: "12 August", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDate(%q) expected an error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDate(%q) error: %v", tt.in, err)
			}
			if !got.Equal(want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, want)
			}
		})
	}
}

func TestFormatFromFileName(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"historia.xlsx", FormatXLSX, false},
		{"HISTORIA.CSV", FormatCSV, false},
		{"historia.xls", "", true},
		{"historia", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromFileName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromFileName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakeStore struct {
	saved []model.CourseHistory
}

func (f *fakeStore) Upsert(ctx context.Context, tx *gorm.DB, histories []model.CourseHistory) (int64, error) {
	f.saved = append(f.saved, histories...)
	return int64(len(histories)), nil
}

func xlsxBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return buf.Bytes()
}

func TestImportXLSX(t *testing.T) {
	data := xlsxBytes(t, [][]interface{}{
		{"ID_Docente", "Profesor", "Periodo", "Materia", "Clave", "NRC", "Fecha_Inicio", "Fecha_Fin", "Hr_Cont", "Listas_Cruzadas"},
		{"900000001", "Ada Lovelace", "202435", "Physics I", "FIS101", "10002", "2024-08-12", "2024-12-06", 48, "XL1"},
		{"900000001", "Ada Lovelace", "202435", "Physics I Lab", "FIS101L", "10003", "2024-08-12", "2024-12-06", 16, "XL1"},
		{"900000001", "Ada Lovelace", "202425", "", "MAT101", "10001", "2024-01-15", "2024-05-10", 64, ""},
	})

	store := &fakeStore{}
	result, err := New(store, nil).Import(context.Background(), bytes.NewReader(data), "historia.xlsx")
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	if result.Total != 3 || result.Imported != 2 || result.Skipped != 1 {
		t.Fatalf("result = %+v", result)
	}
	if result.Errors[0].Row != 4 {
		t.Errorf("error row = %d, want 4", result.Errors[0].Row)
	}
	if len(store.saved) != 2 || store.saved[1].Subject != "Physics I Lab" {
		t.Errorf("saved = %+v", store.saved)
	}
}

func TestImportRejectsUnknownFormat(t *testing.T) {
	_, err := New(&fakeStore{}, nil).Import(context.Background(), strings.NewReader("x"), "historia.pdf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Import() error = %v, want ErrUnsupportedFormat", err)
	}
}

package facultycert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Warnf(template string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintf(template, args...))
}

func (l *recordingLogger) contains(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range l.warnings {
		if strings.Contains(w, s) {
			return true
		}
	}
	return false
}

func newTestComposer(t *testing.T) (*Composer, *recordingLogger) {
	t.Helper()
	logger := &recordingLogger{}
	cfg := &Config{
		FontMetadataPath: filepath.Join(t.TempDir(), "missing.json"),
		TmpDir:           t.TempDir(),
	}
	return NewComposer(cfg, logger), logger
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 220, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func pageCount(t *testing.T, doc []byte) int {
	t.Helper()
	n, err := GetPageCount(bytes.NewReader(doc))
	if err != nil {
		t.Fatalf("pdfcpu could not read the document: %v", err)
	}
	return n
}

func TestComposerGenerate(t *testing.T) {
	t.Run("preview renders a PDF", func(t *testing.T) {
		c, _ := newTestComposer(t)
		res, err := c.Generate(PreviewRequest(DefaultTemplate(), "https://example.edu/verify/"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
			t.Fatalf("output is not a PDF")
		}
		if len(res.VerificationCode) != VerificationCodeLength {
			t.Errorf("unexpected code %q", res.VerificationCode)
		}
		if got := pageCount(t, res.PDF); got != res.PageCount {
			t.Errorf("expected %d pages, pdfcpu counted %d", res.PageCount, got)
		}
		if res.Options.ProfessorName != "SAMPLE PROFESSOR" {
			t.Errorf("expected professor name from the professor, got %q", res.Options.ProfessorName)
		}
	})

	t.Run("two generations differ in code", func(t *testing.T) {
		c, _ := newTestComposer(t)
		req := PreviewRequest(DefaultTemplate(), "")
		first, err := c.Generate(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := c.Generate(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.VerificationCode == second.VerificationCode {
			t.Errorf("expected distinct codes")
		}
	})

	t.Run("no courses", func(t *testing.T) {
		c, _ := newTestComposer(t)
		req := PreviewRequest(DefaultTemplate(), "")
		req.Courses = nil
		res, err := c.Generate(req)
		if !errors.Is(err, ErrNoCoursesFound) {
			t.Fatalf("expected ErrNoCoursesFound, got %v", err)
		}
		if res != nil {
			t.Errorf("expected no result")
		}
	})

	t.Run("long history spans pages", func(t *testing.T) {
		c, _ := newTestComposer(t)
		req := PreviewRequest(DefaultTemplate(), "")
		start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 80; i++ {
			req.Courses = append(req.Courses, CourseRecord{
				Term:            "202035",
				Subject:         fmt.Sprintf("Seminar %02d", i),
				SubjectCode:     fmt.Sprintf("SEM%03d", i),
				ReferenceNumber: fmt.Sprintf("%05d", 20000+i),
				StartDate:       start,
				EndDate:         start.AddDate(0, 4, 0),
				ContactHours:    32,
			})
		}

		res, err := c.Generate(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PageCount < 2 {
			t.Errorf("expected several pages, got %d", res.PageCount)
		}
		if got := pageCount(t, res.PDF); got != res.PageCount {
			t.Errorf("expected %d pages, pdfcpu counted %d", res.PageCount, got)
		}
	})

	t.Run("unreadable images are skipped", func(t *testing.T) {
		c, logger := newTestComposer(t)
		tmpl := DefaultTemplate()
		tmpl.Logo = []byte("not an image")
		tmpl.Signature = pngBytes(t)

		if _, err := c.Generate(PreviewRequest(tmpl, "")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !logger.contains("Skipping logo image") {
			t.Errorf("expected a warning about the logo, got %v", logger.warnings)
		}
		if logger.contains("Skipping signature image") {
			t.Errorf("did not expect a warning about the signature")
		}
	})

	t.Run("background on every page", func(t *testing.T) {
		c, logger := newTestComposer(t)
		tmpl := DefaultTemplate()
		tmpl.LayoutType = LayoutFormal
		tmpl.Background = pngBytes(t)

		res, err := c.Generate(PreviewRequest(tmpl, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if logger.contains("Skipping background image") {
			t.Errorf("unexpected background warning: %v", logger.warnings)
		}
		if got := pageCount(t, res.PDF); got != res.PageCount {
			t.Errorf("expected %d pages, pdfcpu counted %d", res.PageCount, got)
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		c, _ := newTestComposer(t)
		req := PreviewRequest(DefaultTemplate(), "")
		req.Options.Fields = []Field{"salary"}
		if _, err := c.Generate(req); err == nil {
			t.Errorf("expected validation error")
		}
	})
}

func TestCellText(t *testing.T) {
	rows := GroupCourses([]CourseRecord{
		{Term: "202525", Subject: "Physics I", SubjectCode: "F1", ReferenceNumber: "A1", ContactHours: 3, CrossListCode: "X",
			StartDate: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{Term: "202525", Subject: "Physics I Lab", SubjectCode: "F2", ReferenceNumber: "A2", ContactHours: 1, CrossListCode: "X"},
	})

	tests := map[Field]string{
		FieldTerm:            "Spring 2025",
		FieldSubject:         "Physics I\nPhysics I Lab",
		FieldSubjectCode:     "F1\nF2",
		FieldReferenceNumber: "A1\nA2",
		FieldStartDate:       "13/01/2025",
		FieldHours:           "4 (2)",
	}
	for field, expected := range tests {
		t.Run(string(field), func(t *testing.T) {
			if got := cellText(rows[0], field); got != expected {
				t.Errorf("expected %q, got %q", expected, got)
			}
		})
	}
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths(AllFields, inches(6.5))
	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > inches(6.5)+0.001 {
		t.Errorf("table wider than the page: %.2fmm", total)
	}

	narrow := columnWidths([]Field{FieldSubject}, inches(6.5))
	if narrow[0] != inches(2.0) {
		t.Errorf("expected unscaled width, got %.2f", narrow[0])
	}
}

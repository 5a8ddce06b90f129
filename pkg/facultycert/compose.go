package facultycert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/tdewolff/canvas"
)

// Logger receives the warnings of best-effort steps. *zap.SugaredLogger satisfies it.
type Logger interface {
	Warnf(template string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...interface{}) {}

const qrCodePixels = 256

type Composer struct {
	cfg    *Config
	fonts  *FontLoader
	logger Logger
	now    func() time.Time
}

func NewComposer(cfg *Config, logger Logger) *Composer {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if logger == nil {
		logger = nopLogger{}
	}

	return &Composer{
		cfg:    cfg,
		fonts:  NewFontLoader(cfg, logger),
		logger: logger,
		now:    time.Now,
	}
}

type Request struct {
	Professor Professor
	Courses   []CourseRecord
	Template  Template
	Options   Options
}

type Result struct {
	PDF              []byte
	VerificationCode string
	PageCount        int
	IssuedAt         time.Time
	// Options after defaults, as they were rendered
	Options Options
}

// Document is everything Render needs, already filtered and grouped.
type Document struct {
	ProfessorName    string
	History          []GroupedCourseRow
	Current          []GroupedCourseRow
	Template         Template
	Options          Options
	VerificationCode string
	IssuedAt         time.Time
}

// Generate filters, groups and renders the courses of one professor and mints the
// verification code printed on the document.
func (c *Composer) Generate(req Request) (*Result, error) {
	if len(req.Courses) == 0 {
		return nil, ErrNoCoursesFound
	}
	if req.Professor == nil {
		return nil, errors.New("professor is required")
	}

	opts := req.Options
	if strings.TrimSpace(opts.ProfessorID) == "" {
		opts.ProfessorID = req.Professor.ExternalProfessorID()
	}
	if strings.TrimSpace(opts.ProfessorName) == "" {
		opts.ProfessorName = req.Professor.DisplayName()
	}
	opts.ApplyDefaults(req.Template.OptionDefaults())
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	courses := FilterByTerms(req.Courses, opts.TermFilter)
	past, current := SplitCurrentTerm(courses, opts.CurrentTerm)

	issuedAt := c.now()
	code := NewVerificationCode(opts.ProfessorName, issuedAt)

	doc, pages, err := c.Render(Document{
		ProfessorName:    opts.ProfessorName,
		History:          GroupCourses(past),
		Current:          GroupCourses(current),
		Template:         req.Template,
		Options:          opts,
		VerificationCode: code,
		IssuedAt:         issuedAt,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		PDF:              doc,
		VerificationCode: code,
		PageCount:        pages,
		IssuedAt:         issuedAt,
		Options:          opts,
	}, nil
}

type faceSet struct {
	title       *canvas.FontFace
	address     *canvas.FontFace
	heading     *canvas.FontFace
	body        *canvas.FontFace
	bold        *canvas.FontFace
	small       *canvas.FontFace
	tableHeader *canvas.FontFace
	tableBody   *canvas.FontFace
}

func newFaceSet(family *canvas.FontFamily, primary color.RGBA) faceSet {
	face := func(size float64, col color.Color, style canvas.FontStyle) *canvas.FontFace {
		return family.Face(size, col, style, canvas.FontNormal)
	}

	return faceSet{
		title:       face(13, primary, canvas.FontBold),
		address:     face(9, canvas.Black, canvas.FontRegular),
		heading:     face(12, primary, canvas.FontBold),
		body:        face(11, canvas.Black, canvas.FontRegular),
		bold:        face(11, canvas.Black, canvas.FontBold),
		small:       face(8, canvas.Dimgray, canvas.FontRegular),
		tableHeader: face(9, canvas.White, canvas.FontBold),
		tableBody:   face(8.5, canvas.Black, canvas.FontRegular),
	}
}

// Render lays the document out and returns the PDF with its page count.
func (c *Composer) Render(doc Document) ([]byte, int, error) {
	tmpl := doc.Template.withFallbacks()
	primary := parseHexColor(tmpl.PrimaryColor, canvas.Black)
	secondary := parseHexColor(tmpl.SecondaryColor, canvas.Lightgray)

	faces := newFaceSet(c.fonts.LoadFamily(tmpl.FontFamily), primary)
	f := newFlow(pageDecoration(tmpl.LayoutType, primary))

	date := doc.IssuedAt.Format("January 2, 2006")
	vars := map[string]string{
		"professor_name":  doc.ProfessorName,
		"department_name": tmpl.DepartmentName,
		"university_name": tmpl.UniversityName,
		"secretary_name":  tmpl.SecretaryName,
		"secretary_title": tmpl.SecretaryTitle,
		"current_date":    date,
		"recipient":       doc.Options.Recipient,
	}

	// letterhead
	f.paragraph(faces.title, tmpl.DepartmentName, canvas.Center, 1)
	f.paragraph(faces.title, tmpl.UniversityName, canvas.Center, 1)
	if tmpl.LayoutType != LayoutMinimal {
		f.paragraph(faces.address, tmpl.Address, canvas.Center, 2)
		if logo, ok := c.decodeAsset("logo", tmpl.Logo); ok {
			f.image(logo, inches(1.5), inches(1.0), canvas.Center)
		}
	}
	f.space(inches(0.4))

	f.paragraph(faces.heading, strings.ToUpper(tmpl.TitleText), canvas.Center, inches(0.3))
	f.paragraph(faces.bold, doc.Options.Recipient, canvas.Left, inches(0.2))
	f.paragraph(faces.body, expandPlaceholders(tmpl.IntroText, vars), canvas.Justify, inches(0.15))
	f.paragraph(faces.heading, doc.ProfessorName, canvas.Center, inches(0.2))

	style := tableStyle{
		header:      faces.tableHeader,
		body:        faces.tableBody,
		headerFill:  primary,
		groupedFill: secondary,
		border:      canvas.Gray,
	}
	if tmpl.IncludeCourseTable {
		if len(doc.History) > 0 {
			f.paragraph(faces.body, expandPlaceholders(tmpl.CoursesIntro, vars), canvas.Left, 2)
			f.table(doc.Options.Fields, doc.History, style)
			f.space(inches(0.2))
		}
		if len(doc.Current) > 0 {
			f.paragraph(faces.body, expandPlaceholders(tmpl.CurrentCoursesIntro, vars), canvas.Left, 2)
			f.table(doc.Options.Fields, doc.Current, style)
			f.space(inches(0.2))
		}
	}

	f.paragraph(faces.body, expandPlaceholders(tmpl.ClosingText, vars), canvas.Justify, inches(0.25))
	f.paragraph(faces.bold, tmpl.SignOff, canvas.Center, 2)
	f.paragraph(faces.body, tmpl.UniversityMotto, canvas.Center, 2)
	f.paragraph(faces.body, placeAndDate(tmpl.Place, date), canvas.Center, inches(0.3))

	if signature, ok := c.decodeAsset("signature", tmpl.Signature); ok {
		f.image(signature, inches(2), inches(0.75), canvas.Center)
	} else {
		f.space(inches(0.5))
	}
	f.paragraph(faces.bold, tmpl.SecretaryName, canvas.Center, 1)
	f.paragraph(faces.body, tmpl.SecretaryTitle, canvas.Center, inches(0.2))

	if doc.Options.QREnabled() {
		c.verificationBlock(f, faces, tmpl, doc)
	}

	f.finish(faces.small)

	var buf bytes.Buffer
	if err := f.writePDF(&buf); err != nil {
		return nil, 0, fmt.Errorf("failed to write PDF: %w", err)
	}
	out := buf.Bytes()

	if len(tmpl.Background) > 0 {
		stamped, err := applyBackground(c.cfg.TmpDir, out, tmpl.Background)
		if err != nil {
			c.logger.Warnf("Skipping background image: %v", err)
		} else {
			out = stamped
		}
	}

	return out, len(f.pages), nil
}

func (c *Composer) verificationBlock(f *flow, faces faceSet, tmpl Template, doc Document) {
	link := doc.Options.VerificationLink(doc.VerificationCode)
	qr, err := QRCodeImage(link, qrCodePixels)
	if err != nil {
		c.logger.Warnf("Skipping QR code: %v", err)
		return
	}

	// keep the code and its caption together
	f.ensure(inches(1.2) + inches(0.6))
	f.image(qr, inches(1.2), inches(1.2), canvas.Right)
	f.space(2)
	f.paragraph(faces.small, tmpl.VerificationText, canvas.Center, 1)
	f.paragraph(faces.small, doc.Options.VerificationURL, canvas.Center, 1)
	f.paragraph(faces.small, "Verification code: "+doc.VerificationCode, canvas.Center, 0)
}

func (c *Composer) decodeAsset(name string, data []byte) (image.Image, bool) {
	if len(data) == 0 {
		return nil, false
	}

	img, err := decodeImage(data)
	if err != nil {
		c.logger.Warnf("Skipping %s image: %v", name, err)
		return nil, false
	}

	return img, true
}

func placeAndDate(place, date string) string {
	if strings.TrimSpace(place) == "" {
		return date
	}
	return place + ", " + date
}

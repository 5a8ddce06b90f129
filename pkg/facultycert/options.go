package facultycert

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field is a column of the course table. The values double as the wire names.
type Field string

const (
	FieldTerm            Field = "periodo"
	FieldSubject         Field = "materia"
	FieldSubjectCode     Field = "clave"
	FieldReferenceNumber Field = "nrc"
	FieldStartDate       Field = "fecha_inicio"
	FieldEndDate         Field = "fecha_fin"
	FieldHours           Field = "hr_cont"
)

// AllFields is the default column order.
var AllFields = []Field{
	FieldTerm,
	FieldSubject,
	FieldSubjectCode,
	FieldReferenceNumber,
	FieldStartDate,
	FieldEndDate,
	FieldHours,
}

func (f Field) Label() string {
	switch f {
	case FieldTerm:
		return "Term"
	case FieldSubject:
		return "Subject"
	case FieldSubjectCode:
		return "Code"
	case FieldReferenceNumber:
		return "CRN"
	case FieldStartDate:
		return "Start Date"
	case FieldEndDate:
		return "End Date"
	case FieldHours:
		return "Hours"
	default:
		return string(f)
	}
}

func (f Field) Valid() bool {
	return slices.Contains(AllFields, f)
}

const DefaultRecipient = "TO WHOM IT MAY CONCERN"

// Options are the per-call knobs of a certificate generation. Decode them with DecodeOptions
// or fill them by hand and call ApplyDefaults then Validate.
type Options struct {
	ProfessorID     string   `json:"id_docente" validate:"required,max=9"`
	ProfessorName   string   `json:"professor_name,omitempty" validate:"max=200"`
	TemplateID      string   `json:"template_id,omitempty"`
	Recipient       string   `json:"destinatario" validate:"max=300"`
	IncludeQR       *bool    `json:"incluir_qr,omitempty"`
	Fields          []Field  `json:"campos" validate:"unique,dive,oneof=periodo materia clave nrc fecha_inicio fecha_fin hr_cont"`
	TermFilter      []string `json:"periodos_filtro,omitempty" validate:"dive,len=6,numeric"`
	CurrentTerm     string   `json:"periodo_actual,omitempty" validate:"omitempty,len=6,numeric"`
	VerificationURL string   `json:"url_verificacion,omitempty" validate:"omitempty,url"`
}

// OptionDefaults are the values used for options a caller left empty. Templates and the
// application config provide them.
type OptionDefaults struct {
	Recipient       string
	IncludeQR       bool
	Fields          []Field
	VerificationURL string
}

var validate = validator.New()

// ApplyDefaults fills the empty options. It is idempotent.
func (o *Options) ApplyDefaults(d OptionDefaults) {
	o.ProfessorID = strings.TrimSpace(o.ProfessorID)
	o.ProfessorName = strings.TrimSpace(o.ProfessorName)

	o.Recipient = strings.TrimSpace(o.Recipient)
	if o.Recipient == "" {
		o.Recipient = strings.TrimSpace(d.Recipient)
	}
	if o.Recipient == "" {
		o.Recipient = DefaultRecipient
	}

	if o.IncludeQR == nil {
		includeQR := d.IncludeQR
		o.IncludeQR = &includeQR
	}

	if len(o.Fields) == 0 {
		if len(d.Fields) > 0 {
			o.Fields = slices.Clone(d.Fields)
		} else {
			o.Fields = slices.Clone(AllFields)
		}
	}

	terms := make([]string, 0, len(o.TermFilter))
	for _, t := range o.TermFilter {
		if t = strings.TrimSpace(t); t != "" && !slices.Contains(terms, t) {
			terms = append(terms, t)
		}
	}
	o.TermFilter = terms
	o.CurrentTerm = strings.TrimSpace(o.CurrentTerm)

	if o.VerificationURL == "" {
		o.VerificationURL = d.VerificationURL
	}
}

func (o Options) Validate() error {
	return validate.Struct(o)
}

// QREnabled treats unset as enabled.
func (o Options) QREnabled() bool {
	return o.IncludeQR == nil || *o.IncludeQR
}

// VerificationLink is the URL encoded in the QR block.
func (o Options) VerificationLink(code string) string {
	return o.VerificationURL + code
}

// DecodeOptions parses the JSON wire form, applies defaults and validates the result.
func DecodeOptions(data []byte, defaults OptionDefaults) (Options, error) {
	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}

	opts.ApplyDefaults(defaults)
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}

	return opts, nil
}

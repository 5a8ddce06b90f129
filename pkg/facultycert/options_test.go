package facultycert

import (
	"reflect"
	"testing"
)

func TestDecodeOptions(t *testing.T) {
	defaults := OptionDefaults{
		IncludeQR:       true,
		VerificationURL: "https://example.edu/verify/",
	}

	t.Run("defaults", func(t *testing.T) {
		opts, err := DecodeOptions([]byte(`{"id_docente":" 123 "}`), defaults)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.ProfessorID != "123" {
			t.Errorf("expected trimmed professor id, got %q", opts.ProfessorID)
		}
		if opts.Recipient != DefaultRecipient {
			t.Errorf("expected default recipient, got %q", opts.Recipient)
		}
		if !opts.QREnabled() {
			t.Errorf("expected QR enabled by default")
		}
		if !reflect.DeepEqual(opts.Fields, AllFields) {
			t.Errorf("expected all fields, got %v", opts.Fields)
		}
		if opts.VerificationLink("abc") != "https://example.edu/verify/abc" {
			t.Errorf("unexpected link %q", opts.VerificationLink("abc"))
		}
	})

	t.Run("explicit values win", func(t *testing.T) {
		opts, err := DecodeOptions([]byte(`{
			"id_docente": "123",
			"destinatario": "Human Resources",
			"incluir_qr": false,
			"campos": ["materia", "hr_cont"],
			"periodos_filtro": ["202525", "202525", "202535"],
			"periodo_actual": "202535"
		}`), defaults)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.Recipient != "Human Resources" || opts.QREnabled() {
			t.Errorf("unexpected options %+v", opts)
		}
		if !reflect.DeepEqual(opts.Fields, []Field{FieldSubject, FieldHours}) {
			t.Errorf("unexpected fields %v", opts.Fields)
		}
		if !reflect.DeepEqual(opts.TermFilter, []string{"202525", "202535"}) {
			t.Errorf("expected deduplicated filter, got %v", opts.TermFilter)
		}
	})

	invalid := map[string]string{
		"missing professor":  `{}`,
		"unknown field":      `{"id_docente":"1","campos":["salary"]}`,
		"duplicate field":    `{"id_docente":"1","campos":["materia","materia"]}`,
		"short term":         `{"id_docente":"1","periodos_filtro":["2025"]}`,
		"non numeric term":   `{"id_docente":"1","periodo_actual":"2025ab"}`,
		"malformed url":      `{"id_docente":"1","url_verificacion":"not a url"}`,
		"malformed document": `{"id_docente":`,
	}
	for name, input := range invalid {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeOptions([]byte(input), defaults); err == nil {
				t.Errorf("expected error for %s", input)
			}
		})
	}
}

func TestApplyDefaultsIsIdempotent(t *testing.T) {
	d := DefaultTemplate().OptionDefaults()
	opts := Options{ProfessorID: "1"}
	opts.ApplyDefaults(d)
	first := opts
	opts.ApplyDefaults(OptionDefaults{Recipient: "Someone else", Fields: []Field{FieldTerm}})

	if opts.Recipient != first.Recipient || !reflect.DeepEqual(opts.Fields, first.Fields) {
		t.Errorf("second ApplyDefaults changed options: %+v vs %+v", first, opts)
	}
}

func TestExpandPlaceholders(t *testing.T) {
	got := expandPlaceholders("{professor_name} taught at {university_name} {unknown}", map[string]string{
		"professor_name":  "Jane Doe",
		"university_name": "State University",
	})
	if got != "Jane Doe taught at State University {unknown}" {
		t.Errorf("unexpected expansion %q", got)
	}
}

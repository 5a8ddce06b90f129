package facultycert

import (
	"slices"
	"strings"
)

type LayoutType string

const (
	LayoutStandard LayoutType = "standard"
	LayoutFormal   LayoutType = "formal"
	LayoutModern   LayoutType = "modern"
	LayoutMinimal  LayoutType = "minimal"
)

// Template is the renderer view of a certificate template. Image fields hold raw encoded
// bytes and may be empty.
type Template struct {
	Name       string
	LayoutType LayoutType

	DepartmentName string
	UniversityName string
	Address        string

	TitleText           string
	RecipientLine       string
	IntroText           string
	CoursesIntro        string
	CurrentCoursesIntro string
	ClosingText         string
	SignOff             string

	SecretaryName    string
	SecretaryTitle   string
	UniversityMotto  string
	Place            string
	VerificationText string

	PrimaryColor   string
	SecondaryColor string
	FontFamily     string

	IncludeCourseTable bool
	TableFields        []Field
	IncludeQRByDefault bool

	Logo       []byte
	Signature  []byte
	Background []byte
}

// DefaultTemplate is used for previews and as the fallback for every empty text field.
func DefaultTemplate() Template {
	return Template{
		Name:                "Default",
		LayoutType:          LayoutStandard,
		DepartmentName:      "OFFICE OF ACADEMIC AFFAIRS",
		UniversityName:      "UNIVERSITY",
		Address:             "",
		TitleText:           "CERTIFICATE OF ACADEMIC LOAD",
		RecipientLine:       DefaultRecipient,
		IntroText:           "The undersigned, {secretary_title} of {university_name}, certifies that the professor named below has taught the following courses at this institution:",
		CoursesIntro:        "Courses taught:",
		CurrentCoursesIntro: "Currently teaching:",
		ClosingText:         "This certificate is issued at the request of the interested party for whatever purposes they deem appropriate.",
		SignOff:             "SINCERELY",
		SecretaryName:       "",
		SecretaryTitle:      "Academic Secretary",
		UniversityMotto:     "",
		Place:               "",
		VerificationText:    "Scan the QR code or visit the address below to verify this certificate.",
		PrimaryColor:        "#1F3A5F",
		SecondaryColor:      "#E8EEF5",
		IncludeCourseTable:  true,
		TableFields:         slices.Clone(AllFields),
		IncludeQRByDefault:  true,
	}
}

// OptionDefaults returns the option defaults the template implies.
func (t Template) OptionDefaults() OptionDefaults {
	return OptionDefaults{
		Recipient: t.RecipientLine,
		IncludeQR: t.IncludeQRByDefault,
		Fields:    t.TableFields,
	}
}

func (t Template) withFallbacks() Template {
	d := DefaultTemplate()
	fill := func(v *string, fallback string) {
		if strings.TrimSpace(*v) == "" {
			*v = fallback
		}
	}

	fill(&t.DepartmentName, d.DepartmentName)
	fill(&t.UniversityName, d.UniversityName)
	fill(&t.TitleText, d.TitleText)
	fill(&t.IntroText, d.IntroText)
	fill(&t.CoursesIntro, d.CoursesIntro)
	fill(&t.CurrentCoursesIntro, d.CurrentCoursesIntro)
	fill(&t.ClosingText, d.ClosingText)
	fill(&t.SignOff, d.SignOff)
	fill(&t.SecretaryTitle, d.SecretaryTitle)
	fill(&t.VerificationText, d.VerificationText)
	fill(&t.PrimaryColor, d.PrimaryColor)
	fill(&t.SecondaryColor, d.SecondaryColor)

	if t.LayoutType == "" {
		t.LayoutType = LayoutStandard
	}

	return t
}

// expandPlaceholders replaces every {name} in text with vars[name]. Unknown placeholders are
// left as they are.
func expandPlaceholders(text string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

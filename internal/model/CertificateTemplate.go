package model

import (
	"encoding/json"

	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"gorm.io/datatypes"
)

// CertificateTemplate holds the wording, colors and images of a certificate. At most one
// template is the default.
type CertificateTemplate struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	LayoutType  string `gorm:"type:varchar(20);not null;default:'standard'" json:"layoutType"`

	DepartmentName string `gorm:"type:varchar(200);not null;default:''" json:"departmentName"`
	UniversityName string `gorm:"type:varchar(200);not null;default:''" json:"universityName"`
	Address        string `gorm:"type:text;not null;default:''" json:"address"`

	TitleText           string `gorm:"type:varchar(300);not null;default:''" json:"titleText"`
	RecipientLine       string `gorm:"type:varchar(300);not null;default:''" json:"recipientLine"`
	IntroText           string `gorm:"type:text;not null;default:''" json:"introText"`
	CoursesIntro        string `gorm:"type:text;not null;default:''" json:"coursesIntro"`
	CurrentCoursesIntro string `gorm:"type:text;not null;default:''" json:"currentCoursesIntro"`
	ClosingText         string `gorm:"type:text;not null;default:''" json:"closingText"`
	SignOff             string `gorm:"type:varchar(100);not null;default:''" json:"signOff"`

	SecretaryName    string `gorm:"type:varchar(200);not null;default:''" json:"secretaryName"`
	SecretaryTitle   string `gorm:"type:varchar(200);not null;default:''" json:"secretaryTitle"`
	UniversityMotto  string `gorm:"type:varchar(300);not null;default:''" json:"universityMotto"`
	Place            string `gorm:"type:varchar(200);not null;default:''" json:"place"`
	VerificationText string `gorm:"type:text;not null;default:''" json:"verificationText"`

	PrimaryColor   string `gorm:"type:varchar(7);not null;default:'#1F3A5F'" json:"primaryColor"`
	SecondaryColor string `gorm:"type:varchar(7);not null;default:'#E8EEF5'" json:"secondaryColor"`
	FontFamily     string `gorm:"type:varchar(100);not null;default:''" json:"fontFamily"`

	IncludeCourseTable bool `gorm:"not null" json:"includeCourseTable"`
	// JSON array of field names, empty means every field
	TableFields        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"tableFields"`
	IncludeQRByDefault bool           `gorm:"not null" json:"includeQrByDefault"`

	LogoFileID       *string `gorm:"type:text;default:null" json:"logoFileId"`
	LogoFile         *File   `gorm:"foreignKey:LogoFileID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"logoFile,omitempty"`
	SignatureFileID  *string `gorm:"type:text;default:null" json:"signatureFileId"`
	SignatureFile    *File   `gorm:"foreignKey:SignatureFileID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"signatureFile,omitempty"`
	BackgroundFileID *string `gorm:"type:text;default:null" json:"backgroundFileId"`
	BackgroundFile   *File   `gorm:"foreignKey:BackgroundFileID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"backgroundFile,omitempty"`

	IsActive  bool `gorm:"not null;index" json:"isActive"`
	IsDefault bool `gorm:"not null;default:false" json:"isDefault"`

	CreatedByID *string `gorm:"type:text;default:null" json:"createdById"`
	CreatedBy   *User   `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

func (t CertificateTemplate) TableName() string {
	return "certificate_templates"
}

func (t CertificateTemplate) Fields() []facultycert.Field {
	var names []string
	if len(t.TableFields) > 0 {
		_ = json.Unmarshal(t.TableFields, &names)
	}

	fields := make([]facultycert.Field, 0, len(names))
	for _, n := range names {
		if f := facultycert.Field(n); f.Valid() {
			fields = append(fields, f)
		}
	}
	return fields
}

func FieldsToJSON(fields []facultycert.Field) datatypes.JSON {
	if fields == nil {
		fields = []facultycert.Field{}
	}
	data, _ := json.Marshal(fields)
	return datatypes.JSON(data)
}

// ToTemplate converts the record for rendering. Images are attached by the caller.
func (t CertificateTemplate) ToTemplate() facultycert.Template {
	return facultycert.Template{
		Name:                t.Name,
		LayoutType:          facultycert.LayoutType(t.LayoutType),
		DepartmentName:      t.DepartmentName,
		UniversityName:      t.UniversityName,
		Address:             t.Address,
		TitleText:           t.TitleText,
		RecipientLine:       t.RecipientLine,
		IntroText:           t.IntroText,
		CoursesIntro:        t.CoursesIntro,
		CurrentCoursesIntro: t.CurrentCoursesIntro,
		ClosingText:         t.ClosingText,
		SignOff:             t.SignOff,
		SecretaryName:       t.SecretaryName,
		SecretaryTitle:      t.SecretaryTitle,
		UniversityMotto:     t.UniversityMotto,
		Place:               t.Place,
		VerificationText:    t.VerificationText,
		PrimaryColor:        t.PrimaryColor,
		SecondaryColor:      t.SecondaryColor,
		FontFamily:          t.FontFamily,
		IncludeCourseTable:  t.IncludeCourseTable,
		TableFields:         t.Fields(),
		IncludeQRByDefault:  t.IncludeQRByDefault,
	}
}

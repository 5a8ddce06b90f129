package model

import (
	"encoding/json"
	"time"

	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"gorm.io/datatypes"
)

// GeneratedCertificate is an issued document. Regeneration replaces the file and the
// verification code in place.
type GeneratedCertificate struct {
	BaseModel
	VerificationCode string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"verificationCode"`
	ProfessorID      string    `gorm:"type:varchar(9);not null;index" json:"professorId"`
	ProfessorName    string    `gorm:"type:varchar(200);not null" json:"professorName"`
	PageCount        int       `gorm:"not null;default:0" json:"pageCount"`
	GeneratedAt      time.Time `gorm:"type:timestamptz;not null" json:"generatedAt"`
	// Options the document was rendered with
	Metadata datatypes.JSON `gorm:"type:jsonb;not null" json:"metadata"`

	ProfessorUserID *string `gorm:"type:text;default:null;index" json:"professorUserId"`
	ProfessorUser   *User   `gorm:"foreignKey:ProfessorUserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	TemplateID *string              `gorm:"type:text;default:null;index" json:"templateId"`
	Template   *CertificateTemplate `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"template,omitempty"`

	FileID string `gorm:"type:text;not null" json:"fileId"`
	File   File   `gorm:"foreignKey:FileID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"file"`

	GeneratedByID *string `gorm:"type:text;default:null" json:"generatedById"`
	GeneratedBy   *User   `gorm:"foreignKey:GeneratedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

func (gc GeneratedCertificate) TableName() string {
	return "generated_certificates"
}

func (gc GeneratedCertificate) Options() (facultycert.Options, error) {
	var opts facultycert.Options
	err := json.Unmarshal(gc.Metadata, &opts)
	return opts, err
}

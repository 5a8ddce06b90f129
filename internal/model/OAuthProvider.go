package model

// OAuthProvider links a user to an external identity, e.g. a Google account.
type OAuthProvider struct {
	BaseModel
	ProviderType   string `gorm:"type:varchar(50);not null;" json:"providerType" form:"providerType" binding:"required"`
	ProviderUserId string `gorm:"unique;not null;type:text" json:"providerUserId" form:"providerUserId" binding:"required"`
	ProviderEmail  string `gorm:"type:citext;not null;default:''" json:"providerEmail" form:"providerEmail"`
	AccessToken    string `gorm:"type:text;default:null" json:"-"`
	RefreshToken   string `gorm:"type:text;default:null" json:"-"`
	UserID         string `gorm:"type:text;not null;index" json:"userId" form:"userId"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user" form:"user"`
}

func (op OAuthProvider) TableName() string {
	return "oauth_providers"
}

package model

// All lists every model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Token{},
		&OAuthProvider{},
		&File{},
		&CourseHistory{},
		&CertificateTemplate{},
		&GeneratedCertificate{},
		&News{},
		&Event{},
		&Schedule{},
		&SupportRequest{},
		&Survey{},
		&SurveyQuestion{},
		&SurveyOption{},
		&SurveyResponse{},
		&SurveyAnswer{},
	}
}

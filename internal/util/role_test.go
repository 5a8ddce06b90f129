package util

import (
	"testing"

	"github.com/SeakMengs/FacultyCert/internal/constant"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name        string
		userType    constant.UserType
		permissions []constant.Permission
		expected    bool
	}{
		{"admin generates for anyone", constant.UserTypeAdministrator, []constant.Permission{constant.CertificateGenerateAny}, true},
		{"professor generates own", constant.UserTypeProfessor, []constant.Permission{constant.CertificateGenerateOwn}, true},
		{"professor cannot generate for others", constant.UserTypeProfessor, []constant.Permission{constant.CertificateGenerateAny}, false},
		{"all permissions required", constant.UserTypeProfessor, []constant.Permission{constant.EventManage, constant.NewsManage}, false},
		{"student reads schedules", constant.UserTypeStudent, []constant.Permission{constant.ScheduleReadAny}, true},
		{"unknown user type", constant.UserType("guest"), []constant.Permission{constant.ScheduleReadAny}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(tt.userType, tt.permissions...); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

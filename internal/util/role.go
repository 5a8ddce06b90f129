package util

import (
	"slices"

	"github.com/SeakMengs/FacultyCert/internal/constant"
)

var userTypePermissions = map[constant.UserType][]constant.Permission{
	constant.UserTypeAdministrator: {
		constant.CertificateGenerateAny,
		constant.CertificateGenerateOwn,
		constant.CertificateReadAny,
		constant.CertificateRegenerate,
		constant.TemplateManage,
		constant.CourseHistoryImport,
		constant.CourseHistoryReadAny,
		constant.UserManage,
		constant.NewsManage,
		constant.EventManage,
		constant.ScheduleManage,
		constant.ScheduleReadAny,
		constant.SupportRequestManage,
		constant.SurveyManage,
	},
	constant.UserTypeProfessor: {
		constant.CertificateGenerateOwn,
		constant.EventManage,
	},
	constant.UserTypeStudent: {
		constant.ScheduleReadAny,
	},
	constant.UserTypeAlumni: {},
}

// checks if all permissions are granted to the user type.
func HasPermission(userType constant.UserType, permissions ...constant.Permission) bool {
	granted := userTypePermissions[userType]
	for _, permission := range permissions {
		if !slices.Contains(granted, permission) {
			return false
		}
	}
	return true
}

func HasUserType(userType constant.UserType, allowed ...constant.UserType) bool {
	return slices.Contains(allowed, userType)
}

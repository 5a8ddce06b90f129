package constant

type UserType string

const (
	UserTypeAdministrator UserType = "administrator"
	UserTypeProfessor     UserType = "professor"
	UserTypeAlumni        UserType = "alumni"
	UserTypeStudent       UserType = "student"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdministrator, UserTypeProfessor, UserTypeAlumni, UserTypeStudent:
		return true
	}
	return false
}

type Permission string

const (
	CertificateGenerateAny Permission = "certificate:generate:any"
	CertificateGenerateOwn Permission = "certificate:generate:own"
	CertificateReadAny     Permission = "certificate:read:any"
	CertificateRegenerate  Permission = "certificate:regenerate"
	TemplateManage         Permission = "template:manage"
	CourseHistoryImport    Permission = "course_history:import"
	CourseHistoryReadAny   Permission = "course_history:read:any"
	UserManage             Permission = "user:manage"
	NewsManage             Permission = "news:manage"
	EventManage            Permission = "event:manage"
	ScheduleManage         Permission = "schedule:manage"
	ScheduleReadAny        Permission = "schedule:read:any"
	SupportRequestManage   Permission = "support_request:manage"
	SurveyManage           Permission = "survey:manage"
)

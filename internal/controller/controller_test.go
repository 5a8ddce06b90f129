package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	appcontext "github.com/SeakMengs/FacultyCert/internal/app_context"
	"github.com/SeakMengs/FacultyCert/internal/auth"
	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/issuer"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var registerOnce sync.Once

func newTestBase(t *testing.T) *baseController {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			util.RegisterValidations(v)
		}
	})
	return newBaseController(&appcontext.Application{Logger: zap.NewNop().Sugar()})
}

func withUser(user *auth.JWTPayload) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user != nil {
			ctx.Set("user", *user)
		}
		ctx.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetAuthUser(t *testing.T) {
	bc := newTestBase(t)
	want := auth.JWTPayload{ID: "u1", Email: "prof@example.edu", UserType: constant.UserTypeProfessor, ProfessorID: "P001"}

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "payload value", value: want},
		{name: "decoded claims map", value: map[string]any{"id": "u1", "email": "prof@example.edu", "userType": "professor", "professorId": "P001"}},
		{name: "missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			if tt.value != nil {
				ctx.Set("user", tt.value)
			}

			got, err := bc.getAuthUser(ctx)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if bc.getOptionalAuthUser(ctx) != nil {
					t.Error("optional user should be nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != want.ID || got.UserType != want.UserType || got.ProfessorID != want.ProfessorID {
				t.Errorf("got %+v, want %+v", *got, want)
			}
		})
	}
}

func TestRespondRepoError(t *testing.T) {
	bc := newTestBase(t)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: gorm.ErrRecordNotFound, want: http.StatusNotFound},
		{name: "other", err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			bc.respondRepoError(ctx, tt.err, "Missing", "Failed")
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestClockRange(t *testing.T) {
	tests := []struct {
		start, end         string
		wantStart, wantEnd string
		wantErr            bool
	}{
		{start: "08:00", end: "09:30", wantStart: "08:00", wantEnd: "09:30"},
		{start: "13:00:00", end: "14:15:00", wantStart: "13:00", wantEnd: "14:15"},
		{start: "10:00", end: "10:00", wantErr: true},
		{start: "11:00", end: "09:00", wantErr: true},
		{start: "25:00", end: "26:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			start, end, err := clockRange(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("got %s-%s, want %s-%s", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestToQuestions(t *testing.T) {
	tests := []struct {
		name    string
		forms   []surveyQuestionForm
		wantErr bool
	}{
		{
			name: "mixed types",
			forms: []surveyQuestionForm{
				{Text: "Comments", QuestionType: constant.SurveyQuestionText},
				{Text: "Rate it", QuestionType: constant.SurveyQuestionRating, Required: true},
				{Text: "Pick one", QuestionType: constant.SurveyQuestionSingleChoice, Options: []string{"A", "B"}},
			},
		},
		{
			name:    "choice with one option",
			forms:   []surveyQuestionForm{{Text: "Pick", QuestionType: constant.SurveyQuestionMultipleChoice, Options: []string{"A"}}},
			wantErr: true,
		},
		{
			name:    "rating with options",
			forms:   []surveyQuestionForm{{Text: "Rate", QuestionType: constant.SurveyQuestionRating, Options: []string{"1", "2"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := toQuestions(tt.forms)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			for i, q := range questions {
				if q.Position != i {
					t.Errorf("question %d has position %d", i, q.Position)
				}
				for j, o := range q.Options {
					if o.Position != j {
						t.Errorf("option %d of question %d has position %d", j, i, o.Position)
					}
				}
			}
		})
	}
}

func TestVisibleTo(t *testing.T) {
	student := &auth.JWTPayload{ID: "s1", UserType: constant.UserTypeStudent}

	tests := []struct {
		name   string
		survey model.Survey
		want   bool
	}{
		{name: "everyone", survey: model.Survey{IsActive: true, TargetAudience: constant.SurveyAudienceAll}, want: true},
		{name: "students", survey: model.Survey{IsActive: true, TargetAudience: "student"}, want: true},
		{name: "professors only", survey: model.Survey{IsActive: true, TargetAudience: "professor"}},
		{name: "inactive", survey: model.Survey{TargetAudience: constant.SurveyAudienceAll}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visibleTo(&tt.survey, student); got != tt.want {
				t.Errorf("visibleTo = %t, want %t", got, tt.want)
			}
		})
	}
}

// The cases below fail validation before any repository is touched.
func TestRejectedWrites(t *testing.T) {
	bc := newTestBase(t)
	professor := &auth.JWTPayload{ID: "p1", UserType: constant.UserTypeProfessor}
	admin := &auth.JWTPayload{ID: "a1", UserType: constant.UserTypeAdministrator}

	linkedProfessor := &auth.JWTPayload{ID: "p2", UserType: constant.UserTypeProfessor, ProfessorID: "P001"}
	student := &auth.JWTPayload{ID: "s1", UserType: constant.UserTypeStudent}

	events := EventController{bc}
	schedules := ScheduleController{bc}
	surveys := SurveyController{bc}
	news := NewsController{bc}
	support := SupportRequestController{bc}
	verify := VerifyController{bc}
	certificates := CertificateController{bc}
	templates := TemplateController{bc}

	tests := []struct {
		name    string
		user    *auth.JWTPayload
		handler gin.HandlerFunc
		body    any
		want    int
	}{
		{
			name:    "event without user",
			handler: events.CreateEvent,
			body:    gin.H{"title": "Seminar", "startAt": "2025-05-01T10:00:00Z", "endAt": "2025-05-01T12:00:00Z"},
			want:    http.StatusUnauthorized,
		},
		{
			name:    "event ending before start",
			user:    professor,
			handler: events.CreateEvent,
			body:    gin.H{"title": "Seminar", "startAt": "2025-05-01T10:00:00Z", "endAt": "2025-05-01T09:00:00Z"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "event with unknown type",
			user:    professor,
			handler: events.CreateEvent,
			body:    gin.H{"title": "Seminar", "eventType": "party", "startAt": "2025-05-01T10:00:00Z", "endAt": "2025-05-01T12:00:00Z"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "schedule on unknown day",
			user:    admin,
			handler: schedules.CreateSchedule,
			body:    gin.H{"subjectName": "Databases", "dayOfWeek": "funday", "startTime": "08:00", "endTime": "09:00", "semester": "202425", "professorUserId": "p1"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "schedule ending before start",
			user:    admin,
			handler: schedules.CreateSchedule,
			body:    gin.H{"subjectName": "Databases", "dayOfWeek": "monday", "startTime": "10:00", "endTime": "09:00", "semester": "202425", "professorUserId": "p1"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "survey without questions",
			user:    admin,
			handler: surveys.CreateSurvey,
			body:    gin.H{"title": "Course feedback"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "survey choice with one option",
			user:    admin,
			handler: surveys.CreateSurvey,
			body: gin.H{"title": "Course feedback", "questions": []gin.H{
				{"text": "Favourite day", "questionType": "single_choice", "options": []string{"Monday"}},
			}},
			want: http.StatusBadRequest,
		},
		{
			name:    "template without name",
			user:    admin,
			handler: templates.CreateTemplate,
			body:    gin.H{"description": "Faculty of Engineering"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "template with named color",
			user:    admin,
			handler: templates.CreateTemplate,
			body:    gin.H{"name": "Engineering", "primaryColor": "navy"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "template with unknown layout",
			user:    admin,
			handler: templates.CreateTemplate,
			body:    gin.H{"name": "Engineering", "layoutType": "baroque"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "news without content",
			user:    admin,
			handler: news.CreateNews,
			body:    gin.H{"title": "Enrollment opens"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "news with unknown category",
			user:    admin,
			handler: news.CreateNews,
			body:    gin.H{"title": "Enrollment opens", "content": "Monday", "category": "gossip"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "support request without user",
			handler: support.CreateSupportRequest,
			body:    gin.H{"subject": "Projector", "description": "Room 12 projector is broken"},
			want:    http.StatusUnauthorized,
		},
		{
			name:    "support request with unknown priority",
			user:    student,
			handler: support.CreateSupportRequest,
			body:    gin.H{"subject": "Projector", "description": "Room 12 projector is broken", "priority": "whenever"},
			want:    http.StatusBadRequest,
		},
		{
			name:    "verify with blank code",
			handler: verify.VerifyByBody,
			body:    gin.H{"verificationCode": "   "},
			want:    http.StatusBadRequest,
		},
		{
			name:    "professor generating for another professor",
			user:    linkedProfessor,
			handler: certificates.Generate,
			body:    gin.H{"id_docente": "P002"},
			want:    http.StatusForbidden,
		},
		{
			name:    "professor without linked id",
			user:    professor,
			handler: certificates.Generate,
			body:    gin.H{"id_docente": "P001"},
			want:    http.StatusForbidden,
		},
		{
			name:    "certificate with unknown field",
			user:    linkedProfessor,
			handler: certificates.Generate,
			body:    gin.H{"id_docente": "P001", "campos": []string{"salario"}},
			want:    http.StatusBadRequest,
		},
		{
			name:    "bulk generate without professors",
			user:    admin,
			handler: certificates.BulkGenerate,
			body:    gin.H{"professorIds": []string{}},
			want:    http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/", withUser(tt.user), tt.handler)

			w := doJSON(t, r, http.MethodPost, "/", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.want, w.Body.String())
			}

			var resp util.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Success {
				t.Error("response should not be successful")
			}
		})
	}
}

func TestCheckGoogleAccount(t *testing.T) {
	tests := []struct {
		name   string
		user   GoogleUser
		domain string
		want   error
	}{
		{"verified any domain", GoogleUser{Email: "a@gmail.com", VerifiedEmail: true}, "", nil},
		{"unverified", GoogleUser{Email: "a@uni.edu"}, "uni.edu", errGoogleEmailUnverified},
		{"matching domain", GoogleUser{Email: "a@UNI.edu", VerifiedEmail: true}, "uni.edu", nil},
		{"other domain", GoogleUser{Email: "a@gmail.com", VerifiedEmail: true}, "uni.edu", errGoogleDomainNotAllowed},
		{"subdomain is not the domain", GoogleUser{Email: "a@cs.uni.edu", VerifiedEmail: true}, "uni.edu", errGoogleDomainNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkGoogleAccount(&tt.user, tt.domain); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGetTerms(t *testing.T) {
	chc := CourseHistoryController{newTestBase(t)}
	r := gin.New()
	r.GET("/terms", chc.GetTerms)

	tests := []struct {
		name  string
		query string
		want  int
		codes []string
	}{
		{"one year", "?from=202425&to=202525", http.StatusOK, []string{"202425", "202430", "202435", "202525"}},
		{"single term", "?from=202430&to=202430", http.StatusOK, []string{"202430"}},
		{"missing to", "?from=202425", http.StatusBadRequest, nil},
		{"malformed from", "?from=2024&to=202525", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/terms"+tt.query, nil))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.want, w.Body.String())
			}
			if tt.codes == nil {
				return
			}

			var resp struct {
				Data struct {
					Terms []TermItem `json:"terms"`
				} `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if len(resp.Data.Terms) != len(tt.codes) {
				t.Fatalf("got %d terms, want %d", len(resp.Data.Terms), len(tt.codes))
			}
			for i, code := range tt.codes {
				if resp.Data.Terms[i].Code != code || resp.Data.Terms[i].Label == "" {
					t.Errorf("term %d = %+v, want code %s", i, resp.Data.Terms[i], code)
				}
			}
		})
	}
}

// certificatesByCode serves verification lookups only.
type certificatesByCode map[string]model.GeneratedCertificate

func (c certificatesByCode) Create(ctx context.Context, tx *gorm.DB, cert *model.GeneratedCertificate) error {
	return errors.New("read only")
}

func (c certificatesByCode) GetById(ctx context.Context, tx *gorm.DB, certificateId string) (*model.GeneratedCertificate, error) {
	return nil, gorm.ErrRecordNotFound
}

func (c certificatesByCode) GetByVerificationCode(ctx context.Context, tx *gorm.DB, code string) (*model.GeneratedCertificate, error) {
	cert, ok := c[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &cert, nil
}

func (c certificatesByCode) ReplaceDocument(ctx context.Context, tx *gorm.DB, cert *model.GeneratedCertificate) error {
	return errors.New("read only")
}

func TestVerifyByCode(t *testing.T) {
	code := strings.Repeat("a", facultycert.VerificationCodeLength)
	templateID := "tmpl-formal"
	generatedAt := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)

	bc := newTestBase(t)
	bc.app.Issuer = issuer.New(issuer.Deps{Stores: issuer.Stores{Certificates: certificatesByCode{
		code: {
			BaseModel:        model.BaseModel{ID: "cert-1"},
			VerificationCode: code,
			ProfessorID:      "900000001",
			ProfessorName:    "Ada Lovelace",
			PageCount:        2,
			GeneratedAt:      generatedAt,
			Metadata:         datatypes.JSON(`{"id_docente":"900000001","destinatario":"To whom it may concern","periodo_actual":"202525"}`),
			TemplateID:       &templateID,
			Template:         &model.CertificateTemplate{BaseModel: model.BaseModel{ID: templateID}, Name: "Formal"},
		},
	}}}, issuer.Config{})

	vc := VerifyController{bc}
	r := gin.New()
	r.GET("/verify/:code", vc.VerifyByCode)

	t.Run("valid code", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify/"+strings.ToUpper(code), nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var resp struct {
			Data struct {
				Valid       bool `json:"valid"`
				Certificate struct {
					ID            string    `json:"id"`
					ProfessorName string    `json:"professorName"`
					PageCount     int       `json:"pageCount"`
					GeneratedAt   time.Time `json:"generatedAt"`
					TemplateID    string    `json:"templateId"`
					TemplateName  string    `json:"templateName"`
					Metadata      struct {
						Recipient   string `json:"destinatario"`
						CurrentTerm string `json:"periodo_actual"`
					} `json:"metadata"`
				} `json:"certificate"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}

		cert := resp.Data.Certificate
		if !resp.Data.Valid || cert.ID != "cert-1" || cert.ProfessorName != "Ada Lovelace" || cert.PageCount != 2 || !cert.GeneratedAt.Equal(generatedAt) {
			t.Errorf("unexpected certificate %+v", resp.Data)
		}
		if cert.TemplateID != templateID || cert.TemplateName != "Formal" {
			t.Errorf("template = %q %q, want %q Formal", cert.TemplateID, cert.TemplateName, templateID)
		}
		if cert.Metadata.Recipient != "To whom it may concern" || cert.Metadata.CurrentTerm != "202525" {
			t.Errorf("metadata = %+v", cert.Metadata)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify/"+strings.Repeat("b", facultycert.VerificationCodeLength), nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Valid bool `json:"valid"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Success || resp.Data.Valid {
			t.Errorf("unexpected response %s", w.Body.String())
		}
	})
}

// Package issuer runs the certificate lifecycle: it loads the course history and the
// template, renders the document, stores it and keeps the certificate record.
package issuer

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNoTemplateAvailable means no template was requested and none is marked default.
	ErrNoTemplateAvailable = errors.New("no certificate template available, an administrator must create or mark a default template")
	ErrTemplateNotFound    = errors.New("certificate template not found")
	ErrCertificateNotFound = errors.New("certificate not found")
)

type CourseStore interface {
	GetByProfessorID(ctx context.Context, tx *gorm.DB, professorId string) ([]model.CourseHistory, error)
}

type TemplateStore interface {
	GetById(ctx context.Context, tx *gorm.DB, templateId string) (*model.CertificateTemplate, error)
	GetDefault(ctx context.Context, tx *gorm.DB) (*model.CertificateTemplate, error)
}

type CertificateStore interface {
	Create(ctx context.Context, tx *gorm.DB, cert *model.GeneratedCertificate) error
	GetById(ctx context.Context, tx *gorm.DB, certificateId string) (*model.GeneratedCertificate, error)
	GetByVerificationCode(ctx context.Context, tx *gorm.DB, code string) (*model.GeneratedCertificate, error)
	ReplaceDocument(ctx context.Context, tx *gorm.DB, cert *model.GeneratedCertificate) error
}

type FileStore interface {
	Create(ctx context.Context, tx *gorm.DB, file *model.File) (*model.File, error)
	Delete(ctx context.Context, tx *gorm.DB, fileId string) error
}

type ProfessorDirectory interface {
	GetByProfessorID(ctx context.Context, tx *gorm.DB, professorId string) (*model.User, error)
	FindProfessorByName(ctx context.Context, tx *gorm.DB, displayName string) (*model.User, error)
}

// ObjectStorage keeps the document and template image bytes.
type ObjectStorage interface {
	Put(ctx context.Context, directory, fileName string, data []byte, contentType string) (*model.File, error)
	Open(ctx context.Context, file model.File) (io.ReadCloser, error)
	Remove(ctx context.Context, file model.File) error
}

// Cache stores JSON values by key. Implementations may drop entries at any time.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

type Notification struct {
	ProfessorName    string
	Email            string
	VerificationCode string
	VerificationLink string
	IssuedAt         time.Time
	Regenerated      bool
}

// Notifier tells a linked professor about a new certificate.
type Notifier interface {
	CertificateIssued(ctx context.Context, n Notification) error
}

type Stores struct {
	// DB opens the transaction around the record writes, nil runs without one
	DB           *gorm.DB
	Courses      CourseStore
	Templates    TemplateStore
	Certificates CertificateStore
	Files        FileStore
	Professors   ProfessorDirectory
}

type Config struct {
	// Base URL the verification code is appended to
	VerificationURL  string
	DefaultRecipient string
}

type Deps struct {
	Stores
	Storage  ObjectStorage
	Composer *facultycert.Composer
	// Optional
	Cache    Cache
	Notifier Notifier
	Logger   *zap.SugaredLogger
}

type Issuer struct {
	Stores
	storage  ObjectStorage
	composer *facultycert.Composer
	cache    Cache
	notifier Notifier
	cfg      Config
	logger   *zap.SugaredLogger
}

func New(deps Deps, cfg Config) *Issuer {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	composer := deps.Composer
	if composer == nil {
		composer = facultycert.NewComposer(nil, logger)
	}

	return &Issuer{
		Stores:   deps.Stores,
		storage:  deps.Storage,
		composer: composer,
		cache:    deps.Cache,
		notifier: deps.Notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

func (i *Issuer) withTx(fn func(tx *gorm.DB) error) error {
	if i.DB == nil {
		return fn(nil)
	}
	return i.DB.Transaction(fn)
}

func verificationCacheKey(code string) string {
	return "certificate:verify:" + code
}

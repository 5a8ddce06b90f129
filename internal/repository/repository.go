package repository

import (
	"github.com/SeakMengs/FacultyCert/internal/auth"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type baseRepository struct {
	db         *gorm.DB
	logger     *zap.SugaredLogger
	jwtService auth.JWTInterface
	s3         *minio.Client
}

type Repository struct {
	// DB can be used for transaction, pass the tx to any repository function.
	DB             *gorm.DB
	User           *UserRepository
	JWT            *JWTRepository
	OAuthProvider  *OAuthProviderRepository
	File           *FileRepository
	CourseHistory  *CourseHistoryRepository
	Template       *TemplateRepository
	Certificate    *CertificateRepository
	News           *NewsRepository
	Event          *EventRepository
	Schedule       *ScheduleRepository
	SupportRequest *SupportRequestRepository
	Survey         *SurveyRepository
}

func newBaseRepository(db *gorm.DB, logger *zap.SugaredLogger, jwtService auth.JWTInterface, s3 *minio.Client) *baseRepository {
	return &baseRepository{db: db, logger: logger, jwtService: jwtService, s3: s3}
}

func NewRepository(db *gorm.DB, logger *zap.SugaredLogger, jwtService auth.JWTInterface, s3 *minio.Client) *Repository {
	br := newBaseRepository(db, logger, jwtService, s3)
	_userRepo := &UserRepository{baseRepository: br}

	return &Repository{
		DB:             db,
		User:           _userRepo,
		JWT:            &JWTRepository{baseRepository: br, user: _userRepo},
		OAuthProvider:  &OAuthProviderRepository{baseRepository: br},
		File:           &FileRepository{baseRepository: br},
		CourseHistory:  &CourseHistoryRepository{baseRepository: br},
		Template:       &TemplateRepository{baseRepository: br},
		Certificate:    &CertificateRepository{baseRepository: br},
		News:           &NewsRepository{baseRepository: br},
		Event:          &EventRepository{baseRepository: br},
		Schedule:       &ScheduleRepository{baseRepository: br},
		SupportRequest: &SupportRequestRepository{baseRepository: br},
		Survey:         &SurveyRepository{baseRepository: br},
	}
}

// Runs fn inside a transaction, nested calls become savepoints.
func (b baseRepository) withTx(db *gorm.DB, fn func(*gorm.DB) error) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})

	if err != nil {
		b.logger.Debugf("withTx Transaction error: %v", err)
	}

	return err
}

func (b baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return b.db
}


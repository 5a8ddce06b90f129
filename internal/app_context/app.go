package appcontext

import (
	"github.com/SeakMengs/FacultyCert/internal/auth"
	"github.com/SeakMengs/FacultyCert/internal/cache"
	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/importer"
	"github.com/SeakMengs/FacultyCert/internal/issuer"
	"github.com/SeakMengs/FacultyCert/internal/mailer"
	"github.com/SeakMengs/FacultyCert/internal/queue"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Mailer handles email-sending functions. Nil when mail is not configured.
	Mailer mailer.Client

	// JWTService manages JWT operations for authentication such as generate, verify, refresh token.
	JWTService auth.JWTInterface

	S3 *minio.Client

	// Issuer generates, regenerates and verifies certificates.
	Issuer *issuer.Issuer

	// Importer loads course history spreadsheets.
	Importer *importer.Importer

	// Cache is a no-op when Redis is not configured.
	Cache *cache.Cache

	// RabbitMQ is nil when the mail queue is disabled.
	RabbitMQ *queue.RabbitMQ

	Notifier *queue.MailDispatcher
}

package appcontext

import (
	"fmt"

	"github.com/SeakMengs/FacultyCert/internal/auth"
	"github.com/SeakMengs/FacultyCert/internal/cache"
	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/database"
	filestorage "github.com/SeakMengs/FacultyCert/internal/file_storage"
	"github.com/SeakMengs/FacultyCert/internal/importer"
	"github.com/SeakMengs/FacultyCert/internal/issuer"
	"github.com/SeakMengs/FacultyCert/internal/mailer"
	"github.com/SeakMengs/FacultyCert/internal/queue"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"go.uber.org/zap"
)

// Bootstrap connects every backing service named in cfg and wires the application.
// The returned func releases the connections.
func Bootstrap(cfg *config.Config, logger *zap.SugaredLogger) (*Application, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*Application, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		return fail(fmt.Errorf("failed to connect to minio: %w", err))
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis, logger)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() { _ = redisCache.Close() })

	mail, err := mailer.New(cfg.Mail, cfg.IsProduction(), logger)
	if err != nil {
		logger.Warnf("Mail disabled: %v", err)
		mail = nil
	}

	var rabbitMQ *queue.RabbitMQ
	var publisher queue.Publisher
	if cfg.RabbitMQ.Enabled() {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQ.URL())
		if err != nil {
			return fail(fmt.Errorf("failed to connect to rabbitmq: %w", err))
		}
		publisher = rabbitMQ
		closers = append(closers, func() { _ = rabbitMQ.Close() })
	}
	notifier := queue.NewMailDispatcher(publisher, mail, logger)

	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger, jwtService, s3)

	composerCfg := facultycert.NewDefaultConfig()
	composerCfg.FontMetadataPath = cfg.Certificate.FONT_METADATA_PATH
	if cfg.Certificate.TMP_DIR != "" {
		composerCfg.TmpDir = cfg.Certificate.TMP_DIR
	}

	certIssuer := issuer.New(issuer.Deps{
		Stores: issuer.Stores{
			DB:           db,
			Courses:      repo.CourseHistory,
			Templates:    repo.Template,
			Certificates: repo.Certificate,
			Files:        repo.File,
			Professors:   repo.User,
		},
		Storage:  issuer.NewMinioStorage(s3, cfg.Minio.BUCKET),
		Composer: facultycert.NewComposer(composerCfg, logger),
		Cache:    redisCache,
		Notifier: notifier,
		Logger:   logger,
	}, issuer.Config{
		VerificationURL:  cfg.Certificate.VERIFICATION_URL,
		DefaultRecipient: cfg.Certificate.DEFAULT_RECIPIENT,
	})

	return &Application{
		Config:     cfg,
		Logger:     logger,
		Repository: repo,
		Mailer:     mail,
		JWTService: jwtService,
		S3:         s3,
		Issuer:     certIssuer,
		Importer:   importer.New(repo.CourseHistory, logger),
		Cache:      redisCache,
		RabbitMQ:   rabbitMQ,
		Notifier:   notifier,
	}, cleanup, nil
}

package database

import (
	"fmt"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func ConnectReturnGormDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	return Open(cfg.DSN(), cfg)
}

// Open connects to dsn and applies the pool settings of cfg.
func Open(dsn string, cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if idle, err := time.ParseDuration(cfg.MaxIdleTime); err == nil {
		sqlDB.SetConnMaxIdleTime(idle)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the tables from the models, then applies the SQL migrations gorm cannot
// express, such as partial indexes.
func Migrate(db *gorm.DB, logger *zap.SugaredLogger) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`).Error; err != nil {
		return fmt.Errorf("failed to create citext extension: %w", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return RunMigrations(sqlDB, logger)
}

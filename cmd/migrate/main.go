package main

import (
	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/database"
	"github.com/SeakMengs/FacultyCert/internal/env"
	"github.com/SeakMengs/FacultyCert/internal/util"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	logger.Infof("Migrating database %s on %s:%s", cfg.DB.DB_DATABASE, cfg.DB.DB_HOST, cfg.DB.DB_PORT)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDB.Close()

	if err := database.Migrate(db, logger); err != nil {
		logger.Panic(err)
	}

	logger.Info("Migration finished")
}

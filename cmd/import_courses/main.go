package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/database"
	"github.com/SeakMengs/FacultyCert/internal/env"
	"github.com/SeakMengs/FacultyCert/internal/importer"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/internal/util"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	path := flag.String("file", "", "course history spreadsheet (.xlsx or .csv)")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal(err)
	}
	defer sqlDB.Close()

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatal(err)
	}
	defer f.Close()

	// the importer only needs the course history store
	repo := repository.NewRepository(db, logger, nil, nil)
	im := importer.New(repo.CourseHistory, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := im.Import(ctx, f, filepath.Base(*path))
	if err != nil {
		logger.Fatal(err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Println(string(out))
}

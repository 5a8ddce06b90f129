// Package importer loads course history sheets (.xlsx or .csv) into the course store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SeakMengs/FacultyCert/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUnsupportedFormat = errors.New("file must be .xlsx or .csv")
	ErrMissingColumns    = errors.New("missing required columns")
	ErrNoData            = errors.New("file has no data rows")
)

type RowError struct {
	// 1-based sheet row, the header is row 1
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

type ImportResult struct {
	Total    int        `json:"total"`
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

type Store interface {
	Upsert(ctx context.Context, tx *gorm.DB, histories []model.CourseHistory) (int64, error)
}

type Importer struct {
	store  Store
	logger *zap.SugaredLogger
}

func New(store Store, logger *zap.SugaredLogger) *Importer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Importer{store: store, logger: logger}
}

// Import reads the sheet, skips the malformed rows and upserts the rest. Only a file that
// cannot be read at all, or lacks a required column, fails as a whole.
func (im *Importer) Import(ctx context.Context, r io.Reader, fileName string) (*ImportResult, error) {
	format, err := FormatFromFileName(fileName)
	if err != nil {
		return nil, err
	}

	rows, err := ReadRows(r, format)
	if err != nil {
		return nil, err
	}

	parsed, err := Parse(rows)
	if err != nil {
		return nil, err
	}

	for _, rowErr := range parsed.Errors {
		im.logger.Warnf("skipping course history %s", rowErr.Error())
	}

	if _, err := im.store.Upsert(ctx, nil, parsed.Courses); err != nil {
		return nil, fmt.Errorf("failed to save course histories: %w", err)
	}

	im.logger.Infof("imported %d of %d course history rows from %s", parsed.Valid, parsed.Total, fileName)

	return &ImportResult{
		Total:    parsed.Total,
		Imported: parsed.Valid,
		Skipped:  len(parsed.Errors),
		Errors:   parsed.Errors,
	}, nil
}

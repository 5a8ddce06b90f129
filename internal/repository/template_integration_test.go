//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/database"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"go.uber.org/zap"
)

func newIntegrationRepository(t *testing.T) *Repository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	db, err := database.Open(dsn, config.DatabaseConfig{MaxOpenConns: 20})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	logger := zap.NewNop().Sugar()
	if err := database.Migrate(db, logger); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewRepository(db, logger, nil, nil)
}

func TestSetDefaultConcurrentLeavesOneDefault(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	const n = 8
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		tmpl := &model.CertificateTemplate{
			Name:        fmt.Sprintf("concurrent default %d", i),
			LayoutType:  "standard",
			TableFields: model.FieldsToJSON(nil),
			IsActive:    true,
		}
		if err := repo.Template.Create(ctx, nil, tmpl); err != nil {
			t.Fatalf("failed to create template: %v", err)
		}
		ids[i] = tmpl.ID
	}
	t.Cleanup(func() {
		repo.DB.Where("id IN ?", ids).Delete(&model.CertificateTemplate{})
	})

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			errs <- repo.Template.SetDefault(ctx, nil, id)
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("SetDefault() error: %v", err)
		}
	}

	var count int64
	if err := repo.DB.Model(&model.CertificateTemplate{}).Where("is_default = ?", true).Count(&count).Error; err != nil {
		t.Fatalf("failed to count defaults: %v", err)
	}
	if count != 1 {
		t.Fatalf("default templates = %d, want 1", count)
	}
}

func TestCreateAsDefaultMovesFlag(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	first := &model.CertificateTemplate{Name: "first", LayoutType: "standard", TableFields: model.FieldsToJSON(nil), IsActive: true, IsDefault: true}
	second := &model.CertificateTemplate{Name: "second", LayoutType: "formal", TableFields: model.FieldsToJSON(nil), IsActive: true, IsDefault: true}
	for _, tmpl := range []*model.CertificateTemplate{first, second} {
		if err := repo.Template.Create(ctx, nil, tmpl); err != nil {
			t.Fatalf("failed to create template: %v", err)
		}
	}
	t.Cleanup(func() {
		repo.DB.Where("id IN ?", []string{first.ID, second.ID}).Delete(&model.CertificateTemplate{})
	})

	got, err := repo.Template.GetDefault(ctx, nil)
	if err != nil {
		t.Fatalf("GetDefault() error: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("default = %s, want %s", got.ID, second.ID)
	}
}

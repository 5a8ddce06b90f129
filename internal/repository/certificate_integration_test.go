//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestReplaceDocumentRefreshesProfessor(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	oldFile, err := repo.File.Create(ctx, nil, &model.File{FileName: "old.pdf", UniqueFileName: "test/old-" + suffix + ".pdf", BucketName: "test", Size: 1})
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	newFile, err := repo.File.Create(ctx, nil, &model.File{FileName: "new.pdf", UniqueFileName: "test/new-" + suffix + ".pdf", BucketName: "test", Size: 1})
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	user := &model.User{Email: "alan-" + suffix + "@example.edu", FirstName: "Alan", LastName: "Turing"}
	if err := repo.User.Create(ctx, nil, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	cert := &model.GeneratedCertificate{
		VerificationCode: "old" + suffix,
		ProfessorID:      "900000002",
		ProfessorName:    "Alan Turing",
		PageCount:        1,
		GeneratedAt:      time.Now(),
		Metadata:         datatypes.JSON(`{}`),
		FileID:           oldFile.ID,
	}
	if err := repo.Certificate.Create(ctx, nil, cert); err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}
	t.Cleanup(func() {
		repo.DB.Delete(&model.GeneratedCertificate{}, "id = ?", cert.ID)
		repo.DB.Delete(&model.File{}, "id IN ?", []string{oldFile.ID, newFile.ID})
		repo.DB.Delete(&model.User{}, "id = ?", user.ID)
	})

	cert.VerificationCode = "new" + suffix
	cert.ProfessorName = "Alan M. Turing"
	cert.ProfessorUserID = &user.ID
	cert.FileID = newFile.ID
	if err := repo.Certificate.ReplaceDocument(ctx, nil, cert); err != nil {
		t.Fatalf("ReplaceDocument() error: %v", err)
	}

	got, err := repo.Certificate.GetById(ctx, nil, cert.ID)
	if err != nil {
		t.Fatalf("GetById() error: %v", err)
	}
	if got.ProfessorName != "Alan M. Turing" {
		t.Errorf("professor name = %q, want %q", got.ProfessorName, "Alan M. Turing")
	}
	if got.ProfessorUserID == nil || *got.ProfessorUserID != user.ID {
		t.Errorf("professor user = %v, want %s", got.ProfessorUserID, user.ID)
	}
	if got.VerificationCode != "new"+suffix || got.FileID != newFile.ID {
		t.Errorf("document not replaced: code %s file %s", got.VerificationCode, got.FileID)
	}
}

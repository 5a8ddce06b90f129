package issuer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"gorm.io/gorm"
)

const pdfContentType = "application/pdf"

type Issued struct {
	Certificate *model.GeneratedCertificate
	PDF         []byte
}

// Generate renders a new certificate for opts.ProfessorID and records it. generatedBy is the
// acting user id, empty for command line runs.
func (i *Issuer) Generate(ctx context.Context, opts facultycert.Options, generatedBy string) (*Issued, error) {
	professorID := strings.TrimSpace(opts.ProfessorID)
	if professorID == "" {
		return nil, errors.New("professor id is required")
	}

	histories, err := i.Courses.GetByProfessorID(ctx, nil, professorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course history of %s: %w", professorID, err)
	}
	if len(histories) == 0 {
		return nil, fmt.Errorf("%w: %s", facultycert.ErrNoCoursesFound, professorID)
	}

	professor, err := i.resolveProfessor(ctx, professorID, histories[0].ProfessorName)
	if err != nil {
		return nil, err
	}

	record, tmpl, err := i.loadTemplate(ctx, opts.TemplateID)
	if err != nil {
		return nil, err
	}

	opts.ProfessorID = professorID
	opts.TemplateID = record.ID
	result, err := i.compose(professor, model.ToCourseRecords(histories), tmpl, opts)
	if err != nil {
		return nil, err
	}

	file, err := i.store(ctx, professorID, result)
	if err != nil {
		return nil, err
	}

	cert := &model.GeneratedCertificate{
		VerificationCode: result.VerificationCode,
		ProfessorID:      professorID,
		ProfessorName:    result.Options.ProfessorName,
		PageCount:        result.PageCount,
		GeneratedAt:      result.IssuedAt,
		TemplateID:       &record.ID,
		GeneratedByID:    optionalID(generatedBy),
	}
	if userID, ok := facultycert.LinkedUserID(professor); ok {
		cert.ProfessorUserID = &userID
	}
	if cert.Metadata, err = json.Marshal(result.Options); err != nil {
		i.discard(ctx, *file)
		return nil, fmt.Errorf("failed to encode certificate metadata: %w", err)
	}

	err = i.withTx(func(tx *gorm.DB) error {
		if _, err := i.Files.Create(ctx, tx, file); err != nil {
			return err
		}
		cert.FileID = file.ID
		return i.Certificates.Create(ctx, tx, cert)
	})
	if err != nil {
		i.discard(ctx, *file)
		return nil, fmt.Errorf("failed to save certificate: %w", err)
	}
	cert.File = *file

	i.notify(ctx, professor, cert, result.Options, false)

	return &Issued{Certificate: cert, PDF: result.PDF}, nil
}

// Regenerate renders the certificate again with its stored options and template. The
// record keeps its id, the old code stops verifying and the old document is removed.
func (i *Issuer) Regenerate(ctx context.Context, certificateID string, generatedBy string) (*Issued, error) {
	cert, err := i.Certificates.GetById(ctx, nil, certificateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCertificateNotFound, certificateID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}

	opts, err := cert.Options()
	if err != nil {
		return nil, fmt.Errorf("failed to decode certificate metadata: %w", err)
	}
	opts.ProfessorID = cert.ProfessorID
	// The name comes from the professor resolved below, not from the first run.
	opts.ProfessorName = ""
	opts.TemplateID = ""
	if cert.TemplateID != nil {
		opts.TemplateID = *cert.TemplateID
	}

	histories, err := i.Courses.GetByProfessorID(ctx, nil, cert.ProfessorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course history of %s: %w", cert.ProfessorID, err)
	}
	if len(histories) == 0 {
		return nil, fmt.Errorf("%w: %s", facultycert.ErrNoCoursesFound, cert.ProfessorID)
	}

	professor, err := i.resolveProfessor(ctx, cert.ProfessorID, histories[0].ProfessorName)
	if err != nil {
		return nil, err
	}

	record, tmpl, err := i.loadTemplate(ctx, opts.TemplateID)
	if err != nil {
		return nil, err
	}
	opts.TemplateID = record.ID

	result, err := i.compose(professor, model.ToCourseRecords(histories), tmpl, opts)
	if err != nil {
		return nil, err
	}

	file, err := i.store(ctx, cert.ProfessorID, result)
	if err != nil {
		return nil, err
	}

	oldFile := cert.File
	oldCode := cert.VerificationCode

	cert.VerificationCode = result.VerificationCode
	cert.ProfessorName = result.Options.ProfessorName
	cert.ProfessorUserID = nil
	if userID, ok := facultycert.LinkedUserID(professor); ok {
		cert.ProfessorUserID = &userID
	}
	cert.PageCount = result.PageCount
	cert.GeneratedAt = result.IssuedAt
	cert.TemplateID = &record.ID
	cert.GeneratedByID = optionalID(generatedBy)
	if cert.Metadata, err = json.Marshal(result.Options); err != nil {
		i.discard(ctx, *file)
		return nil, fmt.Errorf("failed to encode certificate metadata: %w", err)
	}

	err = i.withTx(func(tx *gorm.DB) error {
		if _, err := i.Files.Create(ctx, tx, file); err != nil {
			return err
		}
		cert.FileID = file.ID
		return i.Certificates.ReplaceDocument(ctx, tx, cert)
	})
	if err != nil {
		i.discard(ctx, *file)
		return nil, fmt.Errorf("failed to save regenerated certificate: %w", err)
	}
	cert.File = *file

	if i.cache != nil {
		if err := i.cache.Delete(ctx, verificationCacheKey(oldCode)); err != nil {
			i.logger.Warnf("failed to evict verification cache of %s: %v", oldCode, err)
		}
	}
	if oldFile.ID != "" {
		if err := i.Files.Delete(ctx, nil, oldFile.ID); err != nil {
			i.logger.Warnf("failed to delete old certificate file record %s: %v", oldFile.ID, err)
		}
		i.discard(ctx, oldFile)
	}

	i.notify(ctx, professor, cert, result.Options, true)

	return &Issued{Certificate: cert, PDF: result.PDF}, nil
}

type BulkError struct {
	ProfessorID string `json:"professorId"`
	Error       string `json:"error"`
}

type BulkResult struct {
	SuccessCount int                          `json:"successCount"`
	ErrorCount   int                          `json:"errorCount"`
	Errors       []BulkError                  `json:"errors"`
	Certificates []model.GeneratedCertificate `json:"certificates"`
	// Rendered documents by certificate id, not serialized
	Documents map[string][]byte `json:"-"`
}

// BulkGenerate runs Generate for each professor in turn with the shared options. A failing
// professor is reported and the rest still run.
func (i *Issuer) BulkGenerate(ctx context.Context, professorIDs []string, opts facultycert.Options, generatedBy string) BulkResult {
	result := BulkResult{
		Errors:       []BulkError{},
		Certificates: []model.GeneratedCertificate{},
		Documents:    map[string][]byte{},
	}

	seen := make([]string, 0, len(professorIDs))
	for _, id := range professorIDs {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(seen, id) {
			continue
		}
		seen = append(seen, id)

		if err := ctx.Err(); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, BulkError{ProfessorID: id, Error: err.Error()})
			continue
		}

		professorOpts := opts
		professorOpts.ProfessorID = id
		professorOpts.ProfessorName = ""

		issued, err := i.Generate(ctx, professorOpts, generatedBy)
		if err != nil {
			i.logger.Warnf("bulk generation failed for professor %s: %v", id, err)
			result.ErrorCount++
			result.Errors = append(result.Errors, BulkError{ProfessorID: id, Error: err.Error()})
			continue
		}

		result.SuccessCount++
		result.Certificates = append(result.Certificates, *issued.Certificate)
		result.Documents[issued.Certificate.ID] = issued.PDF
	}

	return result
}

// Preview renders the template against sample courses. Nothing is stored.
func (i *Issuer) Preview(ctx context.Context, templateID string) ([]byte, error) {
	_, tmpl, err := i.loadTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	req := facultycert.PreviewRequest(tmpl, i.cfg.VerificationURL)
	result, err := i.composer.Generate(req)
	if err != nil {
		return nil, err
	}

	return result.PDF, nil
}

// Verify looks the code up, through the cache when one is configured.
func (i *Issuer) Verify(ctx context.Context, code string) (*model.GeneratedCertificate, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) != facultycert.VerificationCodeLength {
		return nil, ErrCertificateNotFound
	}

	key := verificationCacheKey(code)
	if i.cache != nil {
		var cached model.GeneratedCertificate
		found, err := i.cache.Get(ctx, key, &cached)
		if err != nil {
			i.logger.Warnf("failed to read verification cache: %v", err)
		} else if found {
			return &cached, nil
		}
	}

	cert, err := i.Certificates.GetByVerificationCode(ctx, nil, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCertificateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify certificate: %w", err)
	}

	if i.cache != nil {
		if err := i.cache.Set(ctx, key, cert); err != nil {
			i.logger.Warnf("failed to write verification cache: %v", err)
		}
	}

	return cert, nil
}

// OpenDocument streams the stored PDF. The caller closes the reader.
func (i *Issuer) OpenDocument(ctx context.Context, cert model.GeneratedCertificate) (io.ReadCloser, error) {
	return i.storage.Open(ctx, cert.File)
}

func (i *Issuer) compose(professor facultycert.Professor, courses []facultycert.CourseRecord, tmpl facultycert.Template, opts facultycert.Options) (*facultycert.Result, error) {
	if opts.VerificationURL == "" {
		opts.VerificationURL = i.cfg.VerificationURL
	}

	result, err := i.composer.Generate(facultycert.Request{
		Professor: professor,
		Courses:   courses,
		Template:  tmpl,
		Options:   opts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compose certificate of %s: %w", professor.ExternalProfessorID(), err)
	}

	return result, nil
}

func (i *Issuer) store(ctx context.Context, professorID string, result *facultycert.Result) (*model.File, error) {
	fileName := facultycert.CertificateFileName(professorID, result.VerificationCode)
	file, err := i.storage.Put(ctx, util.GetCertificateDirectoryPath(professorID), fileName, result.PDF, pdfContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store certificate document: %w", err)
	}
	return file, nil
}

// discard removes an object that no record points to. Failure only leaves an orphan.
func (i *Issuer) discard(ctx context.Context, file model.File) {
	if err := i.storage.Remove(ctx, file); err != nil {
		i.logger.Warnf("failed to remove certificate object %s: %v", file.UniqueFileName, err)
	}
}

func (i *Issuer) notify(ctx context.Context, professor facultycert.Professor, cert *model.GeneratedCertificate, opts facultycert.Options, regenerated bool) {
	known, ok := professor.(facultycert.KnownProfessor)
	if i.notifier == nil || !ok || known.Email == "" {
		return
	}

	err := i.notifier.CertificateIssued(ctx, Notification{
		ProfessorName:    known.Name,
		Email:            known.Email,
		VerificationCode: cert.VerificationCode,
		VerificationLink: opts.VerificationLink(cert.VerificationCode),
		IssuedAt:         cert.GeneratedAt,
		Regenerated:      regenerated,
	})
	if err != nil {
		i.logger.Warnf("failed to notify professor %s about certificate %s: %v", known.ProfessorID, cert.ID, err)
	}
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/issuer"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CertificateController struct {
	*baseController
}

const (
	ErrGenerateOthersCertificate = "you can only generate your own certificate"
	ErrReadOthersCertificate     = "you can only access your own certificates"
)

// respondIssuerError maps the issuer and composer failures to status codes.
func (cc CertificateController) respondIssuerError(ctx *gin.Context, err error) {
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid options", util.GenerateErrorMessages(err), nil)
	case errors.Is(err, facultycert.ErrNoCoursesFound):
		util.ResponseFailed(ctx, http.StatusNotFound, "No courses found for this professor", util.GenerateErrorMessages(err, "professorId"), nil)
	case errors.Is(err, issuer.ErrTemplateNotFound):
		util.ResponseFailed(ctx, http.StatusNotFound, "Template not found", util.GenerateErrorMessages(err, "templateId"), nil)
	case errors.Is(err, issuer.ErrCertificateNotFound):
		util.ResponseFailed(ctx, http.StatusNotFound, "Certificate not found", util.GenerateErrorMessages(err, "certificateId"), nil)
	case errors.Is(err, issuer.ErrNoTemplateAvailable):
		util.ResponseFailed(ctx, http.StatusConflict, "No certificate template available, contact an administrator", util.GenerateErrorMessages(err, "templateId"), nil)
	default:
		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate certificate", util.GenerateErrorMessages(err), nil)
	}
}

// validateOptions rejects malformed options before any lookup. Template defaults are
// applied later by the composer.
func validateOptions(opts facultycert.Options) error {
	probe := opts
	probe.ApplyDefaults(facultycert.OptionDefaults{})
	return probe.Validate()
}

func (cc CertificateController) GetCertificates(ctx *gin.Context) {
	type Request struct {
		pageQuery
		ProfessorID string `form:"professorId" binding:"omitempty,max=9"`
	}
	var query Request

	user, ok := cc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	filter := repository.CertificateFilter{ProfessorID: query.ProfessorID}
	if !cc.can(user, constant.CertificateReadAny) {
		if user.ProfessorID == "" {
			forbidden(ctx, ErrNoLinkedProfessor)
			return
		}
		filter.ProfessorID = user.ProfessorID
	}

	page, pageSize := query.normalized()
	certs, total, err := cc.app.Repository.Certificate.List(ctx, nil, filter, page, pageSize)
	if err != nil {
		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get certificates", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponsePaginated(ctx, certs, total, page, pageSize)
}

// Generate issues one certificate. With ?download=true the PDF is returned instead of
// the record.
func (cc CertificateController) Generate(ctx *gin.Context) {
	var opts facultycert.Options

	user, ok := cc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&opts); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	if err := validateOptions(opts); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid options", util.GenerateErrorMessages(err), nil)
		return
	}

	professorID := strings.TrimSpace(opts.ProfessorID)
	if !cc.can(user, constant.CertificateGenerateAny) {
		if !cc.can(user, constant.CertificateGenerateOwn) || user.ProfessorID == "" || user.ProfessorID != professorID {
			forbidden(ctx, ErrGenerateOthersCertificate)
			return
		}
	}

	issued, err := cc.app.Issuer.Generate(ctx, opts, user.ID)
	if err != nil {
		cc.respondIssuerError(ctx, err)
		return
	}

	if ctx.Query("download") == "true" {
		cc.sendPDF(ctx, issued.Certificate, issued.PDF)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"certificate": issued.Certificate,
	})
}

// BulkGenerate issues certificates for many professors. With ?format=zip the documents are
// returned as one archive.
func (cc CertificateController) BulkGenerate(ctx *gin.Context) {
	type Request struct {
		ProfessorIDs []string            `json:"professorIds" binding:"required,min=1,max=500,dive,required,max=9"`
		TemplateID   string              `json:"templateId"`
		Options      facultycert.Options `json:"options"`
	}
	var body Request

	user, ok := cc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	opts := body.Options
	if body.TemplateID != "" {
		opts.TemplateID = body.TemplateID
	}
	// validated per professor, a placeholder id keeps the shared options checkable
	opts.ProfessorID = body.ProfessorIDs[0]
	if err := validateOptions(opts); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid options", util.GenerateErrorMessages(err), nil)
		return
	}

	result := cc.app.Issuer.BulkGenerate(ctx, body.ProfessorIDs, opts, user.ID)
	cc.app.Logger.Infof("Bulk generation by %s: %d succeeded, %d failed", user.ID, result.SuccessCount, result.ErrorCount)

	if ctx.Query("format") == "zip" {
		entries := make([]util.ZipEntry, 0, len(result.Certificates))
		for _, cert := range result.Certificates {
			entries = append(entries, util.ZipEntry{
				Name:     facultycert.CertificateFileName(cert.ProfessorID, cert.VerificationCode),
				Data:     result.Documents[cert.ID],
				Modified: cert.GeneratedAt,
			})
		}

		var buf bytes.Buffer
		if err := util.WriteZip(&buf, entries); err != nil {
			cc.app.Logger.Error(err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to build archive", util.GenerateErrorMessages(err), nil)
			return
		}

		ctx.Header("Content-Disposition", `attachment; filename="certificates.zip"`)
		ctx.Header("X-Success-Count", fmt.Sprintf("%d", result.SuccessCount))
		ctx.Header("X-Error-Count", fmt.Sprintf("%d", result.ErrorCount))
		ctx.Data(http.StatusOK, "application/zip", buf.Bytes())
		return
	}

	util.ResponseSuccess(ctx, result)
}

func (cc CertificateController) Regenerate(ctx *gin.Context) {
	user, ok := cc.mustAuthUser(ctx)
	if !ok {
		return
	}

	issued, err := cc.app.Issuer.Regenerate(ctx, ctx.Param("certificateId"), user.ID)
	if err != nil {
		cc.respondIssuerError(ctx, err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"certificate": issued.Certificate,
	})
}

func (cc CertificateController) Download(ctx *gin.Context) {
	user, ok := cc.mustAuthUser(ctx)
	if !ok {
		return
	}

	cert, err := cc.app.Repository.Certificate.GetById(ctx, nil, ctx.Param("certificateId"))
	if err != nil {
		cc.respondRepoError(ctx, err, "Certificate not found", "Failed to get certificate")
		return
	}

	if !cc.can(user, constant.CertificateReadAny) && (user.ProfessorID == "" || user.ProfessorID != cert.ProfessorID) {
		forbidden(ctx, ErrReadOthersCertificate)
		return
	}

	reader, err := cc.app.Issuer.OpenDocument(ctx, *cert)
	if err != nil {
		cc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to open certificate", util.GenerateErrorMessages(err), nil)
		return
	}
	defer reader.Close()

	fileName := facultycert.CertificateFileName(cert.ProfessorID, cert.VerificationCode)
	ctx.DataFromReader(http.StatusOK, cert.File.Size, "application/pdf", reader, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, fileName),
	})
}

func (cc CertificateController) sendPDF(ctx *gin.Context, cert *model.GeneratedCertificate, pdf []byte) {
	fileName := facultycert.CertificateFileName(cert.ProfessorID, cert.VerificationCode)
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	ctx.Header("X-Verification-Code", cert.VerificationCode)
	ctx.Data(http.StatusCreated, "application/pdf", pdf)
}

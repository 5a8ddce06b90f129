package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/issuer"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type VerifyController struct {
	*baseController
}

// VerifiedCertificate is what anonymous callers learn about a valid code, including the
// options the document was rendered with.
type VerifiedCertificate struct {
	ID            string         `json:"id"`
	ProfessorID   string         `json:"professorId"`
	ProfessorName string         `json:"professorName"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	PageCount     int            `json:"pageCount"`
	TemplateID    *string        `json:"templateId"`
	TemplateName  string         `json:"templateName,omitempty"`
	Metadata      datatypes.JSON `json:"metadata"`
}

func toVerifiedCertificate(cert *model.GeneratedCertificate) VerifiedCertificate {
	verified := VerifiedCertificate{
		ID:            cert.ID,
		ProfessorID:   cert.ProfessorID,
		ProfessorName: cert.ProfessorName,
		GeneratedAt:   cert.GeneratedAt,
		PageCount:     cert.PageCount,
		TemplateID:    cert.TemplateID,
		Metadata:      cert.Metadata,
	}
	if cert.Template != nil {
		verified.TemplateName = cert.Template.Name
	}
	return verified
}

func (vc VerifyController) verify(ctx *gin.Context, code string) {
	cert, err := vc.app.Issuer.Verify(ctx, code)
	if err != nil {
		if errors.Is(err, issuer.ErrCertificateNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Certificate not found", util.GenerateErrorMessages(err, "verificationCode"), gin.H{
				"valid": false,
			})
			return
		}
		vc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to verify certificate", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"valid":       true,
		"certificate": toVerifiedCertificate(cert),
	})
}

func (vc VerifyController) VerifyByCode(ctx *gin.Context) {
	vc.verify(ctx, ctx.Param("code"))
}

func (vc VerifyController) VerifyByBody(ctx *gin.Context) {
	type Request struct {
		VerificationCode string `json:"verificationCode" form:"verificationCode" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	vc.verify(ctx, body.VerificationCode)
}

// QRCode serves the verification link of a valid code as an SVG QR code.
func (vc VerifyController) QRCode(ctx *gin.Context) {
	cert, err := vc.app.Issuer.Verify(ctx, ctx.Param("code"))
	if err != nil {
		if errors.Is(err, issuer.ErrCertificateNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Certificate not found", util.GenerateErrorMessages(err, "verificationCode"), nil)
			return
		}
		vc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to verify certificate", util.GenerateErrorMessages(err), nil)
		return
	}

	opts, err := cert.Options()
	if err != nil || opts.VerificationURL == "" {
		opts.VerificationURL = vc.app.Config.Certificate.VERIFICATION_URL
	}

	svg, err := facultycert.QRCodeSVG(opts.VerificationLink(cert.VerificationCode))
	if err != nil {
		vc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to render QR code", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.Header("Cache-Control", "public, max-age=86400")
	ctx.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

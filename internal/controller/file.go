package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
)

type FileController struct {
	*baseController
}

// ServeFile streams a stored object such as a template logo.
func (fc FileController) ServeFile(ctx *gin.Context) {
	user, ok := fc.mustAuthUser(ctx)
	if !ok {
		return
	}

	file, err := fc.app.Repository.File.GetById(ctx, nil, ctx.Param("fileId"))
	if err != nil {
		fc.respondRepoError(ctx, err, "File not found", "Failed to get file")
		return
	}

	// Certificates go through the download route, which checks ownership
	if strings.HasPrefix(file.UniqueFileName, constant.CERTIFICATE_DIRECTORY+"/") && !fc.can(user, constant.CertificateReadAny) {
		forbidden(ctx, ErrReadOthersCertificate)
		return
	}

	object, err := file.Open(ctx, fc.app.S3)
	if err != nil {
		fc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Error getting object", util.GenerateErrorMessages(err), nil)
		return
	}
	defer object.Close()

	ctx.DataFromReader(http.StatusOK, file.Size, file.ContentType, object, map[string]string{
		"Content-Disposition": fmt.Sprintf(`inline; filename="%s"`, file.ToBaseFilename()),
	})
}

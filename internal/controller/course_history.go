package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/importer"
	"github.com/SeakMengs/FacultyCert/internal/repository"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"github.com/gin-gonic/gin"
)

type CourseHistoryController struct {
	*baseController
}

const (
	ErrImportFileRequired = "import file is required"
	ErrImportFileTooLarge = "import file must be at most %d MB"
	ErrNoLinkedProfessor  = "your account is not linked to a professor id"
)

type TermItem struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

func (chc CourseHistoryController) GetCourseHistories(ctx *gin.Context) {
	type Request struct {
		pageQuery
		ProfessorID string `form:"professorId" binding:"omitempty,max=9"`
		Professor   string `form:"professor" binding:"omitempty,max=200"`
		Term        string `form:"term" binding:"omitempty,termCode"`
	}
	var query Request

	user, ok := chc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	filter := repository.CourseHistoryFilter{
		ProfessorID: query.ProfessorID,
		Professor:   query.Professor,
		Term:        query.Term,
	}

	// Professors only see their own courses
	if !chc.can(user, constant.CourseHistoryReadAny) {
		if user.ProfessorID == "" {
			forbidden(ctx, ErrNoLinkedProfessor)
			return
		}
		filter.ProfessorID = user.ProfessorID
		filter.Professor = ""
	}

	page, pageSize := query.normalized()
	histories, total, err := chc.app.Repository.CourseHistory.List(ctx, nil, filter, page, pageSize)
	if err != nil {
		chc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get course histories", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponsePaginated(ctx, histories, total, page, pageSize)
}

func (chc CourseHistoryController) GetProfessors(ctx *gin.Context) {
	professors, err := chc.app.Repository.CourseHistory.ListProfessors(ctx, nil)
	if err != nil {
		chc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get professors", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"professors": professors,
	})
}

func (chc CourseHistoryController) GetTerms(ctx *gin.Context) {
	type Request struct {
		From string `form:"from" binding:"required,termCode"`
		To   string `form:"to" binding:"required,termCode"`
	}
	var query Request

	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	codes, err := facultycert.TermRange(query.From, query.To)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid term range", util.GenerateErrorMessages(err, "from"), nil)
		return
	}

	terms := make([]TermItem, len(codes))
	for i, code := range codes {
		terms[i] = TermItem{Code: code, Label: facultycert.FormatTermLabel(code)}
	}

	util.ResponseSuccess(ctx, gin.H{
		"terms": terms,
	})
}

func (chc CourseHistoryController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "No file uploaded", util.GenerateErrorMessages(errors.New(ErrImportFileRequired), "file"), nil)
		return
	}

	if fileHeader.Size > constant.MAX_IMPORT_FILE_SIZE {
		util.ResponseFailed(ctx, http.StatusBadRequest, "File too large", util.GenerateErrorMessages(fmt.Errorf(ErrImportFileTooLarge, constant.MAX_IMPORT_FILE_SIZE>>20), "file"), nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		chc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer src.Close()

	result, err := chc.app.Importer.Import(ctx, src, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) || errors.Is(err, importer.ErrMissingColumns) || errors.Is(err, importer.ErrNoData) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid import file", util.GenerateErrorMessages(err, "file"), nil)
			return
		}
		chc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to import course histories", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, result)
}

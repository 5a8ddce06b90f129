package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/issuer"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TemplateController struct {
	*baseController
}

const (
	ErrTemplateImageTooLarge = "%s must be at most %d MB"
	ErrTemplateImageType     = "%s must be a PNG or JPEG image"
)

// Multipart fields carrying the template images.
var templateImageFields = []string{"logo", "signature", "background"}

// templateForm binds both create and update, nil pointers are left untouched on update.
type templateForm struct {
	Name                *string  `json:"name" form:"name" binding:"omitempty,strNotEmpty,max=100"`
	Description         *string  `json:"description" form:"description" binding:"omitempty,max=2000"`
	LayoutType          *string  `json:"layoutType" form:"layoutType" binding:"omitempty,oneof=standard formal modern minimal"`
	DepartmentName      *string  `json:"departmentName" form:"departmentName" binding:"omitempty,max=200"`
	UniversityName      *string  `json:"universityName" form:"universityName" binding:"omitempty,max=200"`
	Address             *string  `json:"address" form:"address" binding:"omitempty,max=1000"`
	TitleText           *string  `json:"titleText" form:"titleText" binding:"omitempty,max=300"`
	RecipientLine       *string  `json:"recipientLine" form:"recipientLine" binding:"omitempty,max=300"`
	IntroText           *string  `json:"introText" form:"introText" binding:"omitempty,max=5000"`
	CoursesIntro        *string  `json:"coursesIntro" form:"coursesIntro" binding:"omitempty,max=2000"`
	CurrentCoursesIntro *string  `json:"currentCoursesIntro" form:"currentCoursesIntro" binding:"omitempty,max=2000"`
	ClosingText         *string  `json:"closingText" form:"closingText" binding:"omitempty,max=5000"`
	SignOff             *string  `json:"signOff" form:"signOff" binding:"omitempty,max=100"`
	SecretaryName       *string  `json:"secretaryName" form:"secretaryName" binding:"omitempty,max=200"`
	SecretaryTitle      *string  `json:"secretaryTitle" form:"secretaryTitle" binding:"omitempty,max=200"`
	UniversityMotto     *string  `json:"universityMotto" form:"universityMotto" binding:"omitempty,max=300"`
	Place               *string  `json:"place" form:"place" binding:"omitempty,max=200"`
	VerificationText    *string  `json:"verificationText" form:"verificationText" binding:"omitempty,max=1000"`
	PrimaryColor        *string  `json:"primaryColor" form:"primaryColor" binding:"omitempty,hexColor"`
	SecondaryColor      *string  `json:"secondaryColor" form:"secondaryColor" binding:"omitempty,hexColor"`
	FontFamily          *string  `json:"fontFamily" form:"fontFamily" binding:"omitempty,max=100"`
	IncludeCourseTable  *bool    `json:"includeCourseTable" form:"includeCourseTable"`
	TableFields         []string `json:"tableFields" form:"tableFields" binding:"omitempty,unique,dive,oneof=periodo materia clave nrc fecha_inicio fecha_fin hr_cont"`
	IncludeQRByDefault  *bool    `json:"includeQrByDefault" form:"includeQrByDefault"`
	IsActive            *bool    `json:"isActive" form:"isActive"`
	IsDefault           *bool    `json:"isDefault" form:"isDefault"`
}

func (f templateForm) tableFields() []facultycert.Field {
	fields := make([]facultycert.Field, len(f.TableFields))
	for i, name := range f.TableFields {
		fields[i] = facultycert.Field(name)
	}
	return fields
}

// updates lists the columns the form sets, keyed by column name.
func (f templateForm) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	strs := map[string]*string{
		"name":                  f.Name,
		"description":           f.Description,
		"layout_type":           f.LayoutType,
		"department_name":       f.DepartmentName,
		"university_name":       f.UniversityName,
		"address":               f.Address,
		"title_text":            f.TitleText,
		"recipient_line":        f.RecipientLine,
		"intro_text":            f.IntroText,
		"courses_intro":         f.CoursesIntro,
		"current_courses_intro": f.CurrentCoursesIntro,
		"closing_text":          f.ClosingText,
		"sign_off":              f.SignOff,
		"secretary_name":        f.SecretaryName,
		"secretary_title":       f.SecretaryTitle,
		"university_motto":      f.UniversityMotto,
		"place":                 f.Place,
		"verification_text":     f.VerificationText,
		"primary_color":         f.PrimaryColor,
		"secondary_color":       f.SecondaryColor,
		"font_family":           f.FontFamily,
	}
	for column, value := range strs {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}

	bools := map[string]*bool{
		"include_course_table":  f.IncludeCourseTable,
		"include_qr_by_default": f.IncludeQRByDefault,
		"is_active":             f.IsActive,
	}
	for column, value := range bools {
		if value != nil {
			updates[column] = *value
		}
	}

	if f.TableFields != nil {
		updates["table_fields"] = model.FieldsToJSON(f.tableFields())
	}

	return updates
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func (f templateForm) toModel() model.CertificateTemplate {
	str := func(p *string, fallback string) string {
		return strings.TrimSpace(deref(p, fallback))
	}

	return model.CertificateTemplate{
		Name:                str(f.Name, ""),
		Description:         str(f.Description, ""),
		LayoutType:          str(f.LayoutType, string(facultycert.LayoutStandard)),
		DepartmentName:      str(f.DepartmentName, ""),
		UniversityName:      str(f.UniversityName, ""),
		Address:             str(f.Address, ""),
		TitleText:           str(f.TitleText, ""),
		RecipientLine:       str(f.RecipientLine, ""),
		IntroText:           str(f.IntroText, ""),
		CoursesIntro:        str(f.CoursesIntro, ""),
		CurrentCoursesIntro: str(f.CurrentCoursesIntro, ""),
		ClosingText:         str(f.ClosingText, ""),
		SignOff:             str(f.SignOff, ""),
		SecretaryName:       str(f.SecretaryName, ""),
		SecretaryTitle:      str(f.SecretaryTitle, ""),
		UniversityMotto:     str(f.UniversityMotto, ""),
		Place:               str(f.Place, ""),
		VerificationText:    str(f.VerificationText, ""),
		PrimaryColor:        str(f.PrimaryColor, "#1F3A5F"),
		SecondaryColor:      str(f.SecondaryColor, "#E8EEF5"),
		FontFamily:          str(f.FontFamily, ""),
		IncludeCourseTable:  deref(f.IncludeCourseTable, true),
		TableFields:         model.FieldsToJSON(f.tableFields()),
		IncludeQRByDefault:  deref(f.IncludeQRByDefault, true),
		IsActive:            deref(f.IsActive, true),
		IsDefault:           deref(f.IsDefault, false),
	}
}

func (tc TemplateController) GetTemplates(ctx *gin.Context) {
	user, ok := tc.mustAuthUser(ctx)
	if !ok {
		return
	}

	// Inactive templates are only listed for administrators
	activeOnly := !tc.can(user, constant.TemplateManage) || ctx.Query("all") != "true"
	templates, err := tc.app.Repository.Template.List(ctx, nil, activeOnly)
	if err != nil {
		tc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get templates", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"templates": templates,
	})
}

func (tc TemplateController) GetTemplateById(ctx *gin.Context) {
	template, err := tc.app.Repository.Template.GetById(ctx, nil, ctx.Param("templateId"))
	if err != nil {
		tc.respondRepoError(ctx, err, "Template not found", "Failed to get template")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"template": template,
	})
}

func (tc TemplateController) CreateTemplate(ctx *gin.Context) {
	var body templateForm

	user, ok := tc.mustAuthUser(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New("name is required"), "name"), nil)
		return
	}

	template := body.toModel()
	template.ID = uuid.NewString()
	template.CreatedByID = &user.ID

	images, err := tc.uploadTemplateImages(ctx, template.ID)
	if err != nil {
		return
	}
	template.LogoFileID = images["logo"]
	template.SignatureFileID = images["signature"]
	template.BackgroundFileID = images["background"]

	if err := tc.app.Repository.Template.Create(ctx, nil, &template); err != nil {
		tc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create template", util.GenerateErrorMessages(err), nil)
		return
	}

	created, err := tc.app.Repository.Template.GetById(ctx, nil, template.ID)
	if err != nil {
		tc.respondRepoError(ctx, err, "Template not found", "Failed to get template")
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"template": created,
	})
}

func (tc TemplateController) UpdateTemplate(ctx *gin.Context) {
	var body templateForm
	templateId := ctx.Param("templateId")

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	existing, err := tc.app.Repository.Template.GetById(ctx, nil, templateId)
	if err != nil {
		tc.respondRepoError(ctx, err, "Template not found", "Failed to get template")
		return
	}

	images, err := tc.uploadTemplateImages(ctx, templateId)
	if err != nil {
		return
	}

	updates := body.updates()
	replaced := map[string]*model.File{
		"logo":       existing.LogoFile,
		"signature":  existing.SignatureFile,
		"background": existing.BackgroundFile,
	}
	for field, fileId := range images {
		updates[field+"_file_id"] = *fileId
	}

	if err := tc.app.Repository.Template.Update(ctx, nil, templateId, updates); err != nil {
		tc.respondRepoError(ctx, err, "Template not found", "Failed to update template")
		return
	}

	for field := range images {
		tc.removeFile(ctx, replaced[field])
	}

	// Deactivating the default keeps the flag, but GetDefault only returns active templates
	if body.IsDefault != nil && *body.IsDefault {
		if err := tc.app.Repository.Template.SetDefault(ctx, nil, templateId); err != nil {
			tc.respondRepoError(ctx, err, "Template not found", "Failed to set default template")
			return
		}
	}

	template, err := tc.app.Repository.Template.GetById(ctx, nil, templateId)
	if err != nil {
		tc.respondRepoError(ctx, err, "Template not found", "Failed to get template")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"template": template,
	})
}

func (tc TemplateController) DeleteTemplate(ctx *gin.Context) {
	templateId := ctx.Param("templateId")

	template, err := tc.app.Repository.Template.GetById(ctx, nil, templateId)
	if err != nil {
		tc.respondRepoError(ctx, err, "Template not found", "Failed to get template")
		return
	}

	if err := tc.app.Repository.Template.Delete(ctx, nil, templateId); err != nil {
		tc.respondRepoError(ctx, err, "Template not found", "Failed to delete template")
		return
	}

	for _, file := range []*model.File{template.LogoFile, template.SignatureFile, template.BackgroundFile} {
		tc.removeFile(ctx, file)
	}

	util.ResponseSuccess(ctx, nil)
}

func (tc TemplateController) SetDefaultTemplate(ctx *gin.Context) {
	templateId := ctx.Param("templateId")

	if err := tc.app.Repository.Template.SetDefault(ctx, nil, templateId); err != nil {
		tc.respondRepoError(ctx, err, "Template not found", "Failed to set default template")
		return
	}

	template, err := tc.app.Repository.Template.GetById(ctx, nil, templateId)
	if err != nil {
		tc.respondRepoError(ctx, err, "Template not found", "Failed to get template")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"template": template,
	})
}

// PreviewTemplate renders the template with sample data. Nothing is stored.
func (tc TemplateController) PreviewTemplate(ctx *gin.Context) {
	pdf, err := tc.app.Issuer.Preview(ctx, ctx.Param("templateId"))
	if err != nil {
		if errors.Is(err, issuer.ErrTemplateNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Template not found", util.GenerateErrorMessages(err, "templateId"), nil)
			return
		}
		tc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to render preview", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.Header("Content-Disposition", `inline; filename="template_preview.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// uploadTemplateImages stores the images sent with the form and returns their file ids by
// field. On failure the response is already written.
func (tc TemplateController) uploadTemplateImages(ctx *gin.Context, templateId string) (map[string]*string, error) {
	ids := map[string]*string{}

	for _, field := range templateImageFields {
		fileHeader, err := ctx.FormFile(field)
		if err != nil {
			// not sent
			continue
		}

		if fileHeader.Size > constant.MAX_TEMPLATE_IMAGE_SIZE {
			err := fmt.Errorf(ErrTemplateImageTooLarge, field, constant.MAX_TEMPLATE_IMAGE_SIZE>>20)
			util.ResponseFailed(ctx, http.StatusBadRequest, "Image too large", util.GenerateErrorMessages(err, field), nil)
			return nil, err
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType != "image/png" && contentType != "image/jpeg" {
			err := fmt.Errorf(ErrTemplateImageType, field)
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid image", util.GenerateErrorMessages(err, field), nil)
			return nil, err
		}

		info, err := util.UploadFileToS3ByFileHeader(ctx, fileHeader, &util.FileUploadOptions{
			DirectoryPath: util.GetTemplateDirectoryPath(templateId),
			UniquePrefix:  true,
			Bucket:        tc.app.Config.Minio.BUCKET,
			S3:            tc.app.S3,
		})
		if err != nil {
			tc.app.Logger.Error(err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to upload image", util.GenerateErrorMessages(err, field), nil)
			return nil, err
		}

		file, err := tc.app.Repository.File.Create(ctx, nil, &model.File{
			FileName:       fileHeader.Filename,
			UniqueFileName: info.Key,
			BucketName:     info.Bucket,
			Size:           info.Size,
			ContentType:    contentType,
		})
		if err != nil {
			tc.app.Logger.Error(err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save image", util.GenerateErrorMessages(err, field), nil)
			return nil, err
		}

		ids[field] = &file.ID
	}

	return ids, nil
}

// removeFile drops a replaced or orphaned image, failures are only logged.
func (tc TemplateController) removeFile(ctx *gin.Context, file *model.File) {
	if file == nil {
		return
	}
	if err := tc.app.Repository.File.Delete(ctx, nil, file.ID); err != nil {
		tc.app.Logger.Warnf("failed to delete file record %s: %v", file.ID, err)
	}
	if err := file.Delete(ctx, tc.app.S3); err != nil {
		tc.app.Logger.Warnf("failed to delete object %s: %v", file.UniqueFileName, err)
	}
}

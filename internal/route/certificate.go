package route

import (
	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/controller"
	"github.com/SeakMengs/FacultyCert/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_CourseHistories(r *gin.RouterGroup, chc *controller.CourseHistoryController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/course-histories")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", chc.GetCourseHistories)
		v1.GET("/terms", chc.GetTerms)
		v1.GET("/professors", middleware.RequirePermission(constant.CourseHistoryReadAny), chc.GetProfessors)
		v1.POST("/import", middleware.RequirePermission(constant.CourseHistoryImport), chc.Import)
	}
}

func V1_Templates(r *gin.RouterGroup, tc *controller.TemplateController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/templates")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", tc.GetTemplates)
		v1.GET("/:templateId", tc.GetTemplateById)
		v1.GET("/:templateId/preview", tc.PreviewTemplate)

		manage := v1.Group("", middleware.RequirePermission(constant.TemplateManage))
		manage.POST("", tc.CreateTemplate)
		manage.PATCH("/:templateId", tc.UpdateTemplate)
		manage.DELETE("/:templateId", tc.DeleteTemplate)
		manage.POST("/:templateId/default", tc.SetDefaultTemplate)
	}
}

func V1_Certificates(r *gin.RouterGroup, cc *controller.CertificateController, vc *controller.VerifyController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/certificates")
	{
		v1.POST("/verify", vc.VerifyByBody)

		authed := v1.Group("", middleware.AuthMiddleware)
		authed.GET("", cc.GetCertificates)
		authed.POST("/generate", cc.Generate)
		authed.GET("/:certificateId/download", cc.Download)
		authed.POST("/bulk-generate", middleware.RequirePermission(constant.CertificateGenerateAny), cc.BulkGenerate)
		authed.POST("/:certificateId/regenerate", middleware.RequirePermission(constant.CertificateRegenerate), cc.Regenerate)
	}
}

func V1_Verify(r *gin.RouterGroup, vc *controller.VerifyController) {
	v1 := r.Group("/v1/verify")
	{
		v1.GET("/:code", vc.VerifyByCode)
		v1.GET("/:code/qr.svg", vc.QRCode)
	}
}

func V1_File(r *gin.RouterGroup, fileController *controller.FileController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/files")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("/:fileId", fileController.ServeFile)
	}
}

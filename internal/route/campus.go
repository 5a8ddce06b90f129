package route

import (
	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/controller"
	"github.com/SeakMengs/FacultyCert/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_News(r *gin.RouterGroup, nc *controller.NewsController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/news")
	{
		v1.GET("", middleware.OptionalAuthMiddleware, nc.GetNews)
		v1.GET("/:newsId", middleware.OptionalAuthMiddleware, nc.GetNewsById)

		manage := v1.Group("", middleware.AuthMiddleware, middleware.RequirePermission(constant.NewsManage))
		manage.POST("", nc.CreateNews)
		manage.PATCH("/:newsId", nc.UpdateNews)
		manage.POST("/:newsId/publish", nc.PublishNews)
		manage.DELETE("/:newsId", nc.DeleteNews)
	}
}

func V1_Events(r *gin.RouterGroup, ec *controller.EventController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/events")
	{
		v1.GET("", ec.GetEvents)
		v1.GET("/upcoming", ec.GetUpcoming)
		v1.GET("/calendar.ics", ec.Calendar)
		v1.GET("/:eventId", ec.GetEventById)

		manage := v1.Group("", middleware.AuthMiddleware, middleware.RequirePermission(constant.EventManage))
		manage.POST("", ec.CreateEvent)
		manage.PATCH("/:eventId", ec.UpdateEvent)
		manage.DELETE("/:eventId", ec.DeleteEvent)
	}
}

func V1_Schedules(r *gin.RouterGroup, sc *controller.ScheduleController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/schedules")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", sc.GetSchedules)
		v1.GET("/:scheduleId", sc.GetScheduleById)

		manage := v1.Group("", middleware.RequirePermission(constant.ScheduleManage))
		manage.POST("", sc.CreateSchedule)
		manage.PATCH("/:scheduleId", sc.UpdateSchedule)
		manage.DELETE("/:scheduleId", sc.DeleteSchedule)
	}
}

func V1_SupportRequests(r *gin.RouterGroup, src *controller.SupportRequestController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/support-requests")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", src.GetSupportRequests)
		v1.POST("", src.CreateSupportRequest)
		v1.GET("/:requestId", src.GetSupportRequestById)
		v1.POST("/:requestId/close", src.Close)

		manage := v1.Group("", middleware.RequirePermission(constant.SupportRequestManage))
		manage.POST("/:requestId/assign", src.Assign)
		manage.POST("/:requestId/resolve", src.Resolve)
	}
}

func V1_Surveys(r *gin.RouterGroup, sc *controller.SurveyController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/surveys")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", sc.GetSurveys)
		v1.GET("/:surveyId", sc.GetSurveyById)
		v1.POST("/:surveyId/responses", sc.Respond)

		manage := v1.Group("", middleware.RequirePermission(constant.SurveyManage))
		manage.POST("", sc.CreateSurvey)
		manage.PATCH("/:surveyId", sc.UpdateSurvey)
		manage.DELETE("/:surveyId", sc.DeleteSurvey)
		manage.GET("/:surveyId/results", sc.Results)
	}
}

package route

import (
	"github.com/SeakMengs/FacultyCert/internal/controller"
	"github.com/SeakMengs/FacultyCert/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Me(r *gin.RouterGroup, userController *controller.UserController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/me")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", userController.Me)
	}
}

func V1_Users(r *gin.RouterGroup, userController *controller.UserController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/users")
	v1.Use(middleware.AuthMiddleware, middleware.RequireAdmin)
	{
		v1.GET("", userController.GetUsers)
		v1.GET("/:userId", userController.GetUserById)
		v1.PATCH("/:userId/professor-id", userController.SetProfessorID)
	}
}

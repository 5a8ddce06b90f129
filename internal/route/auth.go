package route

import (
	"github.com/SeakMengs/FacultyCert/internal/controller"
	"github.com/SeakMengs/FacultyCert/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Auth(r *gin.RouterGroup, authController *controller.AuthController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/auth")
	{
		v1.POST("/register", authController.Register)
		v1.POST("/login", authController.Login)
		v1.POST("/logout", middleware.AuthMiddleware, authController.Logout)
		v1.POST("/jwt/access/verify/:token", authController.VerifyJwtAccessToken)
		v1.POST("/jwt/refresh", authController.RefreshAccessToken)
	}
}

func V1_OAuth(r *gin.RouterGroup, oauthController *controller.OAuthController) {
	v1 := r.Group("/v1/oauth")
	{
		v1.GET("/google", oauthController.ContinueWithGoogle)
		v1.GET("/google/callback", oauthController.ContinueWithGoogleCallback)
	}
}

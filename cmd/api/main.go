package main

import (
	appcontext "github.com/SeakMengs/FacultyCert/internal/app_context"
	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/controller"
	"github.com/SeakMengs/FacultyCert/internal/env"
	"github.com/SeakMengs/FacultyCert/internal/middleware"
	ratelimiter "github.com/SeakMengs/FacultyCert/internal/rate_limiter"
	"github.com/SeakMengs/FacultyCert/internal/route"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	app, cleanup, err := appcontext.Bootstrap(&cfg, logger)
	if err != nil {
		logger.Panic(err)
	}
	defer cleanup()
	logger.Info("Backing services connected")

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		util.RegisterValidations(v)
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	_middleware := middleware.NewMiddleware(app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Refresh", "X-Requested-With", "Accept"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", "Retry-After", "X-Success-Count", "X-Error-Count"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(app)

	r.GET("/", _controller.Index.Index)

	rApi := r.Group("/api")

	route.V1_Auth(rApi, _controller.Auth, _middleware)
	route.V1_OAuth(rApi, _controller.OAuth)
	route.V1_Me(rApi, _controller.User, _middleware)
	route.V1_Users(rApi, _controller.User, _middleware)
	route.V1_CourseHistories(rApi, _controller.CourseHistory, _middleware)
	route.V1_Templates(rApi, _controller.Template, _middleware)
	route.V1_Certificates(rApi, _controller.Certificate, _controller.Verify, _middleware)
	route.V1_Verify(rApi, _controller.Verify)
	route.V1_File(rApi, _controller.File, _middleware)
	route.V1_News(rApi, _controller.News, _middleware)
	route.V1_Events(rApi, _controller.Event, _middleware)
	route.V1_Schedules(rApi, _controller.Schedule, _middleware)
	route.V1_SupportRequests(rApi, _controller.SupportRequest, _middleware)
	route.V1_Surveys(rApi, _controller.Survey, _middleware)

	if err := r.Run("0.0.0.0:" + cfg.Port); err != nil {
		logger.Panicf("Error running server: %v", err)
	}
}

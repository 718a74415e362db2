package server

import (
	"time"

	httpHandler "transcript-app/interfaces/http"
	"transcript-app/interfaces/middleware"
	"transcript-app/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups the route handlers. GoogleAuth is optional.
type Handlers struct {
	Auth       httpHandler.IAuthHandler
	GoogleAuth httpHandler.IGoogleAuthHandler
	Profile    httpHandler.IProfileHandler
	Video      httpHandler.IVideoHandler
	Transcript httpHandler.ITranscriptHandler
	Memory     httpHandler.IMemoryHandler
	AISettings httpHandler.IAISettingsHandler
	Health     httpHandler.IHealthHandler
}

type RouterConfig struct {
	ClientURL  string
	CookieName string
	Limiter    *middleware.ClientLimiter
}

func InitiateRouter(cfg RouterConfig, authUsecase usecase.IAuthUsecase, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.Session(authUsecase, cfg.CookieName))

	router.GET("/healthz", h.Health.Healthz)

	if h.GoogleAuth != nil {
		router.GET("/auth/google", h.GoogleAuth.Login)
		router.GET("/auth/google/callback", h.GoogleAuth.Callback)
	}

	api := router.Group("api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.SignUp)
		auth.POST("/signin", h.Auth.SignIn)
		auth.POST("/google", h.Auth.GoogleSignIn)
		auth.GET("/me", h.Auth.Me)
		auth.POST("/signout", h.Auth.SignOut)
	}

	youtube := api.Group("")
	if cfg.Limiter != nil {
		youtube.Use(middleware.RateLimit(cfg.Limiter))
	}
	{
		youtube.POST("/video-info", h.Video.VideoInfo)
		youtube.POST("/transcript", h.Video.Transcript)
		youtube.POST("/channel-videos", h.Video.ChannelVideos)
	}

	private := api.Group("")
	private.Use(middleware.RequireAuth())
	{
		private.GET("/user/profile", h.Profile.GetProfile)
		private.PUT("/user/profile", h.Profile.UpdateProfile)

		private.POST("/transcripts", h.Transcript.Save)
		private.GET("/transcripts", h.Transcript.List)
		private.DELETE("/transcripts/:id", h.Transcript.Delete)
		private.DELETE("/transcripts", h.Transcript.DeleteAll)

		private.GET("/ai-settings", h.AISettings.Get)
		private.PUT("/ai-settings", h.AISettings.Update)

		private.POST("/memories", h.Memory.Save)
		private.GET("/memories", h.Memory.List)
		private.DELETE("/memories/:id", h.Memory.Delete)
	}

	return router
}

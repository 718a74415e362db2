package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	youtubeclient "transcript-app/infrastructure/clients/youtube"
	"transcript-app/infrastructure/configuration"
	"transcript-app/infrastructure/logger"
	"transcript-app/infrastructure/persistence"
	httpHandler "transcript-app/interfaces/http"
	"transcript-app/interfaces/middleware"
	"transcript-app/server"
	"transcript-app/usecase"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// OS env still has precedence over the files
	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.ApplyDefaults(&configuration.C)
	cfg := configuration.C
	app := cfg.App
	if app.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	mongoClient, err := persistence.NewMongoDb(ctx, cfg.Database.Mongo.URI)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("MongoDB connection failed")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	db := mongoClient.Database(cfg.Database.Mongo.Name)
	if err := persistence.EnsureIndexes(ctx, db); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed ensuring MongoDB indexes")
	}
	logger.GetLogger().WithField("database", cfg.Database.Mongo.Name).Info("MongoDB connected successfully")

	userRepository := persistence.NewUserRepository(db)
	sessionRepository := persistence.NewSessionRepository(db)
	transcriptRepository := persistence.NewTranscriptRepository(db)
	memoryRepository := persistence.NewMemoryRepository(db)
	aiSettingsRepository := persistence.NewAISettingsRepository(db)

	youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{APIKey: cfg.YouTube.APIKey})
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Failed to initialize YouTube client")
	}
	logger.GetLogger().WithField("dataAPI", cfg.YouTube.APIKey != "").Info("YouTube client initialized")

	sessionMaxAge := time.Duration(cfg.Session.MaxAgeHours) * time.Hour
	authUsecase := usecase.NewAuthUsecase(userRepository, sessionRepository, cfg.Session.Secret, sessionMaxAge)
	userUsecase := usecase.NewUserUsecase(userRepository)
	videoUsecase := usecase.NewVideoUsecase(youtubeClient)
	transcriptUsecase := usecase.NewTranscriptUsecase(transcriptRepository)
	memoryUsecase := usecase.NewMemoryUsecase(memoryRepository)
	aiSettingsUsecase := usecase.NewAISettingsUsecase(aiSettingsRepository)

	cookies := httpHandler.CookieConfig{
		Name:   cfg.Session.CookieName,
		MaxAge: sessionMaxAge,
		Secure: app.IsProduction(),
	}
	handlers := server.Handlers{
		Auth:       httpHandler.NewAuthHandler(authUsecase, cookies),
		Profile:    httpHandler.NewProfileHandler(userUsecase),
		Video:      httpHandler.NewVideoHandler(videoUsecase),
		Transcript: httpHandler.NewTranscriptHandler(transcriptUsecase),
		Memory:     httpHandler.NewMemoryHandler(memoryUsecase),
		AISettings: httpHandler.NewAISettingsHandler(aiSettingsUsecase),
		Health: httpHandler.NewHealthHandler(func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		}),
	}
	if cfg.Google.ClientID != "" && cfg.Google.ClientSecret != "" {
		handlers.GoogleAuth = httpHandler.NewGoogleAuthHandler(httpHandler.GoogleAuthConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			ClientURL:    app.ClientURL,
		}, authUsecase, cookies)
	} else {
		logger.GetLogger().Info("Google OAuth credentials not configured - server-side Google sign in disabled")
	}

	router := server.InitiateRouter(server.RouterConfig{
		ClientURL:  app.ClientURL,
		CookieName: cfg.Session.CookieName,
		Limiter:    middleware.NewClientLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst),
	}, authUsecase, handlers)

	logger.GetLogger().WithFields(map[string]interface{}{"port": app.Port, "tls": app.TLSEnabled, "env": app.Env}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", app.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if app.TLSEnabled {
			if app.TLSCertFile == "" || app.TLSKeyFile == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": app.TLSCertFile, "key": app.TLSKeyFile}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(app.TLSCertFile, app.TLSKeyFile); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

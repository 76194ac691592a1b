package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cvstudio/internal/ai"
	"cvstudio/internal/api/middleware"
	"cvstudio/internal/auth"
	"cvstudio/internal/config"
	"cvstudio/internal/storage"
)

// RegisterRoutes wires every handler under /v1.
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	storageClient *storage.Client,
	aiClient *ai.Client,
) {
	authHandler := NewAuthHandler(
		db, authService, redisClient, logger,
		cfg.Auth.LoginRateLimitPerHour,
		cfg.Auth.LoginLockThreshold,
		cfg.Auth.LoginLockTTL,
		cfg.Auth.CookieDomain,
	)
	cvHandler := NewCVHandler(db, asynqClient, storageClient, cfg.API.MaxCVs, cfg.Export.MaxRetry)
	templateHandler := NewTemplateHandler(redisClient)
	prefsHandler := NewPrefsHandler(redisClient)
	aiHandler := NewAIHandler(aiClient, redisClient)
	assetHandler := NewAssetHandler(db, storageClient, redisClient, logger, cfg.API.ClamdAddr, cfg.Assets)
	wsHandler := NewWsHandler(redisClient, authService, logger, cfg.API.AllowedOrigins)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		cvGroup := v1.Group("/cvs")
		cvGroup.Use(authMiddleware)
		{
			cvGroup.POST("", cvHandler.CreateCV)
			cvGroup.GET("", cvHandler.ListCVs)
			cvGroup.GET("/latest", cvHandler.GetLatestCV)
			cvGroup.GET("/:id", cvHandler.GetCV)
			cvGroup.PATCH("/:id", cvHandler.UpdateCV)
			cvGroup.DELETE("/:id", cvHandler.DeleteCV)
			cvGroup.POST("/:id/default", cvHandler.SetDefaultCV)
			cvGroup.POST("/:id/duplicate", cvHandler.DuplicateCV)
			cvGroup.POST("/:id/export", cvHandler.ExportCV)
			cvGroup.GET("/:id/download-link", cvHandler.GetDownloadLink)
		}

		templateGroup := v1.Group("/templates")
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
		}

		prefsGroup := v1.Group("/preferences")
		prefsGroup.Use(authMiddleware)
		{
			prefsGroup.GET("/editor", prefsHandler.GetEditorPrefs)
			prefsGroup.PUT("/editor", prefsHandler.UpdateEditorPrefs)
		}

		aiGroup := v1.Group("/ai")
		aiGroup.Use(authMiddleware)
		{
			aiGroup.POST("/analyze", aiHandler.Analyze)
			aiGroup.POST("/improve", aiHandler.ImproveText)
			aiGroup.POST("/match", aiHandler.MatchJob)
			aiGroup.POST("/extract", aiHandler.ExtractFromText)
		}

		assetGroup := v1.Group("/assets")
		assetGroup.Use(authMiddleware)
		{
			assetGroup.POST("/upload", assetHandler.UploadAsset)
			assetGroup.GET("", assetHandler.ListAssets)
			assetGroup.GET("/view", assetHandler.GetAssetURL)
			assetGroup.DELETE("", assetHandler.DeleteAsset)
		}

		// Worker-facing render endpoint; not reachable without the
		// shared secret.
		internalGroup := v1.Group("/internal")
		internalGroup.Use(middleware.InternalSecretMiddleware(cfg.API.InternalSecret))
		{
			internalGroup.GET("/cvs/:id/print-html", cvHandler.GetPrintHTML)
		}
	}
}

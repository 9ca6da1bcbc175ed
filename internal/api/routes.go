package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/auth"
	"resumeforge/internal/config"
	"resumeforge/internal/database"
	"resumeforge/internal/storage"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	asynqClient *asynq.Client,
	verifier *auth.Verifier,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	cfg *config.Config,
) {
	resumeStore := database.NewResumeStore(db)
	userStore := database.NewUserStore(db)

	resumeHandler := NewResumeHandler(resumeStore, asynqClient, storageClient, cfg.Limits.MaxResumesPerUser)
	templateHandler := NewTemplateHandler()
	contactHandler := NewContactHandler(db, asynqClient)
	printHandler := NewPrintHandler(db, storageClient, logger)
	wsHandler := NewWsHandler(redisClient, verifier, userStore, logger, cfg.API.AllowedOrigins)
	photoHandler := &PhotoHandler{
		Users:         userStore,
		Storage:       storageClient,
		Logger:        logger,
		RedisClient:   redisClient,
		ClamdAddr:     cfg.API.ClamdAddr,
		MaxBytes:      cfg.Limits.PhotoMaxBytes,
		UploadsPerDay: cfg.Limits.PhotoUploadsPerDay,
		MIMEWhitelist: []string{"image/png", "image/jpeg", "image/webp"},
	}

	authMiddleware := middleware.AuthMiddleware(verifier, userStore)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		v1.POST("/contact", contactHandler.SubmitContact)
		v1.POST("/newsletter", contactHandler.SubscribeNewsletter)

		templateGroup := v1.Group("/templates")
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
		}

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("/latest", resumeHandler.GetLatestResume)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.PATCH("/:id/sections", resumeHandler.EditSections)
			resumeGroup.GET("/:id/insights", resumeHandler.GetInsights)
			resumeGroup.POST("/:id/export", resumeHandler.ExportResume)
			resumeGroup.GET("/:id/export-link", resumeHandler.GetExportLink)
		}

		profileGroup := v1.Group("/profile")
		profileGroup.Use(authMiddleware)
		{
			profileGroup.POST("/photo", photoHandler.UploadPhoto)
			profileGroup.GET("/photo", photoHandler.GetPhotoURL)
		}

		internalGroup := v1.Group("/internal")
		internalGroup.Use(middleware.InternalSecretMiddleware(cfg.API.InternalSecret))
		{
			internalGroup.GET("/print/resumes/:id", printHandler.GetPrintData)
		}
	}
}

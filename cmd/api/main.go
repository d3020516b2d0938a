package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mechgenz/mechgenz-api/internal/handler"
	"github.com/mechgenz/mechgenz-api/internal/middleware"
	"github.com/mechgenz/mechgenz-api/internal/repository"
	"github.com/mechgenz/mechgenz-api/internal/service"
	"github.com/mechgenz/mechgenz-api/pkg/cache"
	"github.com/mechgenz/mechgenz-api/pkg/config"
	"github.com/mechgenz/mechgenz-api/pkg/database"
	"github.com/mechgenz/mechgenz-api/pkg/logger"
	corsmiddleware "github.com/mechgenz/mechgenz-api/pkg/middleware/cors"
	reqidmiddleware "github.com/mechgenz/mechgenz-api/pkg/middleware/requestid"
	"github.com/mechgenz/mechgenz-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	// The API boots even when Postgres is unreachable: public pages keep
	// rendering and admin endpoints answer 503 until the database is back.
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Warn("database unavailable, starting in degraded mode", zap.Error(err))
		db = nil
	}

	metricsSvc := service.NewMetricsService()

	cacheSvc := service.NewCacheService(nil, metricsSvc, cfg.Gallery.CacheTTL, logr, false)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			cacheSvc = service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metricsSvc, cfg.Gallery.CacheTTL, logr, true)
		}
	}

	uploadStore, err := storage.NewLocalStore(cfg.Uploads.UploadDir)
	if err != nil {
		logr.Fatal("failed to prepare upload directory", zap.Error(err))
	}
	imageStore, err := storage.NewLocalStore(cfg.Uploads.ImagesDir)
	if err != nil {
		logr.Fatal("failed to prepare images directory", zap.Error(err))
	}

	attachmentStager := service.NewStager(uploadStore, logr, service.StagerConfig{
		MaxFileSize:       cfg.Uploads.MaxFileSizeBytes,
		AllowedExtensions: cfg.Uploads.AllowedExtensions,
		ImageExtensions:   cfg.Uploads.ImageExtensions,
	})
	imageStager := service.NewStager(imageStore, logr, service.StagerConfig{
		MaxFileSize:       cfg.Uploads.MaxFileSizeBytes,
		AllowedExtensions: cfg.Uploads.ImageExtensions,
		ImageExtensions:   cfg.Uploads.ImageExtensions,
	})

	sender := service.NewResendSender(cfg.Email.ResendAPIKey)
	if sender == nil {
		logr.Warn("RESEND_API_KEY not set, email notifications disabled")
	}
	notifier := service.NewNotifier(sender, uploadStore, metricsSvc, logr, cfg.Email, cfg.Uploads.EmbedLimitBytes)

	var (
		contactSvc *service.ContactService
		gallerySvc *service.GalleryService
		adminSvc   *service.AdminService
	)
	if db != nil {
		contactSvc = service.NewContactService(repository.NewSubmissionRepository(db), attachmentStager, uploadStore, notifier, nil, metricsSvc, logr)
		gallerySvc = service.NewGalleryService(repository.NewGalleryRepository(db), imageStager, imageStore, cacheSvc, metricsSvc, logr, cfg.Gallery.CacheTTL)
		adminSvc = service.NewAdminService(repository.NewAdminRepository(db), logr)

		ctx := context.Background()
		if err := gallerySvc.EnsureSeeded(ctx); err != nil {
			logr.Warn("failed to seed gallery defaults", zap.Error(err))
		}
		if err := adminSvc.EnsureDefault(ctx); err != nil {
			logr.Warn("failed to ensure default admin account", zap.Error(err))
		}
	} else {
		contactSvc = service.NewContactService(nil, attachmentStager, uploadStore, notifier, nil, metricsSvc, logr)
		gallerySvc = service.NewGalleryService(nil, imageStager, imageStore, cacheSvc, metricsSvc, logr, cfg.Gallery.CacheTTL)
		adminSvc = service.NewAdminService(nil, logr)
	}

	contactHandler := handler.NewContactHandler(contactSvc, notifier)
	submissionHandler := handler.NewSubmissionHandler(contactSvc)
	galleryHandler := handler.NewGalleryHandler(gallerySvc)
	adminHandler := handler.NewAdminHandler(adminSvc)
	debugHandler := handler.NewDebugHandler(db, gallerySvc, contactSvc, metricsSvc, cfg)
	healthHandler := handler.NewHealthHandler(db, metricsSvc, cfg)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", healthHandler.Prometheus)

	r.Static("/uploads", uploadStore.Dir())
	r.Static("/images", imageStore.Dir())

	api := r.Group("/api")
	{
		api.POST("/contact", contactHandler.Submit)
		api.POST("/send-reply", contactHandler.SendReply)

		api.GET("/submissions", submissionHandler.List)
		api.GET("/submissions/export", submissionHandler.Export)
		api.PUT("/submissions/:id/status", submissionHandler.UpdateStatus)
		api.DELETE("/submissions/:id", submissionHandler.Delete)
		api.GET("/submissions/:id/file/:filename", submissionHandler.DownloadFile)
		api.GET("/stats", submissionHandler.Stats)

		api.GET("/website-images", galleryHandler.List)
		api.GET("/website-images/categories", galleryHandler.Categories)
		api.POST("/website-images/:id/upload", galleryHandler.Upload)
		api.PUT("/website-images/:id", galleryHandler.UpdateMetadata)
		api.DELETE("/website-images/:id/reset", galleryHandler.Reset)
		api.DELETE("/website-images/:id", galleryHandler.Delete)

		api.GET("/admin/profile", adminHandler.Profile)
		api.PUT("/admin/profile", adminHandler.UpdateProfile)
		api.POST("/admin/login", adminHandler.Login)

		api.GET("/email-config", debugHandler.EmailConfig)

		debug := api.Group("/debug")
		{
			debug.GET("/status", debugHandler.Status)
			debug.GET("/gallery", debugHandler.Gallery)
			debug.POST("/fix-missing-images", debugHandler.FixMissingFiles)
			debug.GET("/check-missing-files", debugHandler.CheckMissingFiles)
			debug.POST("/reinitialize-gallery", debugHandler.ReinitializeGallery)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

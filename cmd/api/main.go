package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/pmory/pmory-api/api/swagger"
	"github.com/pmory/pmory-api/internal/chat"
	"github.com/pmory/pmory-api/internal/handler"
	"github.com/pmory/pmory-api/internal/kv"
	"github.com/pmory/pmory-api/internal/mailer"
	"github.com/pmory/pmory-api/internal/middleware"
	"github.com/pmory/pmory-api/internal/service"
	"github.com/pmory/pmory-api/internal/store"
	"github.com/pmory/pmory-api/pkg/cache"
	"github.com/pmory/pmory-api/pkg/config"
	"github.com/pmory/pmory-api/pkg/database"
	"github.com/pmory/pmory-api/pkg/logger"
	corsmiddleware "github.com/pmory/pmory-api/pkg/middleware/cors"
	reqidmiddleware "github.com/pmory/pmory-api/pkg/middleware/requestid"
	"github.com/pmory/pmory-api/pkg/storage"
)

// @title PMory API
// @version 0.1.0
// @description Backend for the PMory club site
// @BasePath /api/v1
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kvStore, err := openKV(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to open kv store", "driver", cfg.Store.Driver, "error", err)
	}
	defer kvStore.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	content := store.New(kvStore, metricsSvc, logr)
	report, err := content.Load(ctx)
	if err != nil {
		logr.Sugar().Fatalw("failed to load collections", "error", err)
	}
	for key, state := range report {
		logr.Sugar().Infow("collection loaded", "key", key, "state", state)
	}

	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "dir", cfg.Exports.StorageDir, "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()

	verifier, err := service.NewSharedSecretVerifier(cfg.Session)
	if err != nil {
		logr.Sugar().Fatalw("failed to configure admin credentials", "error", err)
	}

	mailClient := mailer.NewClient(cfg.Mail, logr)
	chatClient := chat.NewClient(cfg.Chat)

	authSvc := service.NewAuthService(verifier, kvStore, validate, logr, cfg.Session)
	notifySvc := service.NewNotifyService(content, mailClient, cfg.Mail, cfg.Notify, metricsSvc, logr)
	mentorSvc := service.NewMentorService(content, validate, logr)
	jobSvc := service.NewJobService(content, notifySvc, validate, logr)
	subSvc := service.NewSubscriptionService(content, mailClient, cfg.Mail, metricsSvc, validate, logr)
	settingsSvc := service.NewSettingsService(content, validate, logr)
	exportSvc := service.NewExportService(content, files, signer, validate, logr, cfg.Exports)
	chatSvc := service.NewChatService(chatClient, validate, logr)

	notifySvc.Start(ctx)
	defer notifySvc.Stop()
	exportSvc.StartCleanup(ctx)

	authHandler := handler.NewAuthHandler(authSvc)
	mentorHandler := handler.NewMentorHandler(mentorSvc)
	jobHandler := handler.NewJobHandler(jobSvc)
	subHandler := handler.NewSubscriptionHandler(subSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	chatHandler := handler.NewChatHandler(chatSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/mentors", mentorHandler.ListPublic)
		api.POST("/mentors/:id/contact", mentorHandler.Contact)
		api.GET("/jobs", jobHandler.ListPublic)
		api.GET("/links", settingsHandler.Links)
		api.POST("/subscriptions", subHandler.Subscribe)
		api.GET("/subscriptions/status", subHandler.Status)
		api.POST("/chat", chatHandler.Ask)
		api.GET("/export/:token", exportHandler.Download)
		api.POST("/admin/login", authHandler.Login)

		admin := api.Group("/admin", middleware.Session(authSvc))
		{
			admin.POST("/logout", authHandler.Logout)

			admin.GET("/mentors", mentorHandler.List)
			admin.POST("/mentors", mentorHandler.Create)
			admin.GET("/mentors/:id", mentorHandler.Get)
			admin.PUT("/mentors/:id", mentorHandler.Update)
			admin.DELETE("/mentors/:id", mentorHandler.Delete)

			admin.GET("/jobs", jobHandler.List)
			admin.POST("/jobs", jobHandler.Create)
			admin.POST("/jobs/draft", jobHandler.Draft)
			admin.GET("/jobs/:id", jobHandler.Get)
			admin.PUT("/jobs/:id", jobHandler.Update)
			admin.DELETE("/jobs/:id", jobHandler.Delete)
			admin.PATCH("/jobs/:id/status", jobHandler.SetStatus)

			admin.GET("/links", settingsHandler.Get)
			admin.PUT("/links", settingsHandler.UpdateLinks)

			admin.GET("/subscribers", subHandler.List)

			admin.GET("/export", exportHandler.Snapshot)
			admin.GET("/export/:collection", exportHandler.Promote)
			admin.POST("/export/report", exportHandler.Report)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown incomplete", "error", err)
	}
}

// openKV selects the persistence substrate for the shadow collections and
// session revocations.
func openKV(cfg *config.Config) (kv.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return kv.NewRedisStore(client), nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return kv.NewPostgresStore(db)
	default:
		return kv.NewFileStore(cfg.Store.Dir)
	}
}

// @title Treadle CMS API
// @version 1.0
// @description Foot switch catalog CMS and product selection wizard
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalog_cache "github.com/Treadle-Controls/treadle-cms-backend/cache"
	"github.com/Treadle-Controls/treadle-cms-backend/config"
	_ "github.com/Treadle-Controls/treadle-cms-backend/docs"
	"github.com/Treadle-Controls/treadle-cms-backend/middleware"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/routes/cms_routes"
	"github.com/Treadle-Controls/treadle-cms-backend/routes/store_routes"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := config.InitLogger(cfg.App.Env); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer config.SyncLogger()

	// Connect to DB
	if err := config.InitDB(cfg.Database, cfg.IsProduction()); err != nil {
		config.Log.Fatalf("[startup] database: %v", err)
	}
	defer config.CloseDB()

	if err := config.Migrate(
		&models.Product{},
		&models.Option{},
		&models.Admin{},
		&models.AdminSession{},
		&models.ActivityLog{},
	); err != nil {
		config.Log.Fatalf("[startup] migrate: %v", err)
	}

	// Redis connection (optional)
	if err := config.ConnectRedis(cfg.Redis); err != nil {
		config.Log.Fatalf("[startup] redis: %v", err)
	}
	defer config.CloseRedis()

	if err := services.InitJWTService(cfg.JWT.Secret); err != nil {
		config.Log.Fatalf("[startup] jwt: %v", err)
	}

	if err := services.InitImageStore(cfg.Cloudinary); err != nil {
		config.Log.Fatalf("[startup] cloudinary: %v", err)
	}

	catalog_cache.SetTTL(cfg.Catalog.CacheTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the wizard snapshot so the first visitor does not pay for it
	if _, err := services.LoadCatalog(ctx); err != nil {
		config.Log.Warnf("[startup] catalog warmup failed: %v", err)
	}

	go services.GetAdminSessionService().RunSessionCleanup(ctx, time.Hour)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"}, // CSV and PDF downloads
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window))

	// Admin auth at /api/v1/admin
	cms_routes.SetupAdminRoutes(api)

	// Catalog CRUD at /api/v1/admin
	adminGroup := api.Group("/admin")
	cms_routes.SetupProductRoutes(adminGroup)
	cms_routes.SetupOptionRoutes(adminGroup)

	// Public wizard
	store_routes.SetupWizardRoutes(api)

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	config.Log.Infof("[startup] server listening on %s", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			config.Log.Fatalf("[startup] server stopped: %v", err)
		}
	case <-ctx.Done():
		config.Log.Info("[shutdown] signal received, draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			config.Log.Errorf("[shutdown] %v", err)
		}
	}
}

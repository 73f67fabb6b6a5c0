package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mindx-ops/po-dashboard/internal/cache"
	"github.com/mindx-ops/po-dashboard/internal/config"
	"github.com/mindx-ops/po-dashboard/internal/handler"
	"github.com/mindx-ops/po-dashboard/internal/middleware"
	"github.com/mindx-ops/po-dashboard/internal/repository"
	"github.com/mindx-ops/po-dashboard/internal/service"
	"github.com/mindx-ops/po-dashboard/internal/worker"
	"github.com/mindx-ops/po-dashboard/pkg/gsheets"
)

// main is the application entrypoint for the PO dashboard API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting po dashboard api")

	// 3. Connect Google Sheets backing store
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheetsClient, err := gsheets.NewClient(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsFile)
	if err != nil {
		log.Error().Err(err).Msg("sheets connection failed")
		fmt.Fprintf(os.Stderr, "sheets connection failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("spreadsheet", cfg.Sheets.SpreadsheetID).Msg("sheets connected successfully")

	// 3a. Connect to Redis; the dashboard still works without the cache.
	var datasetCache *cache.DatasetCache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis connection failed - dataset caching disabled")
	} else {
		defer redisClient.Close()
		datasetCache = cache.NewDatasetCache(redisClient, cfg.Worker.DatasetTTL)
		log.Info().Msg("redis connected successfully")
	}

	// 4. Initialize record store and repositories
	store := repository.NewRecordStore(sheetsClient)
	publisherRepo := repository.NewPublisherRepository(store, cfg.Sheets.PublisherTable)
	poRepo := repository.NewPurchaseOrderRepository(store, publisherRepo, cfg.Sheets.POTable)

	// 5. Initialize services
	datasetSvc := service.NewDatasetService(publisherRepo, poRepo, datasetCache)
	analyticsSvc := service.NewAnalyticsService(datasetSvc)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:        handler.NewHealthHandler(),
		Dashboard:     handler.NewDashboardHandler(datasetSvc),
		Publisher:     handler.NewPublisherHandler(publisherRepo, datasetSvc),
		PurchaseOrder: handler.NewPurchaseOrderHandler(poRepo, datasetSvc),
		Analytics:     handler.NewAnalyticsHandler(analyticsSvc),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 8. Start workers
	if datasetCache != nil {
		go worker.NewRefreshWorker(datasetSvc, cfg.Worker.RefreshInterval).Start(ctx)
	}

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Cancel context to stop workers
	cancel()

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health        *handler.HealthHandler
	Dashboard     *handler.DashboardHandler
	Publisher     *handler.PublisherHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Analytics     *handler.AnalyticsHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	v1 := router.Group("/v1")
	{
		v1.GET("/data", handlers.Dashboard.GetData)

		v1.GET("/publishers", handlers.Publisher.ListPublishers)
		v1.POST("/publishers", handlers.Publisher.CreatePublisher)
		v1.PUT("/publishers/:id", handlers.Publisher.UpdatePublisher)

		v1.GET("/pos", handlers.PurchaseOrder.ListPurchaseOrders)
		v1.POST("/pos", handlers.PurchaseOrder.CreatePurchaseOrder)
		v1.PUT("/pos/:id", handlers.PurchaseOrder.UpdatePurchaseOrder)

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/rfm", handlers.Analytics.GetRFM)
			analytics.GET("/monthly", handlers.Analytics.GetMonthly)
			analytics.GET("/campaign", handlers.Analytics.GetCampaign)
			analytics.GET("/segments", handlers.Analytics.GetSegments)
		}
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

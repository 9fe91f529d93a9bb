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
	"github.com/rmercier/mission-docs/internal/api"
	"github.com/rmercier/mission-docs/internal/config"
	"github.com/rmercier/mission-docs/internal/docgen"
	"github.com/rmercier/mission-docs/internal/export"
	"github.com/rmercier/mission-docs/internal/gateway"
	"github.com/rmercier/mission-docs/internal/repository"
	"github.com/rmercier/mission-docs/internal/storage"
	"github.com/rmercier/mission-docs/pkg/database"
	"github.com/rmercier/mission-docs/pkg/utils"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env if present, before viper reads the environment
	_ = gotenv.Load()

	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting mission document service",
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Blob store
	if err := os.MkdirAll(cfg.Storage.BaseDir, 0755); err != nil {
		logger.Fatal("Failed to create blob store directory", zap.Error(err))
	}
	blobs := storage.NewLocalBlobStore(cfg.Storage.BaseDir, logger)

	// Initialize repositories
	missionRepo := repository.NewMissionRepository(db.DB, logger)
	contactRepo := repository.NewContactRepository(db.DB, logger)
	entrepriseRepo := repository.NewEntrepriseRepository(db.DB, logger)
	structureRepo := repository.NewStructureRepository(db.DB, logger)
	utilisateurRepo := repository.NewUtilisateurRepository(db.DB, logger)
	missionTypeRepo := repository.NewMissionTypeRepository(db.DB, logger)
	timesheetRepo := repository.NewTimesheetRepository(db.DB, logger)
	templateRepo := repository.NewTemplateRepository(db.DB, logger)
	documentRepo := repository.NewDocumentRepository(db.DB, logger)
	expenseFieldRepo := repository.NewExpenseFieldRepository(db.DB, logger)
	overrideRepo := repository.NewOverrideRepository(db.DB, logger)

	// Entity gateway
	gw := gateway.New(
		contactRepo,
		entrepriseRepo,
		structureRepo,
		utilisateurRepo,
		missionTypeRepo,
		timesheetRepo,
		logger,
	)

	// Generation pipeline
	recorder := docgen.NewRecorder(documentRepo, blobs, logger)
	generator := docgen.NewGenerator(
		gw,
		templateRepo,
		expenseFieldRepo,
		overrideRepo,
		blobs,
		recorder,
		logger,
	)
	exporter := export.NewLedgerExporter(logger)

	handlers := api.NewHandlers(missionRepo, expenseFieldRepo, generator, exporter, cfg.Generation, logger)

	// Set Gin mode based on logger level
	if cfg.Logger.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize HTTP router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "mission-docs",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	handlers.Register(router.Group("/api/v1"))

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

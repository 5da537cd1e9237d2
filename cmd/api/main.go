package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/config"
	"github.com/Vishwa-247/light-and-lovely-space/internal/dsa"
	"github.com/Vishwa-247/light-and-lovely-space/internal/handlers"
	"github.com/Vishwa-247/light-and-lovely-space/internal/logger"
	"github.com/Vishwa-247/light-and-lovely-space/internal/middleware"
	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
	"github.com/Vishwa-247/light-and-lovely-space/internal/upload"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()
	log.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize database", zap.Error(err))
	}

	redisClient, err := config.InitRedis(ctx, cfg)
	if err != nil {
		log.Fatal("❌ Failed to initialize Redis", zap.Error(err))
	}
	if redisClient != nil {
		log.Info("✅ Redis connected successfully")
	} else {
		log.Info("ℹ️ Redis disabled, using in-memory flow store and answer locks")
	}

	// Initialize repositories
	profileRepo := repositories.NewProfileRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	log.Info("✅ Repositories initialized successfully")

	// Initialize services
	storage, err := services.NewObjectStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("❌ Failed to initialize object storage", zap.Error(err))
	}
	log.Info("✅ Object storage initialized", zap.String("driver", cfg.Storage.Driver), zap.String("bucket", cfg.Storage.Bucket))

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	}
	log.Info("✅ Gemini AI initialized successfully")

	var chapterIndex services.ChapterIndex
	if cfg.Qdrant.Enabled {
		chapterIndex, err = services.NewChapterIndex(cfg.Qdrant, geminiService, services.NewTextChunker(1000, 200), log)
		if err != nil {
			log.Fatal("❌ Failed to initialize Qdrant", zap.Error(err))
		}
		if err := chapterIndex.EnsureCollection(ctx); err != nil {
			log.Fatal("❌ Failed to initialize Qdrant collection", zap.Error(err))
		}
		log.Info("✅ Qdrant initialized successfully", zap.String("collection", cfg.Qdrant.Collection))
	}

	prompts := services.NewPromptBuilder()

	tracker := services.NewProgressTracker(courseRepo, activityRepo, cfg.Worker.Concurrency, cfg.Worker.QueueSize, log)
	tracker.Start(ctx)
	log.Info("✅ Progress tracker started", zap.Int("workers", cfg.Worker.Concurrency))

	profileService := services.NewProfileService(
		profileRepo,
		resumeRepo,
		storage,
		services.NewDocumentParser(),
		services.NewResumeExtractor(geminiService, prompts, log),
		services.NewResumeAnalyzer(geminiService, prompts, log),
		tracker,
		cfg.Storage,
		log,
	)

	courseService := services.NewCourseService(
		courseRepo,
		services.NewContentGenerator(geminiService, prompts, log),
		chapterIndex,
		services.NewAnswerLock(redisClient),
		tracker,
		log,
	)

	catalog, err := dsa.Load()
	if err != nil {
		log.Fatal("❌ Failed to load DSA catalogue", zap.Error(err))
	}

	flows := upload.NewManager(upload.NewStore(redisClient, cfg.Upload.FlowTTL), profileService, cfg.Upload, log)
	log.Info("✅ Services initialized successfully")

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisClient, log)
	profileHandler := handlers.NewProfileHandler(profileService, log)
	resumeHandler := handlers.NewResumeHandler(profileService, flows, log)
	courseHandler := handlers.NewCourseHandler(courseService, log)
	dashboardHandler := handlers.NewDashboardHandler(profileService, courseService, activityRepo, catalog, tracker, log)
	log.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Learning Platform API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.FiberMiddleware(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.HandleHealth)
	api.Get("/ready", healthHandler.HandleReady)

	protected := api.Group("", middleware.NewAuthMiddleware(cfg.Auth))

	protected.Get("/profile", profileHandler.HandleGetProfile)
	protected.Put("/profile", profileHandler.HandleUpdateProfile)
	protected.Get("/profile/completion", profileHandler.HandleCompletion)
	protected.Post("/profile/extracted", profileHandler.HandleApplyExtracted)

	protected.Post("/profile/resume", resumeHandler.HandleUpload)
	protected.Delete("/profile/resume", resumeHandler.HandleDelete)
	protected.Get("/profile/resume/flow", resumeHandler.HandleFlowStatus)
	protected.Post("/profile/resume/flow/decision", resumeHandler.HandleDecision)
	protected.Get("/profile/resume/links", resumeHandler.HandleLinks)
	protected.Post("/profile/resume/analyze", resumeHandler.HandleAnalyze)

	protected.Get("/courses", courseHandler.HandleList)
	protected.Get("/courses/:id", courseHandler.HandleGet)
	protected.Post("/courses/:id/generate/:type", courseHandler.HandleGenerate)
	protected.Post("/courses/:id/mcqs/:mcqId/answer", courseHandler.HandleAnswer)
	protected.Post("/courses/:id/chapters/:chapterId/read", courseHandler.HandleChapterRead)
	protected.Get("/courses/:id/search", courseHandler.HandleSearch)

	protected.Get("/dashboard", dashboardHandler.HandleSummary)
	protected.Get("/dsa/favorites", dashboardHandler.HandleListFavorites)
	protected.Post("/dsa/favorites", dashboardHandler.HandleAddFavorite)
	protected.Delete("/dsa/favorites/:itemType/:itemId", dashboardHandler.HandleRemoveFavorite)
	protected.Get("/dsa/catalog", dashboardHandler.HandleCatalog)
	protected.Get("/dsa/progress", dashboardHandler.HandleProgress)
	protected.Post("/dsa/problems/:problemId/solved", dashboardHandler.HandleMarkSolved)
	protected.Delete("/dsa/problems/:problemId/solved", dashboardHandler.HandleUnmarkSolved)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Learning Platform API",
			"version": "1.0.0",
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("❌ Failed to start server", zap.Error(err))
	}

	// Listen returns as soon as shutdown begins; drain background work
	// before the process exits.
	<-stopped
	flows.Wait()
	tracker.Stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info("👋 Server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

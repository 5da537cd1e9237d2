package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/config"
	"github.com/Vishwa-247/light-and-lovely-space/internal/logger"
	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
)

func main() {
	courseFlag := flag.String("course", "", "reindex a single course id instead of every course")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer func() { _ = log.Sync() }()

	log.Info("🚀 Starting chapter reindex...")

	ctx := context.Background()

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize database", zap.Error(err))
	}
	courseRepo := repositories.NewCourseRepository(db)

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize Gemini", zap.Error(err))
	}

	index, err := services.NewChapterIndex(cfg.Qdrant, geminiService, services.NewTextChunker(1000, 200), log)
	if err != nil {
		log.Fatal("❌ Failed to initialize Qdrant", zap.Error(err))
	}
	if err := index.EnsureCollection(ctx); err != nil {
		log.Fatal("❌ Failed to initialize collection", zap.Error(err))
	}

	courses, err := selectCourses(ctx, courseRepo, *courseFlag)
	if err != nil {
		log.Fatal("❌ Failed to load courses", zap.Error(err))
	}

	successCount := 0
	failCount := 0
	pointCount := 0

	for _, course := range courses {
		courseLog := log.With(zap.String("course_id", course.ID.String()), zap.String("title", course.Title))
		courseLog.Info("📄 Processing course")

		chapters, err := courseRepo.Chapters(ctx, course.ID)
		if err != nil {
			courseLog.Error("❌ Failed to load chapters", zap.Error(err))
			failCount++
			continue
		}
		if len(chapters) == 0 {
			courseLog.Warn("⚠️ No chapters, skipping")
			continue
		}

		points, err := index.IndexCourse(ctx, course.ID, chapters)
		if err != nil {
			courseLog.Error("❌ Failed to index course", zap.Error(err))
			failCount++
			continue
		}

		courseLog.Info("✅ Course indexed", zap.Int("chapters", len(chapters)), zap.Int("points", points))
		pointCount += points
		successCount++
	}

	log.Info(strings.Repeat("=", 60))
	log.Info("📊 Reindex summary",
		zap.Int("successful", successCount),
		zap.Int("failed", failCount),
		zap.Int("points", pointCount),
	)
	log.Info(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Warn("⚠️ Some courses failed to index. Please check the logs above.")
		os.Exit(1)
	}

	log.Info("✅ All courses indexed successfully!")
}

func selectCourses(ctx context.Context, repo repositories.CourseRepository, courseID string) ([]models.Course, error) {
	all, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if courseID == "" {
		return all, nil
	}

	id, err := uuid.Parse(courseID)
	if err != nil {
		return nil, fmt.Errorf("invalid course id %q: %w", courseID, err)
	}
	for _, c := range all {
		if c.ID == id {
			return []models.Course{c}, nil
		}
	}
	return nil, fmt.Errorf("course %s not found", id)
}

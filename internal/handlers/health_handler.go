package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vishwa-247/light-and-lovely-space/internal/config"
)

const readyTimeout = 2 * time.Second

type HealthHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// NewHealthHandler takes a nil redis client when redis is disabled.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, logger: log}
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// HandleReady handles GET /ready
func (h *HealthHandler) HandleReady(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
	defer cancel()

	checks := fiber.Map{"database": "ok"}
	ready := true

	if err := config.PingDatabase(ctx, h.db); err != nil {
		h.logger.Warn("⚠️ Database not ready", zap.Error(err))
		checks["database"] = "unavailable"
		ready = false
	}

	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.Warn("⚠️ Redis not ready", zap.Error(err))
			checks["redis"] = "unavailable"
			ready = false
		}
	}

	status, code := "ready", fiber.StatusOK
	if !ready {
		status, code = "not_ready", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}

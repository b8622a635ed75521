package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tablier/resto-backoffice/internal/register"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

type RegisterHandler struct {
	uc     register.UseCase
	logger logger.Logger
}

func NewRegisterHandler(uc register.UseCase, log logger.Logger) *RegisterHandler {
	return &RegisterHandler{uc: uc, logger: log}
}

func (h *RegisterHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/register/summary", h.DailySummary)
}

func (h *RegisterHandler) DailySummary(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = parsed
	}

	summary, err := h.uc.DailySummary(c.Context(), date)
	if err != nil {
		h.logger.Error("daily summary failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(summary)
}

package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tablier/resto-backoffice/internal/stock"
	"github.com/tablier/resto-backoffice/internal/stock/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

var validate = validator.New()

type StockHandler struct {
	uc     stock.UseCase
	logger logger.Logger
}

func NewStockHandler(uc stock.UseCase, log logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, logger: log}
}

func (h *StockHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ingredients/low-stock", h.ListLowStock)
	r.Get("/ingredients/:id", h.GetIngredient)
	r.Post("/ingredients/:id/add", h.AddStock)
	r.Post("/ingredients/:id/remove", h.RemoveStock)
	r.Post("/ingredients/:id/adjust", h.AdjustStock)
	r.Get("/stock/movements", h.ListMovements)
}

type addStockRequest struct {
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	IsPack   bool    `json:"is_pack"`
	Reason   string  `json:"reason"`
}

type removeStockRequest struct {
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Reason   string  `json:"reason"`
}

type adjustStockRequest struct {
	NewQuantity float64 `json:"new_quantity" validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
}

func (h *StockHandler) GetIngredient(c *fiber.Ctx) error {
	ing, err := h.uc.GetIngredient(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(ing)
}

func (h *StockHandler) ListLowStock(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	items, total, err := h.uc.ListLowStock(c.Context(), page, pageSize)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "total": total})
}

func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var req addStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ing, err := h.uc.Increment(c.Context(), &dto.IncrementInput{
		IngredientID: c.Params("id"),
		Quantity:     req.Quantity,
		IsPack:       req.IsPack,
		Reason:       req.Reason,
		ActorID:      actorID(c),
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(ing)
}

func (h *StockHandler) RemoveStock(c *fiber.Ctx) error {
	var req removeStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ing, err := h.uc.Decrement(c.Context(), &dto.DecrementInput{
		IngredientID: c.Params("id"),
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		ActorID:      actorID(c),
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(ing)
}

func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ing, err := h.uc.SetAbsolute(c.Context(), &dto.AdjustInput{
		IngredientID: c.Params("id"),
		NewQuantity:  req.NewQuantity,
		Description:  req.Description,
		ActorID:      actorID(c),
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(ing)
}

func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	filters := &dto.MovementFilters{
		IngredientID: c.Query("ingredient_id"),
		OrderID:      c.Query("order_id"),
		MovementType: c.Query("movement_type"),
		Page:         c.QueryInt("page", 1),
		PageSize:     c.QueryInt("page_size", 50),
	}

	movements, total, err := h.uc.ListMovements(c.Context(), filters)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"items": movements, "total": total})
}

func (h *StockHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, stock.ErrIngredientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, stock.ErrInvalidQuantity), errors.Is(err, stock.ErrNegativeQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, stock.ErrStockBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Error("stock handler error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func actorID(c *fiber.Ctx) string {
	// Auth lives in front of this service; it forwards the acting user here.
	return c.Get("X-User-ID")
}

package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tablier/resto-backoffice/internal/model"
	"github.com/tablier/resto-backoffice/internal/order"
	"github.com/tablier/resto-backoffice/internal/order/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

var validate = validator.New()

type OrderHandler struct {
	uc     order.UseCase
	logger logger.Logger
}

func NewOrderHandler(uc order.UseCase, log logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/orders", h.Create)
	r.Get("/orders", h.List)
	r.Get("/orders/:id", h.GetByID)
	r.Patch("/orders/:id/status", h.Transition)
}

type createOrderRequest struct {
	Type        string                   `json:"type" validate:"required,oneof=dine_in takeaway delivery"`
	TableID     *string                  `json:"table_id"`
	DeliveryFee float64                  `json:"delivery_fee" validate:"gte=0"`
	Items       []createOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type createOrderItemRequest struct {
	MenuItemID *string `json:"menu_item_id"`
	Name       string  `json:"name" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,min=1"`
	UnitPrice  float64 `json:"unit_price" validate:"gte=0"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := &dto.CreateOrderInput{
		Type:        req.Type,
		TableID:     req.TableID,
		DeliveryFee: req.DeliveryFee,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, dto.CreateOrderItemInput{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	ord, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ord)
}

func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	ord, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(ord)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	filters := &dto.OrderFilters{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	orders, total, err := h.uc.List(c.Context(), filters)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"items": orders, "total": total})
}

func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	var req transitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.uc.Transition(c.Context(), c.Params("id"), model.OrderStatus(req.Status))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{
		"order":    result.Order,
		"warnings": result.Warnings,
	})
}

func (h *OrderHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, order.ErrInvalidOrder):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Error("order handler error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

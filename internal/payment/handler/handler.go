package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tablier/resto-backoffice/internal/order"
	"github.com/tablier/resto-backoffice/internal/payment"
	"github.com/tablier/resto-backoffice/internal/payment/dto"
	"github.com/tablier/resto-backoffice/pkg/logger"
)

var validate = validator.New()

type PaymentHandler struct {
	uc     payment.UseCase
	logger logger.Logger
}

func NewPaymentHandler(uc payment.UseCase, log logger.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, logger: log}
}

func (h *PaymentHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/payments", h.Process)
}

type processPaymentRequest struct {
	OrderID   string  `json:"order_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Reference *string `json:"reference"`
}

func (h *PaymentHandler) Process(c *fiber.Ctx) error {
	var req processPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.uc.Process(c.Context(), &dto.ProcessPaymentInput{
		OrderID:   req.OrderID,
		Amount:    req.Amount,
		Reference: req.Reference,
		CashierID: c.Get("X-User-ID"),
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment": result.Payment,
		"change":  result.Change,
	})
}

func (h *PaymentHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, payment.ErrAlreadyPaid):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, payment.ErrNotServedYet),
		errors.Is(err, payment.ErrInvalidOrderTotal),
		errors.Is(err, payment.ErrInsufficientAmount):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Error("payment handler error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/consertapro/conserta-api/internal/application/billing"
	"github.com/consertapro/conserta-api/internal/application/dto"
)

// WebhookHandler recebe os eventos de billing da Stripe. Único caminho que
// muta o estado de assinatura; o gateway apenas lê.
type WebhookHandler struct {
	uc *billing.WebhookUseCase
}

// NewWebhookHandler constrói o handler.
func NewWebhookHandler(uc *billing.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

// Stripe godoc
// @Summary      Webhook da Stripe (assinatura verificada)
// @Tags         webhooks
// @Accept       json
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/webhooks/stripe [post]
func (h *WebhookHandler) Stripe(c *fiber.Ctx) error {
	err := h.uc.HandleStripeEvent(c.UserContext(), c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, billing.ErrWebhookInvalido) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "assinatura do webhook inválida"})
		}
		// 5xx faz a Stripe reentregar o evento; o processamento é idempotente.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusOK)
}

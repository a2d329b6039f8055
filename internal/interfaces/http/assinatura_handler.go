package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/application/usecase"
	"github.com/consertapro/conserta-api/internal/domain"
)

// AssinaturaHandler maneja a visão de assinatura do tenant (página de planos),
// o onboarding e as indicações. Estas rotas ficam nas classes isentas do
// gateway: alcançáveis mesmo com assinatura bloqueada.
type AssinaturaHandler struct {
	uc *usecase.AssinaturaUseCase
}

// NewAssinaturaHandler constrói o handler.
func NewAssinaturaHandler(uc *usecase.AssinaturaUseCase) *AssinaturaHandler {
	return &AssinaturaHandler{uc: uc}
}

// Get godoc
// @Summary      Assinatura do tenant (status efetivo, trial, bônus)
// @Tags         planos
// @Produce      json
// @Success      200  {object}  dto.AssinaturaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /planos/assinatura [get]
func (h *AssinaturaHandler) Get(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	out, err := h.uc.Get(c.UserContext(), tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "assinatura não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CompletaOnboarding godoc
// @Summary      Concluir onboarding do tenant
// @Tags         onboarding
// @Success      204
// @Router       /onboarding/concluir [post]
func (h *AssinaturaHandler) CompletaOnboarding(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	if err := h.uc.CompletaOnboarding(c.UserContext(), tenantID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListIndicacoes godoc
// @Summary      Indicações feitas pelo tenant
// @Tags         indicacoes
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.IndicacaoResponse
// @Router       /indicacoes [get]
func (h *AssinaturaHandler) ListIndicacoes(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListIndicacoes(tenantID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LookupCodigo godoc
// @Summary      Validar código de indicação (público, usado no formulário de cadastro)
// @Tags         indicacoes
// @Produce      json
// @Param        codigo  path  string  true  "Código de indicação"
// @Success      200     {object}  dto.IndicacaoLookupResponse
// @Router       /api/public/indicacoes/{codigo} [get]
func (h *AssinaturaHandler) LookupCodigo(c *fiber.Ctx) error {
	out, err := h.uc.LookupCodigo(c.Params("codigo"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

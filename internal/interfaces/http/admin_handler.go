package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/application/usecase"
)

// AdminHandler maneja o painel da plataforma (/admin, só platform_admin —
// o gateway já barrou qualquer outro papel antes de chegar aqui).
type AdminHandler struct {
	uc *usecase.PlataformaUseCase
}

// NewAdminHandler constrói o handler.
func NewAdminHandler(uc *usecase.PlataformaUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// GetManutencao godoc
// @Summary      Estado do modo manutenção
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.ManutencaoResponse
// @Router       /admin/manutencao [get]
func (h *AdminHandler) GetManutencao(c *fiber.Ctx) error {
	out, err := h.uc.GetManutencao(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetManutencao godoc
// @Summary      Ligar/desligar modo manutenção
// @Tags         admin
// @Accept       json
// @Param        body  body  dto.ManutencaoRequest  true  "Estado desejado"
// @Success      204
// @Router       /admin/manutencao [put]
func (h *AdminHandler) SetManutencao(c *fiber.Ctx) error {
	var in dto.ManutencaoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.SetManutencao(c.UserContext(), in); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListEmpresas godoc
// @Summary      Listar tenants da plataforma
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.EmpresaListResponse
// @Router       /admin/empresas [get]
func (h *AdminHandler) ListEmpresas(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListEmpresas(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

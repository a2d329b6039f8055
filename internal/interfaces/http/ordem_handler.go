package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/application/usecase"
	"github.com/consertapro/conserta-api/internal/domain"
)

// OrdemHandler maneja as ordens de serviço do tenant.
type OrdemHandler struct {
	uc          *usecase.OrdemUseCase
	comprovante *usecase.ComprovanteUseCase
}

// NewOrdemHandler constrói o handler.
func NewOrdemHandler(uc *usecase.OrdemUseCase, comprovante *usecase.ComprovanteUseCase) *OrdemHandler {
	return &OrdemHandler{uc: uc, comprovante: comprovante}
}

// Create godoc
// @Summary      Abrir ordem de serviço
// @Tags         ordens
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrdemRequest  true  "Dados da OS"
// @Success      201   {object}  dto.OrdemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordens [post]
func (h *OrdemHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	var in dto.CreateOrdemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.ClienteID == "" || in.Equipamento == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id e equipamento são obrigatórios"})
	}
	out, err := h.uc.Create(tenantID, GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar OS
// @Tags         ordens
// @Produce      json
// @Param        id   path  string  true  "ID da OS"
// @Success      200  {object}  dto.OrdemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordens/{id} [get]
func (h *OrdemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetTenantID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ordem não encontrada"})
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar status da OS
// @Tags         ordens
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da OS"
// @Param        body  body  dto.UpdateOrdemStatusRequest  true  "Novo status"
// @Success      200   {object}  dto.OrdemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ordens/{id}/status [put]
func (h *OrdemHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrdemStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateStatus(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ordem não encontrada"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transição de status inválida"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ordens de serviço
// @Tags         ordens
// @Produce      json
// @Param        status  query  string  false  "Filtro por status"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OrdemListResponse
// @Router       /api/ordens [get]
func (h *OrdemHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(GetTenantID(c), c.Query("status"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Comprovante da OS em PDF
// @Tags         ordens
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da OS"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordens/{id}/pdf [get]
func (h *OrdemHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.comprovante.DownloadComprovante(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ordem não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdfBytes)
}

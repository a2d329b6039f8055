package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/consertapro/conserta-api/internal/application/auth"
	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/pkg/config"
)

// AuthHandler maneja cadastro (signup do tenant), login e registro de usuários.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	sessCfg config.SessionConfig
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.AuthUseCase, sessCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{uc: uc, sessCfg: sessCfg}
}

// Cadastro godoc
// @Summary      Cadastrar empresa (signup)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CadastroRequest  true  "Dados da empresa e do admin"
// @Success      201   {object}  dto.CadastroResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/public/cadastro [post]
func (h *AuthHandler) Cadastro(c *fiber.Ctx) error {
	var in dto.CadastroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.EmpresaNome == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa_nome, email e password são obrigatórios"})
	}
	out, err := h.uc.Cadastro(in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "email já cadastrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	setSessionCookie(c, h.sessCfg, out.Token)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciais"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/public/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		// Email inexistente, senha errada e conta inativa respondem o mesmo 401
		// para não revelar quais contas existem.
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciais inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	setSessionCookie(c, h.sessCfg, out.Token)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Logout (expira o cookie de sessão)
// @Tags         auth
// @Success      204
// @Router       /api/public/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.sessCfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterUser godoc
// @Summary      Registrar usuário no tenant (só tenant_admin)
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUserRequest  true  "Dados do usuário"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /usuarios [post]
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	var in dto.RegisterUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email e password são obrigatórios"})
	}
	out, err := h.uc.RegisterUser(tenantID, in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "email já cadastrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

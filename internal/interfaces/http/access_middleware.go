package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/consertapro/conserta-api/internal/application/gate"
	"github.com/consertapro/conserta-api/pkg/config"
	"github.com/consertapro/conserta-api/pkg/session"
)

// Locals keys preenchidos pelo gateway para os handlers de aplicação.
const (
	LocalUserID   = "user_id"
	LocalTenantID = "tenant_id"
	LocalRole     = "role"
)

// AccessMiddleware é o gateway de controle de acesso como middleware Fiber:
// resolve a sessão (cookie ou Bearer), rotaciona o token quando necessário e
// delega a decisão ao avaliador. Roda em TODA requisição; as rotas públicas
// saem liberadas pelo próprio avaliador, nunca por bypass aqui.
func AccessMiddleware(ev *gate.Evaluator, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		class := ev.Class(path)

		caller := gate.Anonymous
		claims := resolveSession(c, cfg)
		if claims != nil {
			caller = gate.Caller{IdentityID: claims.UserID, Authenticated: true}

			// A reemissão vai na resposta ANTES de qualquer redirect; um Set-Cookie
			// perdido derruba a sessão do usuário na requisição seguinte.
			if session.ShouldRotate(claims, time.Now()) {
				novo, err := session.Generate(cfg.Secret, claims.UserID, claims.TenantID, claims.Role, cfg.Issuer, cfg.Expiration)
				if err == nil {
					setSessionCookie(c, cfg, novo)
					sessionRotationsTotal.Inc()
				}
			}
		}

		d := ev.Evaluate(c.UserContext(), caller, path)
		gatewayEvalDuration.WithLabelValues(class.String()).Observe(time.Since(start).Seconds())

		switch d.Action {
		case gate.ActionAllow:
			gatewayDecisionsTotal.WithLabelValues(class.String(), "allow").Inc()
			if claims != nil {
				c.Locals(LocalUserID, claims.UserID)
				c.Locals(LocalTenantID, claims.TenantID)
				c.Locals(LocalRole, claims.Role)
			}
			return c.Next()
		case gate.ActionRedirect:
			gatewayDecisionsTotal.WithLabelValues(class.String(), "redirect").Inc()
			return c.Redirect(d.RedirectURL(), fiber.StatusFound)
		default:
			gatewayDecisionsTotal.WithLabelValues(class.String(), "reject").Inc()
			status := d.Status
			if status == 0 {
				status = fiber.StatusBadRequest
			}
			return c.SendStatus(status)
		}
	}
}

// resolveSession extrai e valida o token da requisição. O cookie de sessão tem
// prioridade (navegador); o header Authorization atende clientes de API.
// Token inválido ou expirado equivale a ausente — caller anônimo, sem erro.
func resolveSession(c *fiber.Ctx, cfg config.SessionConfig) *session.Claims {
	token := c.Cookies(cfg.CookieName)
	if token == "" {
		auth := c.Get("Authorization")
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
		}
	}
	if token == "" {
		return nil
	}
	claims, err := session.Parse(cfg.Secret, token)
	if err != nil {
		return nil
	}
	return claims
}

// setSessionCookie grava o token de sessão na resposta.
func setSessionCookie(c *fiber.Ctx, cfg config.SessionConfig, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cfg.Expiration * 60,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GetUserID devolve o UserID do contexto (depois do gateway).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetTenantID devolve o TenantID do contexto (depois do gateway).
func GetTenantID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTenantID).(string)
	return s
}

// GetRole devolve o papel do usuário do contexto (depois do gateway).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

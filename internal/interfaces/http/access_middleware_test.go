package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consertapro/conserta-api/internal/application/gate"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	apphttp "github.com/consertapro/conserta-api/internal/interfaces/http"
	"github.com/consertapro/conserta-api/pkg/config"
	"github.com/consertapro/conserta-api/pkg/logger"
	"github.com/consertapro/conserta-api/pkg/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testUserID   = "00000000-0000-0000-0000-000000000001"
	testTenantID = "00000000-0000-0000-0000-000000000002"
	testIssuer   = "conserta-pro-test"
	testExpMin   = 60
)

type fakeDirectory struct {
	user *entity.User
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

type fakeSubs struct {
	sub *entity.Assinatura
}

func (f *fakeSubs) GetByTenant(_ context.Context, _ string) (*entity.Assinatura, error) {
	return f.sub, nil
}

type fakeConfigStore struct {
	cfg entity.ManutencaoConfig
}

func (f *fakeConfigStore) GetManutencao(_ context.Context) (entity.ManutencaoConfig, error) {
	return f.cfg, nil
}

func testSessionCfg() config.SessionConfig {
	return config.SessionConfig{
		Secret:     testSecret,
		Expiration: testExpMin,
		Issuer:     testIssuer,
		CookieName: "sessao",
	}
}

// buildApp monta um app Fiber com o gateway na frente e handlers de sonda que
// devolvem os locals preenchidos.
func buildApp(dir *fakeDirectory, subs *fakeSubs, mnt *fakeConfigStore) *fiber.App {
	log := logger.Nop()
	cache := gate.NewMaintenanceCache(mnt, time.Minute, time.Second, log)
	ev := gate.NewEvaluator(dir, subs, cache, time.Second, log)

	app := fiber.New()
	app.Use(apphttp.AccessMiddleware(ev, testSessionCfg()))
	probe := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"tenant_id": apphttp.GetTenantID(c),
			"role":      apphttp.GetRole(c),
		})
	}
	app.Get("/", probe)
	app.Get("/health", probe)
	app.Get("/dashboard", probe)
	app.Get("/planos", probe)
	app.Get("/admin/empresas", probe)
	return app
}

func healthyScenario() (*fakeDirectory, *fakeSubs, *fakeConfigStore) {
	trialEnd := time.Now().Add(7 * 24 * time.Hour)
	dir := &fakeDirectory{user: &entity.User{
		ID:       testUserID,
		TenantID: testTenantID,
		Role:     entity.RoleTenantStaff,
		Status:   "active",
	}}
	subs := &fakeSubs{sub: &entity.Assinatura{
		TenantID:           testTenantID,
		Status:             entity.AssinaturaTrial,
		TrialEnd:           &trialEnd,
		OnboardingComplete: true,
	}}
	return dir, subs, &fakeConfigStore{}
}

func sessionToken(t *testing.T) string {
	t.Helper()
	tok, err := session.Generate(testSecret, testUserID, testTenantID, entity.RoleTenantStaff, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func get(t *testing.T, app *fiber.App, path string, mutate func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests do gateway como middleware
// ──────────────────────────────────────────────────────────────────────────────

// Anônimo em rota protegida → 302 /login.
func TestAccessMiddleware_AnonimoRedirecionaLogin(t *testing.T) {
	app := buildApp(healthyScenario())
	resp := get(t, app, "/dashboard", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

// Anônimo em rota pública → passa sem consulta nenhuma.
func TestAccessMiddleware_PublicaSempreLiberada(t *testing.T) {
	app := buildApp(healthyScenario())
	resp := get(t, app, "/", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Sondas de infraestrutura passam pelo gateway e saem liberadas pela classe
// public, sem precisar de registro fora do middleware.
func TestAccessMiddleware_HealthAnonimoLiberado(t *testing.T) {
	app := buildApp(healthyScenario())
	resp := get(t, app, "/health", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Sessão válida via cookie → 200 com locals preenchidos.
func TestAccessMiddleware_CookieLiberaEPreencheLocals(t *testing.T) {
	app := buildApp(healthyScenario())
	tok := sessionToken(t)
	resp := get(t, app, "/dashboard", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "sessao", Value: tok})
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// Sessão válida via Bearer → mesmo resultado do cookie.
func TestAccessMiddleware_BearerTambemResolve(t *testing.T) {
	app := buildApp(healthyScenario())
	resp := get(t, app, "/dashboard", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+sessionToken(t))
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Token adulterado equivale a anônimo → 302 /login, nunca 500.
func TestAccessMiddleware_TokenInvalidoViraAnonimo(t *testing.T) {
	app := buildApp(healthyScenario())
	resp := get(t, app, "/dashboard", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "sessao", Value: "nao-e-um-jwt"})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

// Trial vencido em rota standard → 302 /planos?motivo=trial_expirado.
func TestAccessMiddleware_TrialVencidoRedirecionaPlanos(t *testing.T) {
	dir, subs, mnt := healthyScenario()
	vencido := time.Now().Add(-24 * time.Hour)
	subs.sub.TrialEnd = &vencido
	app := buildApp(dir, subs, mnt)

	resp := get(t, app, "/dashboard", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "sessao", Value: sessionToken(t)})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/planos?motivo=trial_expirado", resp.Header.Get("Location"))
}

// Mesmo bloqueado, /planos continua alcançável (classe isenta).
func TestAccessMiddleware_PlanosAlcancavelComTrialVencido(t *testing.T) {
	dir, subs, mnt := healthyScenario()
	vencido := time.Now().Add(-24 * time.Hour)
	subs.sub.TrialEnd = &vencido
	app := buildApp(dir, subs, mnt)

	resp := get(t, app, "/planos", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "sessao", Value: sessionToken(t)})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Manutenção ligada → 302 /manutencao para usuário comum.
func TestAccessMiddleware_ManutencaoRedireciona(t *testing.T) {
	dir, subs, mnt := healthyScenario()
	mnt.cfg = entity.ManutencaoConfig{Ativo: true}
	app := buildApp(dir, subs, mnt)

	resp := get(t, app, "/dashboard", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "sessao", Value: sessionToken(t)})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/manutencao", resp.Header.Get("Location"))
}

// Staff em rota /admin → 302 /dashboard (papel insuficiente).
func TestAccessMiddleware_StaffBloqueadoEmAdmin(t *testing.T) {
	app := buildApp(healthyScenario())
	resp := get(t, app, "/admin/empresas", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "sessao", Value: sessionToken(t)})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

// Token além da metade da vida → Set-Cookie com o token novo ANTES do redirect.
func TestAccessMiddleware_RotacaoAntesDoRedirect(t *testing.T) {
	dir, subs, mnt := healthyScenario()
	vencido := time.Now().Add(-24 * time.Hour)
	subs.sub.TrialEnd = &vencido
	app := buildApp(dir, subs, mnt)

	// Token emitido "no passado": issued há 50 min, expira em 10 min → passou da metade.
	now := time.Now()
	claims := session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			IssuedAt:  jwt.NewNumericDate(now.Add(-50 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
		UserID:   testUserID,
		TenantID: testTenantID,
		Role:     entity.RoleTenantStaff,
	}
	velho, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := get(t, app, "/dashboard", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "sessao", Value: velho})
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode, "a decisão de bloqueio não muda com a rotação")

	var rotacionado string
	for _, sc := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, "sessao=") {
			rotacionado = strings.TrimPrefix(strings.SplitN(sc, ";", 2)[0], "sessao=")
		}
	}
	require.NotEmpty(t, rotacionado, "o redirect deve carregar o Set-Cookie da rotação")
	require.NotEqual(t, velho, rotacionado)

	novo, err := session.Parse(testSecret, rotacionado)
	require.NoError(t, err)
	assert.Equal(t, testUserID, novo.UserID)
	assert.Equal(t, testTenantID, novo.TenantID)
}

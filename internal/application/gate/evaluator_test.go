package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes das dependências externas
// ──────────────────────────────────────────────────────────────────────────────

type fakeDirectory struct {
	users map[string]*entity.User
	err   error
	calls int
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

type fakeSubs struct {
	subs map[string]*entity.Assinatura
	err  error
}

func (f *fakeSubs) GetByTenant(_ context.Context, tenantID string) (*entity.Assinatura, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.subs[tenantID], nil
}

type fakeConfigStore struct {
	cfg   entity.ManutencaoConfig
	err   error
	calls int
}

func (f *fakeConfigStore) GetManutencao(_ context.Context) (entity.ManutencaoConfig, error) {
	f.calls++
	if f.err != nil {
		return entity.ManutencaoConfig{}, f.err
	}
	return f.cfg, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário base: tenant com staff e admin, assinatura ativa, onboarding completo
// ──────────────────────────────────────────────────────────────────────────────

var agora = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

const (
	idStaff    = "user-staff"
	idAdmin    = "user-admin"
	idPlatform = "user-platform"
	tenantA    = "tenant-a"
)

type cenario struct {
	dir  *fakeDirectory
	subs *fakeSubs
	cfg  *fakeConfigStore
	eval *Evaluator
}

func novoCenario(t *testing.T) *cenario {
	t.Helper()
	dir := &fakeDirectory{users: map[string]*entity.User{
		idStaff:    {ID: idStaff, TenantID: tenantA, Role: entity.RoleTenantStaff, Status: "active"},
		idAdmin:    {ID: idAdmin, TenantID: tenantA, Role: entity.RoleTenantAdmin, Status: "active"},
		idPlatform: {ID: idPlatform, Role: entity.RolePlatformAdmin, Status: "active"},
	}}
	fim := agora.Add(7 * 24 * time.Hour)
	subs := &fakeSubs{subs: map[string]*entity.Assinatura{
		tenantA: {TenantID: tenantA, Status: entity.AssinaturaActive, TrialEnd: &fim, OnboardingComplete: true},
	}}
	cfg := &fakeConfigStore{}
	c := &cenario{dir: dir, subs: subs, cfg: cfg}
	c.rebuild(t)
	return c
}

// rebuild recria o avaliador (zera o cache de manutenção entre mutações do fake).
func (c *cenario) rebuild(t *testing.T) {
	t.Helper()
	mnt := NewMaintenanceCache(c.cfg, time.Minute, 100*time.Millisecond, logger.Nop())
	c.eval = NewEvaluator(c.dir, c.subs, mnt, 100*time.Millisecond, logger.Nop())
	c.eval.now = func() time.Time { return agora }
}

func caller(id string) Caller { return Caller{IdentityID: id, Authenticated: true} }

func (c *cenario) assinatura(mut func(a *entity.Assinatura)) {
	mut(c.subs.subs[tenantA])
}

// ──────────────────────────────────────────────────────────────────────────────
// Rotas públicas
// ──────────────────────────────────────────────────────────────────────────────

// Rotas public e public_api sempre passam, qualquer caller, assinatura ou manutenção.
func TestEvaluate_PublicoSemprePassa(t *testing.T) {
	c := novoCenario(t)
	c.cfg.cfg = entity.ManutencaoConfig{Ativo: true, Mensagem: "voltamos já"}
	c.assinatura(func(a *entity.Assinatura) { a.Status = entity.AssinaturaSuspended })
	c.rebuild(t)

	for _, path := range []string{"/", "/login", "/cadastro", "/manutencao", "/api/webhooks/stripe", "/api/public/indicacao/X"} {
		d := c.eval.Evaluate(context.Background(), Anonymous, path)
		assert.True(t, d.Allowed(), "path público %s deve passar", path)

		d = c.eval.Evaluate(context.Background(), caller(idStaff), path)
		assert.True(t, d.Allowed(), "path público %s deve passar autenticado", path)
	}
	// Rota pública nem consulta o diretório.
	assert.Zero(t, c.dir.calls, "rotas públicas não devem consultar o diretório")
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticação
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_AnonimoEmRotaProtegida_VaiParaLogin(t *testing.T) {
	c := novoCenario(t)
	d := c.eval.Evaluate(context.Background(), Anonymous, "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathLogin, d.Location)
	assert.Empty(t, d.Motivo)
}

func TestEvaluate_AnonimoEmRotaAdmin_VaiParaLogin(t *testing.T) {
	c := novoCenario(t)
	d := c.eval.Evaluate(context.Background(), Anonymous, "/admin/empresas")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathLogin, d.Location)
}

// Diretório indisponível falha FECHADO.
func TestEvaluate_DiretorioIndisponivel_VaiParaLogin(t *testing.T) {
	c := novoCenario(t)
	c.dir.err = errors.New("connection refused")
	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathLogin, d.Location)
}

// Sessão válida de usuário que não existe mais é anômala: nega e manda ao login.
func TestEvaluate_UsuarioInexistente_VaiParaLogin(t *testing.T) {
	c := novoCenario(t)
	d := c.eval.Evaluate(context.Background(), caller("fantasma"), "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathLogin, d.Location)
}

func TestEvaluate_UsuarioInativo_VaiParaLogin(t *testing.T) {
	c := novoCenario(t)
	c.dir.users[idStaff].Status = "suspended"
	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathLogin, d.Location)
}

// ──────────────────────────────────────────────────────────────────────────────
// RBAC
// ──────────────────────────────────────────────────────────────────────────────

// platform_admin passa em TODA classe, com manutenção ligada e sem assinatura.
func TestEvaluate_PlatformAdminPassaEmTudo(t *testing.T) {
	c := novoCenario(t)
	c.cfg.cfg = entity.ManutencaoConfig{Ativo: true}
	c.rebuild(t)

	for _, path := range []string{"/admin/empresas", "/dashboard", "/usuarios", "/planos", "/vendas"} {
		d := c.eval.Evaluate(context.Background(), caller(idPlatform), path)
		assert.True(t, d.Allowed(), "platform_admin deve passar em %s", path)
	}
}

func TestEvaluate_StaffEmRotaPlatformAdmin_VaiParaDashboard(t *testing.T) {
	c := novoCenario(t)
	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/admin/empresas")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathDashboard, d.Location, "papel insuficiente volta para a landing, sem revelar o recurso")
}

func TestEvaluate_StaffEmRotaTenantAdmin_VaiParaDashboard(t *testing.T) {
	c := novoCenario(t)
	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/usuarios")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathDashboard, d.Location)
}

func TestEvaluate_TenantAdminEmRotaTenantAdmin_Passa(t *testing.T) {
	c := novoCenario(t)
	d := c.eval.Evaluate(context.Background(), caller(idAdmin), "/usuarios")
	assert.True(t, d.Allowed())
}

// ──────────────────────────────────────────────────────────────────────────────
// Manutenção
// ──────────────────────────────────────────────────────────────────────────────

// Cenário do spec de produto: manutenção ligada, tenant_admin em /estoque.
func TestEvaluate_ManutencaoLigada_TenantAdminVaiParaManutencao(t *testing.T) {
	c := novoCenario(t)
	c.cfg.cfg = entity.ManutencaoConfig{Ativo: true, Mensagem: "atualização de versão"}
	c.rebuild(t)

	d := c.eval.Evaluate(context.Background(), caller(idAdmin), "/estoque")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathManutencao, d.Location)
}

// Manutenção também cobre rotas isentas de assinatura.
func TestEvaluate_ManutencaoCobreRotasIsentas(t *testing.T) {
	c := novoCenario(t)
	c.cfg.cfg = entity.ManutencaoConfig{Ativo: true}
	c.rebuild(t)

	d := c.eval.Evaluate(context.Background(), caller(idAdmin), "/planos")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathManutencao, d.Location)
}

// Falha na store de config nunca bloqueia: fail-open mesmo com a store fora.
func TestEvaluate_ConfigIndisponivel_FalhaAberta(t *testing.T) {
	c := novoCenario(t)
	c.cfg.err = errors.New("tabela não provisionada")
	c.rebuild(t)

	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.True(t, d.Allowed(), "indisponibilidade da config de manutenção não pode trancar tenant pagante")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida da assinatura
// ──────────────────────────────────────────────────────────────────────────────

// Cenário feliz: staff, ativa, onboarding completo, sem manutenção.
func TestEvaluate_AssinaturaAtiva_Passa(t *testing.T) {
	c := novoCenario(t)
	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.True(t, d.Allowed())
}

// Onboarding incompleto vence qualquer status, até assinatura ativa.
func TestEvaluate_OnboardingIncompleto_VaiParaOnboarding(t *testing.T) {
	c := novoCenario(t)
	c.assinatura(func(a *entity.Assinatura) { a.OnboardingComplete = false })

	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathOnboarding, d.Location)
}

// Onboarding incompleto vence até trial vencido (ordem estrita dos checks).
func TestEvaluate_OnboardingVenceTrialVencido(t *testing.T) {
	c := novoCenario(t)
	ontem := agora.Add(-24 * time.Hour)
	c.assinatura(func(a *entity.Assinatura) {
		a.OnboardingComplete = false
		a.Status = entity.AssinaturaTrial
		a.TrialEnd = &ontem
	})

	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.Equal(t, PathOnboarding, d.Location)
}

func TestEvaluate_TrialVigente_Passa(t *testing.T) {
	c := novoCenario(t)
	amanha := agora.Add(24 * time.Hour)
	c.assinatura(func(a *entity.Assinatura) {
		a.Status = entity.AssinaturaTrial
		a.TrialEnd = &amanha
	})

	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.True(t, d.Allowed())
}

// Cenário do spec de produto: tenant_admin, trial vencido ontem, /dashboard.
func TestEvaluate_TrialVencido_VaiParaPlanos(t *testing.T) {
	c := novoCenario(t)
	ontem := agora.Add(-24 * time.Hour)
	c.assinatura(func(a *entity.Assinatura) {
		a.Status = entity.AssinaturaTrial
		a.TrialEnd = &ontem
	})

	d := c.eval.Evaluate(context.Background(), caller(idAdmin), "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathPlanos, d.Location)
	assert.Equal(t, entity.MotivoTrialExpirado, d.Motivo)
	assert.Equal(t, "/planos?motivo=trial_expirado", d.RedirectURL())
}

// Status bloqueados sem bônus redirecionam com motivo = próprio status.
func TestEvaluate_StatusBloqueadoSemBonus_VaiParaPlanos(t *testing.T) {
	c := novoCenario(t)
	for _, status := range []string{
		entity.AssinaturaSuspended, entity.AssinaturaCancelled,
		entity.AssinaturaOverdue, entity.AssinaturaExpired,
	} {
		c.assinatura(func(a *entity.Assinatura) {
			a.Status = status
			a.BonusMonths = 0
		})
		d := c.eval.Evaluate(context.Background(), caller(idStaff), "/vendas")
		require.Equal(t, ActionRedirect, d.Action, "status %s", status)
		assert.Equal(t, PathPlanos, d.Location)
		assert.Equal(t, status, d.Motivo, "motivo deve ser exatamente o status")
	}
}

// Cenário do spec de produto: overdue com 2 meses de bônus passa em silêncio.
func TestEvaluate_StatusBloqueadoComBonus_Passa(t *testing.T) {
	c := novoCenario(t)
	for _, status := range []string{
		entity.AssinaturaSuspended, entity.AssinaturaCancelled,
		entity.AssinaturaOverdue, entity.AssinaturaExpired,
	} {
		c.assinatura(func(a *entity.Assinatura) {
			a.Status = status
			a.BonusMonths = 2
		})
		d := c.eval.Evaluate(context.Background(), caller(idStaff), "/vendas")
		assert.True(t, d.Allowed(), "bônus deve cobrir status %s", status)
	}
}

// O bônus nunca é decrementado pela avaliação (só o billing externo consome).
func TestEvaluate_NaoConsumeBonus(t *testing.T) {
	c := novoCenario(t)
	c.assinatura(func(a *entity.Assinatura) {
		a.Status = entity.AssinaturaOverdue
		a.BonusMonths = 1
	})
	for i := 0; i < 3; i++ {
		d := c.eval.Evaluate(context.Background(), caller(idStaff), "/vendas")
		require.True(t, d.Allowed())
	}
	assert.Equal(t, 1, c.subs.subs[tenantA].BonusMonths)
}

// Rotas isentas continuam alcançáveis com assinatura bloqueada: é por elas que
// o tenant regulariza a cobrança.
func TestEvaluate_RotaIsentaComAssinaturaBloqueada_Passa(t *testing.T) {
	c := novoCenario(t)
	c.assinatura(func(a *entity.Assinatura) { a.Status = entity.AssinaturaSuspended })

	for _, path := range []string{"/planos", "/configuracoes", "/onboarding", "/indicacoes"} {
		d := c.eval.Evaluate(context.Background(), caller(idAdmin), path)
		assert.True(t, d.Allowed(), "rota isenta %s deve passar com assinatura suspensa", path)
	}
}

// Usuário sem tenant em rota protegida: negação dura, nunca acesso silencioso.
func TestEvaluate_UsuarioSemTenant_VaiParaLogin(t *testing.T) {
	c := novoCenario(t)
	c.dir.users["orfao"] = &entity.User{ID: "orfao", Role: entity.RoleTenantStaff, Status: "active"}

	d := c.eval.Evaluate(context.Background(), caller("orfao"), "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathLogin, d.Location)
}

func TestEvaluate_TenantSemAssinatura_VaiParaLogin(t *testing.T) {
	c := novoCenario(t)
	delete(c.subs.subs, tenantA)

	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathLogin, d.Location)
}

// Store de assinaturas indisponível falha FECHADA.
func TestEvaluate_StoreAssinaturaIndisponivel_VaiParaLogin(t *testing.T) {
	c := novoCenario(t)
	c.subs.err = errors.New("timeout")

	d := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, PathLogin, d.Location)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotência
// ──────────────────────────────────────────────────────────────────────────────

// Mesma requisição, mesmo estado externo -> mesma decisão (avaliar não muta nada).
func TestEvaluate_Idempotente(t *testing.T) {
	c := novoCenario(t)
	ontem := agora.Add(-24 * time.Hour)
	c.assinatura(func(a *entity.Assinatura) {
		a.Status = entity.AssinaturaTrial
		a.TrialEnd = &ontem
	})

	d1 := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	d2 := c.eval.Evaluate(context.Background(), caller(idStaff), "/dashboard")
	assert.Equal(t, d1, d2)
}

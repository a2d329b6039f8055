// Package gate implementa o gateway de controle de acesso avaliado em toda
// requisição: quem chama, de qual tenant, e se a requisição segue, redireciona
// ou é rejeitada. A cadeia é uma lista ordenada de estágios com curto-circuito;
// cada estágio devolve Allow, Redirect ou Continue e a ordem de precedência é
// testável estágio a estágio.
//
// Tabela de política de falha por dependência:
//
//	TenantDirectory     -> FECHADA (redirect /login)
//	SubscriptionStore   -> FECHADA (redirect /login)
//	PlatformConfigStore -> ABERTA  (segue como ativo=false)
package gate

import (
	"context"
	"time"

	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/pkg/logger"
)

// Evaluator avalia a cadeia de estágios. É stateless por requisição: mesma
// entrada e mesmo estado externo produzem sempre a mesma decisão.
type Evaluator struct {
	dir     TenantDirectory
	subs    SubscriptionStore
	mnt     *MaintenanceCache
	timeout time.Duration // teto por consulta externa
	log     *logger.Logger
	now     func() time.Time
}

// NewEvaluator constrói o avaliador do gateway.
func NewEvaluator(dir TenantDirectory, subs SubscriptionStore, mnt *MaintenanceCache, timeout time.Duration, log *logger.Logger) *Evaluator {
	return &Evaluator{dir: dir, subs: subs, mnt: mnt, timeout: timeout, log: log, now: time.Now}
}

// estado acumulado ao longo da cadeia de uma única avaliação.
type evalState struct {
	caller     Caller
	path       string
	class      RouteClass
	user       *entity.User
	manutencao entity.ManutencaoConfig
}

type gateFunc func(ctx context.Context, st *evalState) Decision

// Evaluate produz exatamente uma decisão para (caller, path). O primeiro
// estágio que devolver algo diferente de Continue encerra a cadeia.
func (e *Evaluator) Evaluate(ctx context.Context, caller Caller, path string) Decision {
	st := &evalState{caller: caller, path: path, class: Classify(path)}
	chain := []gateFunc{
		e.gatePublico,
		e.gateIdentidade,
		e.gatePapel,
		e.gateManutencao,
		e.gateAssinatura,
	}
	for _, g := range chain {
		if d := g(ctx, st); d.Action != ActionContinue {
			return d
		}
	}
	return allow()
}

// Class expõe a classificação usada na avaliação (para métricas do middleware).
func (e *Evaluator) Class(path string) RouteClass { return Classify(path) }

// gatePublico: rotas public e public_api sempre passam, qualquer caller,
// qualquer estado de assinatura ou manutenção.
func (e *Evaluator) gatePublico(_ context.Context, st *evalState) Decision {
	if st.class == RoutePublic || st.class == RoutePublicAPI {
		return allow()
	}
	return cont()
}

// gateIdentidade: exige sessão e carrega o contexto externo. A consulta ao
// diretório e a leitura da config de manutenção não dependem uma da outra e
// rodam em paralelo; a assinatura depende do tenant e fica para o estágio dela.
func (e *Evaluator) gateIdentidade(ctx context.Context, st *evalState) Decision {
	if !st.caller.Authenticated {
		return redirect(PathLogin)
	}

	type userRes struct {
		user *entity.User
		err  error
	}
	userCh := make(chan userRes, 1)
	go func() {
		lctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()
		u, err := e.dir.GetByID(lctx, st.caller.IdentityID)
		userCh <- userRes{u, err}
	}()
	mntCh := make(chan entity.ManutencaoConfig, 1)
	go func() { mntCh <- e.mnt.Get(ctx) }()

	ur := <-userCh
	st.manutencao = <-mntCh

	// Diretório de tenants falha FECHADO: sem identidade confirmada não há acesso.
	if ur.err != nil {
		e.log.Error().Err(ur.err).Str("path", st.path).Msg("diretório de usuários indisponível")
		return redirect(PathLogin)
	}
	if ur.user == nil {
		e.log.Warn().Str("identity_id", st.caller.IdentityID).Str("path", st.path).
			Msg("sessão válida para usuário inexistente (anômalo)")
		return redirect(PathLogin)
	}
	if ur.user.Status != "active" {
		return redirect(PathLogin)
	}
	st.user = ur.user
	return cont()
}

// gatePapel: RBAC das classes admin. platform_admin é liberado aqui para TODA
// classe e fica isento dos estágios seguintes — a equipe da plataforma nunca
// pode perder acesso ao sistema. Papel insuficiente redireciona para a landing
// autenticada sem revelar a existência do recurso.
func (e *Evaluator) gatePapel(_ context.Context, st *evalState) Decision {
	if st.user.IsPlatformAdmin() {
		return allow()
	}
	switch st.class {
	case RoutePlatformAdmin:
		return redirect(PathDashboard)
	case RouteTenantAdmin:
		if st.user.Role != entity.RoleTenantAdmin {
			return redirect(PathDashboard)
		}
	}
	return cont()
}

// gateManutencao: com a plataforma em manutenção, todo usuário que chegou até
// aqui (autenticado, não platform_admin, rota não pública) vai para /manutencao.
func (e *Evaluator) gateManutencao(_ context.Context, st *evalState) Decision {
	if st.manutencao.Ativo {
		return redirect(PathManutencao)
	}
	return cont()
}

// gateAssinatura: ciclo de vida da assinatura, só em rotas standard_protected
// — planos, configurações, onboarding e indicações ficam alcançáveis mesmo com
// assinatura bloqueada, para o tenant sempre conseguir regularizar a cobrança.
//
// Ordem interna estrita: onboarding incompleto vence qualquer status (até um
// trial vencido).
func (e *Evaluator) gateAssinatura(ctx context.Context, st *evalState) Decision {
	if st.class != RouteStandard {
		return cont()
	}
	if st.user.TenantID == "" {
		e.log.Warn().Str("user_id", st.user.ID).Str("path", st.path).
			Msg("usuário sem tenant em rota protegida (anômalo)")
		return redirect(PathLogin)
	}

	lctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	sub, err := e.subs.GetByTenant(lctx, st.user.TenantID)
	if err != nil {
		// Store de assinaturas falha FECHADA: não dá para provar que o tenant pode.
		e.log.Error().Err(err).Str("tenant_id", st.user.TenantID).Str("path", st.path).
			Msg("store de assinaturas indisponível")
		return redirect(PathLogin)
	}
	if sub == nil {
		e.log.Warn().Str("tenant_id", st.user.TenantID).Str("path", st.path).
			Msg("tenant sem assinatura (anômalo)")
		return redirect(PathLogin)
	}

	if !sub.OnboardingComplete && !matchPrefix(st.path, PathOnboarding) {
		return redirect(PathOnboarding)
	}

	eff := sub.EffectiveStatus(e.now())
	if !entity.StatusBloqueado(eff) {
		return allow()
	}
	// Bônus de indicação cobre o período em silêncio; o consumo do crédito é
	// responsabilidade do ciclo de billing externo, nunca deste caminho de leitura.
	if sub.BonusMonths > 0 {
		return allow()
	}
	return redirectMotivo(PathPlanos, eff)
}

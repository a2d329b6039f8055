package gate

// Action é o desfecho de um estágio do gateway.
type Action int

const (
	// ActionContinue passa ao próximo estágio da cadeia; nunca sai do avaliador.
	ActionContinue Action = iota
	// ActionAllow deixa a requisição seguir para a aplicação.
	ActionAllow
	// ActionRedirect responde 302 para Location (com motivo opcional).
	ActionRedirect
	// ActionReject responde um 4xx sem redirect (requisição malformada).
	ActionReject
)

// Destinos de redirect do gateway. Todo bloqueio de usuário logado aponta para
// uma página legível (login, planos, onboarding, manutenção), nunca um erro cru.
const (
	PathLogin      = "/login"
	PathDashboard  = "/dashboard"
	PathPlanos     = "/planos"
	PathOnboarding = "/onboarding"
	PathManutencao = "/manutencao"
)

// Decision é o único resultado emitido por avaliação: Allow, Redirect ou Reject.
// Uma vez produzido um Redirect, nenhum estágio posterior executa.
type Decision struct {
	Action   Action
	Location string // destino do redirect
	Motivo   string // vira query param ?motivo= no redirect (pode ser vazio)
	Status   int    // status HTTP quando Action == ActionReject
}

// Allowed é açúcar para os testes e para o middleware.
func (d Decision) Allowed() bool { return d.Action == ActionAllow }

// RedirectURL monta o Location final incluindo o motivo, se houver.
func (d Decision) RedirectURL() string {
	if d.Motivo == "" {
		return d.Location
	}
	return d.Location + "?motivo=" + d.Motivo
}

func allow() Decision              { return Decision{Action: ActionAllow} }
func cont() Decision               { return Decision{Action: ActionContinue} }
func redirect(loc string) Decision { return Decision{Action: ActionRedirect, Location: loc} }
func redirectMotivo(loc, m string) Decision {
	return Decision{Action: ActionRedirect, Location: loc, Motivo: m}
}

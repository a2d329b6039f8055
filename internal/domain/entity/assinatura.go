package entity

import "time"

// Status persistidos de uma assinatura. A transição de trial vencido para
// expired acontece fora do caminho da requisição (webhook/billing), então o
// campo Status pode ficar defasado; use EffectiveStatus na leitura.
const (
	AssinaturaTrial     = "trial"
	AssinaturaActive    = "active"
	AssinaturaSuspended = "suspended"
	AssinaturaCancelled = "cancelled"
	AssinaturaOverdue   = "overdue"
	AssinaturaExpired   = "expired"
)

// MotivoTrialExpirado é o motivo usado no redirect quando o trial venceu mas o
// campo Status ainda diz "trial".
const MotivoTrialExpirado = "trial_expirado"

// Assinatura representa o vínculo de cobrança de um tenant.
// Mutada apenas pelo webhook de billing e pelo fluxo de indicações; o gateway só lê.
type Assinatura struct {
	ID                   string
	TenantID             string
	Status               string     // ver constantes Assinatura*
	TrialEnd             *time.Time // nil fora de trial
	BonusMonths          int        // meses de bônus por indicação; nunca negativo
	OnboardingComplete   bool
	StripeCustomerID     string
	StripeSubscriptionID string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EffectiveStatus deriva o status real no instante now, sem confiar no campo
// persistido: trial com TrialEnd no passado (ou ausente) vira trial_expirado.
// O valor devolvido é exatamente o token usado no parâmetro motivo dos redirects.
func (a *Assinatura) EffectiveStatus(now time.Time) string {
	if a.Status != AssinaturaTrial {
		return a.Status
	}
	if a.TrialEnd == nil || !now.Before(*a.TrialEnd) {
		return MotivoTrialExpirado
	}
	return AssinaturaTrial
}

// StatusBloqueado informa se um status efetivo impede acesso às rotas protegidas
// (sujeito à cobertura por BonusMonths, decidida no gateway).
func StatusBloqueado(status string) bool {
	switch status {
	case AssinaturaSuspended, AssinaturaCancelled, AssinaturaOverdue, AssinaturaExpired, MotivoTrialExpirado:
		return true
	}
	return false
}

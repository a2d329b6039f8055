package entity

import "time"

// ManutencaoConfig é a configuração global de manutenção da plataforma.
// Singleton mutado apenas por ação de platform_admin; toda requisição lê o
// valor corrente via snapshot com TTL curto (nunca como estado compartilhado
// sem sincronização).
type ManutencaoConfig struct {
	Ativo     bool
	Mensagem  string
	UpdatedAt time.Time
}

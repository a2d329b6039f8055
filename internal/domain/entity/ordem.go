package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do ciclo de uma ordem de serviço.
const (
	OrdemAberta     = "aberta"
	OrdemEmAnalise  = "em_analise"
	OrdemAprovada   = "aprovada"
	OrdemEmReparo   = "em_reparo"
	OrdemConcluida  = "concluida"
	OrdemEntregue   = "entregue"
	OrdemCancelada  = "cancelada"
)

// OrdemServico representa uma ordem de serviço de reparo (coração do back office).
type OrdemServico struct {
	ID           string
	TenantID     string
	ClienteID    string
	Numero       int    // sequencial por tenant, exibido ao cliente
	Equipamento  string // ex.: "iPhone 13", "Notebook Dell G15"
	Defeito      string // relato do cliente
	Diagnostico  string
	Status       string // ver constantes Ordem*
	ValorOrcado  decimal.Decimal
	ValorFinal   decimal.Decimal
	TecnicoID    string // usuário responsável; vazio se não atribuído
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TransicaoValida informa se a mudança de status respeita o ciclo da OS.
// Cancelamento é permitido de qualquer status não terminal.
func TransicaoValida(de, para string) bool {
	if de == para {
		return false
	}
	if para == OrdemCancelada {
		return de != OrdemEntregue && de != OrdemCancelada
	}
	next := map[string][]string{
		OrdemAberta:    {OrdemEmAnalise},
		OrdemEmAnalise: {OrdemAprovada},
		OrdemAprovada:  {OrdemEmReparo},
		OrdemEmReparo:  {OrdemConcluida},
		OrdemConcluida: {OrdemEntregue},
	}
	for _, s := range next[de] {
		if s == para {
			return true
		}
	}
	return false
}

package entity

import "time"

// Indicacao registra que um tenant entrou pelo código de outro. O bônus em
// meses é creditado na assinatura do indicador quando a indicada converte
// (primeiro pagamento confirmado via webhook); o gateway apenas lê o saldo.
type Indicacao struct {
	ID               string
	IndicadorTenant  string // quem divulgou o código
	IndicadoTenant   string // quem se cadastrou com o código
	Codigo           string
	Convertida       bool
	ConvertidaEm     *time.Time
	CreatedAt        time.Time
}

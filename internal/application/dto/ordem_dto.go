package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrdemRequest abre uma ordem de serviço.
type CreateOrdemRequest struct {
	ClienteID   string          `json:"cliente_id"`
	Equipamento string          `json:"equipamento"`
	Defeito     string          `json:"defeito"`
	ValorOrcado decimal.Decimal `json:"valor_orcado"`
}

// UpdateOrdemStatusRequest transiciona o status da OS.
type UpdateOrdemStatusRequest struct {
	Status      string          `json:"status"`
	Diagnostico string          `json:"diagnostico,omitempty"`
	ValorFinal  decimal.Decimal `json:"valor_final,omitempty"`
}

// OrdemResponse ordem de serviço completa.
type OrdemResponse struct {
	ID          string          `json:"id"`
	Numero      int             `json:"numero"`
	ClienteID   string          `json:"cliente_id"`
	Equipamento string          `json:"equipamento"`
	Defeito     string          `json:"defeito"`
	Diagnostico string          `json:"diagnostico,omitempty"`
	Status      string          `json:"status"`
	ValorOrcado decimal.Decimal `json:"valor_orcado"`
	ValorFinal  decimal.Decimal `json:"valor_final"`
	TecnicoID   string          `json:"tecnico_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrdemListResponse listagem paginada.
type OrdemListResponse struct {
	Items []OrdemResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

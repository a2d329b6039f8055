package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um item de estoque (peça ou acessório vendável).
type Produto struct {
	ID         string
	TenantID   string
	SKU        string
	Nome       string
	Descricao  string
	PrecoCusto decimal.Decimal
	PrecoVenda decimal.Decimal
	Estoque    int
	EstoqueMin int // abaixo disso o dashboard alerta reposição
	Ativo      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pagamento aceitas no PDV.
const (
	PagamentoDinheiro = "dinheiro"
	PagamentoCartao   = "cartao"
	PagamentoPix      = "pix"
)

// Venda representa uma venda de balcão (PDV).
type Venda struct {
	ID             string
	TenantID       string
	ClienteID      string // vazio em venda avulsa
	VendedorID     string
	Itens          []VendaItem
	Total          decimal.Decimal
	FormaPagamento string // ver constantes Pagamento*
	CreatedAt      time.Time
}

// VendaItem é uma linha da venda; guarda o preço praticado no momento.
type VendaItem struct {
	ProdutoID     string
	Quantidade    int
	PrecoUnitario decimal.Decimal
}

// CalculaTotal soma os itens (quantidade x preço praticado).
func (v *Venda) CalculaTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range v.Itens {
		total = total.Add(it.PrecoUnitario.Mul(decimal.NewFromInt(int64(it.Quantidade))))
	}
	return total
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendaItemRequest linha de venda no PDV.
type VendaItemRequest struct {
	ProdutoID  string `json:"produto_id"`
	Quantidade int    `json:"quantidade"`
}

// CreateVendaRequest registra uma venda de balcão.
type CreateVendaRequest struct {
	ClienteID      string             `json:"cliente_id,omitempty"` // vazio em venda avulsa
	Itens          []VendaItemRequest `json:"itens"`
	FormaPagamento string             `json:"forma_pagamento"` // dinheiro, cartao, pix
}

// VendaItemResponse linha com o preço praticado.
type VendaItemResponse struct {
	ProdutoID     string          `json:"produto_id"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
}

// VendaResponse venda completa.
type VendaResponse struct {
	ID             string              `json:"id"`
	ClienteID      string              `json:"cliente_id,omitempty"`
	VendedorID     string              `json:"vendedor_id"`
	Itens          []VendaItemResponse `json:"itens"`
	Total          decimal.Decimal     `json:"total"`
	FormaPagamento string              `json:"forma_pagamento"`
	CreatedAt      time.Time           `json:"created_at"`
}

// VendaListResponse listagem paginada.
type VendaListResponse struct {
	Items []VendaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

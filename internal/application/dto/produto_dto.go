package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProdutoRequest cadastra um produto/peça.
type CreateProdutoRequest struct {
	SKU        string          `json:"sku"`
	Nome       string          `json:"nome"`
	Descricao  string          `json:"descricao,omitempty"`
	PrecoCusto decimal.Decimal `json:"preco_custo"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
	Estoque    int             `json:"estoque"`
	EstoqueMin int             `json:"estoque_min"`
}

// AjusteEstoqueRequest soma/subtrai estoque (delta negativo baixa).
type AjusteEstoqueRequest struct {
	Delta  int    `json:"delta"`
	Motivo string `json:"motivo,omitempty"` // entrada, perda, ajuste de inventário
}

// ProdutoResponse produto completo.
type ProdutoResponse struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Nome       string          `json:"nome"`
	Descricao  string          `json:"descricao,omitempty"`
	PrecoCusto decimal.Decimal `json:"preco_custo"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
	Estoque    int             `json:"estoque"`
	EstoqueMin int             `json:"estoque_min"`
	Ativo      bool            `json:"ativo"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProdutoListResponse listagem paginada.
type ProdutoListResponse struct {
	Items []ProdutoResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

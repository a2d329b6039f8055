package repository

import "github.com/consertapro/conserta-api/internal/domain/entity"

// ProdutoRepository define o porto de persistência para Produto (DIP).
type ProdutoRepository interface {
	Create(produto *entity.Produto) error
	GetByID(tenantID, id string) (*entity.Produto, error)
	GetBySKU(tenantID, sku string) (*entity.Produto, error)
	Update(produto *entity.Produto) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Produto, error)
	// AjustaEstoque soma delta (negativo baixa) e falha se o saldo ficar negativo.
	AjustaEstoque(tenantID, id string, delta int) error
}

package repository

import "github.com/consertapro/conserta-api/internal/domain/entity"

// VendaRepository define o porto de persistência para Venda (DIP).
// Create grava cabeçalho e itens na mesma transação.
type VendaRepository interface {
	Create(venda *entity.Venda) error
	GetByID(tenantID, id string) (*entity.Venda, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Venda, error)
}

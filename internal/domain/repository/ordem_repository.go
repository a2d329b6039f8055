package repository

import "github.com/consertapro/conserta-api/internal/domain/entity"

// OrdemRepository define o porto de persistência para OrdemServico (DIP).
type OrdemRepository interface {
	Create(ordem *entity.OrdemServico) error
	GetByID(tenantID, id string) (*entity.OrdemServico, error)
	Update(ordem *entity.OrdemServico) error
	ListByTenant(tenantID string, status string, limit, offset int) ([]*entity.OrdemServico, error)
	// NextNumero devolve o próximo sequencial de OS do tenant.
	NextNumero(tenantID string) (int, error)
}

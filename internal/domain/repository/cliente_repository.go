package repository

import "github.com/consertapro/conserta-api/internal/domain/entity"

// ClienteRepository define o porto de persistência para Cliente (DIP).
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(tenantID, id string) (*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
	ListByTenant(tenantID string, busca string, limit, offset int) ([]*entity.Cliente, error)
}

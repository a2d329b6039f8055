package repository

import (
	"context"

	"github.com/consertapro/conserta-api/internal/domain/entity"
)

// UserRepository define o porto de persistência para User (DIP).
// Os métodos com ctx estão no caminho do gateway e precisam honrar cancelamento.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}

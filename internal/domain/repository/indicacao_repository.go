package repository

import (
	"context"

	"github.com/consertapro/conserta-api/internal/domain/entity"
)

// IndicacaoRepository define o porto de persistência para Indicacao (DIP).
type IndicacaoRepository interface {
	Create(indicacao *entity.Indicacao) error
	GetByIndicado(ctx context.Context, tenantID string) (*entity.Indicacao, error)
	ListByIndicador(tenantID string, limit, offset int) ([]*entity.Indicacao, error)
	// MarkConvertida marca a conversão; devolve false se já estava convertida
	// (o crédito de bônus precisa ser idempotente frente a webhooks repetidos).
	MarkConvertida(ctx context.Context, id string) (bool, error)
}

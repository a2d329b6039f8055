package repository

import (
	"context"

	"github.com/consertapro/conserta-api/internal/domain/entity"
)

// PlataformaRepository define o porto da configuração global da plataforma.
// GetManutencao deve tolerar ausência do registro (tabela ainda não provisionada)
// devolvendo o zero value com err == nil; o gateway falha aberto nos demais erros.
type PlataformaRepository interface {
	GetManutencao(ctx context.Context) (entity.ManutencaoConfig, error)
	SetManutencao(ctx context.Context, ativo bool, mensagem string) error
}

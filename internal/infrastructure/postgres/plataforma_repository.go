package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

var _ repository.PlataformaRepository = (*PlataformaRepo)(nil)

// PlataformaRepo mantém a configuração global da plataforma (linha única).
type PlataformaRepo struct {
	pool *pgxpool.Pool
}

// NewPlataformaRepository constrói o adaptador da configuração de plataforma.
func NewPlataformaRepository(pool *pgxpool.Pool) *PlataformaRepo {
	return &PlataformaRepo{pool: pool}
}

// GetManutencao lê o modo manutenção. Ausência de registro ou tabela ainda não
// provisionada equivalem a manutenção desligada (zero value, err == nil).
func (r *PlataformaRepo) GetManutencao(ctx context.Context) (entity.ManutencaoConfig, error) {
	query := `SELECT manutencao_ativo, manutencao_mensagem, updated_at FROM plataforma_config WHERE id = 1`
	var cfg entity.ManutencaoConfig
	err := r.pool.QueryRow(ctx, query).Scan(&cfg.Ativo, &cfg.Mensagem, &cfg.UpdatedAt)
	if err != nil {
		if isNoRows(err) || isUndefinedTable(err) {
			return entity.ManutencaoConfig{}, nil
		}
		return entity.ManutencaoConfig{}, fmt.Errorf("get manutencao: %w", err)
	}
	return cfg, nil
}

// SetManutencao liga/desliga o modo manutenção (upsert na linha única).
func (r *PlataformaRepo) SetManutencao(ctx context.Context, ativo bool, mensagem string) error {
	query := `
		INSERT INTO plataforma_config (id, manutencao_ativo, manutencao_mensagem, updated_at)
		VALUES (1, $1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET manutencao_ativo = EXCLUDED.manutencao_ativo,
			manutencao_mensagem = EXCLUDED.manutencao_mensagem,
			updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, ativo, mensagem); err != nil {
		return fmt.Errorf("set manutencao: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

var _ repository.IndicacaoRepository = (*IndicacaoRepo)(nil)

// IndicacaoRepo implementação do porto IndicacaoRepository sobre PostgreSQL.
type IndicacaoRepo struct {
	pool *pgxpool.Pool
}

// NewIndicacaoRepository constrói o adaptador de persistência de indicações.
func NewIndicacaoRepository(pool *pgxpool.Pool) *IndicacaoRepo {
	return &IndicacaoRepo{pool: pool}
}

const indicacaoCols = `id, indicador_tenant, indicado_tenant, codigo, convertida, convertida_em, created_at`

// Create registra a indicação no cadastro do tenant indicado.
func (r *IndicacaoRepo) Create(i *entity.Indicacao) error {
	query := `
		INSERT INTO indicacoes (` + indicacaoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		i.ID, i.IndicadorTenant, i.IndicadoTenant, i.Codigo, i.Convertida, i.ConvertidaEm, i.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert indicacao: %w", err)
	}
	return nil
}

// GetByIndicado busca a indicação pela qual o tenant entrou; (nil, nil) se não houver.
func (r *IndicacaoRepo) GetByIndicado(ctx context.Context, tenantID string) (*entity.Indicacao, error) {
	query := `SELECT ` + indicacaoCols + ` FROM indicacoes WHERE indicado_tenant = $1`
	row := r.pool.QueryRow(ctx, query, tenantID)
	i, err := scanIndicacao(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get indicacao: %w", err)
	}
	return i, nil
}

// ListByIndicador lista as indicações feitas pelo tenant, mais recentes primeiro.
func (r *IndicacaoRepo) ListByIndicador(tenantID string, limit, offset int) ([]*entity.Indicacao, error) {
	query := `SELECT ` + indicacaoCols + ` FROM indicacoes WHERE indicador_tenant = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list indicacoes: %w", err)
	}
	defer rows.Close()

	var indicacoes []*entity.Indicacao
	for rows.Next() {
		i, err := scanIndicacao(rows)
		if err != nil {
			return nil, fmt.Errorf("scan indicacao: %w", err)
		}
		indicacoes = append(indicacoes, i)
	}
	return indicacoes, rows.Err()
}

// MarkConvertida marca a conversão de forma atômica; devolve false se já
// estava convertida, permitindo crédito idempotente frente a webhooks repetidos.
func (r *IndicacaoRepo) MarkConvertida(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE indicacoes SET convertida = true, convertida_em = now()
		WHERE id = $1 AND convertida = false`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("mark convertida: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanIndicacao(row rowScanner) (*entity.Indicacao, error) {
	var i entity.Indicacao
	err := row.Scan(
		&i.ID, &i.IndicadorTenant, &i.IndicadoTenant, &i.Codigo, &i.Convertida,
		&i.ConvertidaEm, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

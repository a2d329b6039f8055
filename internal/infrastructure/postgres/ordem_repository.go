package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

var _ repository.OrdemRepository = (*OrdemRepo)(nil)

// OrdemRepo implementação do porto OrdemRepository sobre PostgreSQL.
type OrdemRepo struct {
	pool *pgxpool.Pool
}

// NewOrdemRepository constrói o adaptador de persistência de ordens de serviço.
func NewOrdemRepository(pool *pgxpool.Pool) *OrdemRepo {
	return &OrdemRepo{pool: pool}
}

const ordemCols = `id, tenant_id, cliente_id, numero, equipamento, defeito, diagnostico,
	status, valor_orcado, valor_final, tecnico_id, created_at, updated_at`

// Create persiste uma nova ordem de serviço.
func (r *OrdemRepo) Create(o *entity.OrdemServico) error {
	query := `
		INSERT INTO ordens_servico (` + ordemCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(context.Background(), query,
		o.ID, o.TenantID, o.ClienteID, o.Numero, o.Equipamento, o.Defeito, o.Diagnostico,
		o.Status, o.ValorOrcado, o.ValorFinal, nullIfEmpty(o.TecnicoID), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ordem: %w", err)
	}
	return nil
}

// GetByID busca uma OS do tenant; (nil, nil) se não existir.
func (r *OrdemRepo) GetByID(tenantID, id string) (*entity.OrdemServico, error) {
	query := `SELECT ` + ordemCols + ` FROM ordens_servico WHERE tenant_id = $1 AND id = $2`
	row := r.pool.QueryRow(context.Background(), query, tenantID, id)
	o, err := scanOrdem(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ordem: %w", err)
	}
	return o, nil
}

// Update atualiza os campos mutáveis da OS.
func (r *OrdemRepo) Update(o *entity.OrdemServico) error {
	query := `
		UPDATE ordens_servico
		SET diagnostico = $3, status = $4, valor_orcado = $5, valor_final = $6,
			tecnico_id = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2`
	cmd, err := r.pool.Exec(context.Background(), query,
		o.TenantID, o.ID, o.Diagnostico, o.Status, o.ValorOrcado, o.ValorFinal,
		nullIfEmpty(o.TecnicoID), o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ordem: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTenant lista ordens do tenant, opcionalmente filtradas por status.
func (r *OrdemRepo) ListByTenant(tenantID string, status string, limit, offset int) ([]*entity.OrdemServico, error) {
	query := `SELECT ` + ordemCols + ` FROM ordens_servico WHERE tenant_id = $1`
	args := []any{tenantID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY numero DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ordens: %w", err)
	}
	defer rows.Close()

	var ordens []*entity.OrdemServico
	for rows.Next() {
		o, err := scanOrdem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ordem: %w", err)
		}
		ordens = append(ordens, o)
	}
	return ordens, rows.Err()
}

// NextNumero devolve o próximo sequencial de OS do tenant.
func (r *OrdemRepo) NextNumero(tenantID string) (int, error) {
	query := `SELECT COALESCE(MAX(numero), 0) + 1 FROM ordens_servico WHERE tenant_id = $1`
	var numero int
	if err := r.pool.QueryRow(context.Background(), query, tenantID).Scan(&numero); err != nil {
		return 0, fmt.Errorf("next numero: %w", err)
	}
	return numero, nil
}

func scanOrdem(row rowScanner) (*entity.OrdemServico, error) {
	var o entity.OrdemServico
	var tecnico *string
	err := row.Scan(
		&o.ID, &o.TenantID, &o.ClienteID, &o.Numero, &o.Equipamento, &o.Defeito, &o.Diagnostico,
		&o.Status, &o.ValorOrcado, &o.ValorFinal, &tecnico, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tecnico != nil {
		o.TecnicoID = *tecnico
	}
	return &o, nil
}

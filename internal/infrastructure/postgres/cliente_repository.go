package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementação do porto ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	pool *pgxpool.Pool
}

// NewClienteRepository constrói o adaptador de persistência de clientes.
func NewClienteRepository(pool *pgxpool.Pool) *ClienteRepo {
	return &ClienteRepo{pool: pool}
}

const clienteCols = `id, tenant_id, nome, cpf, telefone, email, endereco, created_at, updated_at`

// Create persiste um novo cliente.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.TenantID, c.Nome, c.CPF, c.Telefone, c.Email, c.Endereco, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID busca um cliente do tenant; (nil, nil) se não existir.
func (r *ClienteRepo) GetByID(tenantID, id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteCols + ` FROM clientes WHERE tenant_id = $1 AND id = $2`
	row := r.pool.QueryRow(context.Background(), query, tenantID, id)
	c, err := scanCliente(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// Update atualiza o cadastro do cliente.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	query := `
		UPDATE clientes
		SET nome = $3, cpf = $4, telefone = $5, email = $6, endereco = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2`
	cmd, err := r.pool.Exec(context.Background(), query,
		c.TenantID, c.ID, c.Nome, c.CPF, c.Telefone, c.Email, c.Endereco, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTenant lista clientes do tenant; busca filtra por nome ou telefone.
func (r *ClienteRepo) ListByTenant(tenantID string, busca string, limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteCols + ` FROM clientes WHERE tenant_id = $1`
	args := []any{tenantID}
	if busca != "" {
		query += ` AND (nome ILIKE $2 OR telefone LIKE $2)`
		args = append(args, "%"+busca+"%")
	}
	query += fmt.Sprintf(` ORDER BY nome LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var clientes []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		clientes = append(clientes, c)
	}
	return clientes, rows.Err()
}

func scanCliente(row rowScanner) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Nome, &c.CPF, &c.Telefone, &c.Email, &c.Endereco,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

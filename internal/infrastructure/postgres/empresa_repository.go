package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementação do porto EmpresaRepository sobre PostgreSQL.
type EmpresaRepo struct {
	pool *pgxpool.Pool
}

// NewEmpresaRepository constrói o adaptador de persistência de empresas.
func NewEmpresaRepository(pool *pgxpool.Pool) *EmpresaRepo {
	return &EmpresaRepo{pool: pool}
}

const empresaCols = `id, nome, cnpj, endereco, telefone, email, status, codigo_indicacao, created_at, updated_at`

// Create persiste uma nova empresa.
func (r *EmpresaRepo) Create(e *entity.Empresa) error {
	query := `
		INSERT INTO empresas (` + empresaCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		e.ID, e.Nome, e.CNPJ, e.Endereco, e.Telefone, e.Email, e.Status,
		e.CodigoIndicacao, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID busca uma empresa por ID.
func (r *EmpresaRepo) GetByID(id string) (*entity.Empresa, error) {
	return r.getBy("id", id)
}

// GetByCodigoIndicacao busca a empresa dona de um código de indicação.
func (r *EmpresaRepo) GetByCodigoIndicacao(codigo string) (*entity.Empresa, error) {
	return r.getBy("codigo_indicacao", codigo)
}

func (r *EmpresaRepo) getBy(col, val string) (*entity.Empresa, error) {
	query := `SELECT ` + empresaCols + ` FROM empresas WHERE ` + col + ` = $1`
	var e entity.Empresa
	err := r.pool.QueryRow(context.Background(), query, val).Scan(
		&e.ID, &e.Nome, &e.CNPJ, &e.Endereco, &e.Telefone, &e.Email, &e.Status,
		&e.CodigoIndicacao, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa by %s: %w", col, err)
	}
	return &e, nil
}

// Update atualiza uma empresa existente.
func (r *EmpresaRepo) Update(e *entity.Empresa) error {
	query := `
		UPDATE empresas SET nome = $2, cnpj = $3, endereco = $4, telefone = $5, email = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		e.ID, e.Nome, e.CNPJ, e.Endereco, e.Telefone, e.Email, e.Status, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update empresa: %w", err)
	}
	return nil
}

// List devolve empresas com paginação.
func (r *EmpresaRepo) List(limit, offset int) ([]*entity.Empresa, error) {
	query := `SELECT ` + empresaCols + ` FROM empresas ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Empresa
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(&e.ID, &e.Nome, &e.CNPJ, &e.Endereco, &e.Telefone, &e.Email,
			&e.Status, &e.CodigoIndicacao, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

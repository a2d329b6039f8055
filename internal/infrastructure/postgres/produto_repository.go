package postgres

import (
	"context"
	"fmt"

	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementação do porto ProdutoRepository sobre PostgreSQL
// (usável com pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador de persistência de produtos.
// Passar pool ou tx (Querier).
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

const produtoCols = `id, tenant_id, sku, nome, descricao, preco_custo, preco_venda,
	estoque, estoque_min, ativo, created_at, updated_at`

// Create persiste um novo produto. SKU é único por tenant.
func (r *ProdutoRepo) Create(p *entity.Produto) error {
	query := `
		INSERT INTO produtos (` + produtoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.TenantID, p.SKU, p.Nome, p.Descricao, p.PrecoCusto, p.PrecoVenda,
		p.Estoque, p.EstoqueMin, p.Ativo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

// GetByID busca um produto do tenant; (nil, nil) se não existir.
func (r *ProdutoRepo) GetByID(tenantID, id string) (*entity.Produto, error) {
	return r.getBy(tenantID, "id", id)
}

// GetBySKU busca pelo SKU dentro do tenant; (nil, nil) se não existir.
func (r *ProdutoRepo) GetBySKU(tenantID, sku string) (*entity.Produto, error) {
	return r.getBy(tenantID, "sku", sku)
}

func (r *ProdutoRepo) getBy(tenantID, col, val string) (*entity.Produto, error) {
	query := `SELECT ` + produtoCols + ` FROM produtos WHERE tenant_id = $1 AND ` + col + ` = $2`
	row := r.q.QueryRow(context.Background(), query, tenantID, val)
	p, err := scanProduto(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto by %s: %w", col, err)
	}
	return p, nil
}

// Update atualiza os campos mutáveis do produto (estoque vai por AjustaEstoque).
func (r *ProdutoRepo) Update(p *entity.Produto) error {
	query := `
		UPDATE produtos
		SET sku = $3, nome = $4, descricao = $5, preco_custo = $6, preco_venda = $7,
			estoque_min = $8, ativo = $9, updated_at = $10
		WHERE tenant_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		p.TenantID, p.ID, p.SKU, p.Nome, p.Descricao, p.PrecoCusto, p.PrecoVenda,
		p.EstoqueMin, p.Ativo, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update produto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTenant lista produtos do tenant ordenados por nome.
func (r *ProdutoRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Produto, error) {
	query := `SELECT ` + produtoCols + ` FROM produtos WHERE tenant_id = $1 ORDER BY nome LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()

	var produtos []*entity.Produto
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		produtos = append(produtos, p)
	}
	return produtos, rows.Err()
}

// AjustaEstoque soma delta ao estoque de forma atômica; a cláusula de guarda
// impede saldo negativo sem precisar de SELECT FOR UPDATE.
func (r *ProdutoRepo) AjustaEstoque(tenantID, id string, delta int) error {
	query := `
		UPDATE produtos SET estoque = estoque + $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND estoque + $3 >= 0`
	cmd, err := r.q.Exec(context.Background(), query, tenantID, id, delta)
	if err != nil {
		return fmt.Errorf("ajusta estoque: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func scanProduto(row rowScanner) (*entity.Produto, error) {
	var p entity.Produto
	err := row.Scan(
		&p.ID, &p.TenantID, &p.SKU, &p.Nome, &p.Descricao, &p.PrecoCusto, &p.PrecoVenda,
		&p.Estoque, &p.EstoqueMin, &p.Ativo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

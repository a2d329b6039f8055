package postgres

import (
	"context"
	"fmt"

	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

var _ repository.VendaRepository = (*VendaRepo)(nil)

// VendaRepo implementação do porto VendaRepository sobre PostgreSQL
// (usável com pool ou tx).
type VendaRepo struct {
	q Querier
}

// NewVendaRepository constrói o adaptador de persistência de vendas.
// Passar pool ou tx (Querier).
func NewVendaRepository(q Querier) *VendaRepo {
	return &VendaRepo{q: q}
}

const vendaCols = `id, tenant_id, cliente_id, vendedor_id, total, forma_pagamento, created_at`

// Create grava cabeçalho e itens na mesma transação.
func (r *VendaRepo) Create(v *entity.Venda) error {
	ctx := context.Background()
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin venda: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO vendas (`+vendaCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.TenantID, nullIfEmpty(v.ClienteID), v.VendedorID, v.Total, v.FormaPagamento, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert venda: %w", err)
	}

	for _, it := range v.Itens {
		_, err = tx.Exec(ctx, `
			INSERT INTO venda_itens (venda_id, produto_id, quantidade, preco_unitario)
			VALUES ($1, $2, $3, $4)`,
			v.ID, it.ProdutoID, it.Quantidade, it.PrecoUnitario,
		)
		if err != nil {
			return fmt.Errorf("insert venda item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID busca uma venda do tenant com seus itens; (nil, nil) se não existir.
func (r *VendaRepo) GetByID(tenantID, id string) (*entity.Venda, error) {
	query := `SELECT ` + vendaCols + ` FROM vendas WHERE tenant_id = $1 AND id = $2`
	row := r.q.QueryRow(context.Background(), query, tenantID, id)
	v, err := scanVenda(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venda: %w", err)
	}
	if err := r.carregaItens(v); err != nil {
		return nil, err
	}
	return v, nil
}

// ListByTenant lista vendas do tenant, mais recentes primeiro, com itens.
func (r *VendaRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Venda, error) {
	query := `SELECT ` + vendaCols + ` FROM vendas WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendas: %w", err)
	}
	defer rows.Close()

	var vendas []*entity.Venda
	for rows.Next() {
		v, err := scanVenda(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venda: %w", err)
		}
		vendas = append(vendas, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, v := range vendas {
		if err := r.carregaItens(v); err != nil {
			return nil, err
		}
	}
	return vendas, nil
}

func (r *VendaRepo) carregaItens(v *entity.Venda) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT produto_id, quantidade, preco_unitario FROM venda_itens WHERE venda_id = $1`, v.ID)
	if err != nil {
		return fmt.Errorf("list venda itens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.VendaItem
		if err := rows.Scan(&it.ProdutoID, &it.Quantidade, &it.PrecoUnitario); err != nil {
			return fmt.Errorf("scan venda item: %w", err)
		}
		v.Itens = append(v.Itens, it)
	}
	return rows.Err()
}

func scanVenda(row rowScanner) (*entity.Venda, error) {
	var v entity.Venda
	var cliente *string
	err := row.Scan(&v.ID, &v.TenantID, &cliente, &v.VendedorID, &v.Total, &v.FormaPagamento, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	if cliente != nil {
		v.ClienteID = *cliente
	}
	return &v, nil
}

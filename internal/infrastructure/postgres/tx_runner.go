package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/consertapro/conserta-api/internal/application/usecase"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

var _ usecase.VendaTxRunner = (*TxRunner)(nil)

// Querier é o subconjunto comum de *pgxpool.Pool e pgx.Tx usado pelos
// adaptadores. Permite montar o mesmo repositório sobre o pool ou sobre
// uma transação aberta.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre uma transação, executa fn com repositórios atados a ela e faz
// Commit ou Rollback conforme o retorno.
func (r *TxRunner) Run(fn func(
	vendas repository.VendaRepository,
	produtos repository.ProdutoRepository,
) error) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewVendaRepository(tx), NewProdutoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

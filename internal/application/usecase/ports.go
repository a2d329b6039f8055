package usecase

import (
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

// VendaTxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante que a gravação da venda e as baixas
// de estoque entrem ou caiam juntas.
type VendaTxRunner interface {
	Run(fn func(
		vendas repository.VendaRepository,
		produtos repository.ProdutoRepository,
	) error) error
}

package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

// VendaUseCase casos de uso do PDV.
type VendaUseCase struct {
	vendas   repository.VendaRepository
	produtos repository.ProdutoRepository
	txRunner VendaTxRunner
}

// NewVendaUseCase constrói o caso de uso de vendas.
func NewVendaUseCase(vendas repository.VendaRepository, produtos repository.ProdutoRepository, txRunner VendaTxRunner) *VendaUseCase {
	return &VendaUseCase{vendas: vendas, produtos: produtos, txRunner: txRunner}
}

// Create registra a venda com o preço corrente de cada produto e baixa o
// estoque. A baixa falha se o saldo ficar negativo.
func (uc *VendaUseCase) Create(tenantID, vendedorID string, in dto.CreateVendaRequest) (*dto.VendaResponse, error) {
	if len(in.Itens) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.FormaPagamento {
	case entity.PagamentoDinheiro, entity.PagamentoCartao, entity.PagamentoPix:
	default:
		return nil, domain.ErrInvalidInput
	}

	itens := make([]entity.VendaItem, 0, len(in.Itens))
	for _, it := range in.Itens {
		if it.Quantidade <= 0 {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.produtos.GetByID(tenantID, it.ProdutoID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.Ativo {
			return nil, domain.ErrNotFound
		}
		if p.Estoque < it.Quantidade {
			return nil, domain.ErrInsufficientStock
		}
		itens = append(itens, entity.VendaItem{
			ProdutoID:     it.ProdutoID,
			Quantidade:    it.Quantidade,
			PrecoUnitario: p.PrecoVenda,
		})
	}

	venda := &entity.Venda{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		ClienteID:      in.ClienteID,
		VendedorID:     vendedorID,
		Itens:          itens,
		FormaPagamento: in.FormaPagamento,
		CreatedAt:      time.Now(),
	}
	venda.Total = venda.CalculaTotal()

	// Venda e baixas de estoque na mesma transação; se uma baixa falhar
	// (venda concorrente consumiu o saldo), nada é persistido.
	err := uc.txRunner.Run(func(
		vendas repository.VendaRepository,
		produtos repository.ProdutoRepository,
	) error {
		if err := vendas.Create(venda); err != nil {
			return err
		}
		for _, it := range itens {
			if err := produtos.AjustaEstoque(tenantID, it.ProdutoID, -it.Quantidade); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toVendaResponse(venda), nil
}

// GetByID busca a venda do tenant.
func (uc *VendaUseCase) GetByID(tenantID, id string) (*dto.VendaResponse, error) {
	v, err := uc.vendas.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return toVendaResponse(v), nil
}

// List lista as vendas do tenant.
func (uc *VendaUseCase) List(tenantID string, page dto.PageRequest) (*dto.VendaListResponse, error) {
	page.DefaultPage()
	vendas, err := uc.vendas.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendaResponse, 0, len(vendas))
	for _, v := range vendas {
		items = append(items, *toVendaResponse(v))
	}
	return &dto.VendaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toVendaResponse(v *entity.Venda) *dto.VendaResponse {
	itens := make([]dto.VendaItemResponse, 0, len(v.Itens))
	for _, it := range v.Itens {
		itens = append(itens, dto.VendaItemResponse{
			ProdutoID:     it.ProdutoID,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
		})
	}
	return &dto.VendaResponse{
		ID:             v.ID,
		ClienteID:      v.ClienteID,
		VendedorID:     v.VendedorID,
		Itens:          itens,
		Total:          v.Total,
		FormaPagamento: v.FormaPagamento,
		CreatedAt:      v.CreatedAt,
	}
}

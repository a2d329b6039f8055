package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

// ProdutoUseCase casos de uso de produtos/estoque.
type ProdutoUseCase struct {
	produtos repository.ProdutoRepository
}

// NewProdutoUseCase constrói o caso de uso de produtos.
func NewProdutoUseCase(produtos repository.ProdutoRepository) *ProdutoUseCase {
	return &ProdutoUseCase{produtos: produtos}
}

// Create cadastra um produto; SKU é único por tenant.
func (uc *ProdutoUseCase) Create(tenantID string, in dto.CreateProdutoRequest) (*dto.ProdutoResponse, error) {
	existing, err := uc.produtos.GetBySKU(tenantID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Produto{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		SKU:        in.SKU,
		Nome:       in.Nome,
		Descricao:  in.Descricao,
		PrecoCusto: in.PrecoCusto,
		PrecoVenda: in.PrecoVenda,
		Estoque:    in.Estoque,
		EstoqueMin: in.EstoqueMin,
		Ativo:      true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.produtos.Create(p); err != nil {
		return nil, err
	}
	return toProdutoResponse(p), nil
}

// GetByID busca um produto do tenant.
func (uc *ProdutoUseCase) GetByID(tenantID, id string) (*dto.ProdutoResponse, error) {
	p, err := uc.produtos.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProdutoResponse(p), nil
}

// AjustaEstoque soma delta (negativo baixa); saldo nunca fica negativo.
func (uc *ProdutoUseCase) AjustaEstoque(tenantID, id string, in dto.AjusteEstoqueRequest) error {
	if in.Delta == 0 {
		return domain.ErrInvalidInput
	}
	return uc.produtos.AjustaEstoque(tenantID, id, in.Delta)
}

// List lista os produtos do tenant.
func (uc *ProdutoUseCase) List(tenantID string, page dto.PageRequest) (*dto.ProdutoListResponse, error) {
	page.DefaultPage()
	produtos, err := uc.produtos.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProdutoResponse, 0, len(produtos))
	for _, p := range produtos {
		items = append(items, *toProdutoResponse(p))
	}
	return &dto.ProdutoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProdutoResponse(p *entity.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Nome:       p.Nome,
		Descricao:  p.Descricao,
		PrecoCusto: p.PrecoCusto,
		PrecoVenda: p.PrecoVenda,
		Estoque:    p.Estoque,
		EstoqueMin: p.EstoqueMin,
		Ativo:      p.Ativo,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

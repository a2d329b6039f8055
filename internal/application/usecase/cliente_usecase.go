package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

// ClienteUseCase casos de uso de clientes do tenant.
type ClienteUseCase struct {
	clientes repository.ClienteRepository
}

// NewClienteUseCase constrói o caso de uso de clientes.
func NewClienteUseCase(clientes repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{clientes: clientes}
}

// Create cadastra um cliente.
func (uc *ClienteUseCase) Create(tenantID string, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	now := time.Now()
	c := &entity.Cliente{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Nome:      in.Nome,
		CPF:       in.CPF,
		Telefone:  in.Telefone,
		Email:     in.Email,
		Endereco:  in.Endereco,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientes.Create(c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// GetByID busca um cliente do tenant.
func (uc *ClienteUseCase) GetByID(tenantID, id string) (*dto.ClienteResponse, error) {
	c, err := uc.clientes.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toClienteResponse(c), nil
}

// List lista clientes do tenant com busca textual opcional.
func (uc *ClienteUseCase) List(tenantID, busca string, page dto.PageRequest) (*dto.ClienteListResponse, error) {
	page.DefaultPage()
	clientes, err := uc.clientes.ListByTenant(tenantID, busca, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		items = append(items, *toClienteResponse(c))
	}
	return &dto.ClienteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID,
		Nome:      c.Nome,
		CPF:       c.CPF,
		Telefone:  c.Telefone,
		Email:     c.Email,
		Endereco:  c.Endereco,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

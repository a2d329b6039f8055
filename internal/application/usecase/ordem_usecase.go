package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

// OrdemUseCase casos de uso de ordens de serviço.
type OrdemUseCase struct {
	ordens   repository.OrdemRepository
	clientes repository.ClienteRepository
}

// NewOrdemUseCase constrói o caso de uso de OS.
func NewOrdemUseCase(ordens repository.OrdemRepository, clientes repository.ClienteRepository) *OrdemUseCase {
	return &OrdemUseCase{ordens: ordens, clientes: clientes}
}

// Create abre uma OS com número sequencial do tenant.
func (uc *OrdemUseCase) Create(tenantID, tecnicoID string, in dto.CreateOrdemRequest) (*dto.OrdemResponse, error) {
	cliente, err := uc.clientes.GetByID(tenantID, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	numero, err := uc.ordens.NextNumero(tenantID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	ordem := &entity.OrdemServico{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ClienteID:   in.ClienteID,
		Numero:      numero,
		Equipamento: in.Equipamento,
		Defeito:     in.Defeito,
		Status:      entity.OrdemAberta,
		ValorOrcado: in.ValorOrcado,
		TecnicoID:   tecnicoID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.ordens.Create(ordem); err != nil {
		return nil, err
	}
	return toOrdemResponse(ordem), nil
}

// GetByID busca a OS do tenant.
func (uc *OrdemUseCase) GetByID(tenantID, id string) (*dto.OrdemResponse, error) {
	ordem, err := uc.ordens.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if ordem == nil {
		return nil, nil
	}
	return toOrdemResponse(ordem), nil
}

// GetEntity devolve a entidade crua (para o gerador de comprovante PDF).
func (uc *OrdemUseCase) GetEntity(tenantID, id string) (*entity.OrdemServico, error) {
	return uc.ordens.GetByID(tenantID, id)
}

// UpdateStatus transiciona o status respeitando o ciclo da OS.
func (uc *OrdemUseCase) UpdateStatus(tenantID, id string, in dto.UpdateOrdemStatusRequest) (*dto.OrdemResponse, error) {
	ordem, err := uc.ordens.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if ordem == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.TransicaoValida(ordem.Status, in.Status) {
		return nil, domain.ErrConflict
	}
	ordem.Status = in.Status
	if in.Diagnostico != "" {
		ordem.Diagnostico = in.Diagnostico
	}
	if !in.ValorFinal.IsZero() {
		ordem.ValorFinal = in.ValorFinal
	}
	ordem.UpdatedAt = time.Now()
	if err := uc.ordens.Update(ordem); err != nil {
		return nil, err
	}
	return toOrdemResponse(ordem), nil
}

// List lista as OS do tenant, com filtro opcional por status.
func (uc *OrdemUseCase) List(tenantID, status string, page dto.PageRequest) (*dto.OrdemListResponse, error) {
	page.DefaultPage()
	ordens, err := uc.ordens.ListByTenant(tenantID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdemResponse, 0, len(ordens))
	for _, o := range ordens {
		items = append(items, *toOrdemResponse(o))
	}
	return &dto.OrdemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toOrdemResponse(o *entity.OrdemServico) *dto.OrdemResponse {
	return &dto.OrdemResponse{
		ID:          o.ID,
		Numero:      o.Numero,
		ClienteID:   o.ClienteID,
		Equipamento: o.Equipamento,
		Defeito:     o.Defeito,
		Diagnostico: o.Diagnostico,
		Status:      o.Status,
		ValorOrcado: o.ValorOrcado,
		ValorFinal:  o.ValorFinal,
		TecnicoID:   o.TecnicoID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

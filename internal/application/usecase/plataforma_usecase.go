package usecase

import (
	"context"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

// manutencaoInvalidator é o contrato mínimo para derrubar o snapshot do cache
// do gateway após o toggle; o uso de interface evita o import do pacote gate.
type manutencaoInvalidator interface {
	Invalidate()
}

// PlataformaUseCase painel da plataforma: tenants e modo manutenção.
// Todas as operações daqui só são alcançáveis por platform_admin (o gateway
// garante isso antes do handler rodar).
type PlataformaUseCase struct {
	plataforma repository.PlataformaRepository
	empresas   repository.EmpresaRepository
	cache      manutencaoInvalidator
}

// NewPlataformaUseCase constrói o caso de uso da plataforma.
func NewPlataformaUseCase(plataforma repository.PlataformaRepository, empresas repository.EmpresaRepository, cache manutencaoInvalidator) *PlataformaUseCase {
	return &PlataformaUseCase{plataforma: plataforma, empresas: empresas, cache: cache}
}

// GetManutencao estado corrente do modo manutenção.
func (uc *PlataformaUseCase) GetManutencao(ctx context.Context) (*dto.ManutencaoResponse, error) {
	cfg, err := uc.plataforma.GetManutencao(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ManutencaoResponse{Ativo: cfg.Ativo, Mensagem: cfg.Mensagem, UpdatedAt: cfg.UpdatedAt}, nil
}

// SetManutencao liga/desliga a manutenção e invalida o snapshot local para o
// efeito ser imediato neste processo (os demais seguem o TTL do cache).
func (uc *PlataformaUseCase) SetManutencao(ctx context.Context, in dto.ManutencaoRequest) error {
	if err := uc.plataforma.SetManutencao(ctx, in.Ativo, in.Mensagem); err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.Invalidate()
	}
	return nil
}

// ListEmpresas lista os tenants da plataforma.
func (uc *PlataformaUseCase) ListEmpresas(page dto.PageRequest) (*dto.EmpresaListResponse, error) {
	page.DefaultPage()
	empresas, err := uc.empresas.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmpresaResponse, 0, len(empresas))
	for _, e := range empresas {
		items = append(items, dto.EmpresaResponse{
			ID:        e.ID,
			Nome:      e.Nome,
			CNPJ:      e.CNPJ,
			Email:     e.Email,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
		})
	}
	return &dto.EmpresaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

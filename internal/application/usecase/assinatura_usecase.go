package usecase

import (
	"context"
	"time"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

// AssinaturaUseCase visão da assinatura do próprio tenant, conclusão do
// onboarding e indicações. Este caso de uso nunca transiciona status de
// cobrança (isso é do webhook de billing).
type AssinaturaUseCase struct {
	assinaturas repository.AssinaturaRepository
	indicacoes  repository.IndicacaoRepository
	empresas    repository.EmpresaRepository
}

// NewAssinaturaUseCase constrói o caso de uso de assinatura.
func NewAssinaturaUseCase(assinaturas repository.AssinaturaRepository, indicacoes repository.IndicacaoRepository, empresas repository.EmpresaRepository) *AssinaturaUseCase {
	return &AssinaturaUseCase{assinaturas: assinaturas, indicacoes: indicacoes, empresas: empresas}
}

// Get devolve a assinatura do tenant com o status efetivo derivado no momento
// da leitura (página de planos).
func (uc *AssinaturaUseCase) Get(ctx context.Context, tenantID string) (*dto.AssinaturaResponse, error) {
	a, err := uc.assinaturas.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.AssinaturaResponse{
		Status:             a.Status,
		StatusEfetivo:      a.EffectiveStatus(time.Now()),
		TrialEnd:           a.TrialEnd,
		BonusMonths:        a.BonusMonths,
		OnboardingComplete: a.OnboardingComplete,
	}, nil
}

// CompletaOnboarding marca o onboarding do tenant como concluído.
func (uc *AssinaturaUseCase) CompletaOnboarding(ctx context.Context, tenantID string) error {
	return uc.assinaturas.SetOnboardingComplete(ctx, tenantID)
}

// ListIndicacoes lista as indicações feitas pelo tenant.
func (uc *AssinaturaUseCase) ListIndicacoes(tenantID string, page dto.PageRequest) ([]dto.IndicacaoResponse, error) {
	page.DefaultPage()
	list, err := uc.indicacoes.ListByIndicador(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IndicacaoResponse, 0, len(list))
	for _, ind := range list {
		out = append(out, dto.IndicacaoResponse{
			ID:           ind.ID,
			Codigo:       ind.Codigo,
			Convertida:   ind.Convertida,
			ConvertidaEm: ind.ConvertidaEm,
			CreatedAt:    ind.CreatedAt,
		})
	}
	return out, nil
}

// LookupCodigo consulta pública de código de indicação (tela de cadastro).
// Nunca revela mais que o nome fantasia do indicador.
func (uc *AssinaturaUseCase) LookupCodigo(codigo string) (*dto.IndicacaoLookupResponse, error) {
	empresa, err := uc.empresas.GetByCodigoIndicacao(codigo)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return &dto.IndicacaoLookupResponse{Valido: false}, nil
	}
	return &dto.IndicacaoLookupResponse{Valido: true, EmpresaNome: empresa.Nome}, nil
}

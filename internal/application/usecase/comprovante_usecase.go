package usecase

import (
	"context"
	"fmt"

	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

// ComprovanteGenerator é o porto do gerador de PDF (implementado em infrastructure/pdf).
type ComprovanteGenerator interface {
	GeraComprovanteOS(ctx context.Context, ordem *entity.OrdemServico, empresa *entity.Empresa, cliente *entity.Cliente) ([]byte, error)
}

// ComprovanteUseCase gera o comprovante em PDF de uma ordem de serviço.
type ComprovanteUseCase struct {
	ordens   repository.OrdemRepository
	empresas repository.EmpresaRepository
	clientes repository.ClienteRepository
	gerador  ComprovanteGenerator
}

// NewComprovanteUseCase constrói o caso de uso injetando suas dependências.
func NewComprovanteUseCase(
	ordens repository.OrdemRepository,
	empresas repository.EmpresaRepository,
	clientes repository.ClienteRepository,
	gerador ComprovanteGenerator,
) *ComprovanteUseCase {
	return &ComprovanteUseCase{ordens: ordens, empresas: empresas, clientes: clientes, gerador: gerador}
}

// DownloadComprovante carrega OS, empresa e cliente e gera o PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) em caso de sucesso.
//   - domain.ErrNotFound        se a OS não existe no tenant.
func (uc *ComprovanteUseCase) DownloadComprovante(ctx context.Context, tenantID, ordemID string) ([]byte, string, error) {
	ordem, err := uc.ordens.GetByID(tenantID, ordemID)
	if err != nil {
		return nil, "", fmt.Errorf("comprovante: obter ordem: %w", err)
	}
	if ordem == nil {
		return nil, "", domain.ErrNotFound
	}

	empresa, err := uc.empresas.GetByID(tenantID)
	if err != nil || empresa == nil {
		return nil, "", fmt.Errorf("comprovante: obter empresa: %w", err)
	}

	cliente, err := uc.clientes.GetByID(tenantID, ordem.ClienteID)
	if err != nil || cliente == nil {
		return nil, "", fmt.Errorf("comprovante: obter cliente: %w", err)
	}

	pdfBytes, err := uc.gerador.GeraComprovanteOS(ctx, ordem, empresa, cliente)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("os-%d.pdf", ordem.Numero)
	return pdfBytes, filename, nil
}

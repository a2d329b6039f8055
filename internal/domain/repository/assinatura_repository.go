package repository

import (
	"context"
	"time"

	"github.com/consertapro/conserta-api/internal/domain/entity"
)

// AssinaturaRepository define o porto de persistência para Assinatura (DIP).
// GetByTenant está no caminho quente do gateway; devolve (nil, nil) se não existir.
type AssinaturaRepository interface {
	Create(assinatura *entity.Assinatura) error
	GetByTenant(ctx context.Context, tenantID string) (*entity.Assinatura, error)
	GetByStripeCustomer(ctx context.Context, customerID string) (*entity.Assinatura, error)
	// UpdateStatus grava status/trial_end vindos do webhook de billing.
	UpdateStatus(ctx context.Context, tenantID, status string, trialEnd *time.Time) error
	Update(assinatura *entity.Assinatura) error
	// IncrementBonus credita meses de bônus por indicação convertida.
	IncrementBonus(ctx context.Context, tenantID string, meses int) error
	SetOnboardingComplete(ctx context.Context, tenantID string) error
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
)

var _ repository.AssinaturaRepository = (*AssinaturaRepo)(nil)

// AssinaturaRepo implementação do porto AssinaturaRepository sobre PostgreSQL.
// É a SubscriptionStore que o gateway consulta a cada rota protegida.
type AssinaturaRepo struct {
	pool *pgxpool.Pool
}

// NewAssinaturaRepository constrói o adaptador de persistência de assinaturas.
func NewAssinaturaRepository(pool *pgxpool.Pool) *AssinaturaRepo {
	return &AssinaturaRepo{pool: pool}
}

const assinaturaCols = `id, tenant_id, status, trial_end, bonus_months, onboarding_complete,
	stripe_customer_id, stripe_subscription_id, created_at, updated_at`

// Create persiste uma nova assinatura (uma por tenant).
func (r *AssinaturaRepo) Create(a *entity.Assinatura) error {
	query := `
		INSERT INTO assinaturas (` + assinaturaCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		a.ID, a.TenantID, a.Status, a.TrialEnd, a.BonusMonths, a.OnboardingComplete,
		a.StripeCustomerID, a.StripeSubscriptionID, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert assinatura: %w", err)
	}
	return nil
}

// GetByTenant busca a assinatura do tenant; (nil, nil) se não existir.
func (r *AssinaturaRepo) GetByTenant(ctx context.Context, tenantID string) (*entity.Assinatura, error) {
	return r.getBy(ctx, "tenant_id", tenantID)
}

// GetByStripeCustomer busca pela chave do customer na Stripe (webhook).
func (r *AssinaturaRepo) GetByStripeCustomer(ctx context.Context, customerID string) (*entity.Assinatura, error) {
	return r.getBy(ctx, "stripe_customer_id", customerID)
}

func (r *AssinaturaRepo) getBy(ctx context.Context, col, val string) (*entity.Assinatura, error) {
	query := `SELECT ` + assinaturaCols + ` FROM assinaturas WHERE ` + col + ` = $1`
	var a entity.Assinatura
	err := r.pool.QueryRow(ctx, query, val).Scan(
		&a.ID, &a.TenantID, &a.Status, &a.TrialEnd, &a.BonusMonths, &a.OnboardingComplete,
		&a.StripeCustomerID, &a.StripeSubscriptionID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assinatura by %s: %w", col, err)
	}
	return &a, nil
}

// UpdateStatus grava status/trial_end vindos do webhook de billing.
// trial_end nil mantém o valor corrente (nem todo evento carrega a data).
func (r *AssinaturaRepo) UpdateStatus(ctx context.Context, tenantID, status string, trialEnd *time.Time) error {
	query := `
		UPDATE assinaturas SET status = $2, trial_end = COALESCE($3, trial_end), updated_at = now()
		WHERE tenant_id = $1`
	cmd, err := r.pool.Exec(ctx, query, tenantID, status, trialEnd)
	if err != nil {
		return fmt.Errorf("update status assinatura: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update atualiza a assinatura completa.
func (r *AssinaturaRepo) Update(a *entity.Assinatura) error {
	query := `
		UPDATE assinaturas SET status = $2, trial_end = $3, bonus_months = $4, onboarding_complete = $5,
			stripe_customer_id = $6, stripe_subscription_id = $7, updated_at = $8
		WHERE tenant_id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		a.TenantID, a.Status, a.TrialEnd, a.BonusMonths, a.OnboardingComplete,
		a.StripeCustomerID, a.StripeSubscriptionID, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assinatura: %w", err)
	}
	return nil
}

// IncrementBonus credita meses de bônus (indicação convertida).
func (r *AssinaturaRepo) IncrementBonus(ctx context.Context, tenantID string, meses int) error {
	query := `
		UPDATE assinaturas SET bonus_months = bonus_months + $2, updated_at = now()
		WHERE tenant_id = $1`
	cmd, err := r.pool.Exec(ctx, query, tenantID, meses)
	if err != nil {
		return fmt.Errorf("increment bonus: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetOnboardingComplete marca o onboarding do tenant como concluído.
func (r *AssinaturaRepo) SetOnboardingComplete(ctx context.Context, tenantID string) error {
	query := `
		UPDATE assinaturas SET onboarding_complete = true, updated_at = now()
		WHERE tenant_id = $1`
	cmd, err := r.pool.Exec(ctx, query, tenantID)
	if err != nil {
		return fmt.Errorf("set onboarding complete: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

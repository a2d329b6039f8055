// Package billing processa os eventos de cobrança vindos da Stripe. É o ÚNICO
// caminho que transiciona o status de assinaturas e consome/credita meses de
// bônus — o gateway de acesso apenas lê esse estado.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
	"github.com/consertapro/conserta-api/pkg/logger"
)

// ErrWebhookInvalido assinatura do payload não confere.
var ErrWebhookInvalido = errors.New("assinatura do webhook inválida")

// BonusPorIndicacao meses creditados ao indicador quando a indicada converte.
const BonusPorIndicacao = 1

// WebhookUseCase aplica eventos Stripe sobre o registro de assinatura.
type WebhookUseCase struct {
	assinaturas   repository.AssinaturaRepository
	indicacoes    repository.IndicacaoRepository
	webhookSecret string
	log           *logger.Logger
}

// NewWebhookUseCase constrói o caso de uso do webhook de billing.
func NewWebhookUseCase(assinaturas repository.AssinaturaRepository, indicacoes repository.IndicacaoRepository, webhookSecret string, log *logger.Logger) *WebhookUseCase {
	return &WebhookUseCase{assinaturas: assinaturas, indicacoes: indicacoes, webhookSecret: webhookSecret, log: log}
}

// HandleStripeEvent verifica a assinatura do payload e aplica o evento.
// Eventos não tratados são registrados e ignorados (a Stripe reenvia tipos
// novos que ainda não nos interessam).
func (uc *WebhookUseCase) HandleStripeEvent(ctx context.Context, payload []byte, signature string) error {
	// A versão de API do evento segue a configuração da conta Stripe, não a da
	// lib; só a assinatura importa aqui.
	event, err := webhook.ConstructEventWithOptions(payload, signature, uc.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		uc.log.Warn().Err(err).Msg("webhook Stripe com assinatura inválida")
		return ErrWebhookInvalido
	}

	switch event.Type {
	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return uc.aplicaStatus(ctx, sub.Customer.ID, mapStripeStatus(sub.Status), trialEndDe(&sub))

	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return err
		}
		return uc.aplicaPagamento(ctx, inv.Customer.ID)

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return err
		}
		return uc.aplicaStatus(ctx, inv.Customer.ID, entity.AssinaturaOverdue, nil)

	default:
		uc.log.Info().Str("event_type", string(event.Type)).Msg("webhook Stripe recebido, mas não tratado")
		return nil
	}
}

// aplicaStatus grava o status vindo da Stripe para o tenant do customer.
func (uc *WebhookUseCase) aplicaStatus(ctx context.Context, customerID, status string, trialEnd *time.Time) error {
	a, err := uc.assinaturas.GetByStripeCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if a == nil {
		uc.log.Warn().Str("stripe_customer", customerID).Msg("webhook para customer sem assinatura local")
		return nil
	}
	uc.log.Info().Str("tenant_id", a.TenantID).Str("status", status).Msg("assinatura atualizada via webhook")
	return uc.assinaturas.UpdateStatus(ctx, a.TenantID, status, trialEnd)
}

// aplicaPagamento ativa a assinatura e, no primeiro pagamento de um tenant
// indicado, credita o bônus ao indicador. MarkConvertida garante idempotência
// frente a reentregas do mesmo evento.
func (uc *WebhookUseCase) aplicaPagamento(ctx context.Context, customerID string) error {
	a, err := uc.assinaturas.GetByStripeCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if a == nil {
		uc.log.Warn().Str("stripe_customer", customerID).Msg("pagamento para customer sem assinatura local")
		return nil
	}
	if err := uc.assinaturas.UpdateStatus(ctx, a.TenantID, entity.AssinaturaActive, nil); err != nil {
		return err
	}

	ind, err := uc.indicacoes.GetByIndicado(ctx, a.TenantID)
	if err != nil || ind == nil || ind.Convertida {
		return err
	}
	converteu, err := uc.indicacoes.MarkConvertida(ctx, ind.ID)
	if err != nil || !converteu {
		return err
	}
	uc.log.Info().Str("indicador", ind.IndicadorTenant).Str("indicado", a.TenantID).
		Msg("indicação convertida; bônus creditado")
	return uc.assinaturas.IncrementBonus(ctx, ind.IndicadorTenant, BonusPorIndicacao)
}

// mapStripeStatus traduz o status da Stripe para o vocabulário interno.
func mapStripeStatus(s stripe.SubscriptionStatus) string {
	switch s {
	case stripe.SubscriptionStatusActive:
		return entity.AssinaturaActive
	case stripe.SubscriptionStatusTrialing:
		return entity.AssinaturaTrial
	case stripe.SubscriptionStatusPastDue:
		return entity.AssinaturaOverdue
	case stripe.SubscriptionStatusCanceled:
		return entity.AssinaturaCancelled
	case stripe.SubscriptionStatusUnpaid:
		return entity.AssinaturaSuspended
	case stripe.SubscriptionStatusIncompleteExpired:
		return entity.AssinaturaExpired
	default:
		return entity.AssinaturaSuspended
	}
}

func trialEndDe(sub *stripe.Subscription) *time.Time {
	if sub.TrialEnd <= 0 {
		return nil
	}
	t := time.Unix(sub.TrialEnd, 0)
	return &t
}

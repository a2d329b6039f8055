package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"

	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssinaturas struct {
	porCustomer map[string]*entity.Assinatura
	statusSet   []string // histórico de UpdateStatus
	bonusCalls  int
	bonusTenant string
}

func (f *fakeAssinaturas) Create(*entity.Assinatura) error { return nil }
func (f *fakeAssinaturas) GetByTenant(_ context.Context, _ string) (*entity.Assinatura, error) {
	return nil, nil
}
func (f *fakeAssinaturas) GetByStripeCustomer(_ context.Context, id string) (*entity.Assinatura, error) {
	return f.porCustomer[id], nil
}
func (f *fakeAssinaturas) UpdateStatus(_ context.Context, _, status string, _ *time.Time) error {
	f.statusSet = append(f.statusSet, status)
	return nil
}
func (f *fakeAssinaturas) Update(*entity.Assinatura) error { return nil }
func (f *fakeAssinaturas) IncrementBonus(_ context.Context, tenantID string, _ int) error {
	f.bonusCalls++
	f.bonusTenant = tenantID
	return nil
}
func (f *fakeAssinaturas) SetOnboardingComplete(_ context.Context, _ string) error { return nil }

type fakeIndicacoes struct {
	porIndicado map[string]*entity.Indicacao
	convertidas map[string]bool
}

func (f *fakeIndicacoes) Create(*entity.Indicacao) error { return nil }
func (f *fakeIndicacoes) GetByIndicado(_ context.Context, tenantID string) (*entity.Indicacao, error) {
	return f.porIndicado[tenantID], nil
}
func (f *fakeIndicacoes) ListByIndicador(string, int, int) ([]*entity.Indicacao, error) {
	return nil, nil
}
func (f *fakeIndicacoes) MarkConvertida(_ context.Context, id string) (bool, error) {
	if f.convertidas[id] {
		return false, nil
	}
	f.convertidas[id] = true
	return true, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testWebhookSecret = "whsec_test"

// assina monta o header Stripe-Signature (t=<ts>,v1=<hmac>) do payload.
func assina(payload []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventoJSON(tipo, customerID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","type":%q,"data":{"object":{"customer":{"id":%q}}}}`,
		tipo, customerID,
	))
}

func novoUC(a *fakeAssinaturas, i *fakeIndicacoes) *WebhookUseCase {
	return NewWebhookUseCase(a, i, testWebhookSecret, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHandleStripeEvent_AssinaturaInvalida(t *testing.T) {
	uc := novoUC(&fakeAssinaturas{}, &fakeIndicacoes{})
	payload := eventoJSON("invoice.payment_succeeded", "cus_1")

	err := uc.HandleStripeEvent(context.Background(), payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrWebhookInvalido)
}

func TestHandleStripeEvent_PagamentoAtivaAssinatura(t *testing.T) {
	a := &fakeAssinaturas{porCustomer: map[string]*entity.Assinatura{
		"cus_1": {TenantID: "t-1", Status: entity.AssinaturaTrial},
	}}
	uc := novoUC(a, &fakeIndicacoes{porIndicado: map[string]*entity.Indicacao{}, convertidas: map[string]bool{}})

	payload := eventoJSON("invoice.payment_succeeded", "cus_1")
	require.NoError(t, uc.HandleStripeEvent(context.Background(), payload, assina(payload)))

	require.Len(t, a.statusSet, 1)
	assert.Equal(t, entity.AssinaturaActive, a.statusSet[0])
	assert.Zero(t, a.bonusCalls, "sem indicação não há bônus")
}

// Primeiro pagamento de um tenant indicado credita o bônus ao indicador UMA vez;
// a reentrega do mesmo evento não credita de novo.
func TestHandleStripeEvent_BonusDeIndicacaoIdempotente(t *testing.T) {
	a := &fakeAssinaturas{porCustomer: map[string]*entity.Assinatura{
		"cus_ind": {TenantID: "t-indicado", Status: entity.AssinaturaTrial},
	}}
	i := &fakeIndicacoes{
		porIndicado: map[string]*entity.Indicacao{
			"t-indicado": {ID: "ind-1", IndicadorTenant: "t-indicador", IndicadoTenant: "t-indicado"},
		},
		convertidas: map[string]bool{},
	}
	uc := novoUC(a, i)

	payload := eventoJSON("invoice.payment_succeeded", "cus_ind")
	require.NoError(t, uc.HandleStripeEvent(context.Background(), payload, assina(payload)))
	require.NoError(t, uc.HandleStripeEvent(context.Background(), payload, assina(payload)))

	assert.Equal(t, 1, a.bonusCalls, "a reentrega não pode creditar bônus de novo")
	assert.Equal(t, "t-indicador", a.bonusTenant, "o bônus vai para quem indicou")
}

func TestHandleStripeEvent_PagamentoFalhoMarcaOverdue(t *testing.T) {
	a := &fakeAssinaturas{porCustomer: map[string]*entity.Assinatura{
		"cus_1": {TenantID: "t-1", Status: entity.AssinaturaActive},
	}}
	uc := novoUC(a, &fakeIndicacoes{})

	payload := eventoJSON("invoice.payment_failed", "cus_1")
	require.NoError(t, uc.HandleStripeEvent(context.Background(), payload, assina(payload)))

	require.Len(t, a.statusSet, 1)
	assert.Equal(t, entity.AssinaturaOverdue, a.statusSet[0])
}

func TestHandleStripeEvent_CustomerDesconhecidoIgnorado(t *testing.T) {
	a := &fakeAssinaturas{porCustomer: map[string]*entity.Assinatura{}}
	uc := novoUC(a, &fakeIndicacoes{})

	payload := eventoJSON("invoice.payment_succeeded", "cus_fantasma")
	require.NoError(t, uc.HandleStripeEvent(context.Background(), payload, assina(payload)))
	assert.Empty(t, a.statusSet)
}

func TestHandleStripeEvent_TipoNaoTratado(t *testing.T) {
	uc := novoUC(&fakeAssinaturas{}, &fakeIndicacoes{})
	payload := eventoJSON("charge.refunded", "cus_1")

	assert.NoError(t, uc.HandleStripeEvent(context.Background(), payload, assina(payload)))
}

func TestMapStripeStatus(t *testing.T) {
	casos := map[string]string{
		"active":             entity.AssinaturaActive,
		"trialing":           entity.AssinaturaTrial,
		"past_due":           entity.AssinaturaOverdue,
		"canceled":           entity.AssinaturaCancelled,
		"unpaid":             entity.AssinaturaSuspended,
		"incomplete_expired": entity.AssinaturaExpired,
		"incomplete":         entity.AssinaturaSuspended,
	}
	for stripeStatus, esperado := range casos {
		assert.Equal(t, esperado, mapStripeStatus(stripe.SubscriptionStatus(stripeStatus)), stripeStatus)
	}
}

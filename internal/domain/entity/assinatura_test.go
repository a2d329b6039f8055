package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ref = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// O campo Status pode ficar defasado (trial vencido segue "trial" até o billing
// externo transicionar); EffectiveStatus nunca confia nele às cegas.
func TestEffectiveStatus(t *testing.T) {
	ontem := ref.Add(-24 * time.Hour)
	amanha := ref.Add(24 * time.Hour)

	cases := []struct {
		nome     string
		status   string
		trialEnd *time.Time
		want     string
	}{
		{"ativa", AssinaturaActive, nil, AssinaturaActive},
		{"trial vigente", AssinaturaTrial, &amanha, AssinaturaTrial},
		{"trial vencido", AssinaturaTrial, &ontem, MotivoTrialExpirado},
		{"trial sem data de fim", AssinaturaTrial, nil, MotivoTrialExpirado},
		{"trial vencendo agora", AssinaturaTrial, &ref, MotivoTrialExpirado},
		{"suspensa", AssinaturaSuspended, nil, AssinaturaSuspended},
		{"cancelada", AssinaturaCancelled, nil, AssinaturaCancelled},
		{"inadimplente", AssinaturaOverdue, nil, AssinaturaOverdue},
		{"expirada", AssinaturaExpired, nil, AssinaturaExpired},
	}
	for _, tc := range cases {
		a := Assinatura{Status: tc.status, TrialEnd: tc.trialEnd}
		assert.Equal(t, tc.want, a.EffectiveStatus(ref), tc.nome)
	}
}

func TestStatusBloqueado(t *testing.T) {
	assert.False(t, StatusBloqueado(AssinaturaActive))
	assert.False(t, StatusBloqueado(AssinaturaTrial))
	for _, s := range []string{AssinaturaSuspended, AssinaturaCancelled, AssinaturaOverdue, AssinaturaExpired, MotivoTrialExpirado} {
		assert.True(t, StatusBloqueado(s), s)
	}
}

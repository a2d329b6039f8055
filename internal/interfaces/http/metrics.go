package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas do gateway, registradas via promauto no registro padrão.
var (
	// gateway_decisions_total conta as decisões emitidas, fatiadas por classe de
	// rota e desfecho (allow, redirect, reject). Um pico de redirect em rotas
	// standard costuma indicar expiração de trials em massa ou manutenção ligada.
	gatewayDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_decisions_total",
			Help: "Total de decisões do gateway de acesso.",
		},
		[]string{"class", "outcome"},
	)

	// gateway_eval_duration_seconds mede a latência da avaliação completa do
	// gateway (sem contar o handler de aplicação).
	gatewayEvalDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_eval_duration_seconds",
			Help:    "Duração da avaliação do gateway em segundos.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"class"},
	)

	// session_rotations_total conta tokens de sessão reemitidos pelo middleware.
	sessionRotationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_rotations_total",
			Help: "Total de tokens de sessão rotacionados.",
		},
	)
)

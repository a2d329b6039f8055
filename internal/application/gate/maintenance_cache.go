package gate

import (
	"context"
	"sync"
	"time"

	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/pkg/logger"
)

// MaintenanceCache é um cache read-through da config de manutenção com TTL
// curto: limita a latência de uma consulta por requisição sem atrasar de forma
// perceptível o efeito de um toggle. O snapshot é imutável; nunca se compartilha
// estado mutável entre requisições.
//
// Política de falha: ABERTA. Se a store estiver inalcançável (ou a tabela ainda
// não provisionada), devolve o último snapshot ou ativo=false — um soluço de
// infraestrutura não pode trancar globalmente um cliente pagante.
type MaintenanceCache struct {
	store   PlatformConfigStore
	ttl     time.Duration
	timeout time.Duration
	log     *logger.Logger

	mu        sync.RWMutex
	snapshot  entity.ManutencaoConfig
	fetchedAt time.Time
}

// NewMaintenanceCache constrói o cache. ttl típico: poucos segundos.
func NewMaintenanceCache(store PlatformConfigStore, ttl, timeout time.Duration, log *logger.Logger) *MaintenanceCache {
	return &MaintenanceCache{store: store, ttl: ttl, timeout: timeout, log: log}
}

// Get devolve o snapshot corrente, relendo a store quando o TTL venceu.
func (c *MaintenanceCache) Get(ctx context.Context) entity.ManutencaoConfig {
	c.mu.RLock()
	fresh := !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl
	snap := c.snapshot
	c.mu.RUnlock()
	if fresh {
		return snap
	}

	lctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	cfg, err := c.store.GetManutencao(lctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("config de manutenção indisponível; seguindo com fail-open")
		return snap // último valor conhecido; zero value (ativo=false) se nunca lido
	}

	c.mu.Lock()
	c.snapshot = cfg
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return cfg
}

// Invalidate força releitura na próxima requisição (usado após o toggle admin
// para o efeito ser imediato no próprio processo).
func (c *MaintenanceCache) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

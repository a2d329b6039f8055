package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/pkg/logger"
)

func TestMaintenanceCache_DentroDoTTLNaoReconsulta(t *testing.T) {
	store := &fakeConfigStore{cfg: entity.ManutencaoConfig{Ativo: true, Mensagem: "migração"}}
	cache := NewMaintenanceCache(store, time.Minute, 100*time.Millisecond, logger.Nop())

	for i := 0; i < 5; i++ {
		cfg := cache.Get(context.Background())
		assert.True(t, cfg.Ativo)
	}
	assert.Equal(t, 1, store.calls, "dentro do TTL deve servir do snapshot")
}

func TestMaintenanceCache_TTLVencidoReconsulta(t *testing.T) {
	store := &fakeConfigStore{}
	cache := NewMaintenanceCache(store, time.Nanosecond, 100*time.Millisecond, logger.Nop())

	cache.Get(context.Background())
	time.Sleep(time.Millisecond)
	cache.Get(context.Background())
	assert.Equal(t, 2, store.calls)
}

// Store fora do ar: serve o último snapshot conhecido; sem snapshot, segue
// como ativo=false (fail-open).
func TestMaintenanceCache_FalhaAberta(t *testing.T) {
	store := &fakeConfigStore{err: errors.New("unreachable")}
	cache := NewMaintenanceCache(store, time.Minute, 100*time.Millisecond, logger.Nop())

	cfg := cache.Get(context.Background())
	assert.False(t, cfg.Ativo, "sem snapshot e com store fora, segue desativado")

	// Com snapshot anterior, a falha devolve o último valor conhecido.
	store.err = nil
	store.cfg = entity.ManutencaoConfig{Ativo: true}
	cache.Invalidate()
	cfg = cache.Get(context.Background())
	assert.True(t, cfg.Ativo)

	store.err = errors.New("unreachable")
	cache.Invalidate()
	cfg = cache.Get(context.Background())
	assert.True(t, cfg.Ativo, "falha após snapshot serve o último valor conhecido")
}

func TestMaintenanceCache_InvalidateForcaReleitura(t *testing.T) {
	store := &fakeConfigStore{}
	cache := NewMaintenanceCache(store, time.Hour, 100*time.Millisecond, logger.Nop())

	cache.Get(context.Background())
	store.cfg = entity.ManutencaoConfig{Ativo: true}
	cache.Invalidate()
	cfg := cache.Get(context.Background())

	assert.True(t, cfg.Ativo, "após Invalidate o toggle deve valer de imediato")
	assert.Equal(t, 2, store.calls)
}

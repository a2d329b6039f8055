package gate

import (
	"context"

	"github.com/consertapro/conserta-api/internal/domain/entity"
)

// Caller é a identidade resolvida das credenciais da requisição. A resolução
// (cookie/bearer, rotação de token) acontece no middleware HTTP; o avaliador
// recebe o resultado e nunca vê credenciais.
type Caller struct {
	IdentityID    string
	Authenticated bool
}

// Anonymous é o caller de requisições sem sessão válida.
var Anonymous = Caller{}

// TenantDirectory resolve identidade -> usuário (tenant + papel).
// Contrato mínimo satisfeito por *postgres.UserRepo; a interface local evita
// acoplar o avaliador ao pacote de repositórios.
type TenantDirectory interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// SubscriptionStore resolve tenant -> assinatura. (nil, nil) quando não existe.
type SubscriptionStore interface {
	GetByTenant(ctx context.Context, tenantID string) (*entity.Assinatura, error)
}

// PlatformConfigStore lê a configuração global de manutenção.
type PlatformConfigStore interface {
	GetManutencao(ctx context.Context) (entity.ManutencaoConfig, error)
}

package gate

import "strings"

// RouteClass é a categoria de uma rota, derivada do path a cada requisição.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RoutePublicAPI
	RoutePlatformAdmin
	RouteSubscriptionExempt
	RouteTenantAdmin
	RouteStandard
)

// String para logs e métricas.
func (c RouteClass) String() string {
	switch c {
	case RoutePublic:
		return "public"
	case RoutePublicAPI:
		return "public_api"
	case RoutePlatformAdmin:
		return "platform_admin"
	case RouteSubscriptionExempt:
		return "subscription_exempt"
	case RouteTenantAdmin:
		return "tenant_admin"
	default:
		return "standard_protected"
	}
}

// Conjuntos de rotas por classe. A classificação é por prefixo e a ordem de
// avaliação é fixa: public_api > public > platform_admin > subscription_exempt
// > tenant_admin > standard_protected — alguns paths são ambíguos por estrutura
// e a prioridade resolve (ex.: /configuracoes é exempt antes de ser admin).
var (
	publicAPIPrefixes = []string{"/api/webhooks", "/api/public"}
	publicPrefixes    = []string{
		"/", "/login", "/cadastro", "/recuperar-senha",
		"/precos", "/termos", "/privacidade", PathManutencao,
		"/health", "/metrics", "/docs",
	}
	platformAdminPrefixes = []string{"/admin"}
	exemptPrefixes        = []string{PathPlanos, "/configuracoes", PathOnboarding, "/indicacoes"}
	tenantAdminPrefixes   = []string{"/usuarios"}
)

// Classify é uma função pura path -> RouteClass. A página de manutenção é
// pública: permanece alcançável em qualquer estado da plataforma.
func Classify(path string) RouteClass {
	switch {
	case matchAny(path, publicAPIPrefixes):
		return RoutePublicAPI
	case matchAny(path, publicPrefixes):
		return RoutePublic
	case matchAny(path, platformAdminPrefixes):
		return RoutePlatformAdmin
	case matchAny(path, exemptPrefixes):
		return RouteSubscriptionExempt
	case matchAny(path, tenantAdminPrefixes):
		return RouteTenantAdmin
	default:
		return RouteStandard
	}
}

func matchAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if matchPrefix(path, p) {
			return true
		}
	}
	return false
}

// matchPrefix casa o prefixo respeitando limites de segmento: /planos casa
// /planos e /planos/upgrade, mas não /planosx. A raiz "/" casa apenas exato.
func matchPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão JWT mais os campos próprios da sessão.
// Role viaja no token para que o gateway decida sem consultar a DB em rotas admin.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"` // vazio para platform_admin sem tenant
	Role     string `json:"role"`      // "platform_admin" | "tenant_admin" | "tenant_staff"
}

// Generate gera um token de sessão assinado que inclui userID, tenantID e role.
func Generate(secret, userID, tenantID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("session: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve os claims da sessão.
// Retorna erro se o token for inválido, expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("session: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// ShouldRotate informa se o token já passou da metade da vida útil e deve ser
// reemitido. O novo token precisa ser gravado na resposta ANTES de qualquer
// redirect, senão o usuário perde a sessão na próxima requisição.
func ShouldRotate(claims *Claims, now time.Time) bool {
	if claims == nil || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return false
	}
	issued := claims.IssuedAt.Time
	expires := claims.ExpiresAt.Time
	if !expires.After(issued) {
		return false
	}
	half := issued.Add(expires.Sub(issued) / 2)
	return now.After(half)
}

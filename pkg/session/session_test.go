package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consertapro/conserta-api/pkg/session"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUser   = "00000000-0000-0000-0000-000000000001"
	testTenant = "00000000-0000-0000-0000-000000000002"
	testIssuer = "conserta-pro-test"
)

func TestSession_GenerateAndParse(t *testing.T) {
	tok, err := session.Generate(testSecret, testUser, testTenant, "tenant_admin", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := session.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUser, claims.UserID)
	assert.Equal(t, testTenant, claims.TenantID)
	assert.Equal(t, "tenant_admin", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestSession_TokenExpirado_RetornaErro(t *testing.T) {
	tok, err := session.Generate(testSecret, testUser, testTenant, "tenant_staff", testIssuer, -1)
	require.NoError(t, err)

	_, err = session.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}

func TestSession_SecretIncorreto_RetornaErro(t *testing.T) {
	tok, err := session.Generate(testSecret, testUser, testTenant, "tenant_staff", testIssuer, 60)
	require.NoError(t, err)

	_, err = session.Parse("outro-secret-completamente-diferente", tok)
	assert.Error(t, err, "secret incorreto deve invalidar o token")
}

func TestSession_SecretVazio_RetornaErro(t *testing.T) {
	_, err := session.Generate("", testUser, testTenant, "tenant_staff", testIssuer, 60)
	assert.Error(t, err)
}

// A rotação dispara só depois da metade da vida útil do token.
func TestSession_ShouldRotate(t *testing.T) {
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expires := issued.Add(2 * time.Hour)
	claims := &session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	assert.False(t, session.ShouldRotate(claims, issued.Add(30*time.Minute)))
	assert.False(t, session.ShouldRotate(claims, issued.Add(time.Hour)))
	assert.True(t, session.ShouldRotate(claims, issued.Add(61*time.Minute)))
	assert.True(t, session.ShouldRotate(claims, expires.Add(time.Minute)))

	assert.False(t, session.ShouldRotate(nil, issued), "claims nulos nunca rotacionam")
	assert.False(t, session.ShouldRotate(&session.Claims{}, issued), "sem iat/exp não rotaciona")
}

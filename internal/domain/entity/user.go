package entity

import "time"

// Papéis válidos para User.
const (
	RolePlatformAdmin = "platform_admin" // equipe da plataforma; sem tenant
	RoleTenantAdmin   = "tenant_admin"   // dono/gestor da assistência
	RoleTenantStaff   = "tenant_staff"   // técnico/balconista
)

// User representa um usuário do sistema. TenantID é vazio apenas para platform_admin.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro no domínio após persistir
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPlatformAdmin informa se o usuário pertence à equipe da plataforma.
func (u *User) IsPlatformAdmin() bool {
	return u.Role == RolePlatformAdmin
}

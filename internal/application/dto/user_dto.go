package dto

import "time"

// CadastroRequest cria a empresa e o primeiro usuário (tenant_admin) de uma vez.
type CadastroRequest struct {
	EmpresaNome     string `json:"empresa_nome"`
	CNPJ            string `json:"cnpj"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Nome            string `json:"nome"`
	CodigoIndicacao string `json:"codigo_indicacao,omitempty"` // código de quem indicou, se houver
}

// RegisterUserRequest cria um usuário adicional dentro do tenant.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nome     string `json:"nome"`
	Role     string `json:"role"` // tenant_admin | tenant_staff
}

// LoginRequest credenciais de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse usuário sem campos sensíveis.
type UserResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Email     string    `json:"email"`
	Nome      string    `json:"nome"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token de sessão + usuário.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CadastroResponse resultado do signup: empresa + admin + token.
type CadastroResponse struct {
	EmpresaID string       `json:"empresa_id"`
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
}

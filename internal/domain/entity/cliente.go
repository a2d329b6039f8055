package entity

import "time"

// Cliente representa um cliente final de um tenant.
type Cliente struct {
	ID        string
	TenantID  string
	Nome      string
	CPF       string
	Telefone  string
	Email     string
	Endereco  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

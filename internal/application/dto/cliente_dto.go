package dto

import "time"

// CreateClienteRequest cadastra um cliente final do tenant.
type CreateClienteRequest struct {
	Nome     string `json:"nome"`
	CPF      string `json:"cpf,omitempty"`
	Telefone string `json:"telefone,omitempty"`
	Email    string `json:"email,omitempty"`
	Endereco string `json:"endereco,omitempty"`
}

// ClienteResponse cliente completo.
type ClienteResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	CPF       string    `json:"cpf,omitempty"`
	Telefone  string    `json:"telefone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Endereco  string    `json:"endereco,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClienteListResponse listagem paginada.
type ClienteListResponse struct {
	Items []ClienteResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

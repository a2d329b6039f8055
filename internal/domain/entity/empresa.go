package entity

import "time"

// Empresa representa um tenant do sistema (assistência técnica ou loja).
type Empresa struct {
	ID              string
	Nome            string
	CNPJ            string // com ou sem formatação
	Endereco        string
	Telefone        string
	Email           string
	Status          string // active, suspended, inactive
	CodigoIndicacao string // código de indicação próprio, divulgado a outras lojas
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

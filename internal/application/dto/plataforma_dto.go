package dto

import "time"

// ManutencaoRequest liga/desliga o modo manutenção (só platform_admin).
type ManutencaoRequest struct {
	Ativo    bool   `json:"ativo"`
	Mensagem string `json:"mensagem,omitempty"`
}

// ManutencaoResponse estado corrente da manutenção.
type ManutencaoResponse struct {
	Ativo     bool      `json:"ativo"`
	Mensagem  string    `json:"mensagem,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmpresaResponse visão da empresa no painel da plataforma.
type EmpresaResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	CNPJ      string    `json:"cnpj,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// EmpresaListResponse listagem paginada de tenants.
type EmpresaListResponse struct {
	Items []EmpresaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AssinaturaResponse visão da assinatura do próprio tenant (página de planos).
type AssinaturaResponse struct {
	Status             string     `json:"status"`
	StatusEfetivo      string     `json:"status_efetivo"`
	TrialEnd           *time.Time `json:"trial_end,omitempty"`
	BonusMonths        int        `json:"bonus_months"`
	OnboardingComplete bool       `json:"onboarding_complete"`
}

// IndicacaoResponse visão de uma indicação feita pelo tenant.
type IndicacaoResponse struct {
	ID           string     `json:"id"`
	Codigo       string     `json:"codigo"`
	Convertida   bool       `json:"convertida"`
	ConvertidaEm *time.Time `json:"convertida_em,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IndicacaoLookupResponse resposta pública da consulta de código de indicação.
type IndicacaoLookupResponse struct {
	Valido      bool   `json:"valido"`
	EmpresaNome string `json:"empresa_nome,omitempty"`
}

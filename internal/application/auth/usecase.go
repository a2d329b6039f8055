package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/consertapro/conserta-api/internal/application/dto"
	"github.com/consertapro/conserta-api/internal/domain"
	"github.com/consertapro/conserta-api/internal/domain/entity"
	"github.com/consertapro/conserta-api/internal/domain/repository"
	"github.com/consertapro/conserta-api/pkg/session"
)

// SessionConfig configuração para emissão de tokens de sessão.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: cadastro (signup do tenant),
// registro de usuário no tenant e login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	empresaRepo repository.EmpresaRepository
	assinaturas repository.AssinaturaRepository
	indicacoes  repository.IndicacaoRepository
	sessCfg     SessionConfig
	trialDays   int
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	empresaRepo repository.EmpresaRepository,
	assinaturas repository.AssinaturaRepository,
	indicacoes repository.IndicacaoRepository,
	sessCfg SessionConfig,
	trialDays int,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		empresaRepo: empresaRepo,
		assinaturas: assinaturas,
		indicacoes:  indicacoes,
		sessCfg:     sessCfg,
		trialDays:   trialDays,
	}
}

// Cadastro cria empresa + assinatura em trial + primeiro usuário (tenant_admin)
// e devolve o token de sessão. Se vier código de indicação válido, registra a
// indicação — o bônus só é creditado ao indicador quando esta empresa converter
// (primeiro pagamento via webhook), nunca aqui.
func (uc *AuthUseCase) Cadastro(in dto.CadastroRequest) (*dto.CadastroResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	empresa := &entity.Empresa{
		ID:              uuid.New().String(),
		Nome:            in.EmpresaNome,
		CNPJ:            in.CNPJ,
		Email:           in.Email,
		Status:          "active",
		CodigoIndicacao: novoCodigoIndicacao(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.empresaRepo.Create(empresa); err != nil {
		return nil, err
	}

	trialEnd := now.AddDate(0, 0, uc.trialDays)
	assinatura := &entity.Assinatura{
		ID:        uuid.New().String(),
		TenantID:  empresa.ID,
		Status:    entity.AssinaturaTrial,
		TrialEnd:  &trialEnd,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.assinaturas.Create(assinatura); err != nil {
		return nil, err
	}

	nome := in.Nome
	if nome == "" {
		nome = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     empresa.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         nome,
		Role:         entity.RoleTenantAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Código inválido não derruba o cadastro; só não registra a indicação.
	if codigo := strings.TrimSpace(in.CodigoIndicacao); codigo != "" {
		if indicador, _ := uc.empresaRepo.GetByCodigoIndicacao(codigo); indicador != nil {
			_ = uc.indicacoes.Create(&entity.Indicacao{
				ID:              uuid.New().String(),
				IndicadorTenant: indicador.ID,
				IndicadoTenant:  empresa.ID,
				Codigo:          codigo,
				CreatedAt:       now,
			})
		}
	}

	token, err := session.Generate(uc.sessCfg.Secret, user.ID, user.TenantID, user.Role, uc.sessCfg.Issuer, uc.sessCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.CadastroResponse{
		EmpresaID: empresa.ID,
		Token:     token,
		User:      *toUserResponse(user),
	}, nil
}

// RegisterUser cria um usuário adicional no tenant (papel tenant_admin ou
// tenant_staff — platform_admin nunca é criado por esta via).
func (uc *AuthUseCase) RegisterUser(tenantID string, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if in.Role != entity.RoleTenantAdmin && in.Role != entity.RoleTenantStaff {
		in.Role = entity.RoleTenantStaff
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nome := in.Nome
	if nome == "" {
		nome = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         nome,
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, gera o token de sessão e retorna token + usuário.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := session.Generate(uc.sessCfg.Secret, user.ID, user.TenantID, user.Role, uc.sessCfg.Issuer, uc.sessCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// novoCodigoIndicacao gera um código curto e legível para divulgação.
func novoCodigoIndicacao() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("CP-%s", raw[:8])
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Nome:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

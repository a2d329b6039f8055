package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/consertapro/conserta-api/internal/application/auth"
	"github.com/consertapro/conserta-api/internal/application/billing"
	"github.com/consertapro/conserta-api/internal/application/gate"
	"github.com/consertapro/conserta-api/internal/application/usecase"
	"github.com/consertapro/conserta-api/pkg/config"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AppName       string
	Evaluator     *gate.Evaluator
	AuthUC        *auth.AuthUseCase
	OrdemUC       *usecase.OrdemUseCase
	ComprovanteUC *usecase.ComprovanteUseCase
	ProdutoUC     *usecase.ProdutoUseCase
	ClienteUC     *usecase.ClienteUseCase
	VendaUC       *usecase.VendaUseCase
	AssinaturaUC  *usecase.AssinaturaUseCase
	PlataformaUC  *usecase.PlataformaUseCase
	WebhookUC     *billing.WebhookUseCase
	SessionCfg    config.SessionConfig
}

// Router registra o gateway e as rotas da API. O gateway roda em TODA
// requisição; nenhuma rota é registrada fora dele — as públicas saem liberadas
// pelo próprio avaliador.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(AccessMiddleware(deps.Evaluator, deps.SessionCfg))

	// Infra (classe public) — registrada depois do gateway, como todo o resto.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ConsertaPro API",
	}))

	// Auth (classe public_api)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SessionCfg)
	pub := app.Group("/api/public")
	pub.Post("/cadastro", authHandler.Cadastro)
	pub.Post("/login", authHandler.Login)
	pub.Post("/logout", authHandler.Logout)

	assinaturaHandler := NewAssinaturaHandler(deps.AssinaturaUC)
	pub.Get("/indicacoes/:codigo", assinaturaHandler.LookupCodigo)

	// Webhooks de billing (classe public_api, verificação própria de assinatura)
	webhookHandler := NewWebhookHandler(deps.WebhookUC)
	app.Post("/api/webhooks/stripe", webhookHandler.Stripe)

	// Ordens de serviço (classe standard_protected)
	ordemHandler := NewOrdemHandler(deps.OrdemUC, deps.ComprovanteUC)
	ordens := app.Group("/api/ordens")
	ordens.Post("/", ordemHandler.Create)
	ordens.Get("/", ordemHandler.List)
	ordens.Get("/:id", ordemHandler.GetByID)
	ordens.Put("/:id/status", ordemHandler.UpdateStatus)
	ordens.Get("/:id/pdf", ordemHandler.DownloadPDF)

	// Produtos / estoque (classe standard_protected)
	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	produtos := app.Group("/api/produtos")
	produtos.Post("/", produtoHandler.Create)
	produtos.Get("/", produtoHandler.List)
	produtos.Get("/:id", produtoHandler.GetByID)
	produtos.Post("/:id/estoque", produtoHandler.AjustaEstoque)

	// Clientes (classe standard_protected)
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes := app.Group("/api/clientes")
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)

	// Vendas / PDV (classe standard_protected)
	vendaHandler := NewVendaHandler(deps.VendaUC)
	vendas := app.Group("/api/vendas")
	vendas.Post("/", vendaHandler.Create)
	vendas.Get("/", vendaHandler.List)
	vendas.Get("/:id", vendaHandler.GetByID)

	// Planos / onboarding / indicações (classes subscription_exempt)
	app.Get("/planos/assinatura", assinaturaHandler.Get)
	app.Post("/onboarding/concluir", assinaturaHandler.CompletaOnboarding)
	app.Get("/indicacoes", assinaturaHandler.ListIndicacoes)

	// Gestão de usuários do tenant (classe tenant_admin)
	app.Post("/usuarios", authHandler.RegisterUser)

	// Painel da plataforma (classe platform_admin)
	adminHandler := NewAdminHandler(deps.PlataformaUC)
	admin := app.Group("/admin")
	admin.Get("/manutencao", adminHandler.GetManutencao)
	admin.Put("/manutencao", adminHandler.SetManutencao)
	admin.Get("/empresas", adminHandler.ListEmpresas)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/consertapro/conserta-api/internal/application/auth"
	"github.com/consertapro/conserta-api/internal/application/billing"
	"github.com/consertapro/conserta-api/internal/application/gate"
	"github.com/consertapro/conserta-api/internal/application/usecase"
	infrapdf "github.com/consertapro/conserta-api/internal/infrastructure/pdf"
	"github.com/consertapro/conserta-api/internal/infrastructure/postgres"
	httpRouter "github.com/consertapro/conserta-api/internal/interfaces/http"
	"github.com/consertapro/conserta-api/pkg/config"
	"github.com/consertapro/conserta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	empresaRepo := postgres.NewEmpresaRepository(pool)
	assinaturaRepo := postgres.NewAssinaturaRepository(pool)
	plataformaRepo := postgres.NewPlataformaRepository(pool)
	ordemRepo := postgres.NewOrdemRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	vendaRepo := postgres.NewVendaRepository(pool)
	indicacaoRepo := postgres.NewIndicacaoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Gateway de acesso: cache de manutenção + avaliador da cadeia de estágios.
	mntCache := gate.NewMaintenanceCache(plataformaRepo, cfg.Gateway.MaintenanceTTL, cfg.Gateway.LookupTimeout, log)
	evaluator := gate.NewEvaluator(userRepo, assinaturaRepo, mntCache, cfg.Gateway.LookupTimeout, log)

	authUC := auth.NewAuthUseCase(userRepo, empresaRepo, assinaturaRepo, indicacaoRepo, auth.SessionConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	}, cfg.Billing.TrialDays)

	ordemUC := usecase.NewOrdemUseCase(ordemRepo, clienteRepo)
	pdfGenerator := infrapdf.NewMarotoOSGenerator()
	comprovanteUC := usecase.NewComprovanteUseCase(ordemRepo, empresaRepo, clienteRepo, pdfGenerator)
	produtoUC := usecase.NewProdutoUseCase(produtoRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	vendaUC := usecase.NewVendaUseCase(vendaRepo, produtoRepo, txRunner)
	assinaturaUC := usecase.NewAssinaturaUseCase(assinaturaRepo, indicacaoRepo, empresaRepo)
	plataformaUC := usecase.NewPlataformaUseCase(plataformaRepo, empresaRepo, mntCache)
	webhookUC := billing.NewWebhookUseCase(assinaturaRepo, indicacaoRepo, cfg.Billing.StripeWebhookSecret, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:       cfg.App.Name,
		Evaluator:     evaluator,
		AuthUC:        authUC,
		OrdemUC:       ordemUC,
		ComprovanteUC: comprovanteUC,
		ProdutoUC:     produtoUC,
		ClienteUC:     clienteUC,
		VendaUC:       vendaUC,
		AssinaturaUC:  assinaturaUC,
		PlataformaUC:  plataformaUC,
		WebhookUC:     webhookUC,
		SessionCfg:    cfg.Session,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appai "github.com/contaperu/contaperu-api/internal/application/ai"
	"github.com/contaperu/contaperu-api/internal/application/alerts"
	"github.com/contaperu/contaperu-api/internal/application/auth"
	"github.com/contaperu/contaperu-api/internal/application/comprobante"
	"github.com/contaperu/contaperu-api/internal/application/declaration"
	"github.com/contaperu/contaperu-api/internal/application/inventory"
	applookup "github.com/contaperu/contaperu-api/internal/application/lookup"
	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/application/settings"
	"github.com/contaperu/contaperu-api/internal/application/usecase"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	infraai "github.com/contaperu/contaperu-api/internal/infrastructure/ai"
	"github.com/contaperu/contaperu-api/internal/infrastructure/excel"
	infralookup "github.com/contaperu/contaperu-api/internal/infrastructure/lookup"
	"github.com/contaperu/contaperu-api/internal/infrastructure/mail"
	infrapdf "github.com/contaperu/contaperu-api/internal/infrastructure/pdf"
	"github.com/contaperu/contaperu-api/internal/infrastructure/postgres"
	"github.com/contaperu/contaperu-api/internal/infrastructure/storage"
	"github.com/contaperu/contaperu-api/internal/infrastructure/ubl"
	httpRouter "github.com/contaperu/contaperu-api/internal/interfaces/http"
	"github.com/contaperu/contaperu-api/pkg/config"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	comprobanteRepo := postgres.NewComprobanteRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	tenderRepo := postgres.NewTenderRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Archivo de XML/ZIP originales (opcional).
	var objectStore ports.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3Storage(ctx, cfg.Storage, log)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento S3")
		}
		objectStore = s3
	}

	// Caché de consultas RUC/DNI: Redis si está habilitado, si no en memoria.
	var lookupCache ports.Cache = infralookup.NewMemoryCache(0)
	if cfg.Redis.Enabled {
		rc, err := infralookup.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rc.Close()
		lookupCache = rc
	}

	mailer := mail.NewGomailSender(log)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	// Ajustes del panel admin; las variables de entorno son el valor por defecto.
	settingsUC := settings.NewUseCase(
		settings.NewCache(settingsRepo, settings.DefaultTTL),
		settings.Defaults{
			AI: entity.AISettings{
				Provider:        cfg.AI.Provider,
				AnthropicAPIKey: cfg.AI.AnthropicAPIKey,
				AnthropicModel:  cfg.AI.AnthropicModel,
				OpenAIAPIKey:    cfg.AI.OpenAIAPIKey,
				OpenAIModel:     cfg.AI.OpenAIModel,
				BedrockRegion:   cfg.AI.BedrockRegion,
				BedrockModel:    cfg.AI.BedrockModel,
			},
			SMTP: entity.SMTPSettings{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				User:     cfg.SMTP.User,
				Password: cfg.SMTP.Password,
				From:     cfg.SMTP.From,
				TLSMode:  cfg.SMTP.TLSMode,
			},
		},
		mailer, objectStore, comprobanteRepo, log,
	)

	aiRouter := appai.NewRouter(settingsUC, infraai.Factory{OpenAIBaseURL: cfg.AI.OpenAIBaseURL})
	assistant := appai.NewAssistant(aiRouter, comprobanteRepo, log)

	importUC := comprobante.NewImportUseCase(
		comprobanteRepo, companyRepo, txRunner, objectStore,
		ubl.NewDecoder(log),
		comprobante.Config{
			Workers:       cfg.Import.Workers,
			MaxZipBytes:   cfg.Import.MaxZipBytes,
			MaxZipEntries: cfg.Import.MaxZipEntries,
		},
		log,
	)
	queryUC := comprobante.NewQueryUseCase(comprobanteRepo, companyRepo, pdfGenerator)

	scanner := alerts.NewScanner(alertRepo, tenderRepo, mailer, settingsUC, alerts.ScannerConfig{
		RecentWindow: time.Duration(cfg.Alerts.RecentWindowDays) * 24 * time.Hour,
	}, log)
	if cfg.Alerts.ScanInterval > 0 {
		go scanner.Start(ctx, cfg.Alerts.ScanInterval)
	}

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Import.MaxUploadBytes,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ContaPerú API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     usecase.NewCompanyUseCase(companyRepo),
		UserUC:        usecase.NewUserUseCase(userRepo),
		ImportUC:      importUC,
		QueryUC:       queryUC,
		DeclarationUC: declaration.NewUseCase(comprobanteRepo),
		AlertUC:       alerts.NewUseCase(alertRepo, tenderRepo),
		Scanner:       scanner,
		SettingsUC:    settingsUC,
		Assistant:     assistant,
		LookupUC: applookup.NewUseCase(
			infralookup.NewAPIClient(cfg.Lookup.BaseURL, cfg.Lookup.Token),
			lookupCache, cfg.Lookup.CacheTTL, log,
		),
		ProductUC: inventory.NewProductUseCase(productRepo, txRunner),
		ReportUC:  inventory.NewReportUseCase(productRepo, companyRepo, excel.NewAnexo2Generator(), pdfGenerator),
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

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

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/application/auth"
	"github.com/operia/stock-ajustes-api/internal/application/usecase"
	infrapdf "github.com/operia/stock-ajustes-api/internal/infrastructure/pdf"
	"github.com/operia/stock-ajustes-api/internal/infrastructure/postgres"
	httpRouter "github.com/operia/stock-ajustes-api/internal/interfaces/http"
	"github.com/operia/stock-ajustes-api/pkg/config"
	"github.com/operia/stock-ajustes-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	proyectoRepo := postgres.NewProyectoRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Flujo de conciliación: snapshot → resolver → submitter → libro transaccional
	snapshots := postgres.NewSnapshotProvider(stockRepo)
	ledger := postgres.NewLedger(txRunner)
	resolver := ajuste.NewResolver(materialRepo)
	submitter := ajuste.NewSubmitter(ledger, ajuste.PoliticaReintentos{
		MaxReintentos:  cfg.Ajuste.MaxReintentos,
		BackoffInicial: time.Duration(cfg.Ajuste.BackoffInicialMs) * time.Millisecond,
	})
	importarUC := ajuste.NewImportarUseCase(materialRepo, proyectoRepo, snapshots, resolver, submitter, log)
	exportador := ajuste.NewExportador(stockRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	proyectoUC := usecase.NewProyectoUseCase(proyectoRepo)

	// PDF: acta imprimible del lote de ajuste
	actaGenerator := infrapdf.NewMarotoActaGenerator(companyRepo)
	movimientoUC := usecase.NewMovimientoUseCase(movimientoRepo, actaGenerator)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ajustes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		MaterialUC:   materialUC,
		ProyectoUC:   proyectoUC,
		MovimientoUC: movimientoUC,
		ImportarUC:   importarUC,
		Exportador:   exportador,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Siparis-api/internal/application/auth"
	appdelivery "github.com/jhoicas/Siparis-api/internal/application/delivery"
	"github.com/jhoicas/Siparis-api/internal/application/inventory"
	"github.com/jhoicas/Siparis-api/internal/application/order"
	"github.com/jhoicas/Siparis-api/internal/application/ports"
	"github.com/jhoicas/Siparis-api/internal/application/report"
	"github.com/jhoicas/Siparis-api/internal/application/usecase"
	"github.com/jhoicas/Siparis-api/internal/domain/session"
	infrapdf "github.com/jhoicas/Siparis-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Siparis-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Siparis-api/internal/infrastructure/redis"
	infraxlsx "github.com/jhoicas/Siparis-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Siparis-api/internal/interfaces/http"
	"github.com/jhoicas/Siparis-api/pkg/config"
	"github.com/jhoicas/Siparis-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché opcional: sin Redis todo va directo a la base.
	var cache ports.Cache = ports.NopCache{}
	if cfg.Redis.Enabled {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché desactivada")
		} else {
			defer rdb.Close()
			cache = infraredis.NewCache(rdb, cfg.App.Name)
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	demandRepo := postgres.NewDemandRepository(pool)
	rateRepo := postgres.NewExchangeRateRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementsUC := inventory.NewRegisterMovementUseCase(txRunner, movementRepo, productRepo, cfg.Stock.AllowNegative)
	deliveryUC := appdelivery.NewUseCase(txRunner, movementsUC, deliveryRepo, orderRepo,
		infrapdf.NewDeliveryNoteRenderer(cfg.App.Company))
	reportUC := report.NewUseCase(demandRepo, customerRepo, infraxlsx.NewDemandExporter(),
		cache, cfg.Redis.TTL, log.Component("report"))
	authUC := auth.NewAuthUseCase(userRepo, sessionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, session.Policy{
		InactivityLimit: time.Duration(cfg.Session.InactivityMinutes) * time.Minute,
		WarningWindow:   time.Duration(cfg.Session.WarningMinutes) * time.Minute,
	})

	go purgeSessions(ctx, authUC, log.Component("sessions"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log.Component("http"), 30*time.Second),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Siparis API",
	}))

	app.Get("/health", httpRouter.Health(cfg.App.Name, pool))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(productRepo),
		CustomerUC:     usecase.NewCustomerUseCase(customerRepo),
		ExchangeRateUC: usecase.NewExchangeRateUseCase(rateRepo, cache, cfg.Redis.TTL, log.Component("rates")),
		Movements:      movementsUC,
		OrderUC:        order.NewUseCase(orderRepo, customerRepo, productRepo),
		DeliveryUC:     deliveryUC,
		ReportUC:       reportUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// purgeSessions borra cada minuto las sesiones que superaron el límite de inactividad.
func purgeSessions(ctx context.Context, uc *auth.AuthUseCase, log *logger.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := uc.PurgeIdle(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purga de sesiones")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("sesiones inactivas purgadas")
			}
		}
	}
}

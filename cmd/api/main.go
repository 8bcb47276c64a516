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
	"github.com/tu-usuario/stockpos-backend/internal/application/auth"
	"github.com/tu-usuario/stockpos-backend/internal/application/billing"
	"github.com/tu-usuario/stockpos-backend/internal/application/inventory"
	"github.com/tu-usuario/stockpos-backend/internal/application/pos"
	"github.com/tu-usuario/stockpos-backend/internal/application/purchases"
	"github.com/tu-usuario/stockpos-backend/internal/application/returns"
	"github.com/tu-usuario/stockpos-backend/internal/application/sales"
	"github.com/tu-usuario/stockpos-backend/internal/application/stock"
	"github.com/tu-usuario/stockpos-backend/internal/application/usecase"
	"github.com/tu-usuario/stockpos-backend/internal/application/wastage"
	infrapdf "github.com/tu-usuario/stockpos-backend/internal/infrastructure/pdf"
	"github.com/tu-usuario/stockpos-backend/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stockpos-backend/internal/interfaces/http"
	"github.com/tu-usuario/stockpos-backend/pkg/config"
	"github.com/tu-usuario/stockpos-backend/pkg/logger"

	_ "github.com/tu-usuario/stockpos-backend/docs"
)

// @title StockPOS API
// @version 1.0
// @description Backend de inventario, punto de venta y facturación con control estricto de existencias.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	reportingRepo := postgres.NewReportingRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	posRepo := postgres.NewPOSTransactionRepository(pool)

	// Todas las mutaciones de stock pasan por el motor dentro de una
	// transacción del TxRunner; los repos sueltos de arriba solo leen.
	txRunner := postgres.NewTxRunner(pool, cfg.Stock.LockTimeout)
	engine := stock.NewEngine(txRunner)

	inventoryUC := inventory.NewUseCase(engine, reportingRepo, movementRepo, levelRepo)
	purchaseUC := purchases.NewUseCase(txRunner, engine, vendorRepo, warehouseRepo)
	saleUC := sales.NewUseCase(txRunner, engine, customerRepo, cfg.Stock.MaxRetries, cfg.Stock.RetryBackoff)
	posUC := pos.NewUseCase(txRunner, engine)
	returnUC := returns.NewUseCase(txRunner, engine)
	wastageUC := wastage.NewUseCase(txRunner, engine)

	productUC := usecase.NewProductUseCase(productRepo, levelRepo, warehouseRepo)
	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)

	// PDF: representación imprimible de ventas y recibos POS
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	pdfUC := billing.NewPDFUseCase(saleRepo, posRepo, customerRepo, productRepo, pdfGenerator)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
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
		Title:    "StockPOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		VendorUC:    vendorUC,
		CustomerUC:  customerUC,
		WarehouseUC: warehouseUC,
		InventoryUC: inventoryUC,
		PurchaseUC:  purchaseUC,
		SaleUC:      saleUC,
		POSUC:       posUC,
		ReturnUC:    returnUC,
		WastageUC:   wastageUC,
		PDFUC:       pdfUC,
		JWTSecret:   cfg.JWT.Secret,
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

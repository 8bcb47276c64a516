package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockpos-backend/internal/application/auth"
	"github.com/tu-usuario/stockpos-backend/internal/application/billing"
	"github.com/tu-usuario/stockpos-backend/internal/application/inventory"
	"github.com/tu-usuario/stockpos-backend/internal/application/pos"
	"github.com/tu-usuario/stockpos-backend/internal/application/purchases"
	"github.com/tu-usuario/stockpos-backend/internal/application/returns"
	"github.com/tu-usuario/stockpos-backend/internal/application/sales"
	"github.com/tu-usuario/stockpos-backend/internal/application/usecase"
	"github.com/tu-usuario/stockpos-backend/internal/application/wastage"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	VendorUC    *usecase.VendorUseCase
	CustomerUC  *usecase.CustomerUseCase
	WarehouseUC *usecase.WarehouseUseCase
	InventoryUC *inventory.UseCase
	PurchaseUC  *purchases.UseCase
	SaleUC      *sales.UseCase
	POSUC       *pos.UseCase
	ReturnUC    *returns.UseCase
	WastageUC   *wastage.UseCase
	PDFUC       *billing.PDFUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Roles: admin todo; bodeguero opera stock; vendedor vende
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	sellRoles := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", stockRoles, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", stockRoles, productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Vendors
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", stockRoles, vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Put("/:id", stockRoles, vendorHandler.Update)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/adjust/:productId", stockRoles, inventoryHandler.Adjust)
	invGroup.Get("/levels/:productId", inventoryHandler.GetLevel)
	invGroup.Get("/warehouses/:id/levels", inventoryHandler.LevelsByWarehouse)
	invGroup.Get("/history/:productId", inventoryHandler.History)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/out-of-stock", inventoryHandler.OutOfStock)
	invGroup.Get("/valuation", inventoryHandler.Valuation)
	invGroup.Get("/reconcile/:productId", RequireRole(entity.RoleAdmin), inventoryHandler.Reconcile)

	// Purchases
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Post("/", stockRoles, purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.PDFUC)
	salesGroup.Post("/", sellRoles, saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.PDF)

	// POS
	posGroup := protected.Group("/pos")
	posHandler := NewPOSHandler(deps.POSUC, deps.PDFUC)
	posGroup.Post("/", sellRoles, posHandler.Open)
	posGroup.Post("/:id/items", sellRoles, posHandler.AddItem)
	posGroup.Post("/:id/close", sellRoles, posHandler.Close)
	posGroup.Post("/:id/void", sellRoles, posHandler.Void)
	posGroup.Get("/:id", posHandler.GetByID)
	posGroup.Get("/:id/receipt", posHandler.Receipt)

	// Returns
	returnsGroup := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnUC)
	returnsGroup.Post("/", sellRoles, returnHandler.Create)
	returnsGroup.Get("/sale/:saleId", returnHandler.ListBySale)
	returnsGroup.Get("/:id", returnHandler.GetByID)

	// Wastage
	wastageGroup := protected.Group("/wastage")
	wastageHandler := NewWastageHandler(deps.WastageUC)
	wastageGroup.Post("/", stockRoles, wastageHandler.Create)
	wastageGroup.Get("/", wastageHandler.List)
}

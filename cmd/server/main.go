package main

import (
	"errors"
	"log"
	"strings"

	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/catalog"
	"supplychain-backend/internal/config"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/event"
	"supplychain-backend/internal/finance"
	"supplychain-backend/internal/inventory"
	"supplychain-backend/internal/models"
	"supplychain-backend/internal/orders"
	"supplychain-backend/internal/partner"
	"supplychain-backend/internal/payment"
	"supplychain-backend/internal/returns"
	"supplychain-backend/internal/sales"
	"supplychain-backend/internal/shipment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var de *domainerr.Error
			if errors.As(err, &de) {
				return c.Status(domainerr.HTTPStatus(de.Code)).JSON(fiber.Map{
					"code":  de.Code,
					"error": de.Message,
				})
			}
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Get("/partners", partner.ListPartnersHandler())

	// Supplier catalog
	protected.Get("/materials", catalog.ListMaterialsHandler())
	supplierOnly := protected.Group("/materials", auth.RequireRole(models.RoleSupplier))
	supplierOnly.Post("", catalog.CreateMaterialHandler())
	supplierOnly.Post("/import", catalog.BulkImportMaterialsHandler())
	supplierOnly.Put("/:id", catalog.UpdateMaterialHandler())
	supplierOnly.Delete("/:id", catalog.DeleteMaterialHandler())

	// Manufacturer catalog
	protected.Get("/products", catalog.ListProductsHandler())
	manufacturerOnly := protected.Group("/products", auth.RequireRole(models.RoleManufacturer))
	manufacturerOnly.Post("", catalog.CreateProductHandler())
	manufacturerOnly.Put("/:id", catalog.UpdateProductHandler())
	manufacturerOnly.Put("/:id/stage", catalog.UpdateProductionStageHandler())
	manufacturerOnly.Delete("/:id", catalog.DeleteProductHandler())

	// Orders: manufacturers buy materials, retailers buy goods
	protected.Post("/orders",
		auth.RequireRole(models.RoleManufacturer, models.RoleRetailer),
		orders.PlaceOrderHandler())
	protected.Get("/orders", orders.ListOrdersHandler())
	protected.Put("/orders/:id/status", orders.AdvanceOrderStatusHandler())

	// Inventory: every party that holds finished goods
	inventoryRoutes := protected.Group("/inventory",
		auth.RequireRole(models.RoleManufacturer, models.RoleWarehouse, models.RoleRetailer))
	inventoryRoutes.Get("", inventory.ListInventoryHandler())
	inventoryRoutes.Post("", inventory.ReceiveStockHandler())
	inventoryRoutes.Post("/decrement", inventory.DecrementStockHandler())
	inventoryRoutes.Get("/low-stock", inventory.LowStockHandler())

	// Shipments: manufacturer -> warehouse
	protected.Post("/shipments",
		auth.RequireRole(models.RoleManufacturer),
		shipment.CreateShipmentHandler())
	protected.Get("/shipments",
		auth.RequireRole(models.RoleManufacturer, models.RoleWarehouse),
		shipment.ListShipmentsHandler())
	protected.Put("/shipments/:id/status",
		auth.RequireRole(models.RoleManufacturer, models.RoleWarehouse),
		shipment.AdvanceShipmentStatusHandler())

	// Payments: either party on the order
	protected.Post("/payments", payment.RecordPaymentHandler())
	protected.Get("/payments/:orderId", payment.GetPaymentHandler())

	// Returns: buyers open, sellers decide
	protected.Post("/returns",
		auth.RequireRole(models.RoleManufacturer, models.RoleRetailer),
		returns.CreateReturnHandler())
	protected.Put("/returns/:id/decision", returns.DecideReturnHandler())

	// Ratings
	protected.Post("/ratings", returns.SubmitRatingHandler())
	protected.Get("/ratings", returns.ListRatingsHandler())

	// Direct retail sales
	retailerOnly := protected.Group("/sales", auth.RequireRole(models.RoleRetailer))
	retailerOnly.Post("", sales.RecordSaleHandler())
	retailerOnly.Get("", sales.ListSalesHandler())

	// Expenses & revenues
	protected.Post("/expenses", finance.CreateEntryHandler())
	protected.Get("/expenses", finance.ListEntriesHandler())
	protected.Put("/expenses/:id", finance.UpdateEntryHandler())
	protected.Delete("/expenses/:id", finance.DeleteEntryHandler())
	protected.Get("/finance/summary", finance.SummaryHandler())

	// Domain event feed
	protected.Get("/events", event.ListEventsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

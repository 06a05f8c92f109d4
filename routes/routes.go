package routes

import (
	"posbook/handlers"
	"posbook/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/login", handlers.HandleLogin)

	// --- Owner Routes ---
	owner := api.Group("/owner", middleware.Authenticate, middleware.OwnerRequired)

	// Subscription (readable even when lapsed, so the app can prompt renewal)
	owner.Get("/subscription", handlers.HandleGetSubscriptionStatus)
	owner.Post("/subscription/extend", handlers.HandleExtendSubscription)

	// Everything below requires an active subscription.
	active := owner.Group("", middleware.SubscriptionRequired)

	// Dashboard
	active.Get("/dashboard/summary", handlers.HandleGetDashboardSummary)

	// Catalog
	active.Post("/categories", handlers.HandleCreateCategory)
	active.Get("/categories", handlers.HandleListCategories)
	active.Delete("/categories/:categoryId", handlers.HandleDeleteCategory)

	active.Post("/products", handlers.HandleCreateProduct)
	active.Get("/products", handlers.HandleListProducts)
	active.Get("/products/:productId", handlers.HandleGetProduct)
	active.Put("/products/:productId", handlers.HandleUpdateProduct)
	active.Delete("/products/:productId", handlers.HandleArchiveProduct)

	// Customers and credit
	active.Post("/customers", handlers.HandleCreateCustomer)
	active.Get("/customers", handlers.HandleListCustomers)
	active.Get("/customers/:customerId", handlers.HandleGetCustomer)
	active.Post("/customers/:customerId/payments", handlers.HandleRecordCustomerPayment)

	// Sales
	active.Post("/sales/checkout", handlers.HandleCheckout)
	active.Get("/sales", handlers.HandleListSales)
	active.Post("/sales/import", handlers.HandleImportSales)

	// Bookkeeping ledger
	active.Post("/ledger", handlers.HandleCreateLedgerEntry)
	active.Get("/ledger", handlers.HandleListLedgerEntries)
	active.Delete("/ledger/:entryId", handlers.HandleDeleteLedgerEntry)

	// Reports
	active.Get("/reports/advanced", handlers.HandleGetAdvancedReport)
	active.Get("/reports/restock-advice", handlers.HandleGetRestockAdvice)
}

package handlers

import (
	"context"
	"log"
	"time"

	"posbook/database"
	"posbook/middleware"
	"posbook/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetDashboardSummary computes the owner's KPI rollup for a date
// range (defaults to the last 30 days). Revenue here is the bookkeeping
// view: sales plus manual income plus customer payments. The analytics
// report counts sales only, so the two figures can legitimately differ.
func HandleGetDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "from must be YYYY-MM-DD"})
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "to must be YYYY-MM-DD"})
		}
		// Inclusive end of day.
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	var salesRevenue float64
	var transactions int
	salesQuery := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales
		WHERE owner_id = $1 AND sale_date BETWEEN $2 AND $3
	`
	if err := db.QueryRow(ctx, salesQuery, claims.UserID, from, to).Scan(&salesRevenue, &transactions); err != nil {
		log.Printf("Error aggregating sales for dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to compute summary"})
	}

	var manualIncome, totalExpenses float64
	ledgerQuery := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'expense'), 0)
		FROM ledger_entries
		WHERE owner_id = $1 AND entry_date BETWEEN $2 AND $3
	`
	if err := db.QueryRow(ctx, ledgerQuery, claims.UserID, from, to).Scan(&manualIncome, &totalExpenses); err != nil {
		log.Printf("Error aggregating ledger for dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to compute summary"})
	}

	var customerPayments float64
	paymentsQuery := `
		SELECT COALESCE(SUM(amount), 0)
		FROM customer_payments
		WHERE owner_id = $1 AND paid_at BETWEEN $2 AND $3
	`
	if err := db.QueryRow(ctx, paymentsQuery, claims.UserID, from, to).Scan(&customerPayments); err != nil {
		log.Printf("Error aggregating payments for dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to compute summary"})
	}

	var productCount, lowStockCount int
	countQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE low_stock_threshold IS NOT NULL AND stock <= low_stock_threshold)
		FROM products
		WHERE owner_id = $1 AND is_archived = FALSE
	`
	if err := db.QueryRow(ctx, countQuery, claims.UserID).Scan(&productCount, &lowStockCount); err != nil {
		log.Printf("Error counting products for dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to compute summary"})
	}

	averageOrderValue := 0.0
	if transactions > 0 {
		averageOrderValue = salesRevenue / float64(transactions)
	}

	summary := models.DashboardSummary{
		TotalRevenue:         models.KpiData{Value: salesRevenue + manualIncome + customerPayments},
		SalesRevenue:         models.KpiData{Value: salesRevenue},
		ManualIncome:         models.KpiData{Value: manualIncome},
		CustomerPayments:     models.KpiData{Value: customerPayments},
		TotalExpenses:        models.KpiData{Value: totalExpenses},
		NumberOfTransactions: models.KpiData{Value: float64(transactions)},
		AverageOrderValue:    models.KpiData{Value: averageOrderValue},
		ProductCount:         models.KpiData{Value: float64(productCount)},
		LowStockCount:        models.KpiData{Value: float64(lowStockCount)},
	}

	return c.JSON(fiber.Map{"status": "success", "data": summary})
}

package handlers

import (
	"context"
	"log"
	"time"

	"posbook/analytics"
	"posbook/config"
	"posbook/database"
	"posbook/middleware"
	"posbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandleGetAdvancedReport builds the inventory-intelligence report for the
// owner. Products and sale documents are fetched concurrently and joined
// before the engine runs; a failed fetch degrades to an empty slice so the
// report still renders from whatever data arrived.
func HandleGetAdvancedReport(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	productsCh := make(chan []analytics.RawProduct, 1)
	salesCh := make(chan []analytics.RawSale, 1)

	go func() {
		productsCh <- fetchReportProducts(ctx, db, claims.UserID)
	}()
	go func() {
		salesCh <- fetchReportSales(ctx, db, claims.UserID)
	}()

	products := <-productsCh
	sales := <-salesCh

	lookback := config.AppConfig.LookbackDays
	now := time.Now().UTC()
	report := analytics.BuildReport(products, sales, analytics.Options{
		LookbackDays: lookback,
		Now:          now,
	})
	if lookback <= 0 {
		lookback = analytics.DefaultLookbackDays
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.AdvancedReportResponse{
		GeneratedAt:  now,
		LookbackDays: lookback,
		Report:       report,
	}})
}

// fetchReportProducts loads the owner's active catalog as engine input.
func fetchReportProducts(ctx context.Context, db *pgxpool.Pool, ownerID string) []analytics.RawProduct {
	rows, err := db.Query(ctx, `
		SELECT id, name, stock, price, created_at
		FROM products
		WHERE owner_id = $1 AND is_archived = FALSE
	`, ownerID)
	if err != nil {
		log.Printf("Error fetching products for report: %v", err)
		return []analytics.RawProduct{}
	}
	defer rows.Close()

	products := make([]analytics.RawProduct, 0)
	for rows.Next() {
		var p analytics.RawProduct
		var createdAt time.Time
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.Price, &createdAt); err != nil {
			log.Printf("Error scanning product for report: %v", err)
			continue
		}
		p.CreatedAt = createdAt
		products = append(products, p)
	}
	return products
}

// fetchReportSales loads the stored sale documents. The payload column
// carries the canonical document for checkouts and whatever shape legacy
// imports arrived in; decoding resolves the aliases.
func fetchReportSales(ctx context.Context, db *pgxpool.Pool, ownerID string) []analytics.RawSale {
	rows, err := db.Query(ctx, `SELECT id, payload FROM sales WHERE owner_id = $1`, ownerID)
	if err != nil {
		log.Printf("Error fetching sales for report: %v", err)
		return []analytics.RawSale{}
	}
	defer rows.Close()

	sales := make([]analytics.RawSale, 0)
	for rows.Next() {
		var id string
		var payload models.JSONB
		if err := rows.Scan(&id, &payload); err != nil {
			log.Printf("Error scanning sale for report: %v", err)
			continue
		}
		sale := analytics.DecodeSaleDocument(payload)
		if sale.ID == "" {
			sale.ID = id
		}
		sales = append(sales, sale)
	}
	return sales
}

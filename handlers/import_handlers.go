package handlers

import (
	"context"
	"log"
	"time"

	"posbook/analytics"
	"posbook/database"
	"posbook/middleware"
	"posbook/models"

	"github.com/gofiber/fiber/v2"
)

// HandleImportSales bulk-loads sale documents exported from a previous
// system. Documents are stored verbatim in payload jsonb; the typed columns
// are derived best-effort so the CRUD surface can show the rows, but the
// analytics engine always reads the original document.
func HandleImportSales(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	var req models.ImportSalesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if len(req.Sales) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "No sale documents provided"})
	}
	if len(req.Sales) > 1000 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Import is limited to 1000 documents per request"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not start transaction"})
	}
	defer tx.Rollback(ctx)

	imported := 0
	for i, doc := range req.Sales {
		decoded := analytics.DecodeSaleDocument(doc)

		saleDate := time.Now().UTC()
		if parsed := analytics.ParseTimestamp(decoded.Date); parsed != nil {
			saleDate = *parsed
		}
		saleType := decoded.SaleType
		if saleType == "" {
			saleType = "cash"
		}

		query := `
			INSERT INTO sales (owner_id, sale_date, total_amount, sale_type, notes, payload)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, query,
			claims.UserID, saleDate, decoded.Amount(), saleType, "imported", models.JSONB(doc),
		); err != nil {
			log.Printf("Error importing sale document %d: %v", i, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Import failed, no documents were saved"})
		}
		imported++
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing sale import: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Import failed, no documents were saved"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": fiber.Map{"imported": imported}})
}

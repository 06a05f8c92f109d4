package handlers

import (
	"context"
	"log"
	"time"

	"posbook/database"
	"posbook/middleware"
	"posbook/models"
	"posbook/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleCheckout processes a new sale from the POS screen. The sale is
// written twice on purpose: typed columns for the CRUD surface, and the
// canonical document into payload jsonb, which is what the analytics
// engine later reads.
func HandleCheckout(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.SaleType != "cash" && req.SaleType != "credit" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "saleType must be 'cash' or 'credit'"})
	}
	if req.SaleType == "credit" && req.CustomerID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Credit sales require a customer"})
	}

	var totalAmount float64
	for _, item := range req.Items {
		totalAmount += item.UnitPrice * item.Quantity
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not start transaction"})
	}
	defer tx.Rollback(ctx)

	payload := buildSaleDocument(req, totalAmount, time.Now().UTC())

	var sale models.Sale
	saleQuery := `
		INSERT INTO sales (owner_id, customer_id, total_amount, sale_type, notes, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, customer_id, sale_date, total_amount, sale_type, notes, created_at, updated_at
	`
	if err := tx.QueryRow(ctx, saleQuery,
		claims.UserID, req.CustomerID, totalAmount, req.SaleType, req.Notes, payload,
	).Scan(
		&sale.ID, &sale.OwnerID, &sale.CustomerID, &sale.SaleDate, &sale.TotalAmount,
		&sale.SaleType, &sale.Notes, &sale.CreatedAt, &sale.UpdatedAt,
	); err != nil {
		log.Printf("Error creating sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create sale"})
	}

	for _, item := range req.Items {
		itemQuery := `
			INSERT INTO sale_items (sale_id, product_id, quantity_sold, unit_price_at_sale, subtotal)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.Exec(ctx, itemQuery, sale.ID, item.ProductID, item.Quantity, item.UnitPrice, item.UnitPrice*item.Quantity); err != nil {
			log.Printf("Error creating sale item for product %s: %v", item.ProductID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not record sale item"})
		}

		// Stock never goes below zero; overselling clamps at empty.
		stockQuery := `
			UPDATE products
			SET stock = GREATEST(stock - $1, 0), updated_at = NOW()
			WHERE id = $2 AND owner_id = $3
		`
		if _, err := tx.Exec(ctx, stockQuery, int(item.Quantity), item.ProductID, claims.UserID); err != nil {
			log.Printf("Error decrementing stock for product %s: %v", item.ProductID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not update stock"})
		}
	}

	if req.SaleType == "credit" {
		creditQuery := `
			UPDATE customers
			SET credit_balance = credit_balance + $1, updated_at = NOW()
			WHERE id = $2 AND owner_id = $3
		`
		if _, err := tx.Exec(ctx, creditQuery, totalAmount, *req.CustomerID, claims.UserID); err != nil {
			log.Printf("Error updating credit balance for customer %s: %v", utils.PointerToString(req.CustomerID), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not update customer balance"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing checkout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not complete checkout"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": sale})
}

// buildSaleDocument shapes the canonical jsonb document for a checkout.
// Field names here are the current generation; older payloads in the same
// column use legacy aliases, which the analytics decoder resolves.
func buildSaleDocument(req models.CheckoutRequest, totalAmount float64, at time.Time) models.JSONB {
	items := make([]interface{}, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, map[string]interface{}{
			"productId": item.ProductID,
			"qty":       item.Quantity,
			"price":     item.UnitPrice,
		})
	}
	return models.JSONB{
		"saleType":  req.SaleType,
		"createdAt": at.Format(time.RFC3339),
		"total":     totalAmount,
		"items":     items,
	}
}

// HandleListSales lists the owner's sales with their items, newest first.
func HandleListSales(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	page, pageSize, offset := utils.NormalizePageParams(c.QueryInt("page", 1), c.QueryInt("pageSize", 10), 10)

	query := `
		SELECT id, owner_id, customer_id, sale_date, total_amount, sale_type, notes, created_at, updated_at
		FROM sales
		WHERE owner_id = $1
		ORDER BY sale_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(ctx, query, claims.UserID, pageSize, offset)
	if err != nil {
		log.Printf("Error listing sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve sales"})
	}
	defer rows.Close()

	sales := make([]models.Sale, 0)
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(
			&sale.ID, &sale.OwnerID, &sale.CustomerID, &sale.SaleDate, &sale.TotalAmount,
			&sale.SaleType, &sale.Notes, &sale.CreatedAt, &sale.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning sale row: %v", err)
			continue
		}
		sales = append(sales, sale)
	}

	// Attach items per sale. A failed item fetch degrades to an empty list
	// rather than failing the whole page.
	for i := range sales {
		itemRows, err := db.Query(ctx, `
			SELECT si.id, si.sale_id, si.product_id, p.name, si.quantity_sold, si.unit_price_at_sale, si.subtotal
			FROM sale_items si
			LEFT JOIN products p ON p.id = si.product_id
			WHERE si.sale_id = $1
		`, sales[i].ID)
		if err != nil {
			log.Printf("Error fetching items for sale %s: %v", sales[i].ID, err)
			sales[i].Items = []models.SaleItem{}
			continue
		}
		items := make([]models.SaleItem, 0)
		for itemRows.Next() {
			var item models.SaleItem
			if err := itemRows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName, &item.QuantitySold, &item.UnitPriceAtSale, &item.Subtotal); err != nil {
				log.Printf("Error scanning sale item: %v", err)
				continue
			}
			items = append(items, item)
		}
		itemRows.Close()
		sales[i].Items = items
	}

	var totalItems int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE owner_id = $1`, claims.UserID).Scan(&totalItems); err != nil {
		log.Printf("Error counting sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count sales"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.PaginatedSalesResponse{
		Items:      sales,
		Pagination: utils.CreatePagination(totalItems, page, pageSize),
	}})
}

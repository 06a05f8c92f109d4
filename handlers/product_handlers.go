package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"posbook/database"
	"posbook/middleware"
	"posbook/models"
	"posbook/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleCreateProduct adds a product to the owner's catalog.
func HandleCreateProduct(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Product name is required"})
	}

	query := `
		INSERT INTO products (owner_id, category_id, name, sku, price, cost_price, stock, low_stock_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, owner_id, category_id, name, sku, price, cost_price, stock, low_stock_threshold, is_archived, created_at, updated_at
	`
	var p models.Product
	if err := db.QueryRow(ctx, query,
		claims.UserID, req.CategoryID, req.Name, req.SKU, req.Price, req.CostPrice, req.Stock, req.LowStockThreshold,
	).Scan(
		&p.ID, &p.OwnerID, &p.CategoryID, &p.Name, &p.SKU, &p.Price, &p.CostPrice,
		&p.Stock, &p.LowStockThreshold, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": p})
}

// HandleListProducts lists the owner's products, optionally filtered.
func HandleListProducts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	page, pageSize, offset := utils.NormalizePageParams(c.QueryInt("page", 1), c.QueryInt("pageSize", 20), 20)
	searchTerm := c.Query("searchTerm")
	lowStockOnly := c.QueryBool("lowStock", false)

	query := `
		SELECT id, owner_id, category_id, name, sku, price, cost_price, stock, low_stock_threshold, is_archived, created_at, updated_at
		FROM products
		WHERE owner_id = $1 AND is_archived = FALSE
	`
	args := []interface{}{claims.UserID}
	if searchTerm != "" {
		query += ` AND (name ILIKE $2 OR sku ILIKE $2)`
		args = append(args, "%"+searchTerm+"%")
	}
	if lowStockOnly {
		query += ` AND low_stock_threshold IS NOT NULL AND stock <= low_stock_threshold`
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve products"})
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.CategoryID, &p.Name, &p.SKU, &p.Price, &p.CostPrice,
			&p.Stock, &p.LowStockThreshold, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning product row: %v", err)
			continue
		}
		products = append(products, p)
	}

	var totalItems int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE owner_id = $1 AND is_archived = FALSE`, claims.UserID).Scan(&totalItems); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count products"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.PaginatedProductsResponse{
		Items:      products,
		Pagination: utils.CreatePagination(totalItems, page, pageSize),
	}})
}

// HandleGetProduct fetches a single product by id.
func HandleGetProduct(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	productID := c.Params("productId")

	var p models.Product
	query := `
		SELECT id, owner_id, category_id, name, sku, price, cost_price, stock, low_stock_threshold, is_archived, created_at, updated_at
		FROM products
		WHERE id = $1 AND owner_id = $2
	`
	if err := db.QueryRow(ctx, query, productID, claims.UserID).Scan(
		&p.ID, &p.OwnerID, &p.CategoryID, &p.Name, &p.SKU, &p.Price, &p.CostPrice,
		&p.Stock, &p.LowStockThreshold, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error fetching product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve product"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": p})
}

// HandleUpdateProduct updates catalog fields and the stock level.
func HandleUpdateProduct(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	productID := c.Params("productId")

	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	query := `
		UPDATE products
		SET category_id = $1, name = $2, sku = $3, price = $4, cost_price = $5, stock = $6, low_stock_threshold = $7, updated_at = NOW()
		WHERE id = $8 AND owner_id = $9
		RETURNING id, owner_id, category_id, name, sku, price, cost_price, stock, low_stock_threshold, is_archived, created_at, updated_at
	`
	var p models.Product
	if err := db.QueryRow(ctx, query,
		req.CategoryID, req.Name, req.SKU, req.Price, req.CostPrice, req.Stock, req.LowStockThreshold,
		productID, claims.UserID,
	).Scan(
		&p.ID, &p.OwnerID, &p.CategoryID, &p.Name, &p.SKU, &p.Price, &p.CostPrice,
		&p.Stock, &p.LowStockThreshold, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error updating product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update product"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": p})
}

// HandleArchiveProduct soft-deletes a product. Sales keep referencing the
// id; the analytics engine tolerates the dangling reference.
func HandleArchiveProduct(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	productID := c.Params("productId")

	tag, err := db.Exec(ctx, `UPDATE products SET is_archived = TRUE, updated_at = NOW() WHERE id = $1 AND owner_id = $2`, productID, claims.UserID)
	if err != nil {
		log.Printf("Error archiving product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to archive product"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Product archived"})
}

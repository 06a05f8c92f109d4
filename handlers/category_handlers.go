package handlers

import (
	"context"
	"log"

	"posbook/database"
	"posbook/middleware"
	"posbook/models"

	"github.com/gofiber/fiber/v2"
)

// HandleCreateCategory adds a category to the owner's catalog.
func HandleCreateCategory(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Category name is required"})
	}

	var cat models.Category
	query := `
		INSERT INTO categories (owner_id, name)
		VALUES ($1, $2)
		RETURNING id, owner_id, name, created_at, updated_at
	`
	if err := db.QueryRow(ctx, query, claims.UserID, req.Name).Scan(
		&cat.ID, &cat.OwnerID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt,
	); err != nil {
		log.Printf("Error creating category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create category"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": cat})
}

// HandleListCategories lists all categories of the owner.
func HandleListCategories(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	rows, err := db.Query(ctx, `SELECT id, owner_id, name, created_at, updated_at FROM categories WHERE owner_id = $1 ORDER BY name ASC`, claims.UserID)
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve categories"})
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.OwnerID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			log.Printf("Error scanning category row: %v", err)
			continue
		}
		categories = append(categories, cat)
	}

	return c.JSON(fiber.Map{"status": "success", "data": categories})
}

// HandleDeleteCategory removes a category; products keep a NULL category.
func HandleDeleteCategory(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	categoryID := c.Params("categoryId")

	tag, err := db.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND owner_id = $2`, categoryID, claims.UserID)
	if err != nil {
		log.Printf("Error deleting category %s: %v", categoryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete category"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Category not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Category deleted"})
}

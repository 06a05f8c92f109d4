package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"posbook/database"
	"posbook/middleware"
	"posbook/models"
	"posbook/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleCreateLedgerEntry records a manual income or expense outside the
// sales pipeline.
func HandleCreateLedgerEntry(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	var req models.CreateLedgerEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.EntryType != "income" && req.EntryType != "expense" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "entryType must be 'income' or 'expense'"})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Amount must be positive"})
	}

	entryDate := time.Now().UTC()
	if req.EntryDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.EntryDate); err == nil {
			entryDate = parsed
		} else {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "entryDate must be YYYY-MM-DD"})
		}
	}

	var entry models.LedgerEntry
	query := `
		INSERT INTO ledger_entries (owner_id, entry_type, amount, description, entry_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, entry_type, amount, description, entry_date, created_at
	`
	if err := db.QueryRow(ctx, query, claims.UserID, req.EntryType, req.Amount, req.Description, entryDate).Scan(
		&entry.ID, &entry.OwnerID, &entry.EntryType, &entry.Amount, &entry.Description, &entry.EntryDate, &entry.CreatedAt,
	); err != nil {
		log.Printf("Error creating ledger entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create entry"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": entry})
}

// HandleListLedgerEntries lists manual entries, newest first, optionally
// filtered by type.
func HandleListLedgerEntries(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	page, pageSize, offset := utils.NormalizePageParams(c.QueryInt("page", 1), c.QueryInt("pageSize", 20), 20)
	entryType := c.Query("type")

	query := `
		SELECT id, owner_id, entry_type, amount, description, entry_date, created_at
		FROM ledger_entries
		WHERE owner_id = $1
	`
	args := []interface{}{claims.UserID}
	if entryType == "income" || entryType == "expense" {
		query += ` AND entry_type = $2`
		args = append(args, entryType)
	}
	query += fmt.Sprintf(" ORDER BY entry_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing ledger entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve entries"})
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0)
	for rows.Next() {
		var entry models.LedgerEntry
		if err := rows.Scan(&entry.ID, &entry.OwnerID, &entry.EntryType, &entry.Amount, &entry.Description, &entry.EntryDate, &entry.CreatedAt); err != nil {
			log.Printf("Error scanning ledger row: %v", err)
			continue
		}
		entries = append(entries, entry)
	}

	var totalItems int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE owner_id = $1`, claims.UserID).Scan(&totalItems); err != nil {
		log.Printf("Error counting ledger entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count entries"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.PaginatedLedgerResponse{
		Items:      entries,
		Pagination: utils.CreatePagination(totalItems, page, pageSize),
	}})
}

// HandleDeleteLedgerEntry removes a manual entry.
func HandleDeleteLedgerEntry(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	entryID := c.Params("entryId")

	tag, err := db.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1 AND owner_id = $2`, entryID, claims.UserID)
	if err != nil {
		log.Printf("Error deleting ledger entry %s: %v", entryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete entry"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Entry not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Entry deleted"})
}

package handlers

import (
	"context"
	"errors"
	"log"

	"posbook/database"
	"posbook/middleware"
	"posbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleCreateCustomer adds a customer to the owner's book.
func HandleCreateCustomer(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	var req struct {
		Name  string  `json:"name"`
		Phone *string `json:"phone,omitempty"`
		Email *string `json:"email,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Customer name is required"})
	}

	var customer models.Customer
	query := `
		INSERT INTO customers (owner_id, name, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, name, phone, email, credit_balance, created_at, updated_at
	`
	if err := db.QueryRow(ctx, query, claims.UserID, req.Name, req.Phone, req.Email).Scan(
		&customer.ID, &customer.OwnerID, &customer.Name, &customer.Phone, &customer.Email,
		&customer.CreditBalance, &customer.CreatedAt, &customer.UpdatedAt,
	); err != nil {
		log.Printf("Error creating customer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create customer"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": customer})
}

// HandleListCustomers lists customers, optionally filtered by a search term.
func HandleListCustomers(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	searchTerm := c.Query("query")

	query := `
		SELECT id, owner_id, name, phone, email, credit_balance, created_at, updated_at
		FROM customers
		WHERE owner_id = $1
	`
	args := []interface{}{claims.UserID}
	if searchTerm != "" {
		query += ` AND (name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2)`
		args = append(args, "%"+searchTerm+"%")
	}
	query += ` ORDER BY name ASC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing customers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve customers"})
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(
			&customer.ID, &customer.OwnerID, &customer.Name, &customer.Phone, &customer.Email,
			&customer.CreditBalance, &customer.CreatedAt, &customer.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning customer row: %v", err)
			continue
		}
		customers = append(customers, customer)
	}

	return c.JSON(fiber.Map{"status": "success", "data": customers})
}

// HandleRecordCustomerPayment records money received against a customer's
// outstanding credit balance. These payments feed the dashboard revenue
// rollup, not the analytics report.
func HandleRecordCustomerPayment(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	customerID := c.Params("customerId")

	var req models.CustomerPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Payment amount must be positive"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not start transaction"})
	}
	defer tx.Rollback(ctx)

	var payment models.CustomerPayment
	payQuery := `
		INSERT INTO customer_payments (owner_id, customer_id, amount, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, customer_id, amount, paid_at, notes
	`
	if err := tx.QueryRow(ctx, payQuery, claims.UserID, customerID, req.Amount, req.Notes).Scan(
		&payment.ID, &payment.OwnerID, &payment.CustomerID, &payment.Amount, &payment.PaidAt, &payment.Notes,
	); err != nil {
		log.Printf("Error recording payment for customer %s: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to record payment"})
	}

	balanceQuery := `
		UPDATE customers
		SET credit_balance = GREATEST(credit_balance - $1, 0), updated_at = NOW()
		WHERE id = $2 AND owner_id = $3
	`
	tag, err := tx.Exec(ctx, balanceQuery, req.Amount, customerID, claims.UserID)
	if err != nil {
		log.Printf("Error updating balance for customer %s: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update balance"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Customer not found"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": payment})
}

// HandleGetCustomer fetches a single customer with their balance.
func HandleGetCustomer(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	customerID := c.Params("customerId")

	var customer models.Customer
	query := `
		SELECT id, owner_id, name, phone, email, credit_balance, created_at, updated_at
		FROM customers
		WHERE id = $1 AND owner_id = $2
	`
	if err := db.QueryRow(ctx, query, customerID, claims.UserID).Scan(
		&customer.ID, &customer.OwnerID, &customer.Name, &customer.Phone, &customer.Email,
		&customer.CreditBalance, &customer.CreatedAt, &customer.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Customer not found"})
		}
		log.Printf("Error fetching customer %s: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve customer"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": customer})
}

package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"posbook/database"
	"posbook/middleware"
	"posbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// Plans the extend endpoint accepts, mapped to their duration in days.
var planDurations = map[string]int{
	"monthly": 30,
	"yearly":  365,
}

// HandleGetSubscriptionStatus returns the owner's latest subscription and
// whether it is still active.
func HandleGetSubscriptionStatus(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	var sub models.Subscription
	query := `
		SELECT id, owner_id, plan, started_at, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE owner_id = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`
	if err := db.QueryRow(ctx, query, claims.UserID).Scan(
		&sub.ID, &sub.OwnerID, &sub.Plan, &sub.StartedAt, &sub.ExpiresAt, &sub.CreatedAt, &sub.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "No subscription found"})
		}
		log.Printf("Error fetching subscription: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve subscription"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{
		"subscription": sub,
		"active":       !sub.IsExpired(time.Now().UTC()),
	}})
}

// HandleExtendSubscription starts or extends a subscription on one of the
// known plans. An active subscription extends from its current expiry, a
// lapsed one restarts from now.
func HandleExtendSubscription(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	days, ok := planDurations[req.Plan]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "plan must be 'monthly' or 'yearly'"})
	}

	now := time.Now().UTC()
	base := now
	var current models.Subscription
	err = db.QueryRow(ctx, `
		SELECT id, owner_id, plan, started_at, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE owner_id = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`, claims.UserID).Scan(
		&current.ID, &current.OwnerID, &current.Plan, &current.StartedAt, &current.ExpiresAt, &current.CreatedAt, &current.UpdatedAt,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("Error checking current subscription: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to extend subscription"})
	}
	if err == nil && !current.IsExpired(now) {
		base = current.ExpiresAt
	}

	var sub models.Subscription
	insertQuery := `
		INSERT INTO subscriptions (owner_id, plan, started_at, expires_at)
		VALUES ($1, $2, $3, $3 + make_interval(days => $4))
		RETURNING id, owner_id, plan, started_at, expires_at, created_at, updated_at
	`
	if err := db.QueryRow(ctx, insertQuery, claims.UserID, req.Plan, base, days).Scan(
		&sub.ID, &sub.OwnerID, &sub.Plan, &sub.StartedAt, &sub.ExpiresAt, &sub.CreatedAt, &sub.UpdatedAt,
	); err != nil {
		log.Printf("Error extending subscription: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to extend subscription"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": sub})
}

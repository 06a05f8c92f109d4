package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"posbook/config"
	"posbook/database"
	"posbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// trialDays is the subscription window granted on registration.
const trialDays = 14

// HandleRegister creates a new shop-owner account with a trial subscription.
// POST /api/v1/auth/register
func HandleRegister(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, email, password)"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not process password"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var user models.User
	query := `
		INSERT INTO users (name, shop_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, 'owner')
		RETURNING id, name, shop_name, email, role, is_active, created_at, updated_at
	`
	var shopName *string
	if req.ShopName != "" {
		shopName = &req.ShopName
	}
	if err := tx.QueryRow(ctx, query, req.Name, shopName, req.Email, string(hashedPassword)).Scan(
		&user.ID, &user.Name, &user.ShopName, &user.Email, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	); err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Could not create account (email may already exist)"})
	}

	subQuery := `
		INSERT INTO subscriptions (owner_id, plan, started_at, expires_at)
		VALUES ($1, 'trial', NOW(), NOW() + make_interval(days => $2))
	`
	if _, err := tx.Exec(ctx, subQuery, user.ID, trialDays); err != nil {
		log.Printf("Error creating trial subscription for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create subscription"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	token, err := createJWT(user.ID, user.Role)
	if err != nil {
		log.Printf("Error creating JWT for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create session"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": fiber.Map{"user": user, "token": token}})
}

// HandleLogin authenticates an owner and returns a JWT token.
// POST /api/v1/auth/login
func HandleLogin(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	var user models.User
	var passwordHash string

	query := `
		SELECT id, name, shop_name, email, password_hash, role, is_active, phone, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	err := db.QueryRow(ctx, query, req.Email).Scan(
		&user.ID, &user.Name, &user.ShopName, &user.Email, &passwordHash, &user.Role,
		&user.IsActive, &user.Phone, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
		}
		log.Printf("Database error during login for email %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Account is inactive"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
	}

	token, err := createJWT(user.ID, user.Role)
	if err != nil {
		log.Printf("Error creating JWT for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create session"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"user": user, "token": token}})
}

// createJWT signs a token carrying the owner identity.
func createJWT(userID, role string) (string, error) {
	claims := models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

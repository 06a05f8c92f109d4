package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"posbook/config"
	"posbook/database"
	"posbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Authenticate verifies a JWT token and stores the owner identity in Locals.
func Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Missing authorization header"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader { // No "Bearer " prefix
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid token format"})
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.JwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(*models.JwtClaims)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to parse token claims"})
	}

	c.Locals("userID", claims.UserID)
	c.Locals("userRole", claims.Role)

	return c.Next()
}

// ExtractClaims reads the authenticated owner identity set by Authenticate.
func ExtractClaims(c *fiber.Ctx) (*models.JwtClaims, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return nil, errors.New("no authenticated user in request context")
	}
	role, _ := c.Locals("userRole").(string)
	return &models.JwtClaims{UserID: userID, Role: role}, nil
}

// OwnerRequired checks that the authenticated user has the 'owner' role.
func OwnerRequired(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok || role != "owner" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Owner access required"})
	}
	return c.Next()
}

// SubscriptionRequired blocks business operations once the owner's
// subscription has lapsed. Only routes registered behind this middleware
// are gated; license-key validation is not this layer's concern.
func SubscriptionRequired(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	var expiresAt time.Time
	query := `SELECT expires_at FROM subscriptions WHERE owner_id = $1 ORDER BY expires_at DESC LIMIT 1`
	err := database.GetDB().QueryRow(context.Background(), query, userID).Scan(&expiresAt)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "No active subscription"})
	}

	if time.Now().After(expiresAt) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Subscription expired"})
	}

	return c.Next()
}

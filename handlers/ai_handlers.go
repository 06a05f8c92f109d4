package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"posbook/analytics"
	"posbook/config"
	"posbook/database"
	"posbook/middleware"
	"posbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"
)

// HandleGetRestockAdvice runs the analytics engine and asks Gemini for
// purchasing advice on the urgent-restock and dead-stock segments,
// grounded with the shop's best sellers and peak sales hours.
func HandleGetRestockAdvice(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}
	if config.AppConfig.GeminiAPIKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "AI advice is not configured"})
	}

	products := fetchReportProducts(ctx, db, claims.UserID)
	sales := fetchReportSales(ctx, db, claims.UserID)
	now := time.Now().UTC()
	report := analytics.BuildReport(products, sales, analytics.Options{
		LookbackDays: config.AppConfig.LookbackDays,
		Now:          now,
	})

	bestSellers := fetchBestSellers(ctx, db, claims.UserID)
	peakHours := fetchPeakHours(ctx, db, claims.UserID)

	advice, err := generateRestockAdvice(ctx, report, bestSellers, peakHours)
	if err != nil {
		log.Printf("Error generating restock advice: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate advice"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.RestockAdviceResponse{
		ReportName:  "Restock Advisor",
		GeneratedAt: now,
		Advice:      *advice,
		BestSellers: bestSellers,
		PeakHours:   peakHours,
	}})
}

// fetchBestSellers returns the top products by units sold. A failed fetch
// degrades to an empty list; the advisor then works from the report alone.
func fetchBestSellers(ctx context.Context, db *pgxpool.Pool, ownerID string) []models.BestSeller {
	query := `
		SELECT p.name, SUM(si.quantity_sold)::int AS total_sold
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		JOIN sales s ON s.id = si.sale_id
		WHERE s.owner_id = $1
		GROUP BY p.name
		ORDER BY total_sold DESC
		LIMIT 10
	`
	rows, err := db.Query(ctx, query, ownerID)
	if err != nil {
		log.Printf("Error fetching best sellers for advice: %v", err)
		return []models.BestSeller{}
	}
	defer rows.Close()

	bestSellers := make([]models.BestSeller, 0)
	for rows.Next() {
		var seller models.BestSeller
		if err := rows.Scan(&seller.ProductName, &seller.TotalSold); err != nil {
			continue
		}
		bestSellers = append(bestSellers, seller)
	}
	return bestSellers
}

// fetchPeakHours returns the hour-of-day sales buckets, busiest first.
func fetchPeakHours(ctx context.Context, db *pgxpool.Pool, ownerID string) []models.PeakHour {
	query := `
		SELECT EXTRACT(HOUR FROM sale_date)::int AS hour, COUNT(*)::int AS total_sales
		FROM sales
		WHERE owner_id = $1
		GROUP BY hour
		ORDER BY total_sales DESC
	`
	rows, err := db.Query(ctx, query, ownerID)
	if err != nil {
		log.Printf("Error fetching peak hours for advice: %v", err)
		return []models.PeakHour{}
	}
	defer rows.Close()

	peakHours := make([]models.PeakHour, 0)
	for rows.Next() {
		var hour models.PeakHour
		if err := rows.Scan(&hour.Hour, &hour.TotalSales); err != nil {
			continue
		}
		peakHours = append(peakHours, hour)
	}
	return peakHours
}

// generateRestockAdvice sends the report segments and sales context to
// Gemini and parses the structured reply.
func generateRestockAdvice(ctx context.Context, report analytics.Report, bestSellers []models.BestSeller, peakHours []models.PeakHour) (*models.RestockAdvice, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro")

	prompt, err := constructRestockPrompt(report, bestSellers, peakHours)
	if err != nil {
		return nil, err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate advice: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI returned an empty response")
	}

	raw := fmt.Sprint(resp.Candidates[0].Content.Parts[0])
	var advice models.RestockAdvice
	if err := json.Unmarshal([]byte(extractJSON(raw)), &advice); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return &advice, nil
}

// constructRestockPrompt serializes the report segments and the sales
// context into the prompt.
func constructRestockPrompt(report analytics.Report, bestSellers []models.BestSeller, peakHours []models.PeakHour) (string, error) {
	urgent, err := json.Marshal(report.UrgentRestock)
	if err != nil {
		return "", fmt.Errorf("failed to serialize urgent list: %w", err)
	}
	dead, err := json.Marshal(report.DeadStock)
	if err != nil {
		return "", fmt.Errorf("failed to serialize dead stock list: %w", err)
	}
	sellers, err := json.Marshal(bestSellers)
	if err != nil {
		return "", fmt.Errorf("failed to serialize best sellers: %w", err)
	}
	hours, err := json.Marshal(peakHours)
	if err != nil {
		return "", fmt.Errorf("failed to serialize peak hours: %w", err)
	}

	return fmt.Sprintf(
		`You are a purchasing advisor for a small retail shop. Based on the data below, respond ONLY with a JSON object of this exact shape:
{"summary": "...", "suggestions": [{"product_name": "...", "suggested_units": 0, "reason": "..."}], "dead_stock_actions": ["..."]}

Products running out soon (runwayDays is days of stock left at the current sales velocity): %s

Products with stock but no sales: %s

All-time best sellers by units: %s

Sales count by hour of day, busiest first: %s

Total revenue in the analysis window: %.2f`,
		string(urgent), string(dead), string(sellers), string(hours), report.TotalRevenue,
	), nil
}

// extractJSON strips markdown code fences that the model sometimes wraps
// around its JSON output.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			return raw[start : end+1]
		}
	}
	return raw
}

package models

import (
	"time"

	"posbook/analytics"
)

// AdvancedReportResponse wraps the engine output with generation metadata.
type AdvancedReportResponse struct {
	GeneratedAt  time.Time        `json:"generatedAt"`
	LookbackDays int              `json:"lookbackDays"`
	Report       analytics.Report `json:"report"`
}

// RestockSuggestion is one AI-generated purchasing recommendation.
type RestockSuggestion struct {
	ProductName    string `json:"product_name"`
	SuggestedUnits int    `json:"suggested_units"`
	Reason         string `json:"reason"`
}

// RestockAdvice contains the qualitative insights from the Gemini model.
type RestockAdvice struct {
	Summary     string              `json:"summary"`
	Suggestions []RestockSuggestion `json:"suggestions"`
	DeadStock   []string            `json:"dead_stock_actions"`
}

// RestockAdviceResponse is the complete structure for the AI advice
// endpoint: the generated advice plus the sales context it was grounded on.
type RestockAdviceResponse struct {
	ReportName  string        `json:"reportName"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Advice      RestockAdvice `json:"advice"`
	BestSellers []BestSeller  `json:"bestSellers"`
	PeakHours   []PeakHour    `json:"peakHours"`
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"posbook/utils"

	"github.com/golang-jwt/jwt/v4"
)

// --- Custom JSON Type for database/sql ---

// JSONB allows storing JSON documents in a PostgreSQL jsonb column. Legacy
// sale documents keep their original field names inside this payload.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, &j)
}

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name     string `json:"name"`
	ShopName string `json:"shopName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Core Models ---

// User is a shop owner account. The app is single-owner: every business
// record below hangs off an owner_id.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShopName  *string   `json:"shop_name,omitempty"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category groups products for the catalog screens.
type Category struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is one sellable item with its current stock level.
type Product struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	CategoryID        *string   `json:"category_id,omitempty"`
	Name              string    `json:"name"`
	SKU               *string   `json:"sku,omitempty"`
	Price             float64   `json:"price"`
	CostPrice         *float64  `json:"cost_price,omitempty"`
	Stock             int       `json:"stock"`
	LowStockThreshold *int      `json:"low_stock_threshold,omitempty"`
	IsArchived        bool      `json:"is_archived"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Customer is a buyer, mostly relevant for credit sales.
type Customer struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	Phone         *string   `json:"phone,omitempty"`
	Email         *string   `json:"email,omitempty"`
	CreditBalance float64   `json:"credit_balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CustomerPayment records a payment against an outstanding credit balance.
type CustomerPayment struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	CustomerID string    `json:"customer_id"`
	Amount     float64   `json:"amount"`
	PaidAt     time.Time `json:"paid_at"`
	Notes      *string   `json:"notes,omitempty"`
}

// Sale is a single checkout transaction.
type Sale struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	CustomerID  *string    `json:"customer_id,omitempty"`
	SaleDate    time.Time  `json:"sale_date"`
	TotalAmount float64    `json:"total_amount"`
	SaleType    string     `json:"sale_type"` // "cash" or "credit"
	Notes       *string    `json:"notes,omitempty"`
	Payload     JSONB      `json:"payload,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Items       []SaleItem `json:"items,omitempty"`
}

// SaleItem is an individual line within a Sale.
type SaleItem struct {
	ID              string  `json:"id"`
	SaleID          string  `json:"sale_id"`
	ProductID       string  `json:"product_id"`
	ProductName     *string `json:"product_name,omitempty"`
	QuantitySold    float64 `json:"quantity_sold"`
	UnitPriceAtSale float64 `json:"unit_price_at_sale"`
	Subtotal        float64 `json:"subtotal"`
}

// LedgerEntry is a manual income or expense record outside the sales
// pipeline (rent, utilities, one-off earnings).
type LedgerEntry struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	EntryType   string    `json:"entry_type"` // "income" or "expense"
	Amount      float64   `json:"amount"`
	Description *string   `json:"description,omitempty"`
	EntryDate   time.Time `json:"entry_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// Subscription tracks the time-limited access of an owner account.
type Subscription struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Plan      string    `json:"plan"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsExpired reports whether the subscription has lapsed at the given instant.
func (s Subscription) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// --- API Request Structs ---

// CreateProductRequest defines the body for creating a product.
type CreateProductRequest struct {
	Name              string   `json:"name"`
	CategoryID        *string  `json:"category_id,omitempty"`
	SKU               *string  `json:"sku,omitempty"`
	Price             float64  `json:"price"`
	CostPrice         *float64 `json:"cost_price,omitempty"`
	Stock             int      `json:"stock"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty"`
}

// CheckoutItem is one cart line in a checkout request.
type CheckoutItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// CheckoutRequest defines the body for the POS checkout endpoint.
type CheckoutRequest struct {
	SaleType   string         `json:"saleType"` // "cash" or "credit"
	CustomerID *string        `json:"customerId,omitempty"`
	Notes      *string        `json:"notes,omitempty"`
	Items      []CheckoutItem `json:"items"`
}

// CreateLedgerEntryRequest defines the body for a manual income/expense.
type CreateLedgerEntryRequest struct {
	EntryType   string  `json:"entryType"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description,omitempty"`
	EntryDate   *string `json:"entryDate,omitempty"`
}

// CustomerPaymentRequest records money received against a credit balance.
type CustomerPaymentRequest struct {
	Amount float64 `json:"amount"`
	Notes  *string `json:"notes,omitempty"`
}

// ImportSalesRequest carries raw legacy sale documents for bulk ingestion.
// Each document keeps whatever field names the old app wrote.
type ImportSalesRequest struct {
	Sales []map[string]interface{} `json:"sales"`
}

// --- Dashboard ---

// KpiData represents a single Key Performance Indicator.
type KpiData struct {
	Value float64 `json:"value"`
}

// DashboardSummary is the owner dashboard rollup. Its revenue KPI folds in
// manual ledger income and customer payments on top of sales, unlike the
// analytics report which is sales-only.
type DashboardSummary struct {
	TotalRevenue         KpiData `json:"total_revenue"`
	SalesRevenue         KpiData `json:"sales_revenue"`
	ManualIncome         KpiData `json:"manual_income"`
	CustomerPayments     KpiData `json:"customer_payments"`
	TotalExpenses        KpiData `json:"total_expenses"`
	NumberOfTransactions KpiData `json:"number_of_transactions"`
	AverageOrderValue    KpiData `json:"average_order_value"`
	ProductCount         KpiData `json:"product_count"`
	LowStockCount        KpiData `json:"low_stock_count"`
}

// --- Paginated Responses ---

// PaginatedProductsResponse for the product catalog.
type PaginatedProductsResponse struct {
	Items      []Product        `json:"items"`
	Pagination utils.Pagination `json:"pagination"`
}

// PaginatedSalesResponse for sales history.
type PaginatedSalesResponse struct {
	Items      []Sale           `json:"items"`
	Pagination utils.Pagination `json:"pagination"`
}

// PaginatedCustomersResponse for the customer book.
type PaginatedCustomersResponse struct {
	Items      []Customer       `json:"items"`
	Pagination utils.Pagination `json:"pagination"`
}

// PaginatedLedgerResponse for manual income/expense entries.
type PaginatedLedgerResponse struct {
	Items      []LedgerEntry    `json:"items"`
	Pagination utils.Pagination `json:"pagination"`
}

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSaleDocumentAliases(t *testing.T) {
	doc := map[string]any{
		"id":       "s1",
		"saleType": "cash",
		"date":     "2024-02-01",
		"items": []any{
			map[string]any{"productId": "p1", "qty": float64(2), "price": float64(10)},
			map[string]any{"itemId": "p2", "quantitySold": float64(1), "subtotal": float64(30)},
			"not-a-map",
		},
	}

	s := DecodeSaleDocument(doc)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "cash", s.SaleType)
	require.Len(t, s.Items, 2)

	assert.Equal(t, "p1", s.Items[0].ProductID)
	assert.Equal(t, 2.0, s.Items[0].Qty())
	assert.Equal(t, 10.0, s.Items[0].UnitPrice())

	// Second item only carried a line total; unit price is total/qty.
	assert.Equal(t, "p2", s.Items[1].ProductID)
	assert.Equal(t, 30.0, s.Items[1].UnitPrice())
}

func TestDecodeSaleDocumentLegacyFieldNames(t *testing.T) {
	doc := map[string]any{
		"paymentType": "credit",
		"createdAt":   map[string]any{"seconds": float64(1706745600)},
		"totalAmount": float64(55),
		"saleItems": []any{
			map[string]any{"inventoryItemId": "p9", "quantity": float64(5), "unitPrice": float64(11)},
		},
	}

	s := DecodeSaleDocument(doc)
	assert.Equal(t, "credit", s.SaleType)
	assert.Equal(t, 55.0, s.Amount())
	require.Len(t, s.Items, 1)
	assert.Equal(t, "p9", s.Items[0].ProductID)
	require.NotNil(t, ParseTimestamp(s.Date))
}

func TestSaleAmountFallsBackToItemSum(t *testing.T) {
	s := RawSale{
		Items: []RawSaleItem{
			{ProductID: "a", Quantity: float64(2), Price: float64(10)},
			{ProductID: "b", Quantity: float64(1), Price: float64(5)},
		},
	}
	assert.Equal(t, 25.0, s.Amount())

	// Explicit total wins over the item sum.
	s.Total = float64(40)
	assert.Equal(t, 40.0, s.Amount())
}

func TestSaleItemDegenerateValues(t *testing.T) {
	// No price and no total: price resolves to zero.
	it := RawSaleItem{ProductID: "x", Quantity: float64(3)}
	assert.Equal(t, 0.0, it.UnitPrice())

	// Total with zero quantity cannot be divided; degrade to zero.
	it = RawSaleItem{ProductID: "x", Quantity: float64(0), Total: float64(10)}
	assert.Equal(t, 0.0, it.UnitPrice())

	// Malformed quantity degrades to zero, not an error.
	it = RawSaleItem{ProductID: "x", Quantity: "many", Price: float64(4)}
	assert.Equal(t, 0.0, it.Qty())
}

func TestDecodeProductDocument(t *testing.T) {
	p := DecodeProductDocument(map[string]any{
		"id":        "p1",
		"name":      "Flour 1kg",
		"stock":     float64(12),
		"price":     "3.5",
		"createdAt": "2024-01-01",
	})
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Flour 1kg", p.Name)
	assert.Equal(t, 12, p.Stock)
	assert.Equal(t, 3.5, p.Price)
	require.NotNil(t, ParseTimestamp(p.CreatedAt))

	// Missing everything still decodes.
	empty := DecodeProductDocument(map[string]any{})
	assert.Equal(t, 0, empty.Stock)
	assert.Nil(t, empty.CreatedAt)
}

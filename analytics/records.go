package analytics

// Field aliases seen across stored sale documents. Older app versions and
// offline imports named the same fields differently; decoding tries each
// alias in order and keeps the first value present.
var (
	saleDateKeys       = []string{"createdAt", "date", "saleDate", "timestamp"}
	saleTotalKeys      = []string{"total", "totalAmount", "amount"}
	saleItemsKeys      = []string{"items", "saleItems", "products"}
	itemProductKeys    = []string{"productId", "inventoryItemId", "itemId"}
	itemQtyKeys        = []string{"qty", "quantity", "quantitySold"}
	itemPriceKeys      = []string{"price", "unitPrice", "sellingPrice"}
	itemTotalKeys      = []string{"total", "subtotal", "lineTotal"}
	productCreatedKeys = []string{"createdAt", "created", "addedAt"}
)

// RawSale is a sale record as it came out of storage. Date and Total keep
// their stored representation; the engine normalizes them lazily so that a
// single malformed field never poisons the rest of the record.
type RawSale struct {
	ID       string
	SaleType string // "cash", "credit" or anything legacy
	Date     any
	Total    any
	Items    []RawSaleItem
}

// RawSaleItem is one line of a sale. ProductID may reference a product that
// has since been deleted.
type RawSaleItem struct {
	ProductID string
	Quantity  any
	Price     any
	Total     any
}

// RawProduct is an immutable product snapshot supplied by the caller.
type RawProduct struct {
	ID        string
	Name      string
	Stock     int
	Price     float64
	CreatedAt any
}

// Qty returns the line quantity as a number, 0 when absent or malformed.
func (it RawSaleItem) Qty() float64 {
	return ToNumber(it.Quantity)
}

// UnitPrice resolves the per-unit price, falling back to the line total
// divided by quantity when only a total was recorded.
func (it RawSaleItem) UnitPrice() float64 {
	if it.Price != nil {
		return ToNumber(it.Price)
	}
	if it.Total != nil {
		if q := it.Qty(); q > 0 {
			return ToNumber(it.Total) / q
		}
	}
	return 0
}

// Amount is the sale-level total: the recorded total when present, else the
// sum of line subtotals. Revenue accounting happens at this level, so lines
// that reference deleted products still count toward the total.
func (s RawSale) Amount() float64 {
	if s.Total != nil {
		return ToNumber(s.Total)
	}
	var sum float64
	for _, it := range s.Items {
		sum += it.UnitPrice() * it.Qty()
	}
	return sum
}

// DecodeSaleDocument maps a stored sale document onto a RawSale, resolving
// field aliases. It never fails: missing fields simply stay nil.
func DecodeSaleDocument(doc map[string]any) RawSale {
	s := RawSale{
		ID:       docString(doc, "id"),
		SaleType: docString(doc, "saleType", "paymentType"),
		Date:     pick(doc, saleDateKeys),
		Total:    pick(doc, saleTotalKeys),
	}
	items, _ := pick(doc, saleItemsKeys).([]any)
	for _, raw := range items {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		s.Items = append(s.Items, RawSaleItem{
			ProductID: docString(m, itemProductKeys...),
			Quantity:  pick(m, itemQtyKeys),
			Price:     pick(m, itemPriceKeys),
			Total:     pick(m, itemTotalKeys),
		})
	}
	return s
}

// DecodeProductDocument maps a stored product document onto a RawProduct
// with the same tolerance rules.
func DecodeProductDocument(doc map[string]any) RawProduct {
	return RawProduct{
		ID:        docString(doc, "id"),
		Name:      docString(doc, "name"),
		Stock:     int(ToNumber(pick(doc, []string{"stock", "quantity"}))),
		Price:     ToNumber(pick(doc, []string{"price", "sellingPrice"})),
		CreatedAt: pick(doc, productCreatedKeys),
	}
}

func pick(doc map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := doc[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func docString(doc map[string]any, keys ...string) string {
	s, _ := pick(doc, keys).(string)
	return s
}

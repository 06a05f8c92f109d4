package models

// BestSeller is a top product by units sold over the whole sales history.
// Fed to the restock advisor as grounding context alongside the report
// segments, and echoed back in the response.
type BestSeller struct {
	ProductName string `json:"product_name"`
	TotalSold   int    `json:"total_sold"`
}

// PeakHour is an hour-of-day sales bucket, busiest first.
type PeakHour struct {
	Hour       int `json:"hour"`
	TotalSales int `json:"total_sales"`
}

package models

// SalesReport: backend'in /sale/sales-report/ cevabı. Hesaplamalar
// backend'de yapılır, gateway sadece aktarır ve Excel'e döker.
type SalesReport struct {
	TotalSales          int                  `json:"total_sales"`
	TotalRevenue        float64              `json:"total_revenue"`
	SalesStatusCounts   []SaleStatusCount    `json:"sales_status_counts"`
	SalesTrends         []SalesTrendPoint    `json:"sales_trends"`
	BestSellingProducts []ProductSalesSummary `json:"best_selling_products"`
}

type SaleStatusCount struct {
	Status SaleStatus `json:"status"`
	Count  int        `json:"count"`
}

type SalesTrendPoint struct {
	Date    string  `json:"date"` // "2025-12-09"
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type ProductSalesSummary struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

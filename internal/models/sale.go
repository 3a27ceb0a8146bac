package models

import "time"

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
	SaleStatusSettled   SaleStatus = "settled" // tamamen ödendi, fatura kesilebilir
)

// ValidSaleStatus: PATCH ile gönderilebilecek durumlar
func ValidSaleStatus(s SaleStatus) bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled, SaleStatusSettled:
		return true
	}
	return false
}

// Sale: backend'in sahip olduğu satış kaydı. Gateway sadece geçici
// kopyasını tutar, kalıcı hali her zaman backend'dedir.
type Sale struct {
	ID           uint       `json:"id"`
	CustomerName string     `json:"customer_name"`
	TableNumber  int        `json:"table_number"`
	Status       SaleStatus `json:"status"`
	TotalAmount  float64    `json:"total_amount"`
	Items        []SaleItem `json:"items"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

type SaleItem struct {
	Product     uint    `json:"product"` // ürün ID referansı
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"`
}

package models

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Category    uint    `json:"category"` // kategori ID referansı
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description,omitempty"`
}

type StockMovementType string

const (
	StockMovementAdd    StockMovementType = "add"
	StockMovementRemove StockMovementType = "remove"
)

type StockMovement struct {
	ID           uint              `json:"id,omitempty"`
	Product      uint              `json:"product"`
	MovementType StockMovementType `json:"movement_type"`
	Quantity     int               `json:"quantity"`
}

package models

import "time"

type TableStatus string

const (
	TableStatusFree     TableStatus = "free"
	TableStatusOccupied TableStatus = "occupied"
	TableStatusReserved TableStatus = "reserved"
)

func ValidTableStatus(s TableStatus) bool {
	switch s {
	case TableStatusFree, TableStatusOccupied, TableStatusReserved:
		return true
	}
	return false
}

type Table struct {
	ID          uint        `json:"id"`
	TableNumber int         `json:"table_number"`
	Capacity    int         `json:"capacity"`
	Status      TableStatus `json:"status"`
}

type Reservation struct {
	ID              uint      `json:"id"`
	Table           uint      `json:"table"` // masa ID referansı
	CustomerName    string    `json:"customer_name"`
	ReservationTime time.Time `json:"reservation_time"`
}

package models

import "time"

// SecurityLog: backend'in güvenlik olay kaydı (login denemeleri,
// yetki ihlalleri vs.). Gateway filtreleyip listeler.
type SecurityLog struct {
	ID        uint      `json:"id"`
	EventType string    `json:"event_type"`
	Username  string    `json:"username"`
	IPAddress string    `json:"ip_address"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

package models

import "time"

type AuditAction string

const (
	AuditActionLogin   AuditAction = "login"
	AuditActionLogout  AuditAction = "logout"
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionPayment AuditAction = "payment"
	AuditActionInvoice AuditAction = "invoice"
	AuditActionReset   AuditAction = "reset"
)

// AuditLog: gateway üzerinden yapılan personel işlemlerinin yerel
// kaydı. Asıl veriler backend'de; bu tablo sadece kimin hangi ekrandan
// ne yaptığını tutar.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserName string `gorm:"size:100" json:"user_name"`

	// Hangi entity? (ör: "sale", "bill_split", "table", "session")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action AuditAction `gorm:"size:20" json:"action"`

	// Kısa özet
	Description string `gorm:"size:255" json:"description"`
}

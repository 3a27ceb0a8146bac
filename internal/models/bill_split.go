package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodMobile PaymentMethod = "mobile"
	PaymentMethodUSD    PaymentMethod = "usd" // döviz
	PaymentMethodEUR    PaymentMethod = "eur" // döviz
	PaymentMethodBS     PaymentMethod = "bs"  // döviz (bolívar)
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile,
		PaymentMethodUSD, PaymentMethodEUR, PaymentMethodBS:
		return true
	}
	return false
}

// ForeignCurrency: bu yöntemlerde exchange_rate zorunlu
func ForeignCurrency(m PaymentMethod) bool {
	return m == PaymentMethodUSD || m == PaymentMethodEUR || m == PaymentMethodBS
}

// BillSplit: bir satışa uygulanan kısmi ödeme. Append-only, gateway
// tarafında asla silinmez veya değiştirilmez.
type BillSplit struct {
	ID            uint          `json:"id"`
	Sale          uint          `json:"sale"`
	CustomerName  string        `json:"customer_name"`
	AmountPaid    float64       `json:"amount_paid"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	ExchangeRate  *float64      `json:"exchange_rate"` // döviz ödemelerinde zorunlu
	CreatedAt     *time.Time    `json:"created_at,omitempty"`
}

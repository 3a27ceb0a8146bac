package models

import "encoding/json"

// Invoice: backend tarafından üretilir. Fatura numarası, kontrol kodu
// ve vergi hesabı tamamen backend'in sorumluluğunda; gateway sadece
// gösterir.
type Invoice struct {
	ID            uint            `json:"id,omitempty"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   float64         `json:"total_amount"`
	PDFFile       string          `json:"pdf_file"`     // indirilebilir PDF URL'i
	ControlCode   string          `json:"control_code"` // mali kontrol kodu
	TaxDetails    json.RawMessage `json:"tax_details,omitempty"`
}

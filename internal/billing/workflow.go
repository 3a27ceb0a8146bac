package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"
)

// WorkflowState: satış görünümünün durumu. settled'dan geri dönüş yok.
type WorkflowState string

const (
	StateAwaitingPayment WorkflowState = "awaiting_payment" // bakiye > 0
	StateSettled         WorkflowState = "settled"          // bakiye <= 0, fatura istenecek
	StateInvoiceReady    WorkflowState = "invoice_ready"    // fatura backend'den alındı
)

// ValidationError: ağa çıkmadan yakalanan giriş hatası
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

type PaymentRequest struct {
	CustomerName  string               `json:"customer_name"`
	AmountPaid    float64              `json:"amount_paid"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	ExchangeRate  *float64             `json:"exchange_rate"`
}

// Validate: müşteri adı boş, tutar <= 0 veya dövizde kur eksikse
// istek backend'e HİÇ gitmez.
func (r *PaymentRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return &ValidationError{Msg: "Müşteri adı zorunlu"}
	}
	if r.AmountPaid <= 0 {
		return &ValidationError{Msg: "Ödeme tutarı 0'dan büyük olmalı"}
	}
	if !models.ValidPaymentMethod(r.PaymentMethod) {
		return &ValidationError{Msg: "Geçersiz ödeme yöntemi"}
	}
	if models.ForeignCurrency(r.PaymentMethod) && (r.ExchangeRate == nil || *r.ExchangeRate <= 0) {
		return &ValidationError{Msg: "Döviz ödemelerinde kur zorunlu"}
	}
	return nil
}

type PaymentResult struct {
	Sale             *models.Sale       `json:"sale"`
	Payments         []models.BillSplit `json:"payments"`
	TotalPaid        float64            `json:"total_paid"`
	RemainingBalance float64            `json:"remaining_balance"`
	State            WorkflowState      `json:"state"`
	Invoice          *models.Invoice    `json:"invoice,omitempty"`
}

// Workflow: bir satışın bakiyesini izler, kısmi ödemeleri toplar ve
// bakiye sıfıra indiğinde faturayı TEK SEFER ister. Vergi, fatura
// numarası ve kontrol kodu backend'in işidir.
type Workflow struct {
	client *backend.Client

	mu       sync.Mutex
	invoiced map[uint]*models.Invoice // saleID -> alınan fatura (tek sefer guard'ı)
	pending  map[uint]bool            // fatura isteği uçuşta olan satışlar
}

func NewWorkflow(client *backend.Client) *Workflow {
	return &Workflow{
		client:   client,
		invoiced: make(map[uint]*models.Invoice),
		pending:  make(map[uint]bool),
	}
}

// LoadSale: satışı getirir. Bulunamazsa 404 APIError olarak döner,
// otomatik tekrar yapılmaz.
func (w *Workflow) LoadSale(ctx context.Context, saleID uint) (*models.Sale, error) {
	var sale models.Sale
	if err := w.client.Get(ctx, fmt.Sprintf("/sale/sales/%d/", saleID), &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// LoadPayments: mevcut ödeme kayıtları. LoadSale'den bağımsızdır,
// biri başarısızken diğeri başarılı olabilir.
func (w *Workflow) LoadPayments(ctx context.Context, saleID uint) ([]models.BillSplit, error) {
	var splits []models.BillSplit
	if err := w.client.Get(ctx, fmt.Sprintf("/table/sales/%d/bill-splits/", saleID), &splits); err != nil {
		return nil, err
	}
	return splits, nil
}

func totalPaid(splits []models.BillSplit) float64 {
	var sum float64
	for _, s := range splits {
		sum += s.AmountPaid
	}
	return sum
}

// Remaining: total_amount eksi ödenen toplam
func Remaining(sale *models.Sale, splits []models.BillSplit) float64 {
	return sale.TotalAmount - totalPaid(splits)
}

// SubmitPayment: önce doğrulama ve overpay kontrolü, sonra backend'e
// gönderim, ödeme listesi tazelenip bakiye yeniden hesaplanır; bakiye
// <= 0 ise fatura istenir. Overpay'de son söz backend'indir, buradaki kontrol
// sadece bariz hataları ağa çıkmadan keser.
func (w *Workflow) SubmitPayment(ctx context.Context, saleID uint, req *PaymentRequest) (*PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sale, err := w.LoadSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	splits, err := w.LoadPayments(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if remaining := Remaining(sale, splits); req.AmountPaid > remaining {
		return nil, &ValidationError{
			Msg: fmt.Sprintf("Ödeme kalan bakiyeyi aşıyor (kalan: %.2f)", remaining),
		}
	}

	payload := map[string]any{
		"customer_name":  strings.TrimSpace(req.CustomerName),
		"amount_paid":    req.AmountPaid,
		"payment_method": req.PaymentMethod,
		"exchange_rate":  req.ExchangeRate,
	}
	if err := w.client.Post(ctx, fmt.Sprintf("/table/sales/%d/split-bill/", saleID), payload, nil); err != nil {
		return nil, err
	}

	// Başarılı gönderimden sonra liste backend'den yeniden çekilir
	splits, err = w.LoadPayments(ctx, saleID)
	if err != nil {
		return nil, err
	}

	result := &PaymentResult{
		Sale:             sale,
		Payments:         splits,
		TotalPaid:        totalPaid(splits),
		RemainingBalance: Remaining(sale, splits),
	}

	if result.RemainingBalance > 0 {
		result.State = StateAwaitingPayment
		return result, nil
	}

	result.State = StateSettled
	invoice, err := w.requestInvoiceOnce(ctx, sale)
	if err != nil {
		// Ödeme kaydedildi ama fatura alınamadı; durumu kaybetmeden
		// hatayı yüzeye çıkar, kullanıcı fatura ekranından tekrar dener
		return result, err
	}
	result.Invoice = invoice
	result.State = StateInvoiceReady

	return result, nil
}

// Status: satış görünümü için birleşik durum. Ödeme listesi
// çekilemezse satış yine döner (kısmi hata toleransı).
type StatusView struct {
	Sale             *models.Sale       `json:"sale"`
	Payments         []models.BillSplit `json:"payments"`
	PaymentsError    string             `json:"payments_error,omitempty"`
	TotalPaid        float64            `json:"total_paid"`
	RemainingBalance float64            `json:"remaining_balance"`
	State            WorkflowState      `json:"state"`
	Invoice          *models.Invoice    `json:"invoice,omitempty"`
}

func (w *Workflow) Status(ctx context.Context, saleID uint) (*StatusView, error) {
	sale, err := w.LoadSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	view := &StatusView{Sale: sale}

	w.mu.Lock()
	invoice := w.invoiced[saleID]
	w.mu.Unlock()

	splits, perr := w.LoadPayments(ctx, saleID)
	if perr != nil {
		// Faturası kesilmiş satış, ödeme listesi çekilemese bile
		// awaiting_payment'a geri düşmez
		view.PaymentsError = "Ödeme geçmişi alınamadı"
		if invoice != nil {
			view.State = StateInvoiceReady
			view.Invoice = invoice
			view.TotalPaid = sale.TotalAmount
			return view, nil
		}
		view.State = StateAwaitingPayment
		view.RemainingBalance = sale.TotalAmount
		return view, nil
	}

	view.Payments = splits
	view.TotalPaid = totalPaid(splits)
	view.RemainingBalance = Remaining(sale, splits)

	switch {
	case invoice != nil:
		view.State = StateInvoiceReady
		view.Invoice = invoice
	case view.RemainingBalance > 0:
		view.State = StateAwaitingPayment
	default:
		view.State = StateSettled
	}

	return view, nil
}

// requestInvoiceOnce: aynı satış için fatura üretimi en fazla bir kez
// istenir. Paralel çağrılarda ikinci çağrı eldeki faturayı alır ya da
// isteğin uçuşta olduğunu öğrenir.
func (w *Workflow) requestInvoiceOnce(ctx context.Context, sale *models.Sale) (*models.Invoice, error) {
	w.mu.Lock()
	if inv, ok := w.invoiced[sale.ID]; ok {
		w.mu.Unlock()
		return inv, nil
	}
	if w.pending[sale.ID] {
		w.mu.Unlock()
		return nil, errors.New("fatura isteği zaten işlemde")
	}
	w.pending[sale.ID] = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.pending, sale.ID)
		w.mu.Unlock()
	}()

	tableID, err := w.resolveTableID(ctx, sale.TableNumber)
	if err != nil {
		return nil, err
	}

	var invoice models.Invoice
	if err := w.client.Get(ctx, fmt.Sprintf("/table/tables/%d/generate-invoice/", tableID), &invoice); err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.invoiced[sale.ID] = &invoice
	w.mu.Unlock()

	return &invoice, nil
}

// resolveTableID: satıştaki masa NUMARASINI backend'deki masa
// kimliğine çevirir; fatura ucu kimlik ister.
func (w *Workflow) resolveTableID(ctx context.Context, tableNumber int) (uint, error) {
	var tables []models.Table
	if err := w.client.Get(ctx, "/table/tables/", &tables); err != nil {
		return 0, err
	}
	for _, t := range tables {
		if t.TableNumber == tableNumber {
			return t.ID, nil
		}
	}
	return 0, fmt.Errorf("masa %d backend'de bulunamadı", tableNumber)
}

package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"
	"github.com/Dominion-AI/suitsadmin/internal/session"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T, handler http.Handler) (*backend.Client, *httptest.Server) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := session.NewStore(db)
	if _, err := store.Create("test-access", "test-refresh", "garson"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, store), srv
}

// fakeSaleBackend: 100 TL'lik tek satış, ödemeler bellekte birikir
type fakeSaleBackend struct {
	sale         models.Sale
	splits       []models.BillSplit
	invoiceCalls int32
	requests     int32
}

func newFakeSaleBackend() *fakeSaleBackend {
	return &fakeSaleBackend{
		sale: models.Sale{
			ID:          1,
			TableNumber: 7,
			Status:      models.SaleStatusCompleted,
			TotalAmount: 100,
		},
	}
}

func (f *fakeSaleBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.requests, 1)

	switch {
	case r.URL.Path == "/sale/sales/1/" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(f.sale)
	case r.URL.Path == "/table/sales/1/bill-splits/" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(f.splits)
	case r.URL.Path == "/table/sales/1/split-bill/" && r.Method == http.MethodPost:
		var body struct {
			CustomerName  string  `json:"customer_name"`
			AmountPaid    float64 `json:"amount_paid"`
			PaymentMethod string  `json:"payment_method"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.splits = append(f.splits, models.BillSplit{
			ID:            uint(len(f.splits) + 1),
			CustomerName:  body.CustomerName,
			AmountPaid:    body.AmountPaid,
			PaymentMethod: models.PaymentMethod(body.PaymentMethod),
		})
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	case r.URL.Path == "/table/tables/" && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode([]models.Table{
			{ID: 42, TableNumber: 7, Status: models.TableStatusOccupied},
		})
	case r.URL.Path == "/table/tables/42/generate-invoice/" && r.Method == http.MethodGet:
		atomic.AddInt32(&f.invoiceCalls, 1)
		json.NewEncoder(w).Encode(models.Invoice{
			ID:            5,
			InvoiceNumber: "INV-0005",
			TotalAmount:   100,
			ControlCode:   "CTRL",
		})
	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": fmt.Sprintf("yol yok: %s", r.URL.Path)})
	}
}

func TestSubmitPaymentPartialThenSettle(t *testing.T) {
	fake := newFakeSaleBackend()
	client, _ := newTestClient(t, fake)
	w := NewWorkflow(client)
	ctx := context.Background()

	// 100 TL'nin 60'ı ödendi, bakiye 40 kalmalı
	res, err := w.SubmitPayment(ctx, 1, &PaymentRequest{
		CustomerName:  "Ali",
		AmountPaid:    60,
		PaymentMethod: models.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if res.State != StateAwaitingPayment {
		t.Fatalf("expected awaiting_payment, got %s", res.State)
	}
	if res.RemainingBalance != 40 {
		t.Fatalf("expected remaining 40, got %.2f", res.RemainingBalance)
	}
	if res.Invoice != nil {
		t.Fatal("invoice must not be generated while balance remains")
	}

	// Kalan 40 ödendi, fatura tek sefer istenmeli
	res, err = w.SubmitPayment(ctx, 1, &PaymentRequest{
		CustomerName:  "Veli",
		AmountPaid:    40,
		PaymentMethod: models.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if res.State != StateInvoiceReady {
		t.Fatalf("expected invoice_ready, got %s", res.State)
	}
	if res.Invoice == nil || res.Invoice.InvoiceNumber != "INV-0005" {
		t.Fatalf("expected invoice INV-0005, got %+v", res.Invoice)
	}
	if n := atomic.LoadInt32(&fake.invoiceCalls); n != 1 {
		t.Fatalf("expected exactly 1 invoice request, got %d", n)
	}

	// Durum görünümü faturayı hatırlamalı, yeni istek atılmamalı
	view, err := w.Status(ctx, 1)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if view.State != StateInvoiceReady || view.Invoice == nil {
		t.Fatalf("expected invoice_ready view, got %+v", view)
	}
	if n := atomic.LoadInt32(&fake.invoiceCalls); n != 1 {
		t.Fatalf("invoice requested again, got %d calls", n)
	}
}

func TestSubmitPaymentValidationSkipsNetwork(t *testing.T) {
	fake := newFakeSaleBackend()
	client, _ := newTestClient(t, fake)
	w := NewWorkflow(client)
	ctx := context.Background()

	cases := []PaymentRequest{
		{CustomerName: "", AmountPaid: 10, PaymentMethod: models.PaymentMethodCash},
		{CustomerName: "Ali", AmountPaid: 0, PaymentMethod: models.PaymentMethodCash},
		{CustomerName: "Ali", AmountPaid: 10, PaymentMethod: "bitcoin"},
		{CustomerName: "Ali", AmountPaid: 10, PaymentMethod: models.PaymentMethodUSD}, // kur eksik
	}

	for i := range cases {
		_, err := w.SubmitPayment(ctx, 1, &cases[i])
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d: expected ValidationError, got %v", i, err)
		}
	}

	if n := atomic.LoadInt32(&fake.requests); n != 0 {
		t.Fatalf("validation failures must not reach the backend, saw %d requests", n)
	}
}

func TestSubmitPaymentRejectsOverpay(t *testing.T) {
	fake := newFakeSaleBackend()
	fake.splits = []models.BillSplit{
		{ID: 1, CustomerName: "Ali", AmountPaid: 70, PaymentMethod: models.PaymentMethodCash},
	}
	client, _ := newTestClient(t, fake)
	w := NewWorkflow(client)

	_, err := w.SubmitPayment(context.Background(), 1, &PaymentRequest{
		CustomerName:  "Veli",
		AmountPaid:    50,
		PaymentMethod: models.PaymentMethodCash,
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected overpay ValidationError, got %v", err)
	}
	if len(fake.splits) != 1 {
		t.Fatalf("overpay must not create a payment, got %d splits", len(fake.splits))
	}
}

func TestSubmitPaymentForeignCurrencyWithRate(t *testing.T) {
	fake := newFakeSaleBackend()
	client, _ := newTestClient(t, fake)
	w := NewWorkflow(client)

	rate := 41.5
	res, err := w.SubmitPayment(context.Background(), 1, &PaymentRequest{
		CustomerName:  "Ali",
		AmountPaid:    30,
		PaymentMethod: models.PaymentMethodUSD,
		ExchangeRate:  &rate,
	})
	if err != nil {
		t.Fatalf("usd payment with rate: %v", err)
	}
	if res.RemainingBalance != 70 {
		t.Fatalf("expected remaining 70, got %.2f", res.RemainingBalance)
	}
}

func TestStatusKeepsInvoiceWhenPaymentsUnavailable(t *testing.T) {
	fake := newFakeSaleBackend()
	var paymentsDown atomic.Bool
	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/table/sales/1/bill-splits/" && paymentsDown.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "ödeme servisi kapalı"})
			return
		}
		fake.ServeHTTP(w, r)
	})
	client, _ := newTestClient(t, wrapped)
	w := NewWorkflow(client)
	ctx := context.Background()

	res, err := w.SubmitPayment(ctx, 1, &PaymentRequest{
		CustomerName:  "Ali",
		AmountPaid:    100,
		PaymentMethod: models.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if res.State != StateInvoiceReady {
		t.Fatalf("expected invoice_ready, got %s", res.State)
	}

	// Ödeme listesi düşse de faturalı satış awaiting_payment'a dönmez
	paymentsDown.Store(true)
	view, err := w.Status(ctx, 1)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if view.State != StateInvoiceReady || view.Invoice == nil {
		t.Fatalf("settled sale regressed in degraded view: %+v", view)
	}
	if view.PaymentsError == "" {
		t.Fatal("expected the degraded view to carry a payments error")
	}
}

func TestSubmitPaymentInvoiceFailureKeepsPayment(t *testing.T) {
	fake := newFakeSaleBackend()
	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/table/tables/42/generate-invoice/" {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "fatura servisi kapalı"})
			return
		}
		fake.ServeHTTP(w, r)
	})
	client, _ := newTestClient(t, wrapped)
	w := NewWorkflow(client)

	res, err := w.SubmitPayment(context.Background(), 1, &PaymentRequest{
		CustomerName:  "Ali",
		AmountPaid:    100,
		PaymentMethod: models.PaymentMethodCash,
	})
	if err == nil {
		t.Fatal("expected invoice error to surface")
	}
	// Ödeme kaydedildi, sonuç kaybolmamalı
	if res == nil || res.State != StateSettled {
		t.Fatalf("expected settled result despite invoice failure, got %+v", res)
	}
	if len(fake.splits) != 1 {
		t.Fatalf("payment must persist, got %d splits", len(fake.splits))
	}
}

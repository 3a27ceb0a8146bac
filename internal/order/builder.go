package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RoutedTo string

const (
	RoutedToKitchen RoutedTo = "kitchen"
	RoutedToBar     RoutedTo = "bar"
)

var (
	ErrCartNotFound = errors.New("sepet bulunamadı")
	ErrEmptyCart    = errors.New("sepette ürün yok")
	ErrBadIndex     = errors.New("geçersiz satır numarası")
	ErrBadQuantity  = errors.New("adet en az 1 olmalı")
)

type CartItem struct {
	Product  uint     `json:"product"`
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
	Subtotal float64  `json:"subtotal"`
	RoutedTo RoutedTo `json:"routed_to"` // ürün kategorisinden türetilir
}

// Cart: bir masa/müşteri çifti için gönderilmemiş sipariş kalemleri.
// Toplam tutar saklanmaz, her okumada yeniden hesaplanır.
type Cart struct {
	TableNumber  int        `json:"table_number"`
	CustomerName string     `json:"customer_name"`
	Items        []CartItem `json:"items"`
}

func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Subtotal
	}
	return total
}

// Builder: açık sepetleri masa+müşteri anahtarıyla tutar. Ürün ve
// kategori bilgisi her işlemde backend'den çekilir; gateway kalıcı
// kopya tutmaz.
type Builder struct {
	mu     sync.Mutex
	carts  map[string]*Cart
	client *backend.Client
}

func NewBuilder(client *backend.Client) *Builder {
	return &Builder{
		carts:  make(map[string]*Cart),
		client: client,
	}
}

func cartKey(tableNumber int, customerName string) string {
	return fmt.Sprintf("%d|%s", tableNumber, strings.TrimSpace(customerName))
}

// menu: backend'den kategori + ürün listesini çekip mutfak/bar
// kategorilerini çözer. Food mutfağa, Bar bara gider.
type menu struct {
	products  []models.Product
	kitchenID uint
	barID     uint
}

func (b *Builder) loadMenu(ctx context.Context) (*menu, error) {
	var categories []models.Category
	if err := b.client.Get(ctx, "/inventory/categories/", &categories); err != nil {
		return nil, err
	}

	m := &menu{}
	for _, cat := range categories {
		switch strings.ToLower(cat.Name) {
		case "food":
			m.kitchenID = cat.ID
		case "bar":
			m.barID = cat.ID
		}
	}
	if m.kitchenID == 0 || m.barID == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Mutfak (Food) veya Bar kategorisi bulunamadı")
	}

	if err := b.client.Get(ctx, "/inventory/products/", &m.products); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *menu) find(productID uint) (*models.Product, RoutedTo, bool) {
	for i := range m.products {
		p := &m.products[i]
		if p.ID != productID {
			continue
		}
		switch p.Category {
		case m.kitchenID:
			return p, RoutedToKitchen, true
		case m.barID:
			return p, RoutedToBar, true
		}
		// Ürün mutfak/bar dışı bir kategoride, siparişe eklenemez
		return nil, "", false
	}
	return nil, "", false
}

// AddItem: sepete satır ekler. Ürün, masa veya müşteri eksikse ya da
// adet geçersizse sepet DEĞİŞMEDEN hata döner.
func (b *Builder) AddItem(ctx context.Context, tableNumber int, customerName string, productID uint, quantity int) (*Cart, error) {
	customerName = strings.TrimSpace(customerName)
	if productID == 0 || tableNumber <= 0 || customerName == "" || quantity <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Lütfen tüm alanları doğru doldurun")
	}

	m, err := b.loadMenu(ctx)
	if err != nil {
		return nil, err
	}

	product, routedTo, ok := m.find(productID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Ürün mutfak/bar menüsünde bulunamadı")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := cartKey(tableNumber, customerName)
	cart, exists := b.carts[key]
	if !exists {
		cart = &Cart{TableNumber: tableNumber, CustomerName: customerName}
		b.carts[key] = cart
	}

	cart.Items = append(cart.Items, CartItem{
		Product:  product.ID,
		Name:     product.Name,
		Quantity: quantity,
		Price:    product.Price,
		Subtotal: product.Price * float64(quantity),
		RoutedTo: routedTo,
	})

	return cart.snapshot(), nil
}

// UpdateQuantity: adet < 1 ise işlem yapılmaz
func (b *Builder) UpdateQuantity(tableNumber int, customerName string, index, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrBadQuantity
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	cart, ok := b.carts[cartKey(tableNumber, customerName)]
	if !ok {
		return nil, ErrCartNotFound
	}
	if index < 0 || index >= len(cart.Items) {
		return nil, ErrBadIndex
	}

	cart.Items[index].Quantity = quantity
	cart.Items[index].Subtotal = cart.Items[index].Price * float64(quantity)

	return cart.snapshot(), nil
}

func (b *Builder) RemoveItem(tableNumber int, customerName string, index int) (*Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cart, ok := b.carts[cartKey(tableNumber, customerName)]
	if !ok {
		return nil, ErrCartNotFound
	}
	if index < 0 || index >= len(cart.Items) {
		return nil, ErrBadIndex
	}

	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)

	return cart.snapshot(), nil
}

func (b *Builder) Cart(tableNumber int, customerName string) (*Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cart, ok := b.carts[cartKey(tableNumber, customerName)]
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart.snapshot(), nil
}

// CompleteOrder: sepeti tek bir Sale olarak backend'e gönderir ve
// satışı faturalanabilir duruma (completed) çeker. Herhangi bir adım
// başarısız olursa sepet olduğu gibi kalır, kullanıcı tekrar dener.
func (b *Builder) CompleteOrder(ctx context.Context, tableNumber int, customerName string) (*models.Sale, error) {
	b.mu.Lock()
	key := cartKey(tableNumber, customerName)
	cart, ok := b.carts[key]
	if !ok || len(cart.Items) == 0 {
		b.mu.Unlock()
		if !ok {
			return nil, ErrCartNotFound
		}
		return nil, ErrEmptyCart
	}

	items := make([]models.SaleItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, models.SaleItem{
			Product:     it.Product,
			Quantity:    it.Quantity,
			PriceAtSale: it.Price,
		})
	}
	b.mu.Unlock()

	saleReq := map[string]any{
		"table_number":  tableNumber,
		"customer_name": customerName,
		"items":         items,
	}

	var created models.Sale
	if err := b.client.Post(ctx, "/sale/sales/", saleReq, &created); err != nil {
		return nil, err
	}

	var updated models.Sale
	path := fmt.Sprintf("/sale/sales/%d/", created.ID)
	if err := b.client.Patch(ctx, path, map[string]any{"status": models.SaleStatusCompleted}, &updated); err != nil {
		return nil, err
	}

	b.mu.Lock()
	delete(b.carts, key)
	b.mu.Unlock()

	return &updated, nil
}

// snapshot: kilidin dışına çıkacak kopya
func (c *Cart) snapshot() *Cart {
	cp := &Cart{
		TableNumber:  c.TableNumber,
		CustomerName: c.CustomerName,
		Items:        make([]CartItem, len(c.Items)),
	}
	copy(cp.Items, c.Items)
	return cp
}

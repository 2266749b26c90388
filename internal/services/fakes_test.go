// internal/services/fakes_test.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/repository"
)

// fakeProductRepo is an in-memory ProductRepository whose decrement mirrors
// the conditional UPDATE the real implementation issues: unlimited inventory
// matches without changing, insufficient finite stock does not apply.
type fakeProductRepo struct {
	mtx      sync.Mutex
	products map[uuid.UUID]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]models.Product, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var active []models.Product
	for _, p := range r.products {
		if p.IsActive {
			active = append(active, *p)
		}
	}
	return active, nil
}

func (r *fakeProductRepo) DecrementInventory(_ context.Context, id uuid.UUID, quantity int) (bool, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	product, ok := r.products[id]
	if !ok {
		return false, nil
	}
	if product.Inventory == models.InventoryUnlimited {
		return true, nil
	}
	if product.Inventory < quantity {
		return false, nil
	}
	product.Inventory -= quantity
	return true, nil
}

func (r *fakeProductRepo) inventory(id uuid.UUID) int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.products[id].Inventory
}

// fakeOrderRepo keys orders by payment session id, the same uniqueness the
// real table enforces.
type fakeOrderRepo struct {
	mtx    sync.Mutex
	orders map[string]*models.Order
	failAt error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (r *fakeOrderRepo) CreateIfAbsent(_ context.Context, order *models.Order) (bool, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.failAt != nil {
		return false, r.failAt
	}
	if _, exists := r.orders[order.PaymentSessionID]; exists {
		return false, nil
	}
	order.ID = uuid.New()
	copied := *order
	r.orders[order.PaymentSessionID] = &copied
	return true, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, order := range r.orders {
		if order.ID == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeOrderRepo) GetByPaymentSessionID(_ context.Context, sessionID string) (*models.Order, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	order, ok := r.orders[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) List(_ context.Context, status *models.OrderStatus, _, _ int) ([]models.Order, int64, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var orders []models.Order
	for _, order := range r.orders {
		if status != nil && order.Status != *status {
			continue
		}
		orders = append(orders, *order)
	}
	return orders, int64(len(orders)), nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *models.Order) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	copied := *order
	r.orders[order.PaymentSessionID] = &copied
	return nil
}

func (r *fakeOrderRepo) MarkDigitalDelivered(_ context.Context, id uuid.UUID) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, order := range r.orders {
		if order.ID == id {
			order.DigitalDelivered = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeOrderRepo) count() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.orders)
}

func (r *fakeOrderRepo) bySession(sessionID string) *models.Order {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.orders[sessionID]
}

// fakeCartRepo stores cart records in memory.
type fakeCartRepo struct {
	mtx   sync.Mutex
	carts map[string]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*models.Cart)}
}

func (r *fakeCartRepo) Get(_ context.Context, token string) (*models.Cart, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	cart, ok := r.carts[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *cart
	return &copied, nil
}

func (r *fakeCartRepo) Save(_ context.Context, cart *models.Cart) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	copied := *cart
	r.carts[cart.Token] = &copied
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, token string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	delete(r.carts, token)
	return nil
}

// fakeSubscriberRepo serves a fixed recipient list.
type fakeSubscriberRepo struct {
	subscribers []models.Subscriber
	err         error
}

func (r *fakeSubscriberRepo) ListActive(context.Context) ([]models.Subscriber, error) {
	return r.subscribers, r.err
}

// fakeSessionCreator captures the params it was called with.
type fakeSessionCreator struct {
	lastParams *SessionParams
	result     *SessionResult
	err        error
}

func (f *fakeSessionCreator) CreateSession(_ context.Context, params *SessionParams) (*SessionResult, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &SessionResult{ID: "cs_test_1", URL: "https://pay.example.com/cs_test_1"}, nil
}

// fakeNotifier records dispatches and can be told to fail.
type fakeNotifier struct {
	mtx            sync.Mutex
	confirmations  []*models.Order
	deliveries     []*models.Order
	deliveryLinks  [][]DownloadLink
	confirmErr     error
	deliveryErr    error
}

func (n *fakeNotifier) SendOrderConfirmation(order *models.Order) error {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	n.confirmations = append(n.confirmations, order)
	return n.confirmErr
}

func (n *fakeNotifier) SendDigitalDelivery(order *models.Order, links []DownloadLink) error {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	n.deliveries = append(n.deliveries, order)
	n.deliveryLinks = append(n.deliveryLinks, links)
	return n.deliveryErr
}

// fakePresigner returns deterministic URLs.
type fakePresigner struct {
	err error
}

func (p *fakePresigner) PresignDownload(key string, _ time.Duration) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "https://cdn.example.com/" + key + "?signed", nil
}

// fakeEmailSender and fakeSMSSender count blast dispatches.
type fakeEmailSender struct {
	sent    []string
	failFor map[string]bool
}

func (s *fakeEmailSender) SendEmail(to, _, _ string) error {
	if s.failFor[to] {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

type fakeSMSSender struct {
	sent    []string
	failFor map[string]bool
}

func (s *fakeSMSSender) SendSMS(to, _ string) error {
	if s.failFor[to] {
		return errors.New("gateway unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

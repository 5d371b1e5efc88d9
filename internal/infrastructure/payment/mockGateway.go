package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/domain"
)

var ErrMockDeclined = errors.New("mock gateway declined payment")

// MockGateway is an in-memory Gateway for tests. It remembers
// every order it was asked to charge.
type MockGateway struct {
	mu      sync.RWMutex
	baseURL string
	orders  map[string]domain.Order
	fail    error
}

func NewMockGateway(baseURL string) *MockGateway {
	return &MockGateway{
		baseURL: baseURL,
		orders:  make(map[string]domain.Order),
	}
}

// FailWith makes every following CreatePayment return err. Pass nil to reset.
func (g *MockGateway) FailWith(err error) {
	g.mu.Lock()
	g.fail = err
	g.mu.Unlock()
}

func (g *MockGateway) CreatePayment(_ context.Context, order *domain.Order) (*PaymentLink, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fail != nil {
		return nil, g.fail
	}
	g.orders[order.ID] = *order
	return &PaymentLink{
		URL:               fmt.Sprintf("%s?o=%s&oa=%s", g.baseURL, order.ID, order.Amount.String()),
		ProviderReference: "mock-" + order.ID,
	}, nil
}

// Order returns what was charged for orderID.
func (g *MockGateway) Order(orderID string) (domain.Order, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	order, ok := g.orders[orderID]
	return order, ok
}

func (g *MockGateway) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.orders)
}

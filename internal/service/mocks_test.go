package service

import (
	"context"
	"database/sql"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/infrastructure/payment"
)

type fakePromoService struct {
	LookupFunc   func(ctx context.Context, code string) (*domain.PromoCode, error)
	ValidateFunc func(ctx context.Context, code string) (domain.PromoValidation, error)
	RedeemFunc   func(ctx context.Context, code string) (bool, error)

	mu      sync.Mutex
	redeems []string
}

func (f *fakePromoService) Lookup(ctx context.Context, code string) (*domain.PromoCode, error) {
	if f.LookupFunc != nil {
		return f.LookupFunc(ctx, code)
	}
	return nil, domain.ErrPromoNotFound
}

func (f *fakePromoService) Validate(ctx context.Context, code string) (domain.PromoValidation, error) {
	if f.ValidateFunc != nil {
		return f.ValidateFunc(ctx, code)
	}
	return domain.PromoValidation{Status: domain.PromoNotFound}, nil
}

func (f *fakePromoService) Redeem(ctx context.Context, code string) (bool, error) {
	f.mu.Lock()
	f.redeems = append(f.redeems, code)
	f.mu.Unlock()
	if f.RedeemFunc != nil {
		return f.RedeemFunc(ctx, code)
	}
	return false, nil
}

func (f *fakePromoService) Redeems() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.redeems...)
}

// memPromoLedger is a PromoService over an in-memory table with the same
// conditional redeem rule as the SQL update.
type memPromoLedger struct {
	mu    sync.Mutex
	codes map[string]*domain.PromoCode
}

func newMemPromoLedger(codes ...domain.PromoCode) *memPromoLedger {
	l := &memPromoLedger{codes: make(map[string]*domain.PromoCode)}
	for i := range codes {
		c := codes[i]
		l.codes[c.Code] = &c
	}
	return l
}

func (l *memPromoLedger) Lookup(_ context.Context, code string) (*domain.PromoCode, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.codes[domain.NormalizePromoCode(code)]
	if !ok {
		return nil, domain.ErrPromoNotFound
	}
	cp := *p
	return &cp, nil
}

func (l *memPromoLedger) Validate(ctx context.Context, code string) (domain.PromoValidation, error) {
	p, err := l.Lookup(ctx, code)
	if err != nil {
		return domain.PromoValidation{Status: domain.PromoNotFound}, nil
	}
	return p.Validate(), nil
}

func (l *memPromoLedger) Redeem(_ context.Context, code string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.codes[domain.NormalizePromoCode(code)]
	if !ok || !p.IsActive || p.CurrentUses >= p.MaxUses {
		return false, nil
	}
	p.CurrentUses++
	return true, nil
}

func (l *memPromoLedger) Uses(code string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.codes[code].CurrentUses
}

type fakePurchaseRepo struct {
	CreateErr error
	FindErr   error

	mu        sync.Mutex
	purchases map[string]domain.Purchase
	creates   int
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[string]domain.Purchase)}
}

func (f *fakePurchaseRepo) Create(_ context.Context, p *domain.Purchase) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.CreateErr != nil {
		return false, f.CreateErr
	}
	if _, ok := f.purchases[p.OrderID]; ok {
		return false, nil
	}
	f.purchases[p.OrderID] = *p
	return true, nil
}

func (f *fakePurchaseRepo) FindByOrderID(_ context.Context, orderID string) (*domain.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	p, ok := f.purchases[orderID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePurchaseRepo) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.purchases)
}

type fakeVerifier struct {
	err error
}

func (f fakeVerifier) Verify(payment.Notification) error {
	return f.err
}

var errStoreDown = &domain.StoreError{Op: "test", Err: sql.ErrConnDone}

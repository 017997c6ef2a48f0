package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gujjushop/backend/internal/catalog"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Item is a product snapshot plus a quantity, never below 1.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// LineTotal is the item's effective price times its quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Service manages the per-customer session carts. Carts live only as long
// as the process; they are never persisted.
type Service interface {
	Add(ctx context.Context, customerID uuid.UUID, product catalog.Product) error
	Remove(ctx context.Context, customerID, productID uuid.UUID) error
	Items(ctx context.Context, customerID uuid.UUID) ([]Item, error)
	Total(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	Clear(ctx context.Context, customerID uuid.UUID) error
	Checkout(ctx context.Context, customerID uuid.UUID, fn func(items []Item) error) error
}

type service struct {
	mu    sync.Mutex
	carts map[uuid.UUID][]Item
}

// NewService builds an empty cart store.
func NewService() Service {
	return &service{carts: make(map[uuid.UUID][]Item)}
}

// Add increments the quantity when the product is already in the cart,
// otherwise inserts it with quantity 1.
func (s *service) Add(ctx context.Context, customerID uuid.UUID, product catalog.Product) error {
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[customerID]
	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity++
			return nil
		}
	}
	s.carts[customerID] = append(items, Item{Product: product, Quantity: 1})
	return nil
}

// Remove deletes the entry entirely. An absent product id is a no-op.
func (s *service) Remove(ctx context.Context, customerID, productID uuid.UUID) error {
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[customerID]
	for i := range items {
		if items[i].Product.ID == productID {
			s.carts[customerID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

// Items returns a snapshot copy; callers cannot mutate the cart through it.
func (s *service) Items(ctx context.Context, customerID uuid.UUID) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.carts[customerID]), nil
}

// Total sums effective price times quantity across the cart.
func (s *service) Total(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.carts[customerID] {
		total = total.Add(item.LineTotal())
	}
	return total, nil
}

func (s *service) Clear(ctx context.Context, customerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, customerID)
	return nil
}

// Checkout hands fn a snapshot of the cart and clears the cart only when fn
// succeeds. The cart lock is held throughout, so order creation and cart
// clearing are atomic with respect to other cart mutations.
func (s *service) Checkout(ctx context.Context, customerID uuid.UUID, fn func(items []Item) error) error {
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(snapshot(s.carts[customerID])); err != nil {
		return err
	}
	delete(s.carts, customerID)
	return nil
}

func snapshot(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gujjushop/backend/internal/cart"
	"github.com/gujjushop/backend/internal/catalog"
	"github.com/gujjushop/backend/internal/identity"
	"github.com/gujjushop/backend/pkg/enums"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type cartCheckouter interface {
	Checkout(ctx context.Context, customerID uuid.UUID, fn func(items []cart.Item) error) error
}

type shopFinder interface {
	FindShop(ctx context.Context, id uuid.UUID) (*catalog.Shop, error)
}

// Service is the order lifecycle engine: placement, guarded status
// transitions, the rider claim step and the role-scoped queries.
type Service interface {
	Place(ctx context.Context, input PlaceInput) (*Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*Order, error)
	Claim(ctx context.Context, orderID, riderID uuid.UUID) (*Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListForShop(ctx context.Context, shopID uuid.UUID) ([]Order, error)
	PendingForShop(ctx context.Context, shopID uuid.UUID) ([]Order, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	ListForRider(ctx context.Context, riderID uuid.UUID) ([]Order, error)
	AvailableForDelivery(ctx context.Context) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

// PlaceInput captures what checkout hands the engine. The customer record
// supplies the denormalized display fields.
type PlaceInput struct {
	Customer     identity.User
	DeliveryType enums.DeliveryType
	Fee          decimal.Decimal
}

type service struct {
	mu     sync.RWMutex
	orders []Order
	index  map[uuid.UUID]int

	carts cartCheckouter
	shops shopFinder
	now   func() time.Time
}

// NewService builds the order engine with the required dependencies.
func NewService(carts cartCheckouter, shops shopFinder) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{
		index: make(map[uuid.UUID]int),
		carts: carts,
		shops: shops,
		now:   time.Now,
	}, nil
}

// Place creates an order from the customer's cart. The cart lock is held for
// the whole operation, so the order exists if and only if the cart was
// cleared. Carts spanning more than one shop are rejected.
func (s *service) Place(ctx context.Context, input PlaceInput) (*Order, error) {
	if input.Customer.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.DeliveryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery type")
	}
	if input.Fee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery fee must not be negative")
	}

	var placed *Order
	err := s.carts.Checkout(ctx, input.Customer.ID, func(items []cart.Item) error {
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		shopID := items[0].Product.ShopID
		for _, item := range items {
			if item.Product.ShopID != shopID {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart items must belong to a single shop").
					WithDetails(map[string]any{"product_id": item.Product.ID.String()})
			}
		}

		shop, err := s.shops.FindShop(ctx, shopID)
		if err != nil {
			return err
		}

		lineItems := make([]LineItem, 0, len(items))
		total := input.Fee
		for _, item := range items {
			lineItems = append(lineItems, LineItem{
				ProductID:     item.Product.ID,
				Name:          item.Product.Name,
				Price:         item.Product.Price,
				DiscountPrice: item.Product.DiscountPrice,
				Image:         item.Product.Image,
				Quantity:      item.Quantity,
			})
			total = total.Add(item.LineTotal())
		}

		order := Order{
			ID:              uuid.New(),
			CustomerID:      input.Customer.ID,
			ShopID:          shopID,
			Items:           lineItems,
			TotalAmount:     total,
			Status:          enums.OrderStatusPlaced,
			DeliveryType:    input.DeliveryType,
			DeliveryFee:     input.Fee,
			CreatedAt:       s.now(),
			CustomerName:    input.Customer.Name,
			CustomerAddress: input.Customer.Address,
			ShopName:        shop.Name,
			ShopAddress:     shop.Address,
		}

		s.prepend(order)
		placed = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *service) prepend(order Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]Order{order}, s.orders...)
	s.index = make(map[uuid.UUID]int, len(s.orders))
	for i, o := range s.orders {
		s.index[o.ID] = i
	}
}

// UpdateStatus moves the order along the lifecycle. Unknown ids fail
// NOT_FOUND; transitions outside the table fail STATE_CONFLICT. Requesting
// the current status is accepted as a no-op.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*Order, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[orderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	current := s.orders[idx].Status
	if current == next {
		order := copyOrder(s.orders[idx])
		return &order, nil
	}
	if !current.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
			WithDetails(map[string]any{"from": current.String(), "to": next.String()})
	}

	s.orders[idx].Status = next
	order := copyOrder(s.orders[idx])
	return &order, nil
}

// Claim reserves a PACKED order for the rider: a compare-and-swap to
// ASSIGNED under the engine lock. The second of two racing riders gets
// STATE_CONFLICT instead of a double assignment.
func (s *service) Claim(ctx context.Context, orderID, riderID uuid.UUID) (*Order, error) {
	if riderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[orderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if s.orders[idx].Status != enums.OrderStatusPacked {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is not available for pickup").
			WithDetails(map[string]any{"status": s.orders[idx].Status.String()})
	}

	rider := riderID
	s.orders[idx].Status = enums.OrderStatusAssigned
	s.orders[idx].RiderID = &rider
	order := copyOrder(s.orders[idx])
	return &order, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[orderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	order := copyOrder(s.orders[idx])
	return &order, nil
}

// ListForShop returns the shop's orders newest-first.
func (s *service) ListForShop(ctx context.Context, shopID uuid.UUID) ([]Order, error) {
	return s.filter(func(o Order) bool { return o.ShopID == shopID }), nil
}

// PendingForShop returns the shop's orders still waiting on the merchant.
func (s *service) PendingForShop(ctx context.Context, shopID uuid.UUID) ([]Order, error) {
	return s.filter(func(o Order) bool {
		return o.ShopID == shopID && o.Status == enums.OrderStatusPlaced
	}), nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error) {
	return s.filter(func(o Order) bool { return o.CustomerID == customerID }), nil
}

// ListForRider returns the orders assigned to the rider, claimed or further
// along.
func (s *service) ListForRider(ctx context.Context, riderID uuid.UUID) ([]Order, error) {
	return s.filter(func(o Order) bool {
		return o.RiderID != nil && *o.RiderID == riderID
	}), nil
}

// AvailableForDelivery is the rider pool: exactly the PACKED set. Nothing is
// reserved by reading it; reservation happens in Claim.
func (s *service) AvailableForDelivery(ctx context.Context) ([]Order, error) {
	return s.filter(func(o Order) bool { return o.Status == enums.OrderStatusPacked }), nil
}

func (s *service) ListAll(ctx context.Context) ([]Order, error) {
	return s.filter(func(o Order) bool { return true }), nil
}

func (s *service) filter(keep func(Order) bool) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, copyOrder(o))
		}
	}
	return out
}

func copyOrder(o Order) Order {
	out := o
	out.Items = make([]LineItem, len(o.Items))
	copy(out.Items, o.Items)
	if o.RiderID != nil {
		rider := *o.RiderID
		out.RiderID = &rider
	}
	return out
}

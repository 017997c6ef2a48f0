package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/gujjushop/backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// LineItem is the snapshot of a cart item taken at placement time. Later
// cart or product mutation never changes a placed order.
type LineItem struct {
	ProductID     uuid.UUID        `json:"product_id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Image         string           `json:"image,omitempty"`
	Quantity      int              `json:"quantity"`
}

// EffectivePrice returns the discount price when present, base price otherwise.
func (l LineItem) EffectivePrice() decimal.Decimal {
	if l.DiscountPrice != nil {
		return *l.DiscountPrice
	}
	return l.Price
}

// LineTotal is the effective price times the quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a confirmed purchase. All line items belong to one shop; display
// fields are denormalized copies captured when the order was placed.
type Order struct {
	ID           uuid.UUID          `json:"id"`
	CustomerID   uuid.UUID          `json:"customer_id"`
	ShopID       uuid.UUID          `json:"shop_id"`
	Items        []LineItem         `json:"items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Status       enums.OrderStatus  `json:"status"`
	DeliveryType enums.DeliveryType `json:"delivery_type"`
	DeliveryFee  decimal.Decimal    `json:"delivery_fee"`
	RiderID      *uuid.UUID         `json:"rider_id,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`

	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
	ShopName        string `json:"shop_name"`
	ShopAddress     string `json:"shop_address"`
}

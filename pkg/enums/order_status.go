package enums

import "fmt"

// OrderStatus tracks the lifecycle of an order from placement to delivery.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "PLACED"
	OrderStatusAccepted       OrderStatus = "ACCEPTED"
	OrderStatusPacked         OrderStatus = "PACKED"
	OrderStatusAssigned       OrderStatus = "ASSIGNED"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusAccepted,
	OrderStatusPacked,
	OrderStatusAssigned,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// Merchants may pack straight from PLACED; everything else is strictly linear.
// DELIVERED is terminal, no backward edges exist.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPlaced:         {OrderStatusAccepted, OrderStatusPacked},
	OrderStatusAccepted:       {OrderStatusPacked},
	OrderStatusPacked:         {OrderStatusAssigned},
	OrderStatusAssigned:       {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
	OrderStatusDelivered:      {},
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusDelivered
}

// CanTransitionTo reports whether next is directly reachable from the current status.
func (o OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderStatusTransitions[o] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

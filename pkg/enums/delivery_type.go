package enums

import "fmt"

// DeliveryType selects the fee tier for an order. SMART_MATCH is the reduced
// tier offered when a rider's existing route is expected to overlap the drop.
type DeliveryType string

const (
	DeliveryTypeStandard   DeliveryType = "STANDARD"
	DeliveryTypeSmartMatch DeliveryType = "SMART_MATCH"
)

var validDeliveryTypes = []DeliveryType{
	DeliveryTypeStandard,
	DeliveryTypeSmartMatch,
}

// String implements fmt.Stringer.
func (d DeliveryType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryType.
func (d DeliveryType) IsValid() bool {
	for _, candidate := range validDeliveryTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryType converts raw input into a DeliveryType.
func ParseDeliveryType(value string) (DeliveryType, error) {
	for _, candidate := range validDeliveryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery type %q", value)
}

package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPlaced, OrderStatusAccepted},
		{OrderStatusPlaced, OrderStatusPacked},
		{OrderStatusAccepted, OrderStatusPacked},
		{OrderStatusPacked, OrderStatusAssigned},
		{OrderStatusAssigned, OrderStatusOutForDelivery},
		{OrderStatusOutForDelivery, OrderStatusDelivered},
	}
	for _, tt := range allowed {
		if !tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("%s -> %s should be allowed", tt.from, tt.to)
		}
	}

	denied := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPlaced, OrderStatusAssigned},
		{OrderStatusPlaced, OrderStatusDelivered},
		{OrderStatusAccepted, OrderStatusPlaced},
		{OrderStatusPacked, OrderStatusOutForDelivery},
		{OrderStatusDelivered, OrderStatusPlaced},
		{OrderStatusDelivered, OrderStatusDelivered},
	}
	for _, tt := range denied {
		if tt.from.CanTransitionTo(tt.to) {
			t.Fatalf("%s -> %s should be rejected", tt.from, tt.to)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	t.Parallel()

	if !OrderStatusDelivered.IsTerminal() {
		t.Fatal("DELIVERED should be terminal")
	}
	for _, s := range []OrderStatus{OrderStatusPlaced, OrderStatusAccepted, OrderStatusPacked, OrderStatusAssigned, OrderStatusOutForDelivery} {
		if s.IsTerminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	if got, err := ParseOrderStatus("PACKED"); err != nil || got != OrderStatusPacked {
		t.Fatalf("expected PACKED, got %v err %v", got, err)
	}
	if _, err := ParseOrderStatus("packed"); err == nil {
		t.Fatal("lowercase input should be rejected")
	}
}

func TestParseRoleAndDeliveryType(t *testing.T) {
	t.Parallel()

	if got, err := ParseRole("DELIVERY_PARTNER"); err != nil || got != RoleDeliveryPartner {
		t.Fatalf("expected DELIVERY_PARTNER, got %v err %v", got, err)
	}
	if _, err := ParseRole("RIDER"); err == nil {
		t.Fatal("unknown role should be rejected")
	}
	if got, err := ParseDeliveryType("SMART_MATCH"); err != nil || got != DeliveryTypeSmartMatch {
		t.Fatalf("expected SMART_MATCH, got %v err %v", got, err)
	}
	if _, err := ParseDeliveryType("DRONE"); err == nil {
		t.Fatal("unknown delivery type should be rejected")
	}
}

package enums

import "fmt"

// Role determines which store operations a session may invoke.
type Role string

const (
	RoleCustomer        Role = "CUSTOMER"
	RoleMerchant        Role = "MERCHANT"
	RoleDeliveryPartner Role = "DELIVERY_PARTNER"
	RoleAdmin           Role = "ADMIN"
)

var validRoles = []Role{
	RoleCustomer,
	RoleMerchant,
	RoleDeliveryPartner,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

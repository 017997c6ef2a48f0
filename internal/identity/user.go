package identity

import (
	"github.com/google/uuid"
	"github.com/gujjushop/backend/pkg/enums"
)

// User is an identity record. Users are created at seed time and are
// immutable for the lifetime of a session.
type User struct {
	ID       uuid.UUID  `json:"id"`
	Phone    string     `json:"phone"`
	Password string     `json:"-"` // present in the data model, never verified
	Name     string     `json:"name"`
	Role     enums.Role `json:"role"`
	City     string     `json:"city"`
	Address  string     `json:"address"`
	Language string     `json:"language"`
	ShopID   *uuid.UUID `json:"shop_id,omitempty"` // merchants own at most one shop
}

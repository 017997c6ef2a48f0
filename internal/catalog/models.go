package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopOffer is a promotional banner attached to a shop.
type ShopOffer struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Code            string           `json:"code"`
	Description     string           `json:"description"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
}

// Shop is a merchant storefront. One shop has exactly one owner and a user
// owns at most one shop.
type Shop struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	Category    string      `json:"category"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	GeoLat      float64     `json:"geo_lat"`
	GeoLng      float64     `json:"geo_lng"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"review_count"`
	IsVerified  bool        `json:"is_verified"`
	IsOpen      bool        `json:"is_open"`
	Timings     string      `json:"timings,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image,omitempty"`
	Banner      string      `json:"banner,omitempty"`
	Offers      []ShopOffer `json:"offers,omitempty"`
}

// Product is a sellable item belonging to exactly one shop. Products are
// never deleted, only flagged out of stock.
type Product struct {
	ID            uuid.UUID        `json:"id"`
	ShopID        uuid.UUID        `json:"shop_id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Image         string           `json:"image,omitempty"`
	InStock       bool             `json:"in_stock"`
	Variants      []string         `json:"variants,omitempty"`
	IsBestSeller  bool             `json:"is_best_seller,omitempty"`
}

// EffectivePrice returns the discount price when present, the base price
// otherwise. Every monetary computation in the system uses this.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

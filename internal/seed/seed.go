// Package seed loads the demo data set the service boots with: four role
// users, three Bhavnagar shops and their starting inventory.
package seed

import (
	"github.com/google/uuid"
	"github.com/gujjushop/backend/internal/catalog"
	"github.com/gujjushop/backend/internal/identity"
	"github.com/gujjushop/backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Demo holds the seeded ids so callers (and tests) can reference them.
type Demo struct {
	CustomerID uuid.UUID
	MerchantID uuid.UUID
	RiderID    uuid.UUID
	AdminID    uuid.UUID

	FarsanShopID      uuid.UUID
	SareeShopID       uuid.UUID
	ElectronicsShopID uuid.UUID
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func pricePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Load seeds users, shops and products into the given repositories.
func Load(users *identity.Repository, cat *catalog.Repository) Demo {
	demo := Demo{
		CustomerID:        uuid.New(),
		MerchantID:        uuid.New(),
		RiderID:           uuid.New(),
		AdminID:           uuid.New(),
		FarsanShopID:      uuid.New(),
		SareeShopID:       uuid.New(),
		ElectronicsShopID: uuid.New(),
	}

	users.Seed(
		identity.User{
			ID: demo.CustomerID, Phone: "9876500001", Password: "user123",
			Name: "Rahul Bhai", Role: enums.RoleCustomer,
			City: "Bhavnagar", Address: "Kalanala Chowk, Bhavnagar", Language: "gu",
		},
		identity.User{
			ID: demo.MerchantID, Phone: "9876500002", Password: "shop123",
			Name: "Jay Bhavani Owner", Role: enums.RoleMerchant,
			City: "Bhavnagar", Address: "Waghawadi Road, Bhavnagar", Language: "gu",
			ShopID: &demo.FarsanShopID,
		},
		identity.User{
			ID: demo.RiderID, Phone: "9876500003", Password: "rider123",
			Name: "Vikram Rider", Role: enums.RoleDeliveryPartner,
			City: "Bhavnagar", Address: "Gogha Circle, Bhavnagar", Language: "gu",
		},
		identity.User{
			ID: demo.AdminID, Phone: "9876500004", Password: "admin",
			Name: "Master Admin", Role: enums.RoleAdmin,
			City: "Bhavnagar", Address: "Bhavnagar", Language: "en",
		},
	)

	cat.SeedShops(
		catalog.Shop{
			ID: demo.FarsanShopID, Name: "Jay Bhavani Farsan", OwnerID: demo.MerchantID,
			Category: "Food", Address: "Waghawadi Road, Bhavnagar", City: "Bhavnagar",
			GeoLat: 21.7645, GeoLng: 72.1519,
			Rating: 4.8, ReviewCount: 1240, IsVerified: true, IsOpen: true,
			Timings:     "8:00 AM - 9:00 PM",
			Description: "Famous for Bhavnagari Gathiya and fresh snacks since 1995.",
		},
		catalog.Shop{
			ID: demo.SareeShopID, Name: "Mehta Saree Showroom", OwnerID: uuid.New(),
			Category: "Fashion", Address: "Gogha Circle, Bhavnagar", City: "Bhavnagar",
			GeoLat: 21.7600, GeoLng: 72.1500,
			Rating: 4.5, ReviewCount: 856, IsVerified: true, IsOpen: true,
			Timings:     "10:00 AM - 9:30 PM",
			Description: "Premium Bandhani, Patola and Silk Sarees at wholesale rates.",
		},
		catalog.Shop{
			ID: demo.ElectronicsShopID, Name: "Raju Electronics", OwnerID: uuid.New(),
			Category: "Electronics", Address: "Kalanala, Bhavnagar", City: "Bhavnagar",
			GeoLat: 21.7700, GeoLng: 72.1600,
			Rating: 4.2, ReviewCount: 320, IsVerified: false, IsOpen: false,
			Timings:     "10:00 AM - 8:00 PM",
			Description: "All mobile accessories, repairs and second hand phones available.",
		},
	)

	cat.SeedProducts(
		catalog.Product{
			ID: uuid.New(), ShopID: demo.FarsanShopID, Name: "Bhavnagari Gathiya",
			Price: price(300), DiscountPrice: pricePtr(280),
			InStock: true, Variants: []string{"500g", "1kg"}, IsBestSeller: true,
		},
		catalog.Product{
			ID: uuid.New(), ShopID: demo.FarsanShopID, Name: "Masala Peanuts",
			Price: price(150), InStock: true,
		},
		catalog.Product{
			ID: uuid.New(), ShopID: demo.SareeShopID, Name: "Bandhani Saree (Red)",
			Price: price(1500), DiscountPrice: pricePtr(1200),
			InStock: true, IsBestSeller: true,
		},
		catalog.Product{
			ID: uuid.New(), ShopID: demo.SareeShopID, Name: "Cotton Dress Material",
			Price: price(800), InStock: true,
		},
		catalog.Product{
			ID: uuid.New(), ShopID: demo.SareeShopID, Name: "Designer Chaniya Choli",
			Price: price(3500), DiscountPrice: pricePtr(2499), InStock: true,
		},
	)

	return demo
}

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service exposes catalog reads plus the merchant-scoped mutations.
type Service interface {
	ListShops(ctx context.Context) ([]Shop, error)
	GetShop(ctx context.Context, id uuid.UUID) (*Shop, error)
	SetShopOpen(ctx context.Context, shopID uuid.UUID, open bool) (*Shop, error)
	ListProducts(ctx context.Context, shopID *uuid.UUID) ([]Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	AddProduct(ctx context.Context, input AddProductInput) (*Product, error)
}

// AddProductInput carries the merchant-provided fields for a new product.
type AddProductInput struct {
	ShopID        uuid.UUID
	Name          string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	Image         string
	Variants      []string
	IsBestSeller  bool
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListShops(ctx context.Context) ([]Shop, error) {
	return s.repo.ListShops(ctx)
}

func (s *service) GetShop(ctx context.Context, id uuid.UUID) (*Shop, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	return s.repo.FindShop(ctx, id)
}

func (s *service) SetShopOpen(ctx context.Context, shopID uuid.UUID, open bool) (*Shop, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	return s.repo.SetShopOpen(ctx, shopID, open)
}

func (s *service) ListProducts(ctx context.Context, shopID *uuid.UUID) ([]Product, error) {
	return s.repo.ListProducts(ctx, shopID)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return s.repo.FindProduct(ctx, id)
}

// AddProduct validates the input, assigns a fresh id and prepends the product
// so merchant inventory lists show the newest item first.
func (s *service) AddProduct(ctx context.Context, input AddProductInput) (*Product, error) {
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	if input.DiscountPrice != nil {
		if !input.DiscountPrice.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount price must be greater than zero")
		}
		if input.DiscountPrice.GreaterThan(input.Price) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount price must not exceed price")
		}
	}

	product := Product{
		ID:            uuid.New(),
		ShopID:        input.ShopID,
		Name:          strings.TrimSpace(input.Name),
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Image:         input.Image,
		InStock:       true,
		Variants:      input.Variants,
		IsBestSeller:  input.IsBestSeller,
	}
	return s.repo.InsertProduct(ctx, product)
}

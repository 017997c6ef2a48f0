package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
)

// Repository is the in-memory shop and product store. Shops keep seed
// insertion order; products are prepended so the newest listing comes first.
type Repository struct {
	mu         sync.RWMutex
	shops      []Shop
	products   []Product
	shopByID   map[uuid.UUID]int
	productIdx map[uuid.UUID]struct{}
}

func NewRepository() *Repository {
	return &Repository{
		shopByID:   make(map[uuid.UUID]int),
		productIdx: make(map[uuid.UUID]struct{}),
	}
}

// SeedShops appends shops in the given order.
func (r *Repository) SeedShops(shops ...Shop) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range shops {
		r.shopByID[s.ID] = len(r.shops)
		r.shops = append(r.shops, s)
	}
}

// SeedProducts prepends each product, matching InsertProduct ordering.
func (r *Repository) SeedProducts(products ...Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		r.prependLocked(p)
	}
}

func (r *Repository) prependLocked(p Product) {
	r.products = append([]Product{p}, r.products...)
	r.productIdx[p.ID] = struct{}{}
}

// ListShops returns shops in insertion order.
func (r *Repository) ListShops(ctx context.Context) ([]Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Shop, len(r.shops))
	copy(out, r.shops)
	return out, nil
}

func (r *Repository) FindShop(ctx context.Context, id uuid.UUID) (*Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.shopByID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	shop := r.shops[idx]
	return &shop, nil
}

// SetShopOpen flips the open flag on the shop.
func (r *Repository) SetShopOpen(ctx context.Context, id uuid.UUID, open bool) (*Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.shopByID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	r.shops[idx].IsOpen = open
	shop := r.shops[idx]
	return &shop, nil
}

// ListProducts returns products newest-first, optionally filtered by shop.
func (r *Repository) ListProducts(ctx context.Context, shopID *uuid.UUID) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if shopID != nil && p.ShopID != *shopID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.productIdx[id]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	for _, p := range r.products {
		if p.ID == id {
			prod := p
			return &prod, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// InsertProduct prepends the product after checking the shop exists.
func (r *Repository) InsertProduct(ctx context.Context, p Product) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shopByID[p.ShopID]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	r.prependLocked(p)
	out := p
	return &out, nil
}

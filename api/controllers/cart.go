package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gujjushop/backend/api/middleware"
	"github.com/gujjushop/backend/api/responses"
	"github.com/gujjushop/backend/api/validators"
	"github.com/gujjushop/backend/internal/cart"
	"github.com/gujjushop/backend/internal/catalog"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/gujjushop/backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type cartView struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// GetCart returns the customer's cart items and running total.
func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		customerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		items, err := svc.Items(ctx, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		total, err := svc.Total(ctx, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartView{Items: items, Total: total})
	}
}

// AddCartItem puts one unit of the product into the cart, incrementing the
// quantity when it is already there.
func AddCartItem(carts cart.Service, products catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		customerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		var req addCartItemRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := products.GetProduct(ctx, req.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !product.InStock {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock"))
			return
		}

		if err := carts.Add(ctx, customerID, *product); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := carts.Items(ctx, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		total, err := carts.Total(ctx, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartView{Items: items, Total: total})
	}
}

// RemoveCartItem drops the product from the cart entirely. Removing an
// absent product succeeds.
func RemoveCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		customerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		productID, err := validators.ParseUUIDParam(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Remove(ctx, customerID, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := svc.Items(ctx, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		total, err := svc.Total(ctx, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartView{Items: items, Total: total})
	}
}

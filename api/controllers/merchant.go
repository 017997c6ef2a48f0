package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gujjushop/backend/api/middleware"
	"github.com/gujjushop/backend/api/responses"
	"github.com/gujjushop/backend/api/validators"
	"github.com/gujjushop/backend/internal/catalog"
	"github.com/gujjushop/backend/internal/orders"
	"github.com/gujjushop/backend/pkg/enums"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/gujjushop/backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type addProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Price         string   `json:"price" validate:"required"`
	DiscountPrice *string  `json:"discount_price,omitempty"`
	Image         string   `json:"image,omitempty"`
	Variants      []string `json:"variants,omitempty"`
	IsBestSeller  bool     `json:"is_best_seller,omitempty"`
}

type setShopOpenRequest struct {
	Open *bool `json:"open" validate:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AddProduct creates a product in the merchant's own shop.
func AddProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shopID, ok := middleware.ShopIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "merchant account has no shop"))
			return
		}

		var req addProductRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal string"))
			return
		}
		var discount *decimal.Decimal
		if req.DiscountPrice != nil {
			parsed, err := decimal.NewFromString(*req.DiscountPrice)
			if err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "discount price must be a decimal string"))
				return
			}
			discount = &parsed
		}

		product, err := svc.AddProduct(ctx, catalog.AddProductInput{
			ShopID:        shopID,
			Name:          req.Name,
			Price:         price,
			DiscountPrice: discount,
			Image:         req.Image,
			Variants:      req.Variants,
			IsBestSeller:  req.IsBestSeller,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ctx = logg.WithField(ctx, "product_id", product.ID.String())
		logg.Info(ctx, "product added")
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// SetShopOpen toggles the merchant's storefront visibility flag.
func SetShopOpen(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shopID, ok := middleware.ShopIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "merchant account has no shop"))
			return
		}

		var req setShopOpenRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		shop, err := svc.SetShopOpen(ctx, shopID, *req.Open)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

// ListShopOrders returns the merchant's shop orders. With ?pending=1 only
// orders still waiting on the merchant are returned.
func ListShopOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shopID, ok := middleware.ShopIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "merchant account has no shop"))
			return
		}

		var list []orders.Order
		var err error
		if r.URL.Query().Get("pending") == "1" {
			list, err = svc.PendingForShop(ctx, shopID)
		} else {
			list, err = svc.ListForShop(ctx, shopID)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UpdateShopOrderStatus advances one of the shop's orders along the
// lifecycle. Orders belonging to other shops are hidden behind NOT_FOUND.
func UpdateShopOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shopID, ok := middleware.ShopIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "merchant account has no shop"))
			return
		}

		orderID, err := validators.ParseUUIDParam(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req updateOrderStatusRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		next, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "invalid order status"))
			return
		}

		current, err := svc.Get(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if current.ShopID != shopID {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		order, err := svc.UpdateStatus(ctx, orderID, next)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ctx = logg.WithFields(ctx, map[string]any{
			"order_id": order.ID.String(),
			"status":   order.Status.String(),
		})
		logg.Info(ctx, "order status updated")
		responses.WriteSuccess(w, order)
	}
}

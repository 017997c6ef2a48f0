package controllers

import (
	"net/http"

	"github.com/gujjushop/backend/api/middleware"
	"github.com/gujjushop/backend/api/responses"
	"github.com/gujjushop/backend/api/validators"
	"github.com/gujjushop/backend/internal/identity"
	"github.com/gujjushop/backend/internal/orders"
	"github.com/gujjushop/backend/pkg/config"
	"github.com/gujjushop/backend/pkg/enums"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/gujjushop/backend/pkg/logger"
)

type checkoutRequest struct {
	DeliveryType string `json:"delivery_type" validate:"required,oneof=STANDARD SMART_MATCH"`
}

// Checkout converts the customer's cart into a PLACED order. The delivery
// tier picks the fee; the cart is cleared only when the order is created.
func Checkout(ordersSvc orders.Service, users identity.Service, delivery config.DeliveryConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		customerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		var req checkoutRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		deliveryType, err := enums.ParseDeliveryType(req.DeliveryType)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery type"))
			return
		}

		fee := delivery.StandardFeeAmount()
		if deliveryType == enums.DeliveryTypeSmartMatch {
			fee = delivery.SmartMatchFeeAmount()
		}

		customer, err := users.CurrentUser(ctx, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := ordersSvc.Place(ctx, orders.PlaceInput{
			Customer:     *customer,
			DeliveryType: deliveryType,
			Fee:          fee,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ctx = logg.WithFields(ctx, map[string]any{
			"order_id":      order.ID.String(),
			"delivery_type": order.DeliveryType.String(),
			"total_amount":  order.TotalAmount.String(),
		})
		logg.Info(ctx, "order placed")
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListMyOrders returns the customer's own orders, newest first.
func ListMyOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		customerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		list, err := svc.ListForCustomer(ctx, customerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gujjushop/backend/api/middleware"
	"github.com/gujjushop/backend/api/responses"
	"github.com/gujjushop/backend/api/validators"
	"github.com/gujjushop/backend/internal/orders"
	"github.com/gujjushop/backend/pkg/enums"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/gujjushop/backend/pkg/logger"
)

// riders may only move an order through the delivery leg
var riderStatuses = map[enums.OrderStatus]struct{}{
	enums.OrderStatusOutForDelivery: {},
	enums.OrderStatusDelivered:      {},
}

// ListAvailableDeliveries returns the open pool: PACKED orders no rider has
// claimed yet. Reading the pool reserves nothing.
func ListAvailableDeliveries(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := svc.AvailableForDelivery(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ClaimDelivery reserves a packed order for the calling rider. When two
// riders race, exactly one wins; the other gets STATE_CONFLICT.
func ClaimDelivery(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		riderID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		orderID, err := validators.ParseUUIDParam(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Claim(ctx, orderID, riderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ctx = logg.WithField(ctx, "order_id", order.ID.String())
		logg.Info(ctx, "delivery claimed")
		responses.WriteSuccess(w, order)
	}
}

// ListMyDeliveries returns the orders assigned to the calling rider.
func ListMyDeliveries(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		riderID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		list, err := svc.ListForRider(ctx, riderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UpdateDeliveryStatus lets the rider move their own assigned order through
// the delivery leg: OUT_FOR_DELIVERY then DELIVERED.
func UpdateDeliveryStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		riderID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
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
		if _, ok := riderStatuses[next]; !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "riders may only mark orders out for delivery or delivered"))
			return
		}

		current, err := svc.Get(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if current.RiderID == nil || *current.RiderID != riderID {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "order is not assigned to you"))
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
		logg.Info(ctx, "delivery status updated")
		responses.WriteSuccess(w, order)
	}
}

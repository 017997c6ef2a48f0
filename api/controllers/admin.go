package controllers

import (
	"net/http"

	"github.com/gujjushop/backend/api/responses"
	"github.com/gujjushop/backend/internal/identity"
	"github.com/gujjushop/backend/internal/orders"
	"github.com/gujjushop/backend/pkg/logger"
)

// ListAllOrders returns every order in the system, newest first.
func ListAllOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := svc.ListAll(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListUsers returns every seeded account for the admin console.
func ListUsers(repo *identity.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		users, err := repo.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, users)
	}
}

package controllers

import (
	"net/http"

	"github.com/gujjushop/backend/api/middleware"
	"github.com/gujjushop/backend/api/responses"
	"github.com/gujjushop/backend/api/validators"
	"github.com/gujjushop/backend/internal/identity"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/gujjushop/backend/pkg/logger"
)

type loginRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// Login resolves the demo user by phone and returns the user plus a bearer
// token.
func Login(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req loginRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Login(ctx, req.Phone)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ctx = logg.WithUserID(ctx, result.User.ID.String())
		logg.Info(ctx, "user logged in")
		responses.WriteSuccess(w, result)
	}
}

// Logout revokes the session tied to the presented token.
func Logout(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		accessID, ok := middleware.AccessIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		if err := svc.Logout(ctx, accessID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		logg.Info(ctx, "user logged out")
		responses.WriteSuccess(w, map[string]bool{"logged_out": true})
	}
}

// Me returns the authenticated user's profile.
func Me(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		user, err := svc.CurrentUser(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

package middleware

import (
	"net/http"

	"github.com/gujjushop/backend/api/responses"
	"github.com/gujjushop/backend/pkg/enums"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/gujjushop/backend/pkg/logger"
)

// RequireRole gates a subtree to the listed roles. Runs after Auth.
func RequireRole(logg *logger.Logger, allowed ...enums.Role) func(http.Handler) http.Handler {
	allowedSet := make(map[enums.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			role, ok := ActorRoleFromContext(ctx)
			if !ok {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			if _, ok := allowedSet[role]; !ok {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "role not permitted for this resource"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

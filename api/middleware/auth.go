package middleware

import (
	"net/http"
	"strings"

	"github.com/gujjushop/backend/api/responses"
	pkgauth "github.com/gujjushop/backend/pkg/auth"
	"github.com/gujjushop/backend/pkg/auth/session"
	"github.com/gujjushop/backend/pkg/config"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/gujjushop/backend/pkg/logger"
)

// Auth verifies the bearer token, checks the session is still live and seeds
// the request context with the actor's identity.
func Auth(cfg config.JWTConfig, sessions session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := bearerToken(r)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token"))
				return
			}

			live, err := sessions.HasSession(ctx, claims.ID)
			if err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeInternal, err, "session lookup failed"))
				return
			}
			if !live {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "session has ended"))
				return
			}

			ctx = WithUserID(ctx, claims.UserID)
			ctx = WithActorRole(ctx, claims.Role)
			ctx = WithAccessID(ctx, claims.ID)
			ctx = logg.WithUserID(ctx, claims.UserID.String())
			ctx = logg.WithActorRole(ctx, claims.Role.String())
			if claims.ShopID != nil {
				ctx = WithShopID(ctx, *claims.ShopID)
				ctx = logg.WithShopID(ctx, claims.ShopID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header missing")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must use the Bearer scheme")
	}
	return strings.TrimSpace(token), nil
}

package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/gujjushop/backend/pkg/enums"
)

type ctxKeyUserID struct{}
type ctxKeyActorRole struct{}
type ctxKeyShopID struct{}
type ctxKeyAccessID struct{}
type ctxKeyRequestID struct{}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKeyUserID{}, id)
}

// UserIDFromContext returns the authenticated user's id, if the auth
// middleware ran.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKeyUserID{}).(uuid.UUID)
	return id, ok
}

func WithActorRole(ctx context.Context, role enums.Role) context.Context {
	return context.WithValue(ctx, ctxKeyActorRole{}, role)
}

func ActorRoleFromContext(ctx context.Context) (enums.Role, bool) {
	role, ok := ctx.Value(ctxKeyActorRole{}).(enums.Role)
	return role, ok
}

func WithShopID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKeyShopID{}, id)
}

// ShopIDFromContext returns the merchant's shop id. Only merchant tokens
// carry one.
func ShopIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKeyShopID{}).(uuid.UUID)
	return id, ok
}

func WithAccessID(ctx context.Context, accessID string) context.Context {
	return context.WithValue(ctx, ctxKeyAccessID{}, accessID)
}

// AccessIDFromContext returns the jti of the presented token, used by logout
// to revoke the session.
func AccessIDFromContext(ctx context.Context) (string, bool) {
	accessID, ok := ctx.Value(ctxKeyAccessID{}).(string)
	return accessID, ok
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(ctxKeyRequestID{}).(string)
	return requestID, ok
}

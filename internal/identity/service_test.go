package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pkgauth "github.com/gujjushop/backend/pkg/auth"
	"github.com/gujjushop/backend/pkg/auth/session"
	"github.com/gujjushop/backend/pkg/config"
	"github.com/gujjushop/backend/pkg/enums"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
)

func testService(t *testing.T, users ...User) (Service, *session.Manager) {
	t.Helper()
	cfg := config.JWTConfig{Secret: "test", Issuer: "gujju.shop", ExpirationMinutes: 60}
	sessions, err := session.NewManager(cfg)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	repo := NewRepository()
	repo.Seed(users...)
	svc, err := NewService(repo, sessions, cfg)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc, sessions
}

func TestLoginResolvesByPhone(t *testing.T) {
	t.Parallel()

	user := User{ID: uuid.New(), Phone: "9876500001", Name: "Rahul Bhai", Role: enums.RoleCustomer, City: "Bhavnagar"}
	svc, _ := testService(t, user)

	res, err := svc.Login(context.Background(), "9876500001")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, res.User.ID)
	}
	if res.AccessToken == "" {
		t.Fatal("expected access token")
	}
}

func TestLoginUnknownPhoneIsNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := testService(t)
	_, err := svc.Login(context.Background(), "0000000000")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLoginEmptyPhoneIsValidation(t *testing.T) {
	t.Parallel()

	svc, _ := testService(t)
	_, err := svc.Login(context.Background(), "  ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	user := User{ID: uuid.New(), Phone: "9876500002", Name: "Owner", Role: enums.RoleMerchant}
	svc, sessions := testService(t, user)
	ctx := context.Background()

	res, err := svc.Login(ctx, "9876500002")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims := parseClaims(t, res.AccessToken)
	if ok, _ := sessions.HasSession(ctx, claims); !ok {
		t.Fatal("session should exist after login")
	}

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ok, _ := sessions.HasSession(ctx, claims); ok {
		t.Fatal("session should be revoked after logout")
	}
}

func parseClaims(t *testing.T, token string) string {
	t.Helper()
	cfg := config.JWTConfig{Secret: "test", Issuer: "gujju.shop", ExpirationMinutes: 60}
	claims, err := pkgauth.ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	return claims.ID
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	user := User{ID: uuid.New(), Phone: "9876500003", Name: "Vikram Rider", Role: enums.RoleDeliveryPartner}
	svc, _ := testService(t, user)

	got, err := svc.CurrentUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if got.Name != "Vikram Rider" {
		t.Fatalf("unexpected user %+v", got)
	}

	_, err = svc.CurrentUser(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	_, err = svc.CurrentUser(context.Background(), uuid.Nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgauth "github.com/gujjushop/backend/pkg/auth"
	"github.com/gujjushop/backend/pkg/auth/session"
	"github.com/gujjushop/backend/pkg/config"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
)

type sessionRegistry interface {
	Register(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

// Service resolves identities and establishes sessions.
type Service interface {
	Login(ctx context.Context, phone string) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*User, error)
}

// LoginResult carries the resolved user plus the minted access token.
type LoginResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type service struct {
	repo     *Repository
	sessions sessionRegistry
	jwtCfg   config.JWTConfig
	now      func() time.Time
}

// NewService builds the identity service with the required dependencies.
func NewService(repo *Repository, sessions sessionRegistry, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		now:      time.Now,
	}, nil
}

// Login resolves a user by phone number and establishes a session. The
// password field on the model is never checked; this mirrors the demo auth
// of the prototype and is a documented simplification, not a security layer.
func (s *service) Login(ctx context.Context, phone string) (*LoginResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		ShopID: user.ShopID,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	if err := s.sessions.Register(ctx, accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "register session")
	}

	return &LoginResult{User: *user, AccessToken: token}, nil
}

// Logout revokes the session; subsequent calls with the same token fail auth.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) CurrentUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.repo.FindByID(ctx, userID)
}

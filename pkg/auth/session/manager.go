package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gujjushop/backend/pkg/config"
)

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Manager tracks live access sessions in process memory. The backing map is
// the whole session store; restarting the process logs everyone out.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewManager constructs an in-memory session manager.
func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.ExpirationMinutes <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		sessions: make(map[string]time.Time),
		ttl:      time.Duration(cfg.ExpirationMinutes) * time.Minute,
		now:      time.Now,
	}, nil
}

// NewAccessID returns a fresh session identifier for the jti claim.
func NewAccessID() string {
	return uuid.NewString()
}

// Register records the access identifier as a live session.
func (m *Manager) Register(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[accessID] = m.now().Add(m.ttl)
	return nil
}

// HasSession reports whether the access identifier maps to a live session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, nil
	}
	m.mu.RLock()
	expiry, ok := m.sessions[accessID]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if m.now().After(expiry) {
		m.mu.Lock()
		delete(m.sessions, accessID)
		m.mu.Unlock()
		return false, nil
	}
	return true, nil
}

// Revoke drops the session tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, accessID)
	return nil
}

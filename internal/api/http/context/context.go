// Package context stores the authenticated session payload on the request
// context.
package context

import (
	"context"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

type sessionKey struct{}

// Manager implements model.ContextManager for HTTP requests.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

var _ model.ContextManager = (*Manager)(nil)

// SetSessionToContext returns a context carrying the session payload.
func (m *Manager) SetSessionToContext(ctx context.Context, user model.SessionUser) context.Context {
	return context.WithValue(ctx, sessionKey{}, user)
}

// GetSessionFromContext retrieves the session payload set by the
// authentication middleware.
func (m *Manager) GetSessionFromContext(ctx context.Context) (model.SessionUser, bool) {
	user, ok := ctx.Value(sessionKey{}).(model.SessionUser)
	return user, ok
}

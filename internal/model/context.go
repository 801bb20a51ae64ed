package model

import "context"

// ContextManager stores and retrieves the authenticated session payload on a
// request context.
type ContextManager interface {
	SetSessionToContext(ctx context.Context, user SessionUser) context.Context
	GetSessionFromContext(ctx context.Context) (SessionUser, bool)
}

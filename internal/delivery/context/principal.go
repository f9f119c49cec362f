package context

import (
	"context"

	"gatekeeper/internal/domain/entity"
)

// KeyPrincipal is the key for storing the authenticated principal in context.
const KeyPrincipal ContextKey = "principal"

// WithPrincipal returns a new context carrying the authenticated account.
// The value lives only for the duration of one request; passing it through
// the context keeps the binding explicit instead of mutating a shared
// request object.
func WithPrincipal(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, KeyPrincipal, user)
}

// GetPrincipal extracts the authenticated account from context.Context.
// The second return value reports whether a principal was attached.
func GetPrincipal(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(KeyPrincipal).(*entity.User)
	if !ok || user == nil {
		return nil, false
	}

	return user, true
}

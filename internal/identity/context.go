// Package identity owns the logged-in user record for a session. Unlike an
// ambient global, each Context is an explicit object bound to a backend and
// scope, so independent sessions can coexist in tests.
package identity

import (
	"context"

	"cafeteria/internal/kv"
	"cafeteria/internal/models"
)

const baseKey = "cafeteria_user"

// Context holds the persistence binding for one session's identity.
type Context struct {
	kv  kv.Store
	key string
}

// New creates an identity context over the given backend.
func New(store kv.Store, scope string) *Context {
	return &Context{kv: store, key: kv.Key(scope, baseKey)}
}

// Login validates the role-specific required fields and persists the
// identity. A validation failure returns false and persists nothing.
func (c *Context) Login(ctx context.Context, user models.User) (bool, error) {
	if err := models.ValidateUser(user); err != nil {
		return false, nil
	}
	if err := c.kv.Set(ctx, c.key, user); err != nil {
		return false, err
	}
	return true, nil
}

// Logout clears the identity. Logging out while not logged in is a no-op.
func (c *Context) Logout(ctx context.Context) error {
	return c.kv.Delete(ctx, c.key)
}

// Current returns the active identity, with false when none is present.
func (c *Context) Current(ctx context.Context) (models.User, bool, error) {
	var user models.User
	found, err := c.kv.Get(ctx, c.key, &user)
	if err != nil {
		return models.User{}, false, err
	}
	return user, found, nil
}

// IsAuthenticated reports whether an identity is present.
func (c *Context) IsAuthenticated(ctx context.Context) (bool, error) {
	_, found, err := c.Current(ctx)
	return found, err
}

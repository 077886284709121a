// Package session bundles the cafeteria stores into one explicit context
// object with a lifecycle, replacing the ambient singletons of a
// browser-style client. Two sessions with different scopes share a backend
// without sharing any state.
package session

import (
	"context"

	"cafeteria/internal/cart"
	"cafeteria/internal/catalog"
	"cafeteria/internal/identity"
	"cafeteria/internal/kv"
	"cafeteria/internal/ledger"
)

// Session wires the four stores over one backend and scope.
type Session struct {
	Catalog  *catalog.Store
	Cart     *cart.Store
	Identity *identity.Context
	Orders   *ledger.Ledger
}

// New builds a session over the given backend. scope isolates its keys from
// other sessions on the same backend; "" selects the default layout.
func New(store kv.Store, scope string) *Session {
	cartStore := cart.New(store, scope)
	return &Session{
		Catalog:  catalog.New(store, scope),
		Cart:     cartStore,
		Identity: identity.New(store, scope),
		Orders:   ledger.New(store, scope, cartStore),
	}
}

// Init seeds the catalog and the order collection so the stores tolerate a
// fresh backend.
func (s *Session) Init(ctx context.Context) error {
	if err := s.Catalog.Seed(ctx); err != nil {
		return err
	}
	return s.Orders.Seed(ctx)
}

// Teardown ends the session: the identity is cleared and the pending cart
// discarded. Placed orders survive.
func (s *Session) Teardown(ctx context.Context) error {
	if err := s.Identity.Logout(ctx); err != nil {
		return err
	}
	return s.Cart.Clear(ctx)
}

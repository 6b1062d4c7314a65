// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"context"

	accountDomain "github.com/allisson/notevault/internal/account/domain"
)

// accountKey is a context key type for storing authenticated accounts.
type accountKey struct{}

// WithAccount stores an authenticated account in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithAccount(ctx context.Context, account *accountDomain.Account) context.Context {
	return context.WithValue(ctx, accountKey{}, account)
}

// GetAccount retrieves an authenticated account from the context.
// Returns (account, true) if an account is present, or (nil, false) if none was set.
func GetAccount(ctx context.Context) (*accountDomain.Account, bool) {
	account, ok := ctx.Value(accountKey{}).(*accountDomain.Account)
	return account, ok
}

// Package identity wraps the external identity provider: credential
// registration, login, logout and session-change subscription. The session
// is the currently authenticated user, or nil.
package identity

import "context"

// User is the authenticated identity as the provider reports it.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Client is what the rest of the module needs from the identity provider.
// Subscribe invokes the callback immediately with the current (possibly
// nil) user and again on every session change; the returned func
// unsubscribes.
type Client interface {
	Register(ctx context.Context, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	Logout(ctx context.Context) error
	CurrentUser() *User
	Subscribe(fn func(*User)) func()
}

package api

import (
	"context"

	"github.com/tactyo/tactyo/internal/state"
)

// Me returns the current session user via GET /api/me.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and persists the session cookie from the
// response.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var user User
	err := c.post(ctx, "/api/auth/login", LoginRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new user. The first user of an installation
// becomes owner; invite-token registrations join the inviting project
// directly.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.post(ctx, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the server session and discards the persisted cookie.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	return c.state.Delete(ctx, state.KeySessionCookie)
}

// Users lists the account's users (admin surface).
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/nomanion/nomadmin/internal/models"
)

// LoginResponse is the backend's reply to a successful credential
// exchange. Unlike resource endpoints it is not wrapped in a data
// envelope.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RequestOTP asks the backend to email a one-time password.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/request-otp", nil, body, nil)
}

// VerifyOTP exchanges an emailed one-time password for a session token.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "otp": otp}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoginWithPassword exchanges an email/password pair for a session token.
func (c *Client) LoginWithPassword(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the authenticated user's profile. Used at startup to
// revalidate a stored token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var env struct {
		Data *models.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &Error{Message: "empty profile response"}
	}
	return env.Data, nil
}

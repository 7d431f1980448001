package api

import (
	"context"
	"net/http"

	"github.com/nomanion/nomadmin/internal/models"
)

// SubscriptionStatus returns the authenticated user's subscription.
func (c *Client) SubscriptionStatus(ctx context.Context) (*models.Subscription, error) {
	var env struct {
		Data *models.Subscription `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/subscription/status", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ListSubscriptions returns every subscription on the platform. Admin
// only.
func (c *Client) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var env struct {
		Data []models.Subscription `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/subscription", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetStats returns the dashboard statistics snapshot.
func (c *Client) GetStats(ctx context.Context) (*models.Stats, error) {
	var env struct {
		Data *models.Stats `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/stats", nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &Error{Message: "empty stats response"}
	}
	return env.Data, nil
}

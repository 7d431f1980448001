package api

import (
	"context"
	"net/http"

	"github.com/nomanion/nomadmin/internal/models"
)

// ListNomads returns the platform's content authors. Admin only.
func (c *Client) ListNomads(ctx context.Context, opts ListOptions) ([]models.User, *models.Pagination, error) {
	var users []models.User
	page, err := c.getList(ctx, "/user/nomads", opts.values(), &users)
	if err != nil {
		return nil, nil, err
	}
	return users, page, nil
}

// ListExplorers returns the platform's readers. Admin only.
func (c *Client) ListExplorers(ctx context.Context, opts ListOptions) ([]models.User, *models.Pagination, error) {
	var users []models.User
	page, err := c.getList(ctx, "/user/explorers", opts.values(), &users)
	if err != nil {
		return nil, nil, err
	}
	return users, page, nil
}

// UpdateNomad applies a partial update to a nomad account.
func (c *Client) UpdateNomad(ctx context.Context, id string, updates map[string]any) error {
	return c.do(ctx, http.MethodPatch, "/user/nomads/"+id, nil, updates, nil)
}

// DeleteNomad removes a nomad account.
func (c *Client) DeleteNomad(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/nomads/"+id, nil, nil, nil)
}

// UpdateExplorer applies a partial update to an explorer account.
func (c *Client) UpdateExplorer(ctx context.Context, id string, updates map[string]any) error {
	return c.do(ctx, http.MethodPatch, "/user/explorers/"+id, nil, updates, nil)
}

// ExplorerAction posts an administrative action (suspend, reinstate, …)
// against an explorer account. The action payload is passed through to the
// backend untouched.
func (c *Client) ExplorerAction(ctx context.Context, id string, action map[string]any) error {
	return c.do(ctx, http.MethodPost, "/user/explorers/"+id, nil, action, nil)
}

// DeleteExplorer removes an explorer account.
func (c *Client) DeleteExplorer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/explorers/"+id, nil, nil, nil)
}

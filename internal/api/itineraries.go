package api

import (
	"context"
	"net/http"

	"github.com/nomanion/nomadmin/internal/models"
)

// ListPublishedItineraries returns publicly visible itineraries.
func (c *Client) ListPublishedItineraries(ctx context.Context, opts ListOptions) ([]models.Itinerary, *models.Pagination, error) {
	var items []models.Itinerary
	page, err := c.getList(ctx, "/itinerary", opts.values(), &items)
	if err != nil {
		return nil, nil, err
	}
	return items, page, nil
}

// ListDraftItineraries returns unpublished drafts. Admin only.
func (c *Client) ListDraftItineraries(ctx context.Context, opts ListOptions) ([]models.Itinerary, *models.Pagination, error) {
	var items []models.Itinerary
	page, err := c.getList(ctx, "/itinerary/admin/drafts", opts.values(), &items)
	if err != nil {
		return nil, nil, err
	}
	return items, page, nil
}

// ListMyItineraries returns itineraries authored by the authenticated
// user.
func (c *Client) ListMyItineraries(ctx context.Context, opts ListOptions) ([]models.Itinerary, *models.Pagination, error) {
	var items []models.Itinerary
	page, err := c.getList(ctx, "/itinerary/my/itineraries", opts.values(), &items)
	if err != nil {
		return nil, nil, err
	}
	return items, page, nil
}

// GetItinerary fetches a single itinerary by ID.
func (c *Client) GetItinerary(ctx context.Context, id string) (*models.Itinerary, error) {
	var env struct {
		Data *models.Itinerary `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/itinerary/"+id, nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// CreateItinerary creates an itinerary from the given fields.
func (c *Client) CreateItinerary(ctx context.Context, fields map[string]any) (*models.Itinerary, error) {
	var env struct {
		Data *models.Itinerary `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/itinerary", nil, fields, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// UpdateItinerary replaces an itinerary's editable fields.
func (c *Client) UpdateItinerary(ctx context.Context, id string, fields map[string]any) (*models.Itinerary, error) {
	var env struct {
		Data *models.Itinerary `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/itinerary/"+id, nil, fields, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// DeleteItinerary removes an itinerary.
func (c *Client) DeleteItinerary(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/itinerary/"+id, nil, nil, nil)
}

// PublishItinerary makes a draft publicly visible. Admin only.
func (c *Client) PublishItinerary(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/itinerary/"+id+"/publish", nil, nil, nil)
}

// DisableItinerary takes a published itinerary down with a reason shown
// to its author. Admin only.
func (c *Client) DisableItinerary(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPatch, "/itinerary/"+id+"/disable", nil, body, nil)
}

// LikeItinerary toggles the authenticated user's like on an itinerary.
func (c *Client) LikeItinerary(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/itinerary/"+id+"/like", nil, nil, nil)
}

// SummarizeItinerary asks the backend to condense a description to the
// given word range.
func (c *Client) SummarizeItinerary(ctx context.Context, description string, minWords, maxWords int) (string, error) {
	body := map[string]any{
		"description": description,
		"minWords":    minWords,
		"maxWords":    maxWords,
	}
	var env struct {
		Data string `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/itinerary/summarize", nil, body, &env); err != nil {
		return "", err
	}
	return env.Data, nil
}

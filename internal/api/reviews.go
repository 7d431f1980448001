package api

import (
	"context"
	"net/http"

	"github.com/nomanion/nomadmin/internal/models"
)

// ListPendingReviews returns reviews awaiting moderation. Admin only.
func (c *Client) ListPendingReviews(ctx context.Context) ([]models.Review, error) {
	var env struct {
		Data []models.Review `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/itinerary/reviews/pending", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ListItineraryReviews returns the reviews on a single itinerary.
func (c *Client) ListItineraryReviews(ctx context.Context, itineraryID string) ([]models.Review, error) {
	var env struct {
		Data []models.Review `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/itinerary/"+itineraryID+"/reviews", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// CreateReview posts a review on an itinerary. It enters the moderation
// queue as pending.
func (c *Client) CreateReview(ctx context.Context, itineraryID string, rating int, comment string) (*models.Review, error) {
	body := map[string]any{"rating": rating, "comment": comment}
	var env struct {
		Data *models.Review `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/itinerary/"+itineraryID+"/review", nil, body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ApproveReview publishes a pending review. Admin only.
func (c *Client) ApproveReview(ctx context.Context, itineraryID, reviewID string) error {
	return c.do(ctx, http.MethodPatch, "/itinerary/"+itineraryID+"/review/"+reviewID+"/approve", nil, nil, nil)
}

// RejectReview declines a pending review with a reason. Admin only.
func (c *Client) RejectReview(ctx context.Context, itineraryID, reviewID, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPatch, "/itinerary/"+itineraryID+"/review/"+reviewID+"/reject", nil, body, nil)
}

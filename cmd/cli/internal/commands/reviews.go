package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/nomanion/nomadmin/internal/models"
)

type ReviewsCmd struct {
	Pending ReviewPendingCmd `cmd:"" default:"1" help:"List reviews awaiting moderation"`
	List    ReviewListCmd    `cmd:"" help:"List the reviews on an itinerary"`
	Approve ReviewApproveCmd `cmd:"" help:"Approve a pending review"`
	Reject  ReviewRejectCmd  `cmd:"" help:"Reject a pending review"`
}

type ReviewPendingCmd struct{}

func (p *ReviewPendingCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	reviews, err := app.client.ListPendingReviews(ctx)
	if err != nil {
		return err
	}

	printReviews(reviews)
	return nil
}

type ReviewListCmd struct {
	ItineraryID string `arg:"" help:"Itinerary ID"`
}

func (l *ReviewListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	reviews, err := app.client.ListItineraryReviews(ctx, l.ItineraryID)
	if err != nil {
		return err
	}

	printReviews(reviews)
	return nil
}

func printReviews(reviews []models.Review) {
	if len(reviews) == 0 {
		fmt.Println("No reviews found.")
		return
	}

	fmt.Printf("%-26s %-26s %-20s %-7s %-10s %s\n",
		"ID", "Itinerary", "Author", "Rating", "Status", "Comment")
	fmt.Println(strings.Repeat("─", 130))

	for _, r := range reviews {
		author := ""
		if r.Author != nil {
			author = r.Author.FullName
		}
		fmt.Printf("%-26s %-26s %-20s %-7d %-10s %s\n",
			r.ID,
			r.ItineraryID,
			truncate(author, 20),
			r.Rating,
			r.Status,
			truncate(r.Comment, 40))
	}
}

type ReviewApproveCmd struct {
	ItineraryID string `arg:"" help:"Itinerary ID"`
	ReviewID    string `arg:"" help:"Review ID"`
}

func (a *ReviewApproveCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	if err := app.client.ApproveReview(ctx, a.ItineraryID, a.ReviewID); err != nil {
		return err
	}
	fmt.Println("Approved.")
	return nil
}

type ReviewRejectCmd struct {
	ItineraryID string `arg:"" help:"Itinerary ID"`
	ReviewID    string `arg:"" help:"Review ID"`
	Reason      string `help:"Reason recorded against the rejection" required:""`
}

func (r *ReviewRejectCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	if err := app.client.RejectReview(ctx, r.ItineraryID, r.ReviewID, r.Reason); err != nil {
		return err
	}
	fmt.Println("Rejected.")
	return nil
}

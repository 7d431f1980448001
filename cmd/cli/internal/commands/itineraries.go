package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/nomanion/nomadmin/internal/api"
	"github.com/nomanion/nomadmin/internal/models"
)

type ItinerariesCmd struct {
	List      ItineraryListCmd      `cmd:"" default:"1" help:"List itineraries"`
	Get       ItineraryGetCmd       `cmd:"" help:"Show a single itinerary"`
	Publish   ItineraryPublishCmd   `cmd:"" help:"Publish a draft"`
	Disable   ItineraryDisableCmd   `cmd:"" help:"Take a published itinerary down"`
	Delete    ItineraryDeleteCmd    `cmd:"" help:"Delete an itinerary"`
	Summarize ItinerarySummarizeCmd `cmd:"" help:"Condense a description"`
}

type ItineraryListCmd struct {
	Drafts bool   `help:"List unpublished drafts instead of published itineraries"`
	Mine   bool   `help:"List itineraries authored by the signed-in account"`
	Search string `help:"Filter by title or destination"`
	Page   int    `help:"Page number" default:"1"`
	Limit  int    `help:"Items per page" default:"20"`
}

func (l *ItineraryListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	opts := api.ListOptions{Page: l.Page, Limit: l.Limit, Search: l.Search}

	var (
		items []models.Itinerary
		page  *models.Pagination
	)
	switch {
	case l.Drafts:
		items, page, err = app.client.ListDraftItineraries(ctx, opts)
	case l.Mine:
		items, page, err = app.client.ListMyItineraries(ctx, opts)
	default:
		items, page, err = app.client.ListPublishedItineraries(ctx, opts)
	}
	if err != nil {
		return err
	}

	printItineraries(items, page, l.Page)
	return nil
}

func printItineraries(items []models.Itinerary, page *models.Pagination, pageNum int) {
	if len(items) == 0 {
		fmt.Println("No itineraries found.")
		return
	}

	fmt.Printf("%-26s %-40s %-20s %-10s %s\n",
		"ID", "Title", "Author", "Status", "Likes")
	fmt.Println(strings.Repeat("─", 105))

	for _, it := range items {
		author := ""
		if it.Author != nil {
			author = it.Author.FullName
		}
		fmt.Printf("%-26s %-40s %-20s %-10s %d\n",
			it.ID,
			truncate(it.Title, 40),
			truncate(author, 20),
			it.Status,
			it.Likes)
	}

	if page != nil && page.TotalPages > 1 {
		fmt.Printf("\nPages: %d/%d (%d total)\n", pageNum, page.TotalPages, page.Total)
		if pageNum < page.TotalPages {
			fmt.Printf("Use --page=%d to see the next page\n", pageNum+1)
		}
	}
}

type ItineraryGetCmd struct {
	ID string `arg:"" help:"Itinerary ID"`
}

func (g *ItineraryGetCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	it, err := app.client.GetItinerary(ctx, g.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%-14s %s\n", "Title", it.Title)
	fmt.Printf("%-14s %s\n", "Destination", it.Destination)
	fmt.Printf("%-14s %s\n", "Status", it.Status)
	if it.Author != nil {
		fmt.Printf("%-14s %s (%s)\n", "Author", it.Author.FullName, it.Author.Email)
	}
	fmt.Printf("%-14s %d\n", "Likes", it.Likes)
	if it.Description != "" {
		fmt.Printf("\n%s\n", it.Description)
	}
	return nil
}

type ItineraryPublishCmd struct {
	ID string `arg:"" help:"Itinerary ID"`
}

func (p *ItineraryPublishCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	if err := app.client.PublishItinerary(ctx, p.ID); err != nil {
		return err
	}
	fmt.Println("Published.")
	return nil
}

type ItineraryDisableCmd struct {
	ID     string `arg:"" help:"Itinerary ID"`
	Reason string `help:"Reason shown to the author" required:""`
}

func (d *ItineraryDisableCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	if err := app.client.DisableItinerary(ctx, d.ID, d.Reason); err != nil {
		return err
	}
	fmt.Println("Disabled.")
	return nil
}

type ItineraryDeleteCmd struct {
	ID string `arg:"" help:"Itinerary ID"`
}

func (d *ItineraryDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	if err := app.client.DeleteItinerary(ctx, d.ID); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

type ItinerarySummarizeCmd struct {
	Description string `arg:"" help:"Description text to condense"`
	MinWords    int    `help:"Minimum summary length" default:"30"`
	MaxWords    int    `help:"Maximum summary length" default:"60"`
}

func (s *ItinerarySummarizeCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	summary, err := app.client.SummarizeItinerary(ctx, s.Description, s.MinWords, s.MaxWords)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

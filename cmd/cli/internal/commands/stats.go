package commands

import (
	"context"
	"fmt"
	"strings"
)

type StatsCmd struct{}

func (s *StatsCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	stats, err := app.client.GetStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%-24s %d\n", "Users", stats.TotalUsers)
	fmt.Printf("%-24s %d\n", "Nomads", stats.TotalNomads)
	fmt.Printf("%-24s %d\n", "Explorers", stats.TotalExplorers)
	fmt.Printf("%-24s %d\n", "Itineraries", stats.TotalItineraries)
	fmt.Printf("%-24s %d\n", "Published", stats.PublishedItineraries)
	fmt.Printf("%-24s %d\n", "Drafts", stats.DraftItineraries)
	fmt.Printf("%-24s %d\n", "Pending reviews", stats.PendingReviews)
	fmt.Printf("%-24s %d\n", "Active subscriptions", stats.ActiveSubscriptions)
	return nil
}

type SubscriptionsCmd struct {
	List   SubscriptionListCmd   `cmd:"" default:"1" help:"List all subscriptions"`
	Status SubscriptionStatusCmd `cmd:"" help:"Show the signed-in account's subscription"`
}

type SubscriptionListCmd struct{}

func (l *SubscriptionListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	subs, err := app.client.ListSubscriptions(ctx)
	if err != nil {
		return err
	}

	if len(subs) == 0 {
		fmt.Println("No subscriptions found.")
		return nil
	}

	fmt.Printf("%-26s %-30s %-12s %-10s %s\n", "ID", "User", "Plan", "Status", "Expires")
	fmt.Println(strings.Repeat("─", 100))

	for _, sub := range subs {
		user := ""
		if sub.User != nil {
			user = sub.User.Email
		}
		fmt.Printf("%-26s %-30s %-12s %-10s %s\n",
			sub.ID,
			truncate(user, 30),
			sub.Plan,
			sub.Status,
			sub.ExpiresAt.Format("2006-01-02"))
	}
	return nil
}

type SubscriptionStatusCmd struct{}

func (s *SubscriptionStatusCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	sub, err := app.client.SubscriptionStatus(ctx)
	if err != nil {
		return err
	}
	if sub == nil {
		fmt.Println("No active subscription.")
		return nil
	}

	fmt.Printf("%-10s %s\n", "Plan", sub.Plan)
	fmt.Printf("%-10s %s\n", "Status", sub.Status)
	fmt.Printf("%-10s %s\n", "Started", sub.StartedAt.Format("2006-01-02"))
	fmt.Printf("%-10s %s\n", "Expires", sub.ExpiresAt.Format("2006-01-02"))
	return nil
}

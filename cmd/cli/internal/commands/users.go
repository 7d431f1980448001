package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/nomanion/nomadmin/internal/api"
	"github.com/nomanion/nomadmin/internal/models"
)

type NomadsCmd struct {
	List   NomadListCmd   `cmd:"" default:"1" help:"List nomad accounts"`
	Update NomadUpdateCmd `cmd:"" help:"Update a nomad account"`
	Delete NomadDeleteCmd `cmd:"" help:"Delete a nomad account"`
}

type ExplorersCmd struct {
	List   ExplorerListCmd   `cmd:"" default:"1" help:"List explorer accounts"`
	Action ExplorerActionCmd `cmd:"" help:"Run an administrative action against an explorer"`
	Delete ExplorerDeleteCmd `cmd:"" help:"Delete an explorer account"`
}

type NomadListCmd struct {
	Search string `help:"Filter by name or email"`
	Page   int    `help:"Page number" default:"1"`
	Limit  int    `help:"Items per page" default:"20"`
}

func (l *NomadListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	users, page, err := app.client.ListNomads(ctx, api.ListOptions{Page: l.Page, Limit: l.Limit, Search: l.Search})
	if err != nil {
		return err
	}

	printUsers(users, page, l.Page)
	return nil
}

type ExplorerListCmd struct {
	Search string `help:"Filter by name or email"`
	Page   int    `help:"Page number" default:"1"`
	Limit  int    `help:"Items per page" default:"20"`
}

func (l *ExplorerListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	users, page, err := app.client.ListExplorers(ctx, api.ListOptions{Page: l.Page, Limit: l.Limit, Search: l.Search})
	if err != nil {
		return err
	}

	printUsers(users, page, l.Page)
	return nil
}

func printUsers(users []models.User, page *models.Pagination, pageNum int) {
	if len(users) == 0 {
		fmt.Println("No accounts found.")
		return
	}

	fmt.Printf("%-26s %-28s %-35s %s\n", "ID", "Name", "Email", "Role")
	fmt.Println(strings.Repeat("─", 100))

	for _, u := range users {
		fmt.Printf("%-26s %-28s %-35s %s\n",
			u.ID,
			truncate(u.FullName, 28),
			truncate(u.Email, 35),
			u.Role)
	}

	if page != nil && page.TotalPages > 1 {
		fmt.Printf("\nPages: %d/%d (%d total)\n", pageNum, page.TotalPages, page.Total)
	}
}

type NomadUpdateCmd struct {
	ID    string `arg:"" help:"Nomad account ID"`
	Name  string `help:"New display name"`
	Email string `help:"New email address"`
}

func (u *NomadUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	updates := map[string]any{}
	if u.Name != "" {
		updates["fullName"] = u.Name
	}
	if u.Email != "" {
		updates["email"] = u.Email
	}
	if len(updates) == 0 {
		return fmt.Errorf("nothing to update: pass --name or --email")
	}

	if err := app.client.UpdateNomad(ctx, u.ID, updates); err != nil {
		return err
	}
	fmt.Println("Updated.")
	return nil
}

type NomadDeleteCmd struct {
	ID string `arg:"" help:"Nomad account ID"`
}

func (d *NomadDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	if err := app.client.DeleteNomad(ctx, d.ID); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

type ExplorerActionCmd struct {
	ID     string `arg:"" help:"Explorer account ID"`
	Action string `arg:"" help:"Action to run (suspend, reinstate)"`
	Reason string `help:"Reason recorded against the action"`
}

func (a *ExplorerActionCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	payload := map[string]any{"action": a.Action}
	if a.Reason != "" {
		payload["reason"] = a.Reason
	}

	if err := app.client.ExplorerAction(ctx, a.ID, payload); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}

type ExplorerDeleteCmd struct {
	ID string `arg:"" help:"Explorer account ID"`
}

func (d *ExplorerDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}
	if _, err := app.requireSession(ctx); err != nil {
		return err
	}

	if err := app.client.DeleteExplorer(ctx, d.ID); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

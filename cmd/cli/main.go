package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/nomanion/nomadmin/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login         commands.LoginCmd         `cmd:"" help:"Sign in to the admin dashboard"`
		Logout        commands.LogoutCmd        `cmd:"" help:"Sign out and clear the stored credential"`
		Whoami        commands.WhoamiCmd        `cmd:"" help:"Show the signed-in account"`
		Dashboard     commands.DashboardCmd     `cmd:"" help:"Open the interactive dashboard"`
		Itineraries   commands.ItinerariesCmd   `cmd:"" help:"Manage itineraries"`
		Nomads        commands.NomadsCmd        `cmd:"" help:"Manage nomad accounts"`
		Explorers     commands.ExplorersCmd     `cmd:"" help:"Manage explorer accounts"`
		Reviews       commands.ReviewsCmd       `cmd:"" help:"Moderate itinerary reviews"`
		Subscriptions commands.SubscriptionsCmd `cmd:"" help:"Inspect subscriptions"`
		Stats         commands.StatsCmd         `cmd:"" help:"Show platform statistics"`
		Upload        commands.UploadCmd        `cmd:"" help:"Upload media files"`

		Debug   bool   `help:"Enable debug mode."`
		Server  string `help:"Backend API URL" env:"NOMANION_API_URL"`
		Config  string `help:"Path to the config file" type:"path"`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{
		Debug:      cli.Debug,
		Server:     cli.Server,
		ConfigFile: cli.Config,
		Version:    version,
	})
	cmd.FatalIfErrorf(err)
}

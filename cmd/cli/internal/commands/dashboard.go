package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/nomanion/nomadmin/internal/api"
	"github.com/nomanion/nomadmin/internal/config"
	"github.com/nomanion/nomadmin/internal/logger"
	"github.com/nomanion/nomadmin/internal/session"
	"github.com/nomanion/nomadmin/internal/tokenstore"
	"github.com/nomanion/nomadmin/internal/tui"
)

type DashboardCmd struct{}

func (d *DashboardCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := config.Load(globals.ConfigFile)
	if err != nil {
		return err
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	// Stderr would tear the alt screen, so dashboard logs always go to
	// a file.
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = filepath.Join(dataDir, "nomadmin.log")
	}
	logger.Setup(logger.Options{
		Debug:     globals.Debug,
		File:      logFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
	})

	store, err := tokenstore.NewStore(afero.NewOsFs(), dataDir)
	if err != nil {
		return err
	}

	var opts []api.Option
	if cfg.CacheDir != "" {
		opts = append(opts, api.WithHTTPClient(api.NewCachingHTTPClient(cfg.CacheDir)))
	}

	client := api.NewClient(cfg.ResolveBaseURL(globals.Server), store, opts...)
	sessions := session.NewManager(store, client, session.WithRequireAdmin())

	return tui.RunDashboard(client, sessions)
}

package commands

import (
	"context"
	"errors"

	"github.com/spf13/afero"

	"github.com/nomanion/nomadmin/internal/api"
	"github.com/nomanion/nomadmin/internal/config"
	"github.com/nomanion/nomadmin/internal/guard"
	"github.com/nomanion/nomadmin/internal/logger"
	"github.com/nomanion/nomadmin/internal/session"
	"github.com/nomanion/nomadmin/internal/tokenstore"
)

// Globals carries the top-level flags into every command.
type Globals struct {
	Debug      bool
	Server     string
	ConfigFile string
	Version    string
}

// errNotSignedIn is returned by protected commands when no usable
// session exists.
var errNotSignedIn = errors.New("not signed in: run 'nomadmin login'")

// app holds the wired-up client stack shared by all commands.
type app struct {
	cfg      *config.Config
	store    *tokenstore.Store
	client   *api.Client
	sessions *session.Manager
}

// setup loads the config, installs the logger, and wires the token
// store, API client, and session manager together.
func (g *Globals) setup() (*app, error) {
	cfg, err := config.Load(g.ConfigFile)
	if err != nil {
		return nil, err
	}

	logger.Setup(logger.Options{
		Debug:     g.Debug,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
	})

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}

	store, err := tokenstore.NewStore(afero.NewOsFs(), dataDir)
	if err != nil {
		return nil, err
	}

	var opts []api.Option
	if cfg.CacheDir != "" {
		opts = append(opts, api.WithHTTPClient(api.NewCachingHTTPClient(cfg.CacheDir)))
	}

	client := api.NewClient(cfg.ResolveBaseURL(g.Server), store, opts...)
	sessions := session.NewManager(store, client, session.WithRequireAdmin())

	return &app{
		cfg:      cfg,
		store:    store,
		client:   client,
		sessions: sessions,
	}, nil
}

// requireSession revalidates the stored credential and gates the
// command on an admin session.
func (a *app) requireSession(ctx context.Context) (session.State, error) {
	state := a.sessions.CheckAuth(ctx)

	if guard.New(true).Resolve(state) != guard.ActionRender {
		return state, errNotSignedIn
	}
	return state, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

package app

import (
	"context"
	"fmt"

	"github.com/quilltui/quill/internal/activity"
	"github.com/quilltui/quill/internal/config"
	"github.com/quilltui/quill/internal/logging"
	"github.com/quilltui/quill/internal/prefs"
	"github.com/quilltui/quill/internal/router"
	"github.com/quilltui/quill/internal/session"
	"github.com/quilltui/quill/internal/social"
	"github.com/quilltui/quill/internal/ui"
)

// Options configure the quill application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/quill/prefs.toml
	OpenPath   string // start location, e.g. /feed or /feed/post/7
}

// Run boots the quill TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closeLog, err := logging.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	store, err := session.Open(cfg.SessionDir())
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() { _ = store.Close() }()

	track := &activity.Tracker{}

	client, err := social.NewClient(social.Options{
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		APIKeyHeader: cfg.APIKeyHeader,
		Session:      store,
		Tracker:      track,
	})
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	route, ok := router.Resolve(opts.OpenPath)
	if !ok {
		// Unknown locations are logged by the router and land on the default.
		route = router.Route{}
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logging.L().Info().Str("base_url", cfg.BaseURL).Msg("starting")

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   store,
		Tracker:   track,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Start:     route,
	}
	return ui.Run(uiOpts)
}

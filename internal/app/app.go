package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clientdesk/clientdesk/internal/clients"
	"github.com/clientdesk/clientdesk/internal/config"
	"github.com/clientdesk/clientdesk/internal/listdetail"
	"github.com/clientdesk/clientdesk/internal/prefs"
	"github.com/clientdesk/clientdesk/internal/ui"
)

// ClientContext is the list-detail context specialised to clients.
type ClientContext = listdetail.Context[clients.Summary, clients.Record]

// Options configure the clientdesk application.
type Options struct {
	Config    config.Config
	PrefsPath string // empty uses default ~/.config/clientdesk/prefs.toml

	// Logger overrides the file logger built from Config.LogFile.
	Logger *zerolog.Logger
}

// NewClient builds the API client described by cfg.
func NewClient(cfg config.Config, logger zerolog.Logger) (*clients.Client, error) {
	client, err := clients.NewClient(cfg.APIURL,
		clients.WithToken(cfg.APIToken),
		clients.WithLogger(logger.With().Str("component", "api").Logger()),
	)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	return client, nil
}

// NewClientContext wires f into a list-detail context configured from cfg.
// Mount loads the page described by defaults.
func NewClientContext(cfg config.Config, f clients.Fetcher, defaults listdetail.ListViewParams, logger *zerolog.Logger) *ClientContext {
	adapter := clients.NewAdapter(f)
	return listdetail.New(listdetail.Options[clients.Summary, clients.Record]{
		EntityType:    cfg.EntityType,
		Cache:         cfg.CacheConfig(),
		SelectionMode: cfg.SelectionMode,
		DefaultParams: defaults,
		LoadList:      adapter.LoadList,
		LoadDetail:    adapter.LoadDetail,
		Logger:        logger,
	})
}

// Run boots the clientdesk TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config

	logger := opts.Logger
	if logger == nil {
		fileLogger, closeLog, err := OpenLogger(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()
		logger = &fileLogger
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	client, err := NewClient(cfg, *logger)
	if err != nil {
		return err
	}

	lc := NewClientContext(cfg, client, userPrefs.Apply(cfg.ListDefaults()), logger)
	defer lc.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info().
		Str("api", cfg.APIURL).
		Str("entity", cfg.EntityType).
		Dur("poll", cfg.PollInterval).
		Msg("starting clientdesk")

	refresher := NewRefresher(lc, cfg.PollInterval, nil, logger.With().Str("component", "refresher").Logger())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Mount blocks on the first page; the UI shows a connecting state
		// until it lands.
		lc.Mount(gctx)
		return nil
	})
	g.Go(func() error {
		return refresher.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		final, err := ui.Run(gctx, ui.Options{
			Controller: lc,
			Prefs:      userPrefs,
			PrefsPath:  opts.PrefsPath,
			Logger:     logger,
		})
		if saveErr := prefs.Save(opts.PrefsPath, final); saveErr != nil {
			logger.Warn().Err(saveErr).Msg("save prefs")
		}
		if err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	})
	return g.Wait()
}

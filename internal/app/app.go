package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/deskremote/internal/config"
	"github.com/five82/deskremote/internal/engine"
	"github.com/five82/deskremote/internal/logging"
	"github.com/five82/deskremote/internal/prefs"
	"github.com/five82/deskremote/internal/remote"
	"github.com/five82/deskremote/internal/state"
	"github.com/five82/deskremote/internal/ui"
)

// ErrNoServer is returned when no server address is known from flags,
// config or saved preferences.
var ErrNoServer = errors.New("no server address: pass -url or set server_url in config")

var _ ui.Controller = (*engine.Engine)(nil)

// Options configure the deskremote application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/deskremote/prefs.toml
	ServerURL  string        // overrides config and saved prefs
	PollEvery  time.Duration // zero uses config
	Forget     bool          // clear the saved server before resolving
}

// Run boots the deskremote TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	if opts.Forget {
		if err := prefs.ForgetServer(prefsPath); err != nil {
			return fmt.Errorf("forget server: %w", err)
		}
	}
	userPrefs, _ := prefs.Load(prefsPath)

	target, err := resolveServerURL(opts.ServerURL, cfg.ServerURL, userPrefs.ServerURL)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	client, err := remote.NewClient(target, remote.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	store := &state.Store{}
	eng, err := engine.New(engine.Options{
		Client:            client,
		Store:             store,
		Logger:            logger,
		ServerURL:         client.BaseURL(),
		PollInterval:      cfg.PollInterval,
		ReconnectInterval: cfg.ReconnectInterval,
		DebounceWindow:    cfg.Debounce,
		HistorySize:       cfg.HistorySize,
	})
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := eng.Start(runCtx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer eng.Stop()

	logger.Info().Str("server", client.BaseURL()).Dur("poll", cfg.PollInterval).Msg("deskremote started")

	// Remember the server once it has answered.
	go RememberServer(runCtx, store, prefsPath, client.BaseURL(), defaultWatchInterval, logger)

	return ui.Run(ui.Options{
		Context:           runCtx,
		Controller:        eng,
		Logger:            logger,
		ReconnectInterval: cfg.ReconnectInterval,
		ThemeName:         userPrefs.Theme,
		PrefsPath:         prefsPath,
	})
}

// resolveServerURL picks the first non-empty address in precedence order:
// flag, config file, saved preferences.
func resolveServerURL(flag, configured, saved string) (string, error) {
	for _, candidate := range []string{flag, configured, saved} {
		if c := strings.TrimSpace(candidate); c != "" {
			if _, err := remote.ParseBaseURL(c); err != nil {
				return "", fmt.Errorf("server address %q: %w", c, err)
			}
			return c, nil
		}
	}
	return "", ErrNoServer
}


package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/five82/jot/internal/cli"
	"github.com/five82/jot/internal/config"
	"github.com/five82/jot/internal/logging"
	"github.com/five82/jot/internal/prefs"
	"github.com/five82/jot/internal/session"
	"github.com/five82/jot/internal/todoapi"
	"github.com/five82/jot/internal/ui"
)

// Options configure the jot application.
type Options struct {
	ConfigPath string
	PrefsPath  string   // empty uses default ~/.config/jot/prefs.toml
	BaseURL    string   // overrides service_base_url when set
	Args       []string // subcommand and its arguments; empty opens the UI

	Stdout io.Writer
	Stderr io.Writer
}

// Run loads configuration, connects a session to the todo service, then
// either runs one command or opens the interactive UI. It returns the process
// exit code along with any start-up error.
func Run(ctx context.Context, opts Options) (int, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return 1, fmt.Errorf("load config: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.ServiceBaseURL = opts.BaseURL
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return 1, fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	client, err := todoapi.NewClient(cfg.ServiceBaseURL, todoapi.Options{
		Timeout:    cfg.RequestTimeout,
		Logger:     logger,
		StrictList: cfg.StrictList,
	})
	if err != nil {
		return 1, fmt.Errorf("init todo client: %w", err)
	}
	s := session.New(client, session.Options{Logger: logger})

	if len(opts.Args) > 0 {
		logger.Debug("running command", zap.Strings("args", opts.Args))
		return cli.Run(ctx, opts.Args, cli.Options{
			Session: s,
			Out:     writerOr(opts.Stdout, os.Stdout),
			Err:     writerOr(opts.Stderr, os.Stderr),
		}), nil
	}

	prefsPath, err := prefs.Path(opts.PrefsPath)
	if err != nil {
		return 1, fmt.Errorf("resolve prefs path: %w", err)
	}
	userPrefs := prefs.Load(prefsPath)

	logger.Info("starting ui", zap.String("service", client.BaseURL()))
	uiOpts := ui.Options{
		Context:    ctx,
		Session:    s,
		ServiceURL: client.BaseURL(),
		LogFile:    cfg.LogFile,
		ThemeName:  userPrefs.Theme,
		Filter:     userPrefs.Filter,
		PrefsPath:  prefsPath,
	}
	if err := ui.Run(uiOpts); err != nil {
		return 1, err
	}
	return 0, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

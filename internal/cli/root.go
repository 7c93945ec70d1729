// Package cli is the tagdeck command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/llehouerou/tagdeck/internal/app"
	"github.com/llehouerou/tagdeck/internal/config"
	"github.com/llehouerou/tagdeck/internal/logging"
	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/state"
	"github.com/llehouerou/tagdeck/internal/stderr"
)

var version = "dev"

type options struct {
	configPath string
	logPath    string
	debug      bool
	noState    bool
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:     "tagdeck [folder]",
		Short:   "Browse folders and edit music tags from the keyboard",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var root string
			if len(args) == 1 {
				root = args[0]
			}
			return run(cmd.Context(), opts, root)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/tagdeck/config.toml)")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "log file (default is $XDG_STATE_HOME/tagdeck/tagdeck.log)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log at debug level")
	cmd.Flags().BoolVar(&opts.noState, "no-state", false, "do not restore or save the session and edit history")

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return config.LoadFrom(path)
}

func logLevel(cfg *config.Config, debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}
	return logging.ParseLevel(cfg.LogLevel())
}

func run(ctx context.Context, opts *options, root string) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	logPath := opts.logPath
	if logPath == "" {
		logPath = logging.DefaultPath()
	}
	logger, err := logging.Open(logPath, logLevel(cfg, opts.debug))
	if err != nil {
		return err
	}
	defer logger.Close()
	log := logger.Named("cli")
	log.Info("starting", "version", version, "root", root)

	var stateMgr state.Interface
	if !opts.noState && !cfg.State.Disabled {
		mgr, err := state.Open(logger.Named("state"))
		if err != nil {
			log.Error(err, "open state, continuing without persistence")
		} else {
			stateMgr = mgr
		}
	}

	appOpts := app.Options{Root: root, Log: logger.Named("app")}
	watcher, err := navigator.NewWatcher(logger.Named("watcher"))
	if err != nil {
		log.Error(err, "start folder watcher")
	} else {
		appOpts.Watcher = watcher
	}

	m, err := app.New(cfg, stateMgr, appOpts)
	if err != nil {
		if appOpts.Watcher != nil {
			_ = appOpts.Watcher.Close()
		}
		if stateMgr != nil {
			_ = stateMgr.Close()
		}
		return err
	}

	capture, err := stderr.Start(logger.Named("stderr"))
	if err != nil {
		log.Error(err, "capture stderr")
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err = p.Run()
	capture.Stop()

	if err != nil {
		// The quit path closes the model itself.
		m.Close()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("terminated")
			return nil
		}
		log.Error(err, "run")
		return err
	}
	return nil
}

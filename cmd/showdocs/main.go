package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/api"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/config"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/core"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/factory"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/fileserver"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/launcher"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/listener"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/logger"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/version"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	ctx := context.Background()

	version.Print(os.Stdout, version.Get())

	flags, err := config.ParseFlags(args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		logger.Error("Invalid command line", "error", err)
		return 1
	}
	if flags.Version {
		return 0
	}

	// Load configuration: defaults, then file or ConfigMap, then flags
	cfg, err := loadConfig(ctx, args[0], flags)
	if err != nil {
		logger.Error("Configuration error", "error", err)
		return 1
	}

	logger.Configure(logger.Options{Debug: cfg.Debug})
	logger.Info("Using port", "port", cfg.Port)
	if cfg.RootDir != "" {
		logger.Info("Root directory", "root", cfg.RootDir)
	}

	// Start TCP listener
	ln, err := listener.Listen(ctx, cfg.ListenAddr, cfg.Port)
	if err != nil {
		logger.Error("Failed to start listener", "addr", cfg.Address(), "error", err)
		return 1
	}
	defer ln.Close()
	logger.Info("Web server started successfully", "addr", cfg.Address())

	return serve(ln, cfg)
}

// serve runs the file server on ln until a signal stops it. An accept
// failure ends the loop like a shutdown: it is logged and cleanup runs
// as usual.
func serve(ln core.Listener, cfg *config.Config) int {
	server := &core.Server{
		Listener:          ln,
		ConnectionHandler: fileserver.NewHandler(cfg),
	}

	stopSignals := core.WatchSignals(server.Stop, os.Exit)
	defer stopSignals()

	// Start health server (optional)
	if cfg.HealthPort > 0 {
		healthServer := api.NewHealthServer(cfg.HealthAddress(), server.State)
		if err := healthServer.Start(); err != nil {
			logger.Warn("Health server disabled", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				healthServer.Stop(shutdownCtx)
			}()
		}
	}

	var startup core.Launcher = launcher.New()
	if err := startup.Launch(cfg.ExecCommand(runtime.GOOS)); err != nil {
		logger.Warn("Failed to execute startup command", "error", err)
	}

	// Start serving (blocking)
	if err := server.Serve(context.Background()); err != nil {
		logger.Error("Server stopped", "error", err)
	}
	return 0
}

func loadConfig(ctx context.Context, executable string, flags *config.Flags) (*config.Config, error) {
	path := flags.ConfigPath
	if path == "" {
		path = config.FileName(executable)
	}

	settings, err := config.LoadSourceSettings(path)
	if err != nil {
		return nil, err
	}

	source, err := factory.NewSourceFactory(settings).Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create config source: %w", err)
	}

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cfg := config.Default()
	if err := source.Load(loadCtx, cfg); err != nil {
		if !errors.Is(err, config.ErrNotFound) || flags.ConfigPath != "" {
			return nil, err
		}
		logger.Warn("No config file found, using defaults", "source", source.String())
	} else {
		logger.Info("Loaded configuration", "source", source.String())
	}

	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajkula/moni/adapter/outbound/logging"
	"github.com/ajkula/moni/config"
	"github.com/ajkula/moni/domain/model"
)

const version = "0.3.0"

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if opts.showVersion {
		fmt.Printf("moni version %s\n", version)
		os.Exit(0)
	}

	if opts.generateConfig {
		path := opts.configPath
		if path == "" {
			path = config.DefaultFile
		}
		if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
			fmt.Printf("Error generating config file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration file generated at: %s\n", path)
		os.Exit(0)
	}

	cfg := config.DefaultConfig()
	if path := opts.resolveConfigPath(); path != "" {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	opts.apply(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewSlogAdapter(cfg)
	if err != nil {
		fmt.Printf("Error setting up logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("moni stopped", "error", err)
		logger.Shutdown()
		os.Exit(1)
	}
	logger.Shutdown()
}

// run blocks until SIGINT or SIGTERM
func run(cfg *config.Config, logger model.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := buildApp(ctx, cfg, logger, os.Stdout)
	if err != nil {
		return err
	}

	logger.Info("Starting moni",
		"version", version,
		"workspace", cfg.Workspace,
		"command", cfg.ExecuteCommand,
		"shell", a.shellName,
		"interval", cfg.Watch.Interval.String())

	if a.server != nil {
		go func() {
			logger.Info("Monitor listening", "address", a.server.Addr)
			if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Monitor server error", "error", err)
			}
		}()

		defer func() {
			if a.events != nil {
				a.events.Cleanup()
			}
			if a.resources != nil {
				a.resources.Cleanup()
			}
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutdownCancel()
			a.server.Shutdown(shutdownCtx)
		}()
	}

	// Wait for signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return a.watch.Run(ctx)
}

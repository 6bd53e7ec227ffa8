package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ajkula/moni/adapter/inbound/rest"
	"github.com/ajkula/moni/adapter/inbound/websocket"
	"github.com/ajkula/moni/adapter/outbound/filesystem"
	"github.com/ajkula/moni/adapter/outbound/reporting"
	"github.com/ajkula/moni/adapter/outbound/shell"
	"github.com/ajkula/moni/adapter/outbound/storage/memory"
	"github.com/ajkula/moni/config"
	"github.com/ajkula/moni/domain/model"
	"github.com/ajkula/moni/domain/port/outbound"
	"github.com/ajkula/moni/domain/service"
)

// app is the wired watcher with its optional monitor server
type app struct {
	watch     *service.WatchServiceImpl
	resources *service.ResourceMonitorServiceImpl
	events    *websocket.Handler
	server    *http.Server
	logger    model.Logger
	shellName string
}

// buildApp wires every adapter around the watch service. cfg must be valid.
// Background collectors stop with ctx.
func buildApp(ctx context.Context, cfg *config.Config, logger model.Logger, console io.Writer) (*app, error) {
	filter, err := service.NewPathFilter(cfg.FilterConfig())
	if err != nil {
		return nil, err
	}

	observer, err := filesystem.NewObserver(model.DetectMode(cfg.Watch.DetectBy))
	if err != nil {
		return nil, err
	}

	scanner := filesystem.NewTreeScanner(cfg.Workspace, filter)
	store := memory.NewChangeStore()
	runner := shell.NewRunner(cfg.Watch.Shell)

	a := &app{logger: logger}
	if r, ok := runner.(*shell.Runner); ok {
		a.shellName = r.Shell()
	}

	sinks := []outbound.Reporter{reporting.NewLogReporter(logger)}
	if cfg.Console.Enabled {
		sinks = append(sinks, reporting.NewConsolePrinter(
			console,
			reporting.MessagesFromConfig(cfg.DebugMessage),
			cfg.Console.Plain,
		))
	}
	if cfg.Monitor.Enabled {
		a.events = websocket.NewHandler(logger)
		sinks = append(sinks, a.events)
	}
	reporter := reporting.NewMultiReporter(sinks...)

	dispatcher := service.NewActionDispatcher(
		model.ActionSpec{Command: cfg.ExecuteCommand},
		runner,
		reporter,
		logger,
	)

	a.watch, err = service.NewWatchService(
		service.WatchConfig{
			Interval:     cfg.Watch.Interval,
			PruneMissing: cfg.Watch.PruneMissing,
		},
		scanner,
		observer,
		store,
		dispatcher,
		reporter,
		logger,
	)
	if err != nil {
		return nil, err
	}

	if cfg.Monitor.Enabled {
		a.resources = service.NewResourceMonitorService(ctx, a.watch, logger, 0)
		handler := rest.NewHandler(a.watch, a.resources, cfg, logger, a.events)
		a.server = &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Monitor.Address, cfg.Monitor.Port),
			Handler:      handler.Router(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
	}

	return a, nil
}

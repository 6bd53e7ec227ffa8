package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ajkula/moni/domain/model"
	"github.com/ajkula/moni/domain/port/outbound"
)

// ActionDispatcher runs the configured action for one changed file and
// narrates the outcome through the reporter. It never retries and never
// returns an error: failures are reported, not propagated.
type ActionDispatcher struct {
	action   model.ActionSpec
	runner   outbound.CommandRunner
	reporter outbound.Reporter
	logger   outbound.Logger
}

func NewActionDispatcher(
	action model.ActionSpec,
	runner outbound.CommandRunner,
	reporter outbound.Reporter,
	logger outbound.Logger,
) *ActionDispatcher {
	return &ActionDispatcher{
		action:   action,
		runner:   runner,
		reporter: reporter,
		logger:   logger,
	}
}

// Dispatch blocks until the action for path has finished.
func (d *ActionDispatcher) Dispatch(ctx context.Context, path string) model.DispatchOutcome {
	switch {
	case d.action.Callback != nil:
		return d.dispatchCallback(path)
	case d.action.Command != "" && d.runner != nil:
		return d.dispatchCommand(ctx, path)
	default:
		return model.OutcomeNone
	}
}

func (d *ActionDispatcher) dispatchCallback(path string) model.DispatchOutcome {
	actionID := uuid.New().String()
	d.logger.Debug("Invoking callback", "action_id", actionID, "path", path)

	msg, err := d.action.Callback(path)
	defer d.reporter.OnSeparator()

	if err != nil {
		d.logger.Warn("Callback failed", "action_id", actionID, "path", path, "error", err)
		d.reporter.OnError(err.Error())
		return model.OutcomeFailed
	}

	d.reporter.OnSuccess(msg)
	return model.OutcomeSucceeded
}

func (d *ActionDispatcher) dispatchCommand(ctx context.Context, path string) model.DispatchOutcome {
	actionID := uuid.New().String()
	command := model.ExpandCommand(d.action.Command, path)

	d.reporter.OnCommandAbout(command)
	defer d.reporter.OnSeparator()

	start := time.Now()
	result, err := d.runner.Run(ctx, command)
	elapsed := time.Since(start)

	if err != nil {
		d.logger.Error("Failed to spawn command",
			"action_id", actionID, "command", command, "path", path, "error", err)
		d.reporter.OnError(err.Error())
		return model.OutcomeFailed
	}

	if !result.Success() {
		d.logger.Warn("Command exited with error",
			"action_id", actionID, "command", command, "exit_code", result.ExitCode,
			"elapsed", elapsed.String())
		d.reporter.OnError(result.Stderr)
		return model.OutcomeFailed
	}

	d.logger.Info("Command succeeded",
		"action_id", actionID, "command", command, "elapsed", elapsed.String())
	d.reporter.OnSuccess(result.Stdout)
	return model.OutcomeSucceeded
}

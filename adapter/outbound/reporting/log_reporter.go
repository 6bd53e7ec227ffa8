package reporting

import (
	"github.com/ajkula/moni/domain/port/outbound"
)

// LogReporter forwards notifications to the structured logger.
type LogReporter struct {
	logger outbound.Logger
}

func NewLogReporter(logger outbound.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

var _ outbound.Reporter = (*LogReporter)(nil)

func (r *LogReporter) OnStart() {
	r.logger.Info("Watch started")
}

func (r *LogReporter) OnCommandAbout(command string) {
	r.logger.Info("Executing command", "command", command)
}

func (r *LogReporter) OnSuccess(output string) {
	r.logger.Debug("Action succeeded", "output", output)
}

func (r *LogReporter) OnError(output string) {
	r.logger.Warn("Action failed", "output", output)
}

func (r *LogReporter) OnSeparator() {}

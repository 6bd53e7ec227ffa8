package outbound

import (
	"context"

	"github.com/ajkula/moni/domain/model"
)

// CommandRunner executes a command line through a shell and waits for it.
// A non-zero exit is reported in the result; the error is reserved for
// failures to start the process at all.
type CommandRunner interface {
	Run(ctx context.Context, command string) (model.CommandResult, error)
}

// pattern: Functional Core
package cli

import (
	"context"
	"errors"

	"gitship/internal/probe"
	"gitship/internal/prompt"
	"gitship/internal/workflow"
)

// ErrNoSession reports --non-interactive with an empty session store.
var ErrNoSession = errors.New("no prior session; run gitship push interactively first")

// Process exit codes. Reaching the workflow's terminal state exits 0
// even when visualization failed; the rest distinguish failure classes
// for scripting.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitGitMissing = 2
	ExitNoSession  = 3
	ExitCanceled   = 4
	ExitPushFailed = 5
)

// ExitCode maps an error to its process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, probe.ErrGitMissing):
		return ExitGitMissing
	case errors.Is(err, ErrNoSession), errors.Is(err, workflow.ErrConfigIncomplete):
		return ExitNoSession
	case errors.Is(err, prompt.ErrCanceled), errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, workflow.ErrPushFailed):
		return ExitPushFailed
	default:
		return ExitFailure
	}
}

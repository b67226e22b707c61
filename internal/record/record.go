// pattern: Imperative Shell

package record

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gitship/internal/execx"
	"gitship/internal/logging"
)

// slotPattern names recording artifacts: demo-1.cast, demo-2.cast, ...
const slotPattern = "demo-%d.cast"

// Runner executes external commands; satisfied by *execx.Runner.
type Runner interface {
	Run(ctx context.Context, spec execx.Spec) (execx.Result, error)
}

// AllocateSlot reserves a collision-free filename for a terminal
// recording under dir. Allocation is monotonic: indices are tried from
// 1 upward and the first unused name wins. Slots are computed fresh
// every run because recordings are append-only artifacts, not
// replaceable state.
func AllocateSlot(dir string) (string, error) {
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf(slotPattern, i))
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slot %s: %w", candidate, err)
		}
	}
}

// Recorder starts terminal-session captures through asciinema.
type Recorder struct {
	runner Runner
	logger *logging.ScopedLogger
}

// New creates a Recorder.
func New(runner Runner, logger *logging.ScopedLogger) *Recorder {
	return &Recorder{runner: runner, logger: logger}
}

// Start allocates a slot in dir and records an interactive session
// into it. The call blocks until the recording ends.
func (r *Recorder) Start(ctx context.Context, dir string) (string, error) {
	slot, err := AllocateSlot(dir)
	if err != nil {
		return "", err
	}

	r.logger.Info("recording session", "file", slot)
	res, err := r.runner.Run(ctx, execx.Spec{
		Name:        "asciinema",
		Args:        []string{"rec", slot},
		Dir:         dir,
		Interactive: true,
	})
	if err != nil {
		return "", fmt.Errorf("starting asciinema: %w", err)
	}
	if !res.Success {
		return "", fmt.Errorf("asciinema exited with code %d", res.ExitCode)
	}
	return slot, nil
}

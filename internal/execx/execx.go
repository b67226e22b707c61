// pattern: Imperative Shell

package execx

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"gitship/internal/logging"
)

// ErrCommandNotFound reports that a command's binary could not be
// located; distinct from the command starting and exiting nonzero.
var ErrCommandNotFound = errors.New("command not found")

// Spec describes one external invocation. Commands are always built
// from an explicit argument vector; nothing is ever passed through a
// shell.
type Spec struct {
	Name string   // binary to run
	Args []string // discrete arguments
	Dir  string   // working directory, must be set by the caller
	// Interactive wires the child to the caller's stdin/stdout/stderr
	// instead of capturing, for tools that prompt (gh auth login,
	// asciinema). Interactive results carry no captured output.
	Interactive bool
}

// Result is the outcome of one invocation. It is transient and owned
// by the caller; a nonzero exit is reported here, never as a Go error.
type Result struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands and logs every invocation, both
// the command line and its captured output, before returning control
// to the caller. The Runner holds no state between calls.
type Runner struct {
	logger *logging.ScopedLogger
}

// New creates a Runner that logs through the given scoped logger.
func New(logger *logging.ScopedLogger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the spec. A Go error is returned only when the command
// could not start at all (missing binary, canceled context); once the
// process runs, the exit status is communicated through the Result and
// the caller decides fatality.
func (r *Runner) Run(ctx context.Context, spec Spec) (Result, error) {
	cmdline := CommandLine(spec)
	r.logger.Info("$ "+cmdline, "dir", spec.Dir)

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir

	if spec.Interactive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return r.finish(cmdline, cmd.Run(), Result{})
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	return r.finish(cmdline, err, res)
}

// finish classifies the run error, fills in the exit status, and logs
// the outcome. Logging happens before returning so the log remains the
// durable record even if the caller terminates the process next.
func (r *Runner) finish(cmdline string, err error, res Result) (Result, error) {
	if err == nil {
		res.Success = true
		res.ExitCode = 0
		r.logOutcome(cmdline, res)
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.Success = false
		res.ExitCode = exitErr.ExitCode()
		r.logOutcome(cmdline, res)
		return res, nil
	}

	// The process never ran: missing binary, bad dir, canceled context.
	res.Success = false
	res.ExitCode = -1
	if isNotFound(err) {
		err = ErrCommandNotFound
	}
	r.logger.Error("command failed to start", "cmd", cmdline, "error", err)
	return res, err
}

func (r *Runner) logOutcome(cmdline string, res Result) {
	if res.Stdout != "" {
		r.logger.Info(res.Stdout, "cmd", cmdline, "stream", "stdout")
	}
	if res.Stderr != "" {
		r.logger.Info(res.Stderr, "cmd", cmdline, "stream", "stderr")
	}
	if !res.Success {
		r.logger.Warn("command exited nonzero", "cmd", cmdline, "exit_code", res.ExitCode)
	}
}

func isNotFound(err error) bool {
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return true
	}
	var pathErr *os.PathError
	return errors.As(err, &pathErr) && errors.Is(pathErr.Err, exec.ErrNotFound)
}

// CommandLine renders the spec for logging. Arguments containing
// whitespace are quoted for readability only; the rendering is never
// executed.
func CommandLine(spec Spec) string {
	var b strings.Builder
	b.WriteString(spec.Name)
	for _, arg := range spec.Args {
		b.WriteByte(' ')
		if strings.ContainsAny(arg, " \t\"") {
			b.WriteString("\"" + strings.ReplaceAll(arg, "\"", "\\\"") + "\"")
		} else {
			b.WriteString(arg)
		}
	}
	return b.String()
}

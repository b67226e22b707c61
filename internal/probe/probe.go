// pattern: Imperative Shell

package probe

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"gitship/internal/execx"
	"gitship/internal/logging"
)

// ErrGitMissing reports that the hard-required version-control tool is
// absent. The whole run aborts on this before any mutation.
var ErrGitMissing = errors.New("git is required but was not found in PATH")

// Tool names probed on every run.
const (
	ToolGit       = "git"
	ToolHosting   = "gh"
	ToolRecorder  = "asciinema"
	ToolContainer = "docker"
)

// CapabilitySet holds one availability flag per external tool. Git is
// a hard requirement; the rest only gate optional workflow steps.
type CapabilitySet struct {
	Git       bool `yaml:"git"`
	Hosting   bool `yaml:"gh"`
	Recorder  bool `yaml:"asciinema"`
	Container bool `yaml:"docker"`
}

// Runner executes external commands; satisfied by *execx.Runner.
type Runner interface {
	Run(ctx context.Context, spec execx.Spec) (execx.Result, error)
}

// LookPathFunc is the function signature for locating executables.
type LookPathFunc func(name string) (string, error)

// Prober detects external tool availability.
type Prober struct {
	runner   Runner
	lookPath LookPathFunc
	logger   *logging.ScopedLogger
}

// New creates a Prober using exec.LookPath for binary discovery.
func New(runner Runner, logger *logging.ScopedLogger) *Prober {
	return &Prober{runner: runner, lookPath: exec.LookPath, logger: logger}
}

// NewWithLookPath creates a Prober with a custom lookup function (for
// testing).
func NewWithLookPath(runner Runner, lookPath LookPathFunc, logger *logging.ScopedLogger) *Prober {
	return &Prober{runner: runner, lookPath: lookPath, logger: logger}
}

// Probe checks each required tool, logging detected versions. A
// missing git aborts with ErrGitMissing; the soft tools only produce
// warnings and clear their capability flag.
func (p *Prober) Probe(ctx context.Context) (CapabilitySet, error) {
	caps := CapabilitySet{
		Git:       p.detect(ctx, ToolGit),
		Hosting:   p.detect(ctx, ToolHosting),
		Recorder:  p.detect(ctx, ToolRecorder),
		Container: p.detect(ctx, ToolContainer),
	}
	if !caps.Git {
		return caps, ErrGitMissing
	}
	return caps, nil
}

// detect reports whether the tool's binary resolves in PATH. When it
// does, its version query runs through the executor so the version
// lands in the run log.
func (p *Prober) detect(ctx context.Context, tool string) bool {
	if _, err := p.lookPath(tool); err != nil {
		p.logger.Warn("tool not found", "tool", tool)
		return false
	}

	res, err := p.runner.Run(ctx, execx.Spec{Name: tool, Args: []string{"--version"}, Dir: "."})
	if err != nil || !res.Success {
		// Present but not answering its version query; still usable.
		p.logger.Warn("tool version query failed", "tool", tool)
		return true
	}

	p.logger.Info("tool detected", "tool", tool, "version", firstLine(res.Stdout))
	return true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// pattern: Imperative Shell

package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gitship/internal/execx"
	"gitship/internal/history"
	"gitship/internal/logging"
	"gitship/internal/probe"
	"gitship/internal/session"
	"gitship/internal/visual"
)

var (
	// ErrRemoteLinkUnavailable halts the workflow when no hosting CLI is
	// present to create the remote. The session stays valid for a retry
	// after the operator links the remote manually.
	ErrRemoteLinkUnavailable = errors.New("hosting CLI unavailable: add the remote manually (git remote add origin <url>) and re-run")

	// ErrPushFailed reports that pushing failed on the configured branch
	// and on the single documented alternate.
	ErrPushFailed = errors.New("push failed")

	// ErrConfigIncomplete reports missing session fields in
	// non-interactive mode. The operator must run interactively once.
	ErrConfigIncomplete = errors.New("session incomplete: run gitship push interactively once")
)

// Runner executes external commands; satisfied by *execx.Runner.
type Runner interface {
	Run(ctx context.Context, spec execx.Spec) (execx.Result, error)
}

// Prompter asks the operator for decisions that cannot be inferred
// from saved state.
type Prompter interface {
	Ask(label, def string) (string, error)
	Confirm(label string, def bool) (bool, error)
	Notice(msg string)
	Warn(msg string)
}

// Emitter produces the visualization artifact from commit records.
type Emitter interface {
	Emit(projectPath string, records []history.Commit) (string, error)
}

// Options tune one workflow run.
type Options struct {
	NonInteractive bool
	UseDocker      bool // force the optional image build without prompting
	HistoryLimit   int  // commits fed to the visualization (default 30)
}

// Engine drives the publish workflow through its states:
//
//	Start → IdentityChecked → RepoInitialized → RemoteLinked →
//	Committed → Pushed → HistoryExtracted → Visualized → Done
//
// Each transition is guarded by an idempotency check, and the session
// records the last completed state before the next transition begins,
// so an interrupted run resumes at the first unsatisfied transition.
type Engine struct {
	runner    Runner
	store     *session.Store
	prompter  Prompter
	extractor *history.Extractor
	emitter   Emitter
	logger    *logging.ScopedLogger
	caps      probe.CapabilitySet
	opts      Options

	sess    session.Session
	records []history.Commit
}

// New creates an Engine. The emitter may be nil, in which case the
// default static-artifact emitter is used.
func New(runner Runner, store *session.Store, caps probe.CapabilitySet, prompter Prompter, logger *logging.ScopedLogger, opts Options) *Engine {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 30
	}
	return &Engine{
		runner:    runner,
		store:     store,
		prompter:  prompter,
		extractor: history.New(runner, logger),
		emitter:   visual.New(),
		logger:    logger,
		caps:      caps,
		opts:      opts,
	}
}

// SetEmitter replaces the visualization emitter (for testing).
func (e *Engine) SetEmitter(em Emitter) {
	e.emitter = em
}

// transition is one guarded step of the workflow.
type transition struct {
	to  session.State
	run func(ctx context.Context) error
}

// Run loads the session, resolves its identity fields, and walks every
// transition up to Done. A completed session restarts from Start so
// repeated invocations re-verify each step; the idempotency guards
// make re-verified steps no-ops.
func (e *Engine) Run(ctx context.Context) error {
	e.sess = e.store.Load()
	e.sess.Capabilities = e.caps

	if e.sess.State == session.StateDone {
		e.sess.State = session.StateStart
	}

	if err := e.resolveSession(); err != nil {
		return err
	}

	if err := e.maybeBuildImage(ctx); err != nil {
		return err
	}

	steps := []transition{
		{session.StateIdentityChecked, e.checkIdentity},
		{session.StateRepoInitialized, e.initRepo},
		{session.StateRemoteLinked, e.linkRemote},
		{session.StateCommitted, e.commit},
		{session.StatePushed, e.push},
		{session.StateHistoryExtracted, e.extractHistory},
		{session.StateVisualized, e.visualize},
		{session.StateDone, func(context.Context) error { return nil }},
	}

	for _, step := range steps {
		if e.sess.State.Reached(step.to) {
			continue
		}
		if err := step.run(ctx); err != nil {
			return err
		}
		e.sess.State = step.to
		e.store.Save(e.sess)
	}

	e.prompter.Notice("Workflow complete.")
	return nil
}

// Session returns the engine's session after a run (for testing and
// for callers reporting the outcome).
func (e *Engine) Session() session.Session {
	return e.sess
}

// resolveSession fills in project path and repo name, prompting with
// defaults drawn from the saved session. The project path is always
// resolved to an absolute, existing directory before any workflow
// step runs.
func (e *Engine) resolveSession() error {
	if e.opts.NonInteractive {
		if e.sess.ProjectPath == "" || e.sess.RepoName == "" {
			return ErrConfigIncomplete
		}
	} else {
		def := e.sess.ProjectPath
		if def == "" {
			def, _ = os.Getwd()
		}
		path, err := e.prompter.Ask("Project path", def)
		if err != nil {
			return err
		}
		e.sess.ProjectPath = path

		repoDef := e.sess.RepoName
		if repoDef == "" {
			repoDef = filepath.Base(path)
		}
		name, err := e.prompter.Ask("GitHub repo name", repoDef)
		if err != nil {
			return err
		}
		e.sess.RepoName = name
	}

	abs, err := filepath.Abs(e.sess.ProjectPath)
	if err != nil {
		return fmt.Errorf("resolving project path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("project path %s: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project path %s is not a directory", abs)
	}

	e.sess.ProjectPath = abs
	e.store.Save(e.sess)
	e.logger.Info("working in project", "path", abs, "repo", e.sess.RepoName)
	return nil
}

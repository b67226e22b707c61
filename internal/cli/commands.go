// pattern: Imperative Shell
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"gitship/internal/collect"
	"gitship/internal/execx"
	"gitship/internal/history"
	"gitship/internal/instance"
	"gitship/internal/logging"
	"gitship/internal/probe"
	"gitship/internal/prompt"
	"gitship/internal/record"
	"gitship/internal/session"
	"gitship/internal/workflow"
)

const (
	logFileName     = "gitship.log"
	sessionFileName = "session.yaml"
)

// ResolveDataDir returns the directory holding the session file, lock
// file, and run log. If configDir is set, uses that; otherwise
// ~/.config/gitship.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gitship")
	}
	return filepath.Join(home, ".config", "gitship")
}

// BuildApp creates and configures the CLI application with all commands.
func BuildApp(version string, configDir string) *App {
	app := NewApp(version)

	app.AddCommand(&Command{
		Name:    "push",
		Summary: "Publish the working tree to GitHub (default)",
		Usage:   "Usage: gitship push [--non-interactive] [--docker] [--limit N]",
		Run: func(args []string) error {
			fs := flag.NewFlagSet("push", flag.ContinueOnError)
			nonInteractive := fs.BoolP("non-interactive", "y", false, "run all transitions from the saved session without prompting")
			useDocker := fs.Bool("docker", false, "build a container image of the project before publishing")
			limit := fs.Int("limit", 30, "commits included in the visualization")
			if err := fs.Parse(args); err != nil {
				return err
			}
			return runPush(configDir, workflow.Options{
				NonInteractive: *nonInteractive,
				UseDocker:      *useDocker,
				HistoryLimit:   *limit,
			})
		},
	})

	app.AddCommand(&Command{
		Name:    "history",
		Summary: "Print recent commit records in chronological order",
		Usage:   "Usage: gitship history [--limit N] [path]",
		Run: func(args []string) error {
			fs := flag.NewFlagSet("history", flag.ContinueOnError)
			limit := fs.Int("limit", 30, "number of commits to extract")
			if err := fs.Parse(args); err != nil {
				return err
			}
			return runHistory(configDir, firstOrCwd(fs.Args()), *limit)
		},
	})

	app.AddCommand(&Command{
		Name:    "doctor",
		Summary: "Check external tool availability",
		Usage:   "Usage: gitship doctor",
		Run: func(args []string) error {
			return runDoctor(configDir, os.Stdout)
		},
	})

	app.AddCommand(&Command{
		Name:    "record",
		Summary: "Record a terminal session into a fresh slot",
		Usage:   "Usage: gitship record [path]",
		Run: func(args []string) error {
			return runRecord(configDir, firstOrCwd(args))
		},
	})

	app.AddCommand(&Command{
		Name:    "collect",
		Summary: "Fetch repository metadata via the GitHub GraphQL API",
		Usage:   "Usage: gitship collect [path]",
		Run: func(args []string) error {
			return runCollect(configDir, firstOrCwd(args))
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: gitship version",
		Run: func(args []string) error {
			fmt.Println(version)
			return nil
		},
	})

	return app
}

func firstOrCwd(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// newLogManager opens the shared run log under the data dir.
func newLogManager(dataDir string) (*logging.Manager, error) {
	return logging.NewManager(logging.Config{
		FilePath: filepath.Join(dataDir, logFileName),
	})
}

// runPush drives the publish workflow end to end.
func runPush(configDir string, opts workflow.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dataDir := ResolveDataDir(configDir)

	logMgr, err := newLogManager(dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = logMgr.Close() }()

	fl, err := instance.Lock(dataDir)
	if err != nil {
		return err
	}
	defer instance.Unlock(fl)

	sessionPath := filepath.Join(dataDir, sessionFileName)
	if opts.NonInteractive {
		if _, err := os.Stat(sessionPath); err != nil {
			return ErrNoSession
		}
	}
	store := session.NewStore(sessionPath, logMgr.For("session"))

	runner := execx.New(logMgr.For("exec"))
	caps, err := probe.New(runner, logMgr.For("probe")).Probe(ctx)
	if err != nil {
		return err
	}

	prompter := prompt.New(os.Stdin, os.Stdout)
	engine := workflow.New(runner, store, caps, prompter, logMgr.For("workflow"), opts)

	if err := engine.Run(ctx); err != nil {
		// A command or prompt interrupted mid-transition surfaces as the
		// operator's cancellation, not the underlying tool failure.
		if ctx.Err() != nil {
			return context.Canceled
		}
		return err
	}
	return nil
}

// runHistory extracts and prints commit records for a repository.
func runHistory(configDir, dir string, limit int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logMgr, err := newLogManager(ResolveDataDir(configDir))
	if err != nil {
		return err
	}
	defer func() { _ = logMgr.Close() }()

	runner := execx.New(logMgr.For("exec"))
	records, err := history.New(runner, logMgr.For("history")).Extract(ctx, dir, limit)
	if err != nil {
		return err
	}

	for _, rec := range records {
		fmt.Printf("%s  %s  %-20s %s\n",
			rec.Timestamp.Format("2006-01-02 15:04"), rec.ID, rec.Author, rec.Message)
	}
	return nil
}

// runRecord allocates a recording slot and starts asciinema.
func runRecord(configDir, dir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dataDir := ResolveDataDir(configDir)
	logMgr, err := newLogManager(dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = logMgr.Close() }()

	runner := execx.New(logMgr.For("exec"))
	caps, err := probe.New(runner, logMgr.For("probe")).Probe(ctx)
	if err != nil {
		return err
	}
	if !caps.Recorder {
		return errors.New("asciinema not found; install it to record sessions")
	}

	slot, err := record.New(runner, logMgr.For("record")).Start(ctx, dir)
	if err != nil {
		return err
	}
	fmt.Printf("Recording saved to %s\n", slot)
	return nil
}

// runCollect fetches GraphQL metadata into the given directory.
func runCollect(configDir, dir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logMgr, err := newLogManager(ResolveDataDir(configDir))
	if err != nil {
		return err
	}
	defer func() { _ = logMgr.Close() }()

	runner := execx.New(logMgr.For("exec"))
	caps, err := probe.New(runner, logMgr.For("probe")).Probe(ctx)
	if err != nil {
		return err
	}
	if !caps.Hosting {
		return errors.New("gh not found; install the GitHub CLI to collect metadata")
	}

	path, err := collect.New(runner, logMgr.For("collect")).Collect(ctx, dir)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}

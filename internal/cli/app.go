// pattern: Functional Core
package cli

import (
	"fmt"
	"io"
)

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Run     func(args []string) error
}

// App is the top-level CLI application: a flat command table plus a
// default command for bare invocations.
type App struct {
	commands map[string]*Command
	order    []string
	version  string
}

// NewApp creates a new CLI application with the given version.
func NewApp(version string) *App {
	return &App{
		commands: make(map[string]*Command),
		version:  version,
	}
}

// AddCommand registers a command. Registration order drives help output.
func (a *App) AddCommand(cmd *Command) {
	a.commands[cmd.Name] = cmd
	a.order = append(a.order, cmd.Name)
}

// Execute dispatches the CLI arguments to the appropriate command and
// returns the process exit code. A bare invocation runs the publish
// workflow interactively.
func (a *App) Execute(args []string, errOut io.Writer) int {
	cmdName := "push"
	if len(args) > 0 {
		cmdName = args[0]
		args = args[1:]
	}

	cmd, ok := a.commands[cmdName]
	if !ok {
		fmt.Fprintf(errOut, "unknown command %q\n\n", cmdName)
		a.PrintHelp(errOut)
		return ExitFailure
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			fmt.Fprintf(errOut, "%s\n", cmd.Usage)
			return ExitOK
		}
	}

	if err := cmd.Run(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return ExitCode(err)
	}
	return ExitOK
}

// PrintHelp prints the top-level help text.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: gitship [options] [command]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, name := range a.order {
		cmd := a.commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintf(w, "  %-10s %s\n", "(none)", "Run the publish workflow interactively")
	fmt.Fprintf(w, "\nUse \"gitship <command> --help\" for command details.\n\n")
	fmt.Fprintf(w, "Options:\n")
}

// pattern: Imperative Shell
package cli

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"

	"gitship/internal/probe"
)

// runDoctor prints a diagnostic report: where gitship keeps its state
// and which external tools resolve in PATH.
func runDoctor(configDir string, out io.Writer) error {
	dataDir := ResolveDataDir(configDir)

	fmt.Fprintln(out, "gitship doctor")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "OS: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "Data dir: %s\n", dataDir)
	fmt.Fprintf(out, "Session file: %s\n", filepath.Join(dataDir, sessionFileName))
	fmt.Fprintf(out, "Run log: %s\n", filepath.Join(dataDir, logFileName))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Tool availability:")
	tools := []struct {
		name string
		hard bool
	}{
		{probe.ToolGit, true},
		{probe.ToolHosting, false},
		{probe.ToolRecorder, false},
		{probe.ToolContainer, false},
	}

	var missingHard bool
	for _, tool := range tools {
		path, err := exec.LookPath(tool.name)
		switch {
		case err == nil:
			fmt.Fprintf(out, "- %s: OK (%s)\n", tool.name, path)
		case tool.hard:
			fmt.Fprintf(out, "- %s: MISSING (required)\n", tool.name)
			missingHard = true
		default:
			fmt.Fprintf(out, "- %s: MISSING (optional step disabled)\n", tool.name)
		}
	}

	if missingHard {
		return probe.ErrGitMissing
	}
	return nil
}

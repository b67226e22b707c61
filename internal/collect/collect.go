// pattern: Imperative Shell

package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gitship/internal/execx"
	"gitship/internal/logging"
)

// OutputFileName is where collected metadata lands, relative to dir.
const OutputFileName = "graphql_output.json"

// viewerQuery fetches the authenticated user's most recently updated
// repositories.
const viewerQuery = `{
  viewer {
    login
    repositories(first: 5, orderBy: {field: UPDATED_AT, direction: DESC}) {
      nodes {
        name
        url
      }
    }
  }
}`

// Runner executes external commands; satisfied by *execx.Runner.
type Runner interface {
	Run(ctx context.Context, spec execx.Spec) (execx.Result, error)
}

// Collector fetches repository metadata through the hosting CLI's
// GraphQL endpoint and writes it as a pretty-printed JSON file.
type Collector struct {
	runner Runner
	logger *logging.ScopedLogger
}

// New creates a Collector.
func New(runner Runner, logger *logging.ScopedLogger) *Collector {
	return &Collector{runner: runner, logger: logger}
}

// Collect runs the viewer query and writes the response under dir.
// Returns the path of the written file.
func (c *Collector) Collect(ctx context.Context, dir string) (string, error) {
	res, err := c.runner.Run(ctx, execx.Spec{
		Name: "gh",
		Args: []string{"api", "graphql", "-f", "query=" + viewerQuery},
		Dir:  dir,
	})
	if err != nil {
		return "", fmt.Errorf("running gh api graphql: %w", err)
	}
	if !res.Success {
		return "", fmt.Errorf("gh api graphql failed: %s", res.Stderr)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(res.Stdout), "", "  "); err != nil {
		return "", fmt.Errorf("response is not valid JSON: %w", err)
	}

	outPath := filepath.Join(dir, OutputFileName)
	if err := os.WriteFile(outPath, pretty.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", OutputFileName, err)
	}

	c.logger.Info("metadata collected", "path", outPath)
	return outPath, nil
}

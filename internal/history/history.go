// pattern: Functional Core

package history

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitship/internal/execx"
	"gitship/internal/logging"
)

// fieldSep is the unit separator, chosen because it cannot appear in
// commit subjects or author names.
const fieldSep = "\x1f"

// logFormat asks git for hash, author, ISO timestamp, and subject.
const logFormat = "%h" + fieldSep + "%an" + fieldSep + "%aI" + fieldSep + "%s"

// Commit is one structured history entry. Records are never mutated
// after construction and are discarded once emitted.
type Commit struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Runner executes external commands; satisfied by *execx.Runner.
type Runner interface {
	Run(ctx context.Context, spec execx.Spec) (execx.Result, error)
}

// Extractor turns raw git log output into ordered commit records.
type Extractor struct {
	runner Runner
	logger *logging.ScopedLogger
}

// New creates an Extractor.
func New(runner Runner, logger *logging.ScopedLogger) *Extractor {
	return &Extractor{runner: runner, logger: logger}
}

// Extract queries the most recent limit commits of the repository at
// dir and returns them in chronological order (git emits newest
// first). Malformed lines are dropped with a warning; partial history
// is preferred over none. Re-invoking yields identical results absent
// new commits.
func (e *Extractor) Extract(ctx context.Context, dir string, limit int) ([]Commit, error) {
	res, err := e.runner.Run(ctx, execx.Spec{
		Name: "git",
		Args: []string{"log", "-n", strconv.Itoa(limit), "--pretty=format:" + logFormat},
		Dir:  dir,
	})
	if err != nil {
		return nil, fmt.Errorf("querying git log: %w", err)
	}
	if !res.Success {
		return nil, fmt.Errorf("git log failed: %s", res.Stderr)
	}

	records := e.parse(res.Stdout)
	reverse(records)
	return records, nil
}

// parse converts raw log lines into records, newest first.
func (e *Extractor) parse(raw string) []Commit {
	var records []Commit

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			e.logger.Warn("dropping malformed history line", "line", line, "error", err)
			continue
		}
		records = append(records, rec)
	}

	return records
}

// parseLine splits one formatted log line into a Commit.
func parseLine(line string) (Commit, error) {
	parts := strings.SplitN(line, fieldSep, 4)
	if len(parts) != 4 {
		return Commit{}, fmt.Errorf("expected 4 fields, got %d", len(parts))
	}

	ts, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return Commit{}, fmt.Errorf("parsing timestamp %q: %w", parts[2], err)
	}

	return Commit{
		ID:        parts[0],
		Author:    parts[1],
		Timestamp: ts,
		Message:   parts[3],
	}, nil
}

func reverse(records []Commit) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}

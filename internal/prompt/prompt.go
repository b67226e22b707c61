// pattern: Imperative Shell

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrCanceled reports that the operator ended input (EOF) at a prompt.
var ErrCanceled = errors.New("canceled by operator")

// Prompter reads operator decisions from a terminal, rendering each
// question with its default. Reads block until the operator answers;
// the workflow is suspended meanwhile.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	styles *Styles
}

// New creates a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		styles: NewStyles(),
	}
}

// Ask prompts for a string value, returning def when the operator just
// presses enter. EOF yields ErrCanceled.
func (p *Prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s %s: ",
			p.styles.LabelStyle().Render(label),
			p.styles.DefaultStyle().Render("["+def+"]"))
	} else {
		fmt.Fprintf(p.out, "%s: ", p.styles.LabelStyle().Render(label))
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", ErrCanceled
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm prompts for a yes/no decision.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	answer, err := p.Ask(label+" ("+hint+")", "")
	if err != nil {
		return false, err
	}
	if answer == "" {
		return def, nil
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// Notice prints an accent-styled status line.
func (p *Prompter) Notice(msg string) {
	fmt.Fprintln(p.out, p.styles.AccentStyle().Render(msg))
}

// Warn prints a warning-styled status line.
func (p *Prompter) Warn(msg string) {
	fmt.Fprintln(p.out, p.styles.WarnStyle().Render(msg))
}

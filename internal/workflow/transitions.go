// pattern: Imperative Shell

package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitship/internal/execx"
)

// git runs a git subcommand in the project directory.
func (e *Engine) git(ctx context.Context, args ...string) (execx.Result, error) {
	return e.runner.Run(ctx, execx.Spec{Name: "git", Args: args, Dir: e.sess.ProjectPath})
}

// transitionErr wraps a failed command with its captured output so the
// operator can diagnose the underlying tool's failure.
func transitionErr(what string, res execx.Result) error {
	out := res.Stderr
	if out == "" {
		out = res.Stdout
	}
	return fmt.Errorf("%s failed (exit %d): %s", what, res.ExitCode, out)
}

// maybeBuildImage optionally builds a container image of the project
// for isolated runs. Soft capability: absence skips with a warning.
func (e *Engine) maybeBuildImage(ctx context.Context) error {
	build := e.opts.UseDocker
	if !build && !e.opts.NonInteractive {
		answer, err := e.prompter.Confirm("Run inside Docker for full isolation?", false)
		if err != nil {
			return err
		}
		build = answer
	}
	if !build {
		return nil
	}
	if !e.caps.Container {
		e.prompter.Warn("docker not available, skipping image build")
		return nil
	}

	tag := strings.ToLower(e.sess.RepoName)
	res, err := e.runner.Run(ctx, execx.Spec{
		Name: "docker",
		Args: []string{"build", "-t", tag, e.sess.ProjectPath},
		Dir:  e.sess.ProjectPath,
	})
	if err != nil {
		return err
	}
	if !res.Success {
		return transitionErr("docker build", res)
	}

	e.prompter.Notice("Docker image built. Run with:")
	e.prompter.Notice(fmt.Sprintf("docker run -it -v %s:/workspace %s", e.sess.ProjectPath, tag))
	return nil
}

// checkIdentity verifies a process-global author name and email exist,
// prompting once when absent so subsequent runs skip this step.
func (e *Engine) checkIdentity(ctx context.Context) error {
	name, _ := e.git(ctx, "config", "--global", "user.name")
	email, _ := e.git(ctx, "config", "--global", "user.email")
	if name.Success && name.Stdout != "" && email.Success && email.Stdout != "" {
		return nil
	}

	if e.opts.NonInteractive {
		return fmt.Errorf("%w (git author identity unset)", ErrConfigIncomplete)
	}

	if !name.Success || name.Stdout == "" {
		v, err := e.prompter.Ask("Git author name", "")
		if err != nil {
			return err
		}
		res, err := e.git(ctx, "config", "--global", "user.name", v)
		if err != nil {
			return err
		}
		if !res.Success {
			return transitionErr("git config user.name", res)
		}
	}
	if !email.Success || email.Stdout == "" {
		v, err := e.prompter.Ask("Git author email", "")
		if err != nil {
			return err
		}
		res, err := e.git(ctx, "config", "--global", "user.email", v)
		if err != nil {
			return err
		}
		if !res.Success {
			return transitionErr("git config user.email", res)
		}
	}
	return nil
}

// initRepo initializes version control at the project path unless a
// metadata directory already exists.
func (e *Engine) initRepo(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(e.sess.ProjectPath, ".git")); err == nil {
		e.logger.Info("repository already initialized, skipping init")
		return nil
	}

	res, err := e.git(ctx, "init", "-b", e.sess.DefaultBranch)
	if err != nil {
		return err
	}
	if !res.Success {
		return transitionErr("git init", res)
	}
	return nil
}

// linkRemote ensures the named remote exists, creating the hosted
// repository through the hosting CLI when it does not. A missing
// hosting CLI halts here recoverably; the session remains valid.
func (e *Engine) linkRemote(ctx context.Context) error {
	remotes, err := e.git(ctx, "remote")
	if err != nil {
		return err
	}
	if remotes.Success {
		for _, line := range strings.Split(remotes.Stdout, "\n") {
			if strings.TrimSpace(line) == e.sess.RemoteName {
				e.logger.Info("remote already linked, skipping creation", "remote", e.sess.RemoteName)
				return nil
			}
		}
	}

	if !e.caps.Hosting {
		return ErrRemoteLinkUnavailable
	}

	// Auth status is informational; gh repo create surfaces the real
	// failure if the operator is not logged in.
	if auth, err := e.runner.Run(ctx, execx.Spec{
		Name: "gh", Args: []string{"auth", "status"}, Dir: e.sess.ProjectPath,
	}); err == nil && !auth.Success {
		e.prompter.Warn("gh is not authenticated; run `gh auth login` if repo creation fails")
	}

	res, err := e.runner.Run(ctx, execx.Spec{
		Name: "gh",
		Args: []string{
			"repo", "create", e.sess.RepoName,
			"--source=.", "--public", "--push",
			"--remote", e.sess.RemoteName,
		},
		Dir: e.sess.ProjectPath,
	})
	if err != nil {
		return err
	}
	if !res.Success {
		return transitionErr("gh repo create", res)
	}
	return nil
}

// commit stages all working-tree changes and commits with the resolved
// message. A commit reporting nothing to commit is success: idempotent
// re-runs over an unchanged tree must not error.
func (e *Engine) commit(ctx context.Context) error {
	res, err := e.git(ctx, "add", "-A")
	if err != nil {
		return err
	}
	if !res.Success {
		return transitionErr("git add", res)
	}

	msg := e.sess.LastCommitMessage
	if msg == "" {
		msg = "init"
	}
	if !e.opts.NonInteractive {
		answer, err := e.prompter.Ask("Commit message", msg)
		if err != nil {
			return err
		}
		msg = answer
	}
	e.sess.LastCommitMessage = msg
	e.store.Save(e.sess)

	res, err = e.git(ctx, "commit", "-m", msg)
	if err != nil {
		return err
	}
	if !res.Success {
		if strings.Contains(res.Stdout+res.Stderr, "nothing to commit") {
			e.logger.Info("nothing to commit, tree unchanged")
			return nil
		}
		return transitionErr("git commit", res)
	}
	return nil
}

// push pushes the resolved branch to the resolved remote. When the
// configured default branch fails, one retry against the well-known
// alternate accommodates repositories whose actual default differs.
// This is the only automatic retry in the workflow.
func (e *Engine) push(ctx context.Context) error {
	branch := e.sess.DefaultBranch

	res, err := e.git(ctx, "push", "-u", e.sess.RemoteName, branch)
	if err != nil {
		return err
	}
	if !res.Success {
		alt := "master"
		if branch == "master" {
			alt = "main"
		}
		e.logger.Warn("push failed, retrying alternate branch", "branch", branch, "alternate", alt)

		retry, err := e.git(ctx, "push", "-u", e.sess.RemoteName, alt)
		if err != nil {
			return err
		}
		if !retry.Success {
			return fmt.Errorf("%w: branch %s: %s", ErrPushFailed, branch, firstNonEmpty(res.Stderr, res.Stdout))
		}
		branch = alt
	}

	e.sess.PushedBranch = branch
	e.store.Save(e.sess)
	return nil
}

// extractHistory reads recent commits for the visualization. Failures
// here are warnings; they never roll back the already-successful push.
func (e *Engine) extractHistory(ctx context.Context) error {
	records, err := e.extractor.Extract(ctx, e.sess.ProjectPath, e.opts.HistoryLimit)
	if err != nil {
		e.logger.Warn("history extraction failed, skipping visualization", "error", err)
		return nil
	}
	e.records = records
	return nil
}

// visualize emits the static artifact from the extracted records.
// Best-effort: emitter failure is a warning and the workflow still
// reaches Done.
func (e *Engine) visualize(context.Context) error {
	if len(e.records) == 0 {
		e.logger.Warn("no commit records to visualize")
		return nil
	}

	htmlPath, err := e.emitter.Emit(e.sess.ProjectPath, e.records)
	if err != nil {
		e.logger.Warn("visualization emit failed", "error", err)
		return nil
	}

	e.prompter.Notice("Commit visualization generated at " + htmlPath)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Runner executes a command in a directory and returns its combined output
// and exit code. A non-nil error means the command could not be run at all;
// a non-zero exit code is reported separately so callers can treat "ran and
// said no" differently from "could not run". Tests inject scripted runners.
type Runner func(ctx context.Context, dir, name string, args ...string) (output string, exitCode int, err error)

// GitRepository implements Repository by invoking the git executable with
// every command bound to the clone root via the process working directory of
// the child, never of this process.
type GitRepository struct {
	root   string
	gitBin string
	run    Runner
}

// NewGitRepository builds a Repository over the clone rooted at root using
// the git binary from PATH.
func NewGitRepository(root string) *GitRepository {
	return NewGitRepositoryWithRunner(root, "git", execRunner)
}

// NewGitRepositoryWithRunner allows overriding the git binary name and the
// command runner, so tests can script git's behavior without a real clone.
func NewGitRepositoryWithRunner(root, gitBin string, run Runner) *GitRepository {
	if gitBin == "" {
		gitBin = "git"
	}
	if run == nil {
		run = execRunner
	}
	return &GitRepository{root: root, gitBin: gitBin, run: run}
}

// Root returns the clone path this repository is bound to.
func (g *GitRepository) Root() string {
	return g.root
}

func (g *GitRepository) Describe(ctx context.Context) (string, error) {
	out, code, err := g.git(ctx, "describe", "--tags")
	if err != nil {
		return "", &VersionControlError{Op: "describe", Path: g.root, Err: err}
	}
	if code != 0 {
		// No reachable tag: the installed version is simply unknown.
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

func (g *GitRepository) Tags(ctx context.Context) ([]string, error) {
	out, code, err := g.git(ctx, "tag", "--sort=creatordate")
	if err != nil {
		return nil, &VersionControlError{Op: "list tags", Path: g.root, Err: err}
	}
	if code != 0 {
		return nil, &VersionControlError{Op: "list tags", Path: g.root, Err: exitFailure(code, out)}
	}
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (g *GitRepository) Head(ctx context.Context) (string, error) {
	out, code, err := g.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", &VersionControlError{Op: "resolve HEAD", Path: g.root, Err: err}
	}
	if code != 0 {
		return "", &VersionControlError{Op: "resolve HEAD", Path: g.root, Err: exitFailure(code, out)}
	}
	return strings.TrimSpace(out), nil
}

func (g *GitRepository) Checkout(ctx context.Context, rev string) error {
	out, code, err := g.git(ctx, "checkout", "--quiet", rev)
	if err != nil {
		return &VersionControlError{Op: "checkout " + rev, Path: g.root, Err: err}
	}
	if code != 0 {
		return &VersionControlError{Op: "checkout " + rev, Path: g.root, Err: exitFailure(code, out)}
	}
	return nil
}

func (g *GitRepository) CheckApply(ctx context.Context, patchFile string, strip int, reverse bool) (bool, error) {
	// --check keeps the dry run read-only; no whitespace or fuzz options are
	// passed, so mismatched hunks fail instead of degrading silently.
	args := []string{"apply", "--check", "-p" + strconv.Itoa(strip)}
	if reverse {
		args = append(args, "--reverse")
	}
	args = append(args, patchFile)
	_, code, err := g.git(ctx, args...)
	if err != nil {
		return false, &VersionControlError{Op: "apply --check", Path: g.root, Err: err}
	}
	return code == 0, nil
}

func (g *GitRepository) git(ctx context.Context, args ...string) (string, int, error) {
	return g.run(ctx, g.root, g.gitBin, args...)
}

// execRunner is the production Runner. Stdout and stderr are captured into a
// single buffer; exit status is separated from start failures so callers can
// distinguish "patch does not apply" from "git is missing".
func execRunner(ctx context.Context, dir, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	if err == nil {
		return buf.String(), 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return buf.String(), exitErr.ExitCode(), nil
	}
	return buf.String(), -1, err
}

func exitFailure(code int, output string) error {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return fmt.Errorf("exit status %d", code)
	}
	return fmt.Errorf("exit status %d: %s", code, trimmed)
}

package probe

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type gitCall struct {
	dir  string
	name string
	args []string
}

// scriptRunner replays canned outputs keyed by the joined argument string and
// records every invocation for grammar assertions.
type scriptRunner struct {
	calls   []gitCall
	outputs map[string]string
	codes   map[string]int
	errs    map[string]error
}

func newScriptRunner() *scriptRunner {
	return &scriptRunner{
		outputs: make(map[string]string),
		codes:   make(map[string]int),
		errs:    make(map[string]error),
	}
}

func (s *scriptRunner) run(_ context.Context, dir, name string, args ...string) (string, int, error) {
	s.calls = append(s.calls, gitCall{dir: dir, name: name, args: args})
	key := strings.Join(args, " ")
	return s.outputs[key], s.codes[key], s.errs[key]
}

func TestGitTagsGrammarAndOrder(t *testing.T) {
	t.Parallel()

	script := newScriptRunner()
	script.outputs["tag --sort=creatordate"] = "1.0.0\n1.1.0\n\n"
	repo := NewGitRepositoryWithRunner("/clones/widget", "git", script.run)

	tags, err := repo.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags returned error: %v", err)
	}
	if got, want := strings.Join(tags, ","), "1.0.0,1.1.0"; got != want {
		t.Fatalf("unexpected tags: got %q want %q", got, want)
	}
	call := script.calls[0]
	if call.dir != "/clones/widget" || call.name != "git" {
		t.Fatalf("command not bound to clone root: %+v", call)
	}
}

func TestGitTagsFailureIsVersionControlError(t *testing.T) {
	t.Parallel()

	script := newScriptRunner()
	script.codes["tag --sort=creatordate"] = 128
	script.outputs["tag --sort=creatordate"] = "fatal: not a git repository"
	repo := NewGitRepositoryWithRunner("/clones/widget", "git", script.run)

	_, err := repo.Tags(context.Background())
	var vcErr *VersionControlError
	if !errors.As(err, &vcErr) {
		t.Fatalf("expected VersionControlError, got %v", err)
	}
	if !strings.Contains(vcErr.Error(), "not a git repository") {
		t.Fatalf("error should carry git output: %v", vcErr)
	}
}

func TestGitDescribeUnknownVersionIsNotAnError(t *testing.T) {
	t.Parallel()

	script := newScriptRunner()
	script.codes["describe --tags"] = 128
	repo := NewGitRepositoryWithRunner("/clones/widget", "git", script.run)

	version, err := repo.Describe(context.Background())
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if version != "" {
		t.Fatalf("expected unknown version, got %q", version)
	}
}

func TestGitCheckApplyGrammar(t *testing.T) {
	t.Parallel()

	script := newScriptRunner()
	script.codes["apply --check -p2 --reverse fix.patch"] = 0
	script.codes["apply --check -p2 fix.patch"] = 1
	repo := NewGitRepositoryWithRunner("/clones/widget", "git", script.run)

	ok, err := repo.CheckApply(context.Background(), "fix.patch", 2, true)
	if err != nil || !ok {
		t.Fatalf("reverse check: ok=%v err=%v", ok, err)
	}
	// A non-zero exit means "does not apply", not a failure.
	ok, err = repo.CheckApply(context.Background(), "fix.patch", 2, false)
	if err != nil {
		t.Fatalf("forward check returned error: %v", err)
	}
	if ok {
		t.Fatal("forward check should report no match")
	}
}

func TestGitCheckApplyInfrastructureFailure(t *testing.T) {
	t.Parallel()

	script := newScriptRunner()
	script.errs["apply --check -p0 fix.patch"] = errors.New("git not found")
	repo := NewGitRepositoryWithRunner("/clones/widget", "git", script.run)

	if _, err := repo.CheckApply(context.Background(), "fix.patch", 0, false); err == nil {
		t.Fatal("expected error when git cannot run")
	}
}

func TestGitCheckoutFailure(t *testing.T) {
	t.Parallel()

	script := newScriptRunner()
	script.codes["checkout --quiet 1.3.1"] = 1
	script.outputs["checkout --quiet 1.3.1"] = "error: pathspec '1.3.1' did not match"
	repo := NewGitRepositoryWithRunner("/clones/widget", "git", script.run)

	err := repo.Checkout(context.Background(), "1.3.1")
	var vcErr *VersionControlError
	if !errors.As(err, &vcErr) {
		t.Fatalf("expected VersionControlError, got %v", err)
	}
	if vcErr.Op != "checkout 1.3.1" {
		t.Fatalf("unexpected op: %q", vcErr.Op)
	}
}

func TestGitHead(t *testing.T) {
	t.Parallel()

	script := newScriptRunner()
	script.outputs["rev-parse HEAD"] = "abc123\n"
	repo := NewGitRepositoryWithRunner("/clones/widget", "git", script.run)

	head, err := repo.Head(context.Background())
	if err != nil {
		t.Fatalf("Head returned error: %v", err)
	}
	if head != "abc123" {
		t.Fatalf("unexpected head: %q", head)
	}
}

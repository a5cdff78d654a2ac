package probe

import (
	"context"
	"os"
)

// Dependency identifies one patched package and its disposable clone.
// Version may be empty when the installed version cannot be determined.
type Dependency struct {
	Name string
	Path string
}

// Emit receives one classification per release tag during a walk. The
// sequence is finite and consumed immediately; nothing retains it.
type Emit func(tag string, result Result)

// Walker drives the prober across every release tag in a dependency's
// release family. Open builds the Repository for a clone path; it defaults
// to the git-backed implementation.
type Walker struct {
	open func(path string) Repository
}

// NewWalker constructs a Walker. Passing a nil open function selects the
// git-backed Repository.
func NewWalker(open func(path string) Repository) *Walker {
	if open == nil {
		open = func(path string) Repository { return NewGitRepository(path) }
	}
	return &Walker{open: open}
}

// Walk probes the patch against every tag in the dependency's release family
// and emits one result per tag. When the clone path does not exist the walk
// short-circuits and reports skipped=true without touching version control:
// the package was removed or never installed and its patch may be stale.
//
// The clone's original revision is restored before Walk returns, on success
// and on every error path alike, so probing one patch never perturbs probing
// the next one against the same dependency.
func (w *Walker) Walk(ctx context.Context, dep Dependency, patchFile string, emit Emit) (skipped bool, err error) {
	if _, statErr := os.Stat(dep.Path); statErr != nil {
		return true, nil
	}
	repo := w.open(dep.Path)

	version, err := repo.Describe(ctx)
	if err != nil {
		return false, err
	}
	tags, err := ResolveTags(ctx, repo, version)
	if err != nil {
		return false, err
	}
	if len(tags) == 0 {
		return false, nil
	}

	head, err := repo.Head(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		if restoreErr := repo.Checkout(ctx, head); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()

	for _, tag := range tags {
		if err := repo.Checkout(ctx, tag); err != nil {
			return false, err
		}
		result, probeErr := Probe(ctx, repo, patchFile)
		if probeErr != nil {
			return false, probeErr
		}
		emit(tag, result)
	}
	return false, nil
}

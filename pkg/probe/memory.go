package probe

import (
	"context"
	"fmt"
	"os"

	"github.com/probelab/patchprobe/pkg/unidiff"
)

// MemoryRepository implements Repository over in-memory file trees, one per
// tag, with patch applicability decided by the unidiff engine. It exists so
// the prober, walker and orchestrator can be exercised without a git clone,
// and it records every checkout so tests can assert restore behavior.
type MemoryRepository struct {
	version      string
	tags         []string
	trees        map[string]map[string]string
	current      string
	checkouts    []string
	failCheckout map[string]bool
}

// NewMemoryRepository builds an in-memory clone whose installed revision is
// version. Tags must be given in creation order; trees maps each revision
// name to its complete file tree.
func NewMemoryRepository(version string, tags []string, trees map[string]map[string]string) *MemoryRepository {
	return &MemoryRepository{
		version:      version,
		tags:         tags,
		trees:        trees,
		current:      version,
		failCheckout: make(map[string]bool),
	}
}

// FailCheckout makes every subsequent checkout of rev fail, simulating a
// corrupted clone.
func (m *MemoryRepository) FailCheckout(rev string) {
	m.failCheckout[rev] = true
}

// Current returns the revision the fake clone has checked out.
func (m *MemoryRepository) Current() string {
	return m.current
}

// Checkouts returns every revision passed to Checkout, in order.
func (m *MemoryRepository) Checkouts() []string {
	return append([]string(nil), m.checkouts...)
}

func (m *MemoryRepository) Describe(_ context.Context) (string, error) {
	return m.version, nil
}

func (m *MemoryRepository) Tags(_ context.Context) ([]string, error) {
	return append([]string(nil), m.tags...), nil
}

func (m *MemoryRepository) Head(_ context.Context) (string, error) {
	return m.current, nil
}

func (m *MemoryRepository) Checkout(_ context.Context, rev string) error {
	m.checkouts = append(m.checkouts, rev)
	if m.failCheckout[rev] {
		return &VersionControlError{Op: "checkout " + rev, Path: "memory", Err: fmt.Errorf("simulated checkout failure")}
	}
	if _, ok := m.trees[rev]; !ok {
		return &VersionControlError{Op: "checkout " + rev, Path: "memory", Err: fmt.Errorf("unknown revision")}
	}
	m.current = rev
	return nil
}

func (m *MemoryRepository) CheckApply(_ context.Context, patchFile string, strip int, reverse bool) (bool, error) {
	data, err := os.ReadFile(patchFile)
	if err != nil {
		return false, fmt.Errorf("read patch %s: %w", patchFile, err)
	}
	diffs, err := unidiff.Parse(string(data))
	if err != nil {
		return false, fmt.Errorf("parse patch %s: %w", patchFile, err)
	}
	tree, ok := m.trees[m.current]
	if !ok {
		return false, fmt.Errorf("no tree for revision %s", m.current)
	}
	return unidiff.Applies(tree, diffs, strip, reverse), nil
}

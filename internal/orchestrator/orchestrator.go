// Package orchestrator iterates every declared package→patch mapping,
// drives the release walker once per patch, and renders the results. The
// run is strictly sequential: probing mutates the checked-out state of each
// dependency's clone, which is not safe to share across concurrent walks.
package orchestrator

import (
	"context"
	"io"
	"sort"

	"github.com/probelab/patchprobe/internal/logging"
	"github.com/probelab/patchprobe/internal/manifest"
	"github.com/probelab/patchprobe/internal/report"
	"github.com/probelab/patchprobe/pkg/probe"
)

// Target couples a package's resolved clone path with its declared patches.
type Target struct {
	Path    string
	Patches []manifest.PatchDescriptor
}

// WalkFunc matches probe.Walker.Walk so tests can substitute the release
// walk without a clone on disk.
type WalkFunc func(ctx context.Context, dep probe.Dependency, patchFile string, emit probe.Emit) (skipped bool, err error)

// Orchestrator runs the whole patch set and writes one status line per
// (package, patch, tag) triple.
type Orchestrator struct {
	walk     WalkFunc
	renderer *report.Renderer
	log      logging.Logger
}

// New builds an Orchestrator writing status lines to out. A nil walk selects
// the git-backed release walker.
func New(walk WalkFunc, out io.Writer, log logging.Logger) *Orchestrator {
	if walk == nil {
		walk = probe.NewWalker(nil).Walk
	}
	if log == nil {
		log = &logging.NoOpLogger{}
	}
	return &Orchestrator{
		walk:     walk,
		renderer: report.NewRenderer(out),
		log:      log,
	}
}

// Run probes every declared patch of every target. Packages are visited in
// lexicographic order for reproducible output. Classifications are advisory;
// Run only fails on configuration or version-control errors, and a missing
// clone yields a single skip advisory for the package before the run moves
// on.
func (o *Orchestrator) Run(ctx context.Context, targets map[string]Target) error {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target := targets[name]
		dep := probe.Dependency{Name: name, Path: target.Path}
		for _, patch := range target.Patches {
			o.log.Debug("probing patch",
				logging.Field("package", name),
				logging.Field("patch", patch.File))
			skipped, err := o.walk(ctx, dep, patch.File, func(tag string, result probe.Result) {
				o.renderer.StatusLine(name, patch.Description, tag, result)
			})
			if err != nil {
				return err
			}
			if skipped {
				o.log.Warn("package not found on disk",
					logging.Field("package", name),
					logging.Field("path", target.Path))
				o.renderer.SkipAdvisory(name)
				break
			}
		}
	}
	return nil
}

// Package report renders the run's human-readable status lines. Exactly
// three literal status phrasings exist, one per probe result; nothing else
// in the repository prints classifications.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/probelab/patchprobe/pkg/probe"
)

const (
	phraseAlreadyApplied = "already applied"
	phraseApplicable     = "applies cleanly"
	phraseNotApplicable  = "does not apply"

	skipAdvisory = "package not installed, skipping (patch may be stale)"
)

// Renderer writes status lines to a single output stream. Styling degrades
// to plain text automatically when the stream is not a color-capable
// terminal.
type Renderer struct {
	out     io.Writer
	applied lipgloss.Style
	applies lipgloss.Style
	stale   lipgloss.Style
	notice  lipgloss.Style
}

// NewRenderer builds a Renderer bound to out.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out, termenv.WithColorCache(true))
	return &Renderer{
		out:     out,
		applied: r.NewStyle().Foreground(lipgloss.Color("10")),
		applies: r.NewStyle().Foreground(lipgloss.Color("11")),
		stale:   r.NewStyle().Foreground(lipgloss.Color("9")),
		notice:  r.NewStyle().Faint(true),
	}
}

// Phrase returns the literal status phrasing for a result.
func Phrase(result probe.Result) string {
	switch result {
	case probe.AlreadyApplied:
		return phraseAlreadyApplied
	case probe.Applicable:
		return phraseApplicable
	case probe.NotApplicable:
		return phraseNotApplicable
	default:
		// Unreachable with a well-formed Result; keep the line parseable.
		return result.String()
	}
}

// StatusLine writes one line for a (package, patch, tag) triple.
func (r *Renderer) StatusLine(pkg, description, tag string, result probe.Result) {
	fmt.Fprintf(r.out, "%s: %s (%s): %s\n", pkg, description, tag, r.styleFor(result).Render(Phrase(result)))
}

// SkipAdvisory writes the single advisory emitted when a declared package
// has no clone on disk.
func (r *Renderer) SkipAdvisory(pkg string) {
	fmt.Fprintf(r.out, "%s: %s\n", pkg, r.notice.Render(skipAdvisory))
}

func (r *Renderer) styleFor(result probe.Result) lipgloss.Style {
	switch result {
	case probe.AlreadyApplied:
		return r.applied
	case probe.Applicable:
		return r.applies
	default:
		return r.stale
	}
}

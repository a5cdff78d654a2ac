package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probelab/patchprobe/pkg/probe"
)

func TestPhraseLiterals(t *testing.T) {
	require.Equal(t, "already applied", Phrase(probe.AlreadyApplied))
	require.Equal(t, "applies cleanly", Phrase(probe.Applicable))
	require.Equal(t, "does not apply", Phrase(probe.NotApplicable))
}

func TestStatusLineFormat(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)
	r.StatusLine("acme/widget", "Fix foo", "1.3.1", probe.AlreadyApplied)
	// Plain writer: lipgloss degrades to uncolored text.
	require.Equal(t, "acme/widget: Fix foo (1.3.1): already applied\n", out.String())
}

func TestSkipAdvisory(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)
	r.SkipAdvisory("acme/widget")
	require.Equal(t, "acme/widget: package not installed, skipping (patch may be stale)\n", out.String())
}

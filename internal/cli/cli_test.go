package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunRejectsUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"-definitely-not-a-flag"}, &stdout, &stderr)
	require.Equal(t, 2, code)
}

func TestRunFailsWithoutManifest(t *testing.T) {
	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "nope.json")
	code := Run(context.Background(), []string{"-manifest", missing, "-skip-install"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "configuration")
}

func TestRunSkipsMissingPackagesAndCompletes(t *testing.T) {
	project := t.TempDir()
	manifestPath := filepath.Join(project, "patches.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{
		"patches": {
			"acme/widget": {"Fix foo": "fix.patch"}
		}
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(project, "fix.patch"), []byte("--- a/f\n+++ b/f\n@@ -1,1 +1,1 @@\n-x\n+y\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{
		"-manifest", manifestPath,
		"-project", project,
		"-skip-install",
	}, &stdout, &stderr)

	// A missing clone is advisory, not fatal.
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "acme/widget: package not installed, skipping (patch may be stale)")
}

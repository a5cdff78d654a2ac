package installer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstallSplitsCommandLine(t *testing.T) {
	var gotDir, gotName string
	var gotArgs []string
	runner := func(_ context.Context, dir, name string, args ...string) (string, error) {
		gotDir, gotName, gotArgs = dir, name, args
		return "", nil
	}

	inst := New("/proj", "composer install --prefer-source --no-interaction", nil).WithRunner(runner)
	require.NoError(t, inst.Install(context.Background()))
	require.Equal(t, "/proj", gotDir)
	require.Equal(t, "composer", gotName)
	require.Equal(t, []string{"install", "--prefer-source", "--no-interaction"}, gotArgs)
}

func TestInstallRejectsEmptyCommand(t *testing.T) {
	inst := New("/proj", "   ", nil)
	require.Error(t, inst.Install(context.Background()))
}

func TestInstallWrapsFailureWithOutput(t *testing.T) {
	runner := func(_ context.Context, _, _ string, _ ...string) (string, error) {
		return "Your requirements could not be resolved\n", errors.New("exit status 2")
	}
	inst := New("/proj", "composer install", nil).WithRunner(runner)
	err := inst.Install(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not be resolved")
}

func TestVendorIndexPaths(t *testing.T) {
	index := NewVendorIndex("/proj", "vendor")
	require.Equal(t, filepath.Join("/proj", "vendor", "acme", "widget"), index.Path("acme/widget"))
	require.False(t, index.Exists("acme/widget"))

	absolute := NewVendorIndex("/proj", "/elsewhere/vendor")
	require.Equal(t, filepath.Join("/elsewhere", "vendor", "acme", "widget"), absolute.Path("acme/widget"))
}

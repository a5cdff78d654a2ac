// Package cli wires the manifest loader, installer and orchestrator behind
// a flag-driven entry point.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/probelab/patchprobe/internal/installer"
	"github.com/probelab/patchprobe/internal/logging"
	"github.com/probelab/patchprobe/internal/manifest"
	"github.com/probelab/patchprobe/internal/orchestrator"
)

const defaultInstallCommand = "composer install --prefer-source --no-interaction"

// Run executes patchprobe with the provided CLI arguments and returns a
// POSIX-style exit code: 0 when the run completed, whatever the patch
// classifications were; non-zero on configuration or version-control
// failures.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, but other errors should be surfaced to help with debugging.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	defaultManifest := envOr("PATCHPROBE_MANIFEST", "patches.json")
	defaultProject := envOr("PATCHPROBE_PROJECT", ".")
	defaultInstall := envOr("PATCHPROBE_INSTALL_CMD", defaultInstallCommand)
	defaultVendor := envOr("PATCHPROBE_VENDOR_DIR", "vendor")

	flagSet := flag.NewFlagSet("patchprobe", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	manifestPath := flagSet.String("manifest", defaultManifest, "path to the JSON patch manifest")
	projectDir := flagSet.String("project", defaultProject, "root of the package-managed project to inspect")
	installCmd := flagSet.String("install-cmd", defaultInstall, "package manager command that populates dependency clones")
	vendorDir := flagSet.String("vendor", defaultVendor, "vendor directory holding dependency clones, relative to the project root")
	skipInstall := flagSet.Bool("skip-install", false, "assume dependency clones are already populated")
	verbose := flagSet.Bool("verbose", false, "enable debug logging on stderr")

	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	minLevel := logging.LevelInfo
	if *verbose {
		minLevel = logging.LevelDebug
	}
	log := logging.NewStdLogger(minLevel, stderr)

	declared, err := manifest.Load(*manifestPath)
	if err != nil {
		fmt.Fprintf(stderr, "patchprobe: %v\n", err)
		return 1
	}

	if !*skipInstall {
		inst := installer.New(*projectDir, *installCmd, log)
		if err := inst.Install(ctx); err != nil {
			fmt.Fprintf(stderr, "patchprobe: %v\n", err)
			return 1
		}
	}

	index := installer.NewVendorIndex(*projectDir, *vendorDir)
	targets := make(map[string]orchestrator.Target, len(declared))
	for pkg, patches := range declared {
		targets[pkg] = orchestrator.Target{
			Path:    index.Path(pkg),
			Patches: patches,
		}
	}

	orch := orchestrator.New(nil, stdout, log)
	if err := orch.Run(ctx, targets); err != nil {
		fmt.Fprintf(stderr, "patchprobe: %v\n", err)
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Package installer populates the project's dependency clones through the
// external package manager and maps package names to their on-disk paths.
// It runs once, before any probing begins.
package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/probelab/patchprobe/internal/logging"
)

// Runner executes a command in a directory and returns its combined output.
type Runner func(ctx context.Context, dir, name string, args ...string) (string, error)

// Installer invokes the package manager so every declared package has a full
// version-controlled clone on disk.
type Installer struct {
	projectDir string
	command    string
	run        Runner
	log        logging.Logger
}

// New builds an Installer that runs command (a full command line such as
// "composer install --prefer-source --no-interaction") in projectDir.
func New(projectDir, command string, log logging.Logger) *Installer {
	if log == nil {
		log = &logging.NoOpLogger{}
	}
	return &Installer{
		projectDir: projectDir,
		command:    command,
		run:        execRunner,
		log:        log,
	}
}

// WithRunner overrides the command runner; used by tests.
func (i *Installer) WithRunner(run Runner) *Installer {
	if run != nil {
		i.run = run
	}
	return i
}

// Install runs the configured package manager command once. Failure is fatal
// for the run: without installed clones there is nothing to probe.
func (i *Installer) Install(ctx context.Context) error {
	// Accept a full command line, the same normalization the shell string
	// handling uses elsewhere: first field is the binary, the rest are args.
	fields := strings.Fields(i.command)
	if len(fields) == 0 {
		return errors.New("installer: empty install command")
	}
	i.log.Info("installing dependencies", logging.Field("command", i.command))
	out, err := i.run(ctx, i.projectDir, fields[0], fields[1:]...)
	if err != nil {
		trimmed := strings.TrimSpace(out)
		if trimmed != "" {
			return fmt.Errorf("installer: %s: %w: %s", i.command, err, trimmed)
		}
		return fmt.Errorf("installer: %s: %w", i.command, err)
	}
	i.log.Debug("dependencies installed")
	return nil
}

func execRunner(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.String(), err
}

// VendorIndex maps package names to clone paths using the package manager's
// vendor directory convention. The index is resolved once, after install.
type VendorIndex struct {
	vendorDir string
}

// NewVendorIndex builds an index over vendorDir, resolved against projectDir
// when relative.
func NewVendorIndex(projectDir, vendorDir string) *VendorIndex {
	if !filepath.IsAbs(vendorDir) {
		vendorDir = filepath.Join(projectDir, vendorDir)
	}
	return &VendorIndex{vendorDir: vendorDir}
}

// Path returns the expected clone path for a package name such as
// "acme/widget". The path may not exist; callers treat a missing clone as a
// skip condition, not an error.
func (v *VendorIndex) Path(pkg string) string {
	return filepath.Join(v.vendorDir, filepath.FromSlash(pkg))
}

// Exists reports whether the package's clone directory is present.
func (v *VendorIndex) Exists(pkg string) bool {
	info, err := os.Stat(v.Path(pkg))
	return err == nil && info.IsDir()
}

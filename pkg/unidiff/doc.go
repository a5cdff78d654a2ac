// Package unidiff parses unified diffs and answers whether they would apply
// to an in-memory file tree, forward or reversed, at a chosen strip level.
// It never writes anything: the package exists to give the probing engine a
// reference implementation of dry-run patch application that tests can run
// without a git clone or a patch binary on PATH.
package unidiff

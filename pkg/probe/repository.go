package probe

import "context"

// Repository is the set of version-control capabilities the probing and
// walking algorithms need. The default implementation shells out to the git
// executable; MemoryRepository implements the same contract over in-memory
// file trees so the algorithms can be unit tested without a clone on disk.
type Repository interface {
	// Describe reports the installed version derived from the clone's
	// current tag state. An empty string means the version is unknown, which
	// callers must treat as "undetermined", not as an error.
	Describe(ctx context.Context) (string, error)

	// Tags lists every tag in the clone, ordered by creation time, earliest
	// first. A failure means the clone is unusable and aborts the run.
	Tags(ctx context.Context) ([]string, error)

	// Head returns an identifier for the currently checked-out revision,
	// suitable for passing back to Checkout to restore the clone.
	Head(ctx context.Context) (string, error)

	// Checkout switches the clone's working tree to the named revision.
	Checkout(ctx context.Context, rev string) error

	// CheckApply reports whether the patch file would apply cleanly at the
	// given strip level, reversed when requested. It is a dry run: the
	// working tree must never be modified, and mismatched hunks must not
	// fall back to fuzzy or backup behavior. A returned error means the
	// check itself could not run, not that the patch failed to match.
	CheckApply(ctx context.Context, patchFile string, strip int, reverse bool) (bool, error)
}

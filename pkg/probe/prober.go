package probe

import "context"

// maxStripLevel covers the path-prefix conventions patches carry in the
// wild: bare paths (-p0) up to several leading directories (-p4).
const maxStripLevel = 4

// Probe classifies the patch against the repository's currently checked-out
// tree. Strip levels are tried low to high; at each level the reversed dry
// run is attempted before the forward one, because a tree that already
// contains the change would also reject the forward application. The first
// level at which either check succeeds determines the result.
func Probe(ctx context.Context, repo Repository, patchFile string) (Result, error) {
	for strip := 0; strip <= maxStripLevel; strip++ {
		ok, err := repo.CheckApply(ctx, patchFile, strip, true)
		if err != nil {
			return NotApplicable, err
		}
		if ok {
			return AlreadyApplied, nil
		}
		ok, err = repo.CheckApply(ctx, patchFile, strip, false)
		if err != nil {
			return NotApplicable, err
		}
		if ok {
			return Applicable, nil
		}
	}
	return NotApplicable, nil
}

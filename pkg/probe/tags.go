package probe

import (
	"context"
	"strings"
)

// ReleaseFamily derives the tag-filter prefix for an installed version by
// truncating it at the last dot: "9.4.2" belongs to family "9.4". A version
// without a dot is its own prefix, and pre-release suffixes take part in the
// textual truncation ("1.2.0-rc1" truncates to "1.2").
func ReleaseFamily(version string) string {
	if i := strings.LastIndex(version, "."); i > 0 {
		return version[:i]
	}
	return version
}

// ResolveTags returns the historical release tags belonging to the same
// release family as the installed version, preserving creation order. An
// empty version yields no tags and no error: the caller must treat that as
// "undetermined" rather than a failure.
func ResolveTags(ctx context.Context, repo Repository, version string) ([]string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, nil
	}
	prefix := ReleaseFamily(version)
	all, err := repo.Tags(ctx)
	if err != nil {
		return nil, err
	}
	var family []string
	for _, tag := range all {
		if strings.Contains(tag, prefix) {
			family = append(family, tag)
		}
	}
	return family, nil
}

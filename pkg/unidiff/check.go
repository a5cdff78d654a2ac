package unidiff

import (
	"strings"
)

// Applies reports whether every file diff would apply cleanly to the given
// file tree at the given strip level. When reverse is true the check runs
// against the inverse of the patch, which succeeds exactly when the patch's
// changes are already present. The tree is never modified and no fuzzy
// matching is attempted: hunks must match line for line.
func Applies(files map[string]string, diffs []FileDiff, strip int, reverse bool) bool {
	if len(diffs) == 0 {
		return false
	}
	for _, fd := range diffs {
		if !fileApplies(files, fd, strip, reverse) {
			return false
		}
	}
	return true
}

func fileApplies(files map[string]string, fd FileDiff, strip int, reverse bool) bool {
	oldPath, newPath := fd.OldPath, fd.NewPath
	hunks := fd.Hunks
	if reverse {
		oldPath, newPath = newPath, oldPath
		inverted := make([]Hunk, len(hunks))
		for i, h := range hunks {
			inverted[i] = Hunk{Before: h.After, After: h.Before}
		}
		hunks = inverted
	}

	// Creation: the target must not exist yet.
	if oldPath == DevNull {
		target, ok := stripPath(newPath, strip)
		if !ok {
			return false
		}
		_, exists := files[target]
		return !exists
	}

	target, ok := stripPath(oldPath, strip)
	if !ok {
		return false
	}
	content, exists := files[target]
	if !exists {
		return false
	}
	lines := splitLines(content)

	// Deletion: the whole file must match the removed lines.
	if newPath == DevNull {
		var want []string
		for _, h := range hunks {
			want = append(want, h.Before...)
		}
		return linesEqual(trimTrailingBlank(lines), trimTrailingBlank(want))
	}

	cursor := 0
	for _, h := range hunks {
		if len(h.Before) == 0 {
			// Pure insertion anchors nowhere; it always fits.
			continue
		}
		idx := findSubsequence(lines, h.Before, cursor)
		if idx == -1 {
			return false
		}
		cursor = idx + len(h.Before)
	}
	return true
}

// stripPath removes the leading path components a patch producer prepended.
// It fails when the strip level would consume the entire path, mirroring how
// patch tools reject over-stripped paths.
func stripPath(path string, strip int) (string, bool) {
	cleaned := strings.TrimPrefix(path, "./")
	if strip == 0 {
		return cleaned, cleaned != ""
	}
	parts := strings.Split(cleaned, "/")
	if strip >= len(parts) {
		return "", false
	}
	return strings.Join(parts[strip:], "/"), true
}

func findSubsequence(haystack, needle []string, startIndex int) int {
	if len(needle) == 0 || startIndex < 0 {
		return -1
	}
	for i := startIndex; i <= len(haystack)-len(needle); i++ {
		matched := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// trimTrailingBlank drops the empty tail entry produced by splitting content
// that ends in a newline, so deletions compare content rather than framing.
func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

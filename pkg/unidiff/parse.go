package unidiff

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FileDiff describes the changes a patch records for one file. OldPath and
// NewPath are kept exactly as written in the patch, including any path
// prefix ("a/...", "b/...") the producing tool added; strip levels are
// resolved at check time, not at parse time.
type FileDiff struct {
	OldPath string
	NewPath string
	Hunks   []Hunk
}

// Hunk captures one @@-delimited block. Context lines appear in both Before
// and After; removals only in Before; additions only in After.
type Hunk struct {
	Before []string
	After  []string
}

// DevNull is the path unified diffs use for file creation and deletion.
const DevNull = "/dev/null"

var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse converts a unified diff into per-file change descriptions. Leading
// noise such as "diff --git", "index" and mail headers is skipped; anything
// that claims to be a hunk but does not satisfy its declared line counts is
// an error.
func Parse(input string) ([]FileDiff, error) {
	lines := splitLines(input)
	var diffs []FileDiff
	i := 0
	for i < len(lines) {
		line := lines[i]
		if !strings.HasPrefix(line, "--- ") {
			i++
			continue
		}
		if i+1 >= len(lines) || !strings.HasPrefix(lines[i+1], "+++ ") {
			i++
			continue
		}
		fd := FileDiff{
			OldPath: headerPath(lines[i]),
			NewPath: headerPath(lines[i+1]),
		}
		if fd.OldPath == "" || fd.NewPath == "" {
			return nil, fmt.Errorf("malformed file header near line %d", i+1)
		}
		i += 2
		for i < len(lines) {
			match := hunkHeader.FindStringSubmatch(lines[i])
			if match == nil {
				break
			}
			oldCount := headerCount(match[2])
			newCount := headerCount(match[4])
			i++
			hunk, consumed, err := parseHunkBody(lines[i:], oldCount, newCount)
			if err != nil {
				return nil, fmt.Errorf("%w (file %s)", err, fd.NewPath)
			}
			fd.Hunks = append(fd.Hunks, hunk)
			i += consumed
		}
		if len(fd.Hunks) == 0 {
			return nil, fmt.Errorf("no hunks for %s", fd.NewPath)
		}
		diffs = append(diffs, fd)
	}
	if len(diffs) == 0 {
		return nil, errors.New("no file diffs found in patch")
	}
	return diffs, nil
}

// parseHunkBody consumes exactly the number of old/new lines the hunk header
// declared. Relying on the counts instead of sentinel lines keeps hunks with
// "--- "-looking context intact.
func parseHunkBody(lines []string, oldCount, newCount int) (Hunk, int, error) {
	var hunk Hunk
	seenOld, seenNew := 0, 0
	i := 0
	for i < len(lines) && (seenOld < oldCount || seenNew < newCount) {
		raw := lines[i]
		i++
		switch {
		case strings.HasPrefix(raw, "+"):
			hunk.After = append(hunk.After, raw[1:])
			seenNew++
		case strings.HasPrefix(raw, "-"):
			hunk.Before = append(hunk.Before, raw[1:])
			seenOld++
		case strings.HasPrefix(raw, " "):
			value := raw[1:]
			hunk.Before = append(hunk.Before, value)
			hunk.After = append(hunk.After, value)
			seenOld++
			seenNew++
		case raw == "":
			// Some transports strip the leading space from blank context lines.
			hunk.Before = append(hunk.Before, "")
			hunk.After = append(hunk.After, "")
			seenOld++
			seenNew++
		case strings.HasPrefix(raw, `\`):
			// "\ No newline at end of file" carries no content.
		default:
			return Hunk{}, 0, fmt.Errorf("unsupported hunk line %q", raw)
		}
	}
	if seenOld != oldCount || seenNew != newCount {
		return Hunk{}, 0, fmt.Errorf("truncated hunk: got %d/%d old, %d/%d new lines",
			seenOld, oldCount, seenNew, newCount)
	}
	// Trailing no-newline marker belongs to the hunk just consumed.
	if i < len(lines) && strings.HasPrefix(lines[i], `\`) {
		i++
	}
	return hunk, i, nil
}

// headerPath extracts the path from a "--- " or "+++ " header, dropping the
// timestamp some tools append after a tab.
func headerPath(line string) string {
	rest := strings.TrimSpace(line[4:])
	if tab := strings.IndexByte(rest, '\t'); tab >= 0 {
		rest = rest[:tab]
	}
	return rest
}

func headerCount(field string) int {
	if field == "" {
		return 1
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 1
	}
	return n
}

func splitLines(input string) []string {
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n")
}

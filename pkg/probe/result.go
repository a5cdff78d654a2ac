package probe

import "fmt"

// Result classifies one (patch, release tag) pair. It is a reporting record
// only; nothing persists it.
type Result int

const (
	// AlreadyApplied means the patch's changes are already present in the
	// checked-out tree, i.e. upstream absorbed the fix.
	AlreadyApplied Result = iota
	// Applicable means the patch applies cleanly but its changes are not yet
	// present.
	Applicable
	// NotApplicable means neither the reversed nor the forward dry run
	// succeeded at any strip level.
	NotApplicable
)

func (r Result) String() string {
	switch r {
	case AlreadyApplied:
		return "already-applied"
	case Applicable:
		return "applicable"
	case NotApplicable:
		return "not-applicable"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

package probe

import "fmt"

// VersionControlError reports a failed version-control operation against a
// dependency clone. It is fatal for the whole run: once tag listing or a
// checkout fails, the clone cannot be trusted for any subsequent tag.
type VersionControlError struct {
	Op   string
	Path string
	Err  error
}

func (e *VersionControlError) Error() string {
	return fmt.Sprintf("version control: %s in %s: %v", e.Op, e.Path, e.Err)
}

func (e *VersionControlError) Unwrap() error {
	return e.Err
}

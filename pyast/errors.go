package pyast

import "fmt"

// StatementError wraps a failure that occurred walking a single statement.
// The walker catches these at statement granularity and logs them rather
// than aborting the whole module (spec §4.3 "Failure semantics", §7 "Walk
// errors").
type StatementError struct {
	Path   string
	Line   int
	Reason string
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

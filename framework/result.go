package framework

import (
	"fmt"
	"strings"
)

// Results accumulates the outcome of every stage in a scenario run.
type Results struct {
	Stages   []StageResult
	Failures []StageResult
}

// StageResult is the outcome of a single stage (or sub-stage).
type StageResult struct {
	StageID    StageID
	Errors     []error
	Skipped    bool
	SkipReason string
}

// OK returns true if no stage failed. Skipped stages do not count as
// failures on their own, but a stage is only ever skipped because some
// earlier stage failed, so OK is false for any run that skipped anything.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// StageID identifies a stage within a scenario. Sub-stages extend their
// parent's path, e.g. "entry upload/image".
type StageID struct {
	Path []string
}

func (s StageID) String() string {
	return strings.Join(s.Path, "/")
}

// StageFailure pairs a stage identifier with one of its errors, for
// reporting.
type StageFailure struct {
	ID  StageID
	Err error
}

func (f StageFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

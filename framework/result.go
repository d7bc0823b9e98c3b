package framework

import (
	"fmt"
)

// Results is the outcome of a whole run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of one item.
type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
}

// OK returns true if no item failed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies an item. It is the item's NodeID at the time the item ran.
type TestID string

func (t TestID) String() string {
	return string(t)
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

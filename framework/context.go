package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Context is the per-item test scope. It is used similarly to *testing.T: it implements
// require.TestingT, so the assert and require packages can be used with it directly.
//
// A Context lives for all three phases of one Item. Failure state is tracked per phase.
type Context struct {
	env         *environment
	item        *Item
	debugLogger CapturingLogger
	phase       Phase
	failed      bool
	panicked    bool
	skipped     bool
	skipReason  string
	errors      []error
	deferred    []func()
	values      map[interface{}]interface{}
}

func newContext(env *environment, item *Item) *Context {
	return &Context{
		env:    env,
		item:   item,
		values: make(map[interface{}]interface{}),
	}
}

// ID returns the identifier of the item being run.
func (c *Context) ID() TestID {
	return TestID(c.item.NodeID)
}

// Item returns the item being run. Fixture teardown code can use it to look at the reports
// of earlier phases.
func (c *Context) Item() *Item {
	return c.item
}

// Phase returns the phase that is currently executing.
func (c *Context) Phase() Phase {
	return c.phase
}

// Failed returns true if the current phase has failed so far.
func (c *Context) Failed() bool {
	return c.failed
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.ID(), reformatError(err))
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Skip stops the current phase and marks it as skipped.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

// SkipWithReason is the same as Skip, but records a reason that is reported to the test logger.
func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer registers a function to run during the teardown phase. Deferred functions run in
// reverse order of registration, and each of them runs even if an earlier one failed.
func (c *Context) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

// SetValue makes a value available to later fixtures and to the test body.
func (c *Context) SetValue(key, value interface{}) {
	c.values[key] = value
}

// Value returns a value stored with SetValue, or nil.
func (c *Context) Value(key interface{}) interface{} {
	return c.values[key]
}

// Attach adds an artifact to the item, for plugins that publish reports.
func (c *Context) Attach(name, contentType string, data []byte) {
	c.item.Attachments = append(c.item.Attachments, Attachment{
		Name:        name,
		ContentType: contentType,
		Data:        data,
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the same place as Debug.
func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

func (c *Context) runPhase(phase Phase, action func()) *PhaseReport {
	c.phase = phase
	c.failed, c.panicked, c.skipped = false, false, false
	c.skipReason = ""
	c.errors = nil

	started := time.Now()
	action()

	report := &PhaseReport{
		Phase:      phase,
		Outcome:    OutcomePassed,
		Errors:     c.errors,
		SkipReason: c.skipReason,
		Duration:   time.Since(started),
	}
	switch {
	case c.panicked:
		report.Outcome = OutcomeError
	case c.failed:
		report.Outcome = OutcomeFailed
	case c.skipped:
		report.Outcome = OutcomeSkipped
	}
	return report
}

// protect runs one piece of test logic, converting FailNow, Skip and unexpected panics into
// phase state.
func (c *Context) protect(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				c.panicked = true
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.ID(), addError)
			}
		}
	}()

	action(c)
}

func (c *Context) runDeferred() {
	for len(c.deferred) > 0 {
		last := len(c.deferred) - 1
		fn := c.deferred[last]
		c.deferred = c.deferred[:last]
		c.protect(func(*Context) { fn() })
	}
}

// reformatError strips the leading blank lines and indentation that testify puts in front of
// its messages, so that they line up in console output.
func reformatError(err error) error {
	lines := strings.Split(strings.TrimLeft(err.Error(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, "\t ")
	}
	return errors.New(strings.Join(lines, "\n"))
}

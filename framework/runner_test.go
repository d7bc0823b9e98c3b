package framework

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type recordingTestLogger struct {
	events []string
}

func (l *recordingTestLogger) TestStarted(id TestID) {
	l.events = append(l.events, "started "+id.String())
}

func (l *recordingTestLogger) TestError(id TestID, err error) {
	l.events = append(l.events, "error "+id.String())
}

func (l *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	l.events = append(l.events, fmt.Sprintf("finished %s failed=%t", id, failed))
}

func (l *recordingTestLogger) TestSkipped(id TestID, reason string) {
	l.events = append(l.events, fmt.Sprintf("skipped %s (%s)", id, reason))
}

type reportRecorder struct {
	reports []string
}

func (r *reportRecorder) MakeReport(item *Item, report *PhaseReport) {
	item.Reports.Set(report)
	r.reports = append(r.reports, fmt.Sprintf("%s %s %s", item.NodeID, report.Phase, report.Outcome))
}

type renamer struct{}

func (renamer) ItemCollected(item *Item) {
	item.NodeID = "renamed " + item.NodeID
}

type exiter struct {
	sawItems int
}

func (e *exiter) CollectionFinish(r *Runner) error {
	e.sawItems = len(r.Items())
	return &Exit{Reason: "Done!"}
}

func TestRunnerRunsPhasesInOrder(t *testing.T) {
	var trace []string
	fixture := func(name string) Fixture {
		return func(c *Context) {
			trace = append(trace, "setup "+name)
			c.Defer(func() { trace = append(trace, "teardown "+name) })
		}
	}
	rec := &reportRecorder{}
	r := NewRunner(Config{})
	r.Register(rec)

	results, err := r.Run([]Test{{
		Name:     "test_order",
		Fixtures: []Fixture{fixture("a"), fixture("b")},
		Body:     func(c *Context) { trace = append(trace, "body") },
	}})
	require.NoError(t, err)

	assert.True(t, results.OK())
	assert.Equal(t, []string{"setup a", "setup b", "body", "teardown b", "teardown a"}, trace)
	assert.Equal(t, []string{
		"test_order setup passed",
		"test_order call passed",
		"test_order teardown passed",
	}, rec.reports)
}

func TestRunnerRecordsCallFailureBeforeTeardown(t *testing.T) {
	var callFailedAtTeardown bool
	rec := &reportRecorder{}
	r := NewRunner(Config{})
	r.Register(rec)

	results, err := r.Run([]Test{{
		Name: "test_fails",
		Fixtures: []Fixture{func(c *Context) {
			c.Defer(func() { callFailedAtTeardown = c.Item().Reports.Call.Failed() })
		}},
		Body: func(c *Context) { require.Equal(c, 1, 2) },
	}})
	require.NoError(t, err)

	assert.True(t, callFailedAtTeardown)
	assert.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, TestID("test_fails"), results.Failures[0].TestID)
}

func TestRunnerSkipsCallWhenSetupFails(t *testing.T) {
	bodyRan := false
	teardownRan := false
	rec := &reportRecorder{}
	r := NewRunner(Config{})
	r.Register(rec)

	results, err := r.Run([]Test{{
		Name: "test_setup_fails",
		Fixtures: []Fixture{
			func(c *Context) { c.Defer(func() { teardownRan = true }) },
			func(c *Context) { c.Errorf("no browser"); c.FailNow() },
		},
		Body: func(c *Context) { bodyRan = true },
	}})
	require.NoError(t, err)

	assert.False(t, bodyRan)
	assert.True(t, teardownRan)
	assert.False(t, results.OK())
	assert.Equal(t, []string{
		"test_setup_fails setup failed",
		"test_setup_fails teardown passed",
	}, rec.reports)
}

func TestRunnerRunsEveryTeardownEvenIfOneFails(t *testing.T) {
	var ran []string
	r := NewRunner(Config{})

	results, err := r.Run([]Test{{
		Name: "test_teardowns",
		Fixtures: []Fixture{func(c *Context) {
			c.Defer(func() { ran = append(ran, "first") })
			c.Defer(func() { panic(errors.New("boom")) })
		}},
		Body: func(c *Context) {},
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"first"}, ran)
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
}

func TestRunnerReportsUnexpectedPanicAsError(t *testing.T) {
	rec := &reportRecorder{}
	r := NewRunner(Config{})
	r.Register(rec)

	_, err := r.Run([]Test{{Name: "test_panics", Body: func(c *Context) { panic("oops") }}})
	require.NoError(t, err)

	assert.Contains(t, rec.reports, "test_panics call error")
}

func TestRunnerSkip(t *testing.T) {
	logger := &recordingTestLogger{}
	r := NewRunner(Config{TestLogger: logger})

	results, err := r.Run([]Test{{
		Name: "test_skipped",
		Body: func(c *Context) { c.SkipWithReason("not today") },
	}})
	require.NoError(t, err)

	assert.True(t, results.OK())
	require.Len(t, results.Tests, 1)
	assert.True(t, results.Tests[0].Skipped)
	assert.Equal(t, []string{"started test_skipped", "skipped test_skipped (not today)"}, logger.events)
}

func TestRunnerExpandsParametrizedTests(t *testing.T) {
	var seen []ldvalue.Value
	r := NewRunner(Config{})

	_, err := r.Run([]Test{{
		Name: "test_params",
		Params: []Params{
			{"b": ldvalue.Int(2), "a": ldvalue.String("x")},
			{"b": ldvalue.Int(3), "a": ldvalue.String("y")},
		},
		Body: func(c *Context) { seen = append(seen, c.Item().Params["b"]) },
	}})
	require.NoError(t, err)

	require.Len(t, r.Items(), 2)
	assert.Equal(t, "test_params[x-2]", r.Items()[0].NodeID)
	assert.Equal(t, "test_params[y-3]", r.Items()[1].NodeID)
	assert.Equal(t, []ldvalue.Value{ldvalue.Int(2), ldvalue.Int(3)}, seen)
}

func TestRunnerAppliesFilterToCollectedNodeID(t *testing.T) {
	var ran []string
	logger := &recordingTestLogger{}
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^renamed b$"))
	r := NewRunner(Config{Filter: filters.AsFilter, TestLogger: logger})
	r.Register(renamer{})

	results, err := r.Run([]Test{
		{Name: "a", Body: func(c *Context) { ran = append(ran, "a") }},
		{Name: "b", Body: func(c *Context) { ran = append(ran, "b") }},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, ran)
	require.Len(t, results.Tests, 2)
	assert.True(t, results.Tests[1].Skipped)
	assert.Contains(t, logger.events, "skipped renamed b (excluded by filter parameters)")
}

func TestRunnerCollectionFinishCanExit(t *testing.T) {
	bodyRan := false
	e := &exiter{}
	r := NewRunner(Config{CollectOnly: true})
	r.Register(e)

	results, err := r.Run([]Test{{Name: "test_x", Body: func(c *Context) { bodyRan = true }}})

	var exit *Exit
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, "Done!", exit.Reason)
	assert.Equal(t, 1, e.sawItems)
	assert.False(t, bodyRan)
	assert.Empty(t, results.Tests)
}

func TestRunnerCollectOnlyDoesNotRunItems(t *testing.T) {
	bodyRan := false
	r := NewRunner(Config{CollectOnly: true})

	results, err := r.Run([]Test{{Name: "test_x", Body: func(c *Context) { bodyRan = true }}})
	require.NoError(t, err)

	assert.False(t, bodyRan)
	assert.Empty(t, results.Tests)
	assert.Len(t, r.Items(), 1)
}

func TestContextValuesAndAttachments(t *testing.T) {
	type key struct{}
	r := NewRunner(Config{})
	var got interface{}

	_, err := r.Run([]Test{{
		Name:     "test_values",
		Fixtures: []Fixture{func(c *Context) { c.SetValue(key{}, "session") }},
		Body: func(c *Context) {
			got = c.Value(key{})
			c.Attach("shot", "image/png", []byte{1, 2})
		},
	}})
	require.NoError(t, err)

	assert.Equal(t, "session", got)
	assert.Equal(t, []Attachment{{Name: "shot", ContentType: "image/png", Data: []byte{1, 2}}}, r.Items()[0].Attachments)
}

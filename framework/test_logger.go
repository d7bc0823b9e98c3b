package framework

// TestLogger receives progress notifications from a Runner as items run.
type TestLogger interface {
	// TestStarted is called before an item's setup phase, or before it is filtered out.
	TestStarted(id TestID)
	// TestError is called for each error as soon as it is recorded, in any phase.
	TestError(id TestID, err error)
	// TestFinished is called after the teardown phase. debugOutput is everything the item
	// logged with Context.Debug.
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	// TestSkipped is called instead of TestFinished for an item that was filtered out or
	// skipped itself.
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

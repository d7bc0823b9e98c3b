package framework

// Config contains the parameters for a Runner.
type Config struct {
	// CollectOnly makes the runner stop after collection without running any items.
	CollectOnly bool

	// Filter selects which items run. Nil means all of them.
	Filter Filter

	// TestLogger receives progress notifications. Nil means no output.
	TestLogger TestLogger
}

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Runner collects and runs tests.
type Runner struct {
	config  Config
	plugins []Plugin
	items   []*Item
}

// NewRunner creates a Runner.
func NewRunner(config Config) *Runner {
	return &Runner{config: config}
}

// Register adds a plugin. Hooks of earlier registered plugins are called first.
func (r *Runner) Register(plugins ...Plugin) {
	r.plugins = append(r.plugins, plugins...)
}

// Config returns the runner's configuration.
func (r *Runner) Config() Config {
	return r.config
}

// Items returns the collected items. It is empty until collection has happened.
func (r *Runner) Items() []*Item {
	return r.items
}

// Run collects the tests and then runs each resulting item in order.
//
// If a CollectionFinishHook ends the run, the returned error is what the hook returned and
// no items are run; callers can use errors.As to check for *Exit.
func (r *Runner) Run(tests []Test) (Results, error) {
	testLogger := r.config.TestLogger
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     r.config.Filter,
		testLogger: testLogger,
	}

	r.items = collectItems(tests)
	for _, item := range r.items {
		for _, p := range r.plugins {
			if h, ok := p.(ItemCollectedHook); ok {
				h.ItemCollected(item)
			}
		}
	}
	for _, p := range r.plugins {
		if h, ok := p.(CollectionFinishHook); ok {
			if err := h.CollectionFinish(r); err != nil {
				return env.results, err
			}
		}
	}
	if r.config.CollectOnly {
		return env.results, nil
	}

	for _, item := range r.items {
		r.runItem(env, item)
	}
	return env.results, nil
}

func (r *Runner) runItem(env *environment, item *Item) {
	id := TestID(item.NodeID)

	env.testLogger.TestStarted(id)
	if env.filter != nil && !env.filter(id) {
		reason := "excluded by filter parameters"
		env.testLogger.TestSkipped(id, reason)
		env.results.Tests = append(env.results.Tests, TestResult{TestID: id, Skipped: true, SkipReason: reason})
		return
	}

	c := newContext(env, item)
	var allErrors []error

	setup := c.runPhase(PhaseSetup, func() {
		for _, f := range item.Fixtures {
			c.protect(f)
			if c.failed || c.skipped {
				break
			}
		}
	})
	r.report(item, setup)
	allErrors = append(allErrors, setup.Errors...)

	skipReason := setup.SkipReason
	skipped := setup.Skipped()
	var call *PhaseReport
	if setup.Passed() {
		call = c.runPhase(PhaseCall, func() {
			if item.Body == nil {
				c.Errorf("test %q has no body", item.Name)
				return
			}
			c.protect(item.Body)
		})
		r.report(item, call)
		allErrors = append(allErrors, call.Errors...)
		skipped, skipReason = call.Skipped(), call.SkipReason
	}

	teardown := c.runPhase(PhaseTeardown, c.runDeferred)
	r.report(item, teardown)
	allErrors = append(allErrors, teardown.Errors...)

	failed := setup.Failed() || call.Failed() || teardown.Failed()
	result := TestResult{TestID: id, Errors: allErrors}
	if failed {
		env.results.Failures = append(env.results.Failures, result)
	} else if skipped {
		result.Skipped = true
		result.SkipReason = skipReason
	}
	env.results.Tests = append(env.results.Tests, result)

	if skipped && !failed {
		env.testLogger.TestSkipped(id, skipReason)
	} else {
		env.testLogger.TestFinished(id, failed, c.debugLogger.Output())
	}
}

func (r *Runner) report(item *Item, report *PhaseReport) {
	for _, p := range r.plugins {
		if h, ok := p.(MakeReportHook); ok {
			h.MakeReport(item, report)
		}
	}
}

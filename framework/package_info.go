// Package framework contains the low-level implementation of the test runner that the
// browser fixtures and reporting plugins are built on.
//
// The general model is:
//
// 1. A suite declares Tests. Collection expands each Test into one Item per parameter
// set, and gives every registered plugin a chance to inspect or rename the items.
//
// 2. Each Item runs in three phases: setup (fixtures), call (the test body) and teardown
// (everything that setup or the body deferred, in reverse order). The result of each
// phase is a PhaseReport, which is offered to every plugin that implements MakeReportHook.
//
// 3. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// Items run strictly one at a time. Nothing in this package is safe for running two
// Runners against the same working directory at once.
package framework

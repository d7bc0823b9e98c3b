// Package fixtures provides the browser fixtures that UI tests declare: per-test browser
// sessions, the cookie log written when a session is torn down, and the screenshot and
// console diagnostics captured when a test fails.
package fixtures

// Package browser wraps the browser automation driver behind the small interface that the
// test fixtures need. The only implementation drives Chrome through the DevTools protocol
// with chromedp; package browsertest has an in-memory fake for testing the fixtures
// themselves.
package browser

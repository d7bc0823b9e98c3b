package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/diplom33/ui-harness/browser"
	"github.com/diplom33/ui-harness/framework"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	screenshotContentType = "image/png"
	normalizeBackground   = "document.body.bgColor = 'white';"
)

// PhaseRecorder is a plugin that stores each phase report on its item, so that fixture
// teardown code can tell whether the call phase failed. It must be registered for WebBrowser
// to capture anything.
type PhaseRecorder struct{}

func (PhaseRecorder) MakeReport(item *framework.Item, report *framework.PhaseReport) {
	item.Reports.Set(report)
}

// WebBrowser is a fixture that wraps Session with a fixed 1400x1000 window. If the test body
// fails, teardown saves a screenshot under the screenshot directory, attaches it to the item,
// and prints the page URL and the browser console log.
//
// Nothing that goes wrong while collecting those diagnostics affects the test result.
func WebBrowser(cfg Config) framework.Fixture {
	base := Session(cfg)
	return func(c *framework.Context) {
		base(c)
		s := Browser(c)
		require.NoError(c, s.SetWindowSize(capturedWindowWidth, capturedWindowHeight), "could not resize browser window")

		c.Defer(func() {
			if !c.Item().Reports.Call.Failed() {
				return
			}
			framework.BestEffort(c.DebugLogger(), "capturing failure diagnostics", func() error {
				return cfg.captureFailure(c, s)
			})
		})
	}
}

func (cfg Config) captureFailure(c *framework.Context, s browser.Session) error {
	if err := s.ExecuteScript(normalizeBackground); err != nil {
		return err
	}

	png, err := s.ScreenshotPNG()
	if err != nil {
		return err
	}
	dir := cfg.screenshotDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, uuid.NewString()+".png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return err
	}
	c.Debug("saved screenshot to %s", path)

	c.Attach(c.Item().Name, screenshotContentType, png)

	url, err := s.CurrentURL()
	if err != nil {
		return err
	}
	out := cfg.output()
	fmt.Fprintf(out, "URL: %s\n", url)
	fmt.Fprintln(out, "Browser logs:")
	for _, entry := range s.ConsoleLog() {
		fmt.Fprintln(out, entry)
	}
	return nil
}

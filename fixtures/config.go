package fixtures

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/diplom33/ui-harness/browser"
	"github.com/diplom33/ui-harness/framework"
)

const (
	// DefaultCookieLogPath is where ChromeBrowserInstance writes cookies, relative to the
	// working directory.
	DefaultCookieLogPath = "cookie_log.txt"

	// DefaultScreenshotDir is where WebBrowser saves screenshots of failed tests, relative to
	// the working directory.
	DefaultScreenshotDir = "screenshots"

	capturedWindowWidth  = 1400
	capturedWindowHeight = 1000
)

// Config is shared by all of the browser fixtures. The zero value launches Chrome and
// writes to the default locations.
type Config struct {
	Launcher       browser.Launcher
	Context        context.Context
	CookieLogPath  string
	ScreenshotDir  string
	CommandTimeout time.Duration

	// Output receives the diagnostics printed for a failed test. Nil means os.Stdout.
	Output io.Writer

	// DriverLogger receives the browser driver's own log messages.
	DriverLogger framework.Logger
}

func (cfg Config) launcher() browser.Launcher {
	if cfg.Launcher == nil {
		return browser.ChromeLauncher{}
	}
	return cfg.Launcher
}

func (cfg Config) context() context.Context {
	if cfg.Context == nil {
		return context.Background()
	}
	return cfg.Context
}

func (cfg Config) cookieLogPath() string {
	if cfg.CookieLogPath == "" {
		return DefaultCookieLogPath
	}
	return cfg.CookieLogPath
}

func (cfg Config) screenshotDir() string {
	if cfg.ScreenshotDir == "" {
		return DefaultScreenshotDir
	}
	return cfg.ScreenshotDir
}

func (cfg Config) output() io.Writer {
	if cfg.Output == nil {
		return os.Stdout
	}
	return cfg.Output
}

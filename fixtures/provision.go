package fixtures

import (
	"fmt"
	"os"

	"github.com/diplom33/ui-harness/browser"
	"github.com/diplom33/ui-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionKey struct{}

// ChromeOptions returns the launch options every fixture uses. The flag set is fixed.
func ChromeOptions() browser.Options {
	return browser.Options{
		// Uncomment one of these lines (and update path if needed) to use a specific browser
		// binary instead of the first one found on the PATH.
		// ExecPath: "/usr/bin/google-chrome-stable",
		Flags: map[string]interface{}{
			// Uncomment this to run without a window even when a display is available.
			// "headless": true,
			"no-sandbox": true,
			"log-level":  "0",
		},
	}
}

// Browser returns the session that a fixture provided for the current test. It fails the
// test if the test did not declare a browser fixture.
func Browser(c *framework.Context) browser.Session {
	if s, ok := c.Value(sessionKey{}).(browser.Session); ok {
		return s
	}
	c.Errorf("no browser session is available; the test must declare a browser fixture")
	c.FailNow()
	return nil
}

func (cfg Config) launch(c *framework.Context) browser.Session {
	opts := ChromeOptions()
	opts.CommandTimeout = cfg.CommandTimeout
	if cfg.DriverLogger != nil {
		opts.Logger = cfg.DriverLogger
	}
	s, err := cfg.launcher().Launch(cfg.context(), opts)
	require.NoError(c, err, "could not launch browser")
	c.SetValue(sessionKey{}, s)
	return s
}

// Session is a fixture that gives the test its own browser, and quits it at teardown.
func Session(cfg Config) framework.Fixture {
	return func(c *framework.Context) {
		s := cfg.launch(c)
		c.Defer(func() {
			assert.NoError(c, s.Quit(), "could not quit browser")
		})
	}
}

// ChromeBrowserInstance is a fixture that gives the test its own maximized browser. At
// teardown it records the browser's cookies before and after clearing them in the cookie
// log, and then quits the browser even if that failed.
//
// The cookie log is overwritten by every test that uses this fixture.
func ChromeBrowserInstance(cfg Config) framework.Fixture {
	return func(c *framework.Context) {
		s := cfg.launch(c)
		c.Defer(func() {
			defer func() {
				assert.NoError(c, s.Quit(), "could not quit browser")
			}()
			require.NoError(c, writeCookieLog(cfg.cookieLogPath(), s), "could not write cookie log")
		})
		require.NoError(c, s.MaximizeWindow(), "could not maximize browser window")
	}
}

func writeCookieLog(path string, s browser.Session) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	before, err := s.Cookies()
	if err != nil {
		return fmt.Errorf("reading cookies: %w", err)
	}
	if err := writeCookieSection(f, "Cookies before deletion:", before); err != nil {
		return err
	}

	if err := s.DeleteAllCookies(); err != nil {
		return fmt.Errorf("deleting cookies: %w", err)
	}

	after, err := s.Cookies()
	if err != nil {
		return fmt.Errorf("reading cookies after deletion: %w", err)
	}
	return writeCookieSection(f, "Cookies after deletion:", after)
}

func writeCookieSection(f *os.File, title string, cookies []browser.Cookie) error {
	if _, err := fmt.Fprintln(f, title); err != nil {
		return err
	}
	for _, cookie := range cookies {
		if _, err := fmt.Fprintln(f, cookie); err != nil {
			return err
		}
	}
	return nil
}

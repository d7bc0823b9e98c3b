package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/diplom33/ui-harness/fixtures"
	"github.com/diplom33/ui-harness/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	baseURL        string
	filters        framework.RegexFilters
	collectOnly    bool
	allureDir      string
	screenshotDir  string
	cookieLogPath  string
	commandTimeout time.Duration
	debug          bool
	debugAll       bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.baseURL, "url", "", "base URL of the site under test")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.collectOnly, "collect-only", false, "print the names of all tests and exit without running them")
	fs.StringVar(&c.allureDir, "alluredir", "", "directory to write Allure results to")
	fs.StringVar(&c.screenshotDir, "screenshots", fixtures.DefaultScreenshotDir, "directory for screenshots of failed tests")
	fs.StringVar(&c.cookieLogPath, "cookie-log", fixtures.DefaultCookieLogPath, "file to log browser cookies to at the end of each test")
	fs.DurationVar(&c.commandTimeout, "command-timeout", 0, "timeout for each browser command (0 means no timeout)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if c.baseURL == "" && !c.collectOnly {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand returns a command line that runs only the specified test with the same
// settings as the current run. Settings left at their defaults are omitted.
func (c *commandParams) rerunCommand(program string, id framework.TestID) string {
	var b commandBuilder
	b.add(program, "-url", c.baseURL)
	if c.allureDir != "" {
		b.add("-alluredir", c.allureDir)
	}
	if c.screenshotDir != "" && c.screenshotDir != fixtures.DefaultScreenshotDir {
		b.add("-screenshots", c.screenshotDir)
	}
	if c.cookieLogPath != "" && c.cookieLogPath != fixtures.DefaultCookieLogPath {
		b.add("-cookie-log", c.cookieLogPath)
	}
	if c.commandTimeout > 0 {
		b.add("-command-timeout", c.commandTimeout.String())
	}
	switch {
	case c.debugAll:
		b.add("-debug-all")
	case c.debug:
		b.add("-debug")
	}
	b.add("-run", "^"+regexp.QuoteMeta(id.String())+"$")
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

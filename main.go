package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/diplom33/ui-harness/fixtures"
	"github.com/diplom33/ui-harness/framework"
	"github.com/diplom33/ui-harness/naming"
	"github.com/diplom33/ui-harness/report"
	"github.com/diplom33/ui-harness/uitests"

	"github.com/gofrs/flock"
)

// The cookie log and the screenshot directory are shared by every test in the working
// directory, so only one run at a time may use it.
const runLockFile = ".ui-harness.lock"

func main() {
	os.Exit(run())
}

func run() int {
	var params commandParams
	if !params.Read(os.Args) {
		return 1
	}

	if !params.collectOnly {
		lock := flock.New(runLockFile)
		locked, err := lock.TryLock()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not lock working directory: %s\n", err)
			return 1
		}
		if !locked {
			fmt.Fprintln(os.Stderr, "Another test run is already using this working directory")
			return 1
		}
		defer func() { _ = lock.Unlock() }()
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	runner := framework.NewRunner(framework.Config{
		CollectOnly: params.collectOnly,
		Filter:      params.filters.AsFilter,
		TestLogger: &ConsoleTestLogger{
			DebugOutputOnFailure: params.debug || params.debugAll,
			DebugOutputOnSuccess: params.debugAll,
		},
	})
	runner.Register(fixtures.PhaseRecorder{}, naming.Rewriter{})
	if params.allureDir != "" {
		allure, err := report.NewAllureResults(params.allureDir, mainDebugLogger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		runner.Register(allure)
	}

	suite := uitests.SuiteConfig{
		BaseURL: params.baseURL,
		Fixtures: fixtures.Config{
			CookieLogPath:  params.cookieLogPath,
			ScreenshotDir:  params.screenshotDir,
			CommandTimeout: params.commandTimeout,
			DriverLogger:   mainDebugLogger,
		},
	}

	if !params.collectOnly {
		fmt.Println()
		framework.PrintFilterDescription(os.Stdout, params.filters)
		fmt.Println("Running test suite")
	}

	results, err := runner.Run(uitests.AllTests(suite))
	var exit *framework.Exit
	if errors.As(err, &exit) {
		// Only collect-only mode exits early. Listing the tests is what was asked for,
		// so the status is 0, not the usage-error status 2.
		fmt.Println(exit.Reason)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test run error: %s\n", err)
		return 1
	}
	if params.collectOnly {
		return 0
	}

	fmt.Println()
	printResults(results, &params)
	if !results.OK() {
		return 1
	}
	return 0
}

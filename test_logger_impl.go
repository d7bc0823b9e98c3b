package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/diplom33/ui-harness/framework"

	"github.com/fatih/color"
)

var (
	failedLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
	passedLabel  = color.New(color.FgGreen).SprintFunc()
)

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Printf("  %s: %s\n", failedLabel("FAILED"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Printf("  %s: %s\n", skippedLabel("SKIPPED"), id)
	} else {
		fmt.Printf("  %s: %s (%s)\n", skippedLabel("SKIPPED"), id, reason)
	}
}

func printResults(results framework.Results, params *commandParams) {
	var skipped int
	for _, r := range results.Tests {
		if r.Skipped {
			skipped++
		}
	}
	passed := len(results.Tests) - len(results.Failures) - skipped

	fmt.Printf("%d passed, %d failed, %d skipped\n",
		passed, len(results.Failures), skipped)
	if results.OK() {
		fmt.Println(passedLabel("All tests passed"))
		return
	}
	fmt.Println(failedLabel("Failed tests:"))
	for _, f := range results.Failures {
		fmt.Printf("  %s\n", f.TestID)
		fmt.Printf("    rerun: %s\n", params.rerunCommand(os.Args[0], f.TestID))
	}
}

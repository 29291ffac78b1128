package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/SW-CD/mediahub-workflow-tests/framework"
)

// ConsoleStageLogger prints stage progress to standard output as the
// scenario runs.
type ConsoleStageLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleStageLogger) StageStarted(id framework.StageID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleStageLogger) StageError(id framework.StageID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleStageLogger) StageFinished(id framework.StageID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Printf("  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleStageLogger) StageSkipped(id framework.StageID, reason string) {
	if reason == "" {
		fmt.Printf("  SKIPPED: %s\n", id)
	} else {
		fmt.Printf("  SKIPPED: %s (%s)\n", id, reason)
	}
}

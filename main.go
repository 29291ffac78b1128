// Command mediahub-workflow-tests verifies a running MediaHub server
// end-to-end: it creates a user, content databases, and entries, checks
// download fidelity and permission enforcement, and deletes everything it
// created whether or not the run succeeded. The exit status is non-zero if
// any stage failed.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/SW-CD/mediahub-workflow-tests/framework"
	"github.com/SW-CD/mediahub-workflow-tests/workflowtests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	fmt.Printf("Verifying MediaHub at %s\n\n", params.config.BaseURL)

	stageLogger := &ConsoleStageLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	cleanupLogger := log.New(os.Stdout, "cleanup: ", 0)

	results := workflowtests.RunWorkflow(params.config, stageLogger, cleanupLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		os.Exit(1)
	}
}

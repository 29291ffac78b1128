package framework

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	passedColor = color.New(color.Bold, color.FgGreen)
	failedColor = color.New(color.Bold, color.FgRed)
)

// PrintResults writes a human-readable summary of a scenario run to
// standard output.
func PrintResults(results Results) {
	executed, skipped := 0, 0
	for _, s := range results.Stages {
		if s.Skipped {
			skipped++
		} else {
			executed++
		}
	}

	if results.OK() {
		passedColor.Printf("All %d stages passed\n", executed)
		return
	}

	failedColor.Printf("%d stage(s) failed", len(results.Failures))
	if skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println(":")
	for _, f := range results.Failures {
		name := f.StageID.String()
		if name == "" {
			name = "(scenario)"
		}
		fmt.Printf("  %s\n", name)
		for _, err := range f.Errors {
			for _, line := range strings.Split(reformatError(err).Error(), "\n") {
				fmt.Printf("    %s\n", line)
			}
		}
	}
}

// reformatError cleans up the multi-line messages produced by the assertion
// library (leading tabs, trailing blank lines) so they indent consistently
// on the console.
func reformatError(err error) error {
	lines := strings.Split(strings.TrimRight(err.Error(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(strings.TrimRight(line, " \t"), "\t", "  ")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

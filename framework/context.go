package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results     Results
	stageLogger StageLogger
	abortReason string
}

// Context represents a running stage. It implements the subset of
// testing.T's behavior that the assertion libraries need (Errorf and
// FailNow), plus debug-output capture.
type Context struct {
	env         *environment
	id          StageID
	debugLogger CapturingLogger
	failed      bool
	errors      []error
}

// Run executes a scenario and returns the accumulated stage results. The
// action is expected to call Context.Run for each stage, in order; once a
// stage fails, every later stage is skipped. A panic escaping the action
// itself (outside any stage) is captured as a scenario-level failure.
func Run(stageLogger StageLogger, action func(*Context)) Results {
	if stageLogger == nil {
		stageLogger = nullStageLogger{}
	}
	env := &environment{stageLogger: stageLogger}
	c := &Context{env: env}
	c.run(action)
	if c.failed {
		result := StageResult{StageID: c.id, Errors: c.errors}
		env.results.Stages = append(env.results.Stages, result)
		env.results.Failures = append(env.results.Failures, result)
	}
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("stage failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in stage: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.stageLogger.StageError(c.id, addError)
			}
		}
	}()

	action(c)
}

func (c *Context) ID() StageID {
	return c.id
}

// Run executes a stage (or a sub-stage within a stage) and reports whether
// it passed. If an earlier stage already failed, the stage is recorded as
// skipped and not executed.
func (c *Context) Run(name string, action func(*Context)) bool {
	path := append(append([]string(nil), c.id.Path...), name)
	id := StageID{Path: path}

	if c.env.abortReason != "" {
		c.env.results.Stages = append(c.env.results.Stages,
			StageResult{StageID: id, Skipped: true, SkipReason: c.env.abortReason})
		c.env.stageLogger.StageSkipped(id, c.env.abortReason)
		return false
	}

	c.env.stageLogger.StageStarted(id)
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)

	result := StageResult{StageID: id, Errors: c1.errors}
	c.env.results.Stages = append(c.env.results.Stages, result)
	if c1.failed {
		c.env.results.Failures = append(c.env.results.Failures, result)
		if c.env.abortReason == "" {
			c.env.abortReason = fmt.Sprintf("stage %q failed", id)
		}
	}
	c.env.stageLogger.StageFinished(id, c1.failed, c1.debugLogger.Output())
	return !c1.failed
}

// Errorf is called by assertions to log a failure. It does not cause an
// immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.stageLogger.StageError(c.id, reformatError(err))
}

// FailNow is called by assertions when a stage should fail and immediately
// exit. The methods in the require package call FailNow.
func (c *Context) FailNow() {
	panic(c)
}

// Debug logs some debug output for the stage. The output is passed to the
// stage logger when the stage finishes.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

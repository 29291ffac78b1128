package workflowtests

import (
	"fmt"

	"github.com/stretchr/testify/require"

	"github.com/SW-CD/mediahub-workflow-tests/client"
	"github.com/SW-CD/mediahub-workflow-tests/framework"
	"github.com/SW-CD/mediahub-workflow-tests/servicedef"
)

// environment is the state shared by every stage of one scenario run: the
// API client, the ledger, the fixtures, and the identifiers created along
// the way. Stages run strictly in sequence, each building on what the
// previous ones established.
type environment struct {
	config      Config
	api         *client.MediaHubClient
	ledger      *ResourceLedger
	fixtures    *Fixtures
	userSession *client.Session
	testUserID  int64
	entryIDs    map[servicedef.ContentType]int64
}

func newEnvironment(cfg Config) *environment {
	return &environment{
		config:   cfg,
		api:      client.New(cfg.BaseURL, cfg.RequestTimeout, framework.NullLogger()),
		ledger:   &ResourceLedger{},
		entryIDs: make(map[servicedef.ContentType]int64),
	}
}

// T represents a stage of the workflow scenario.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner; that part is provided
// by the lower-level framework package. On top of it, T carries the shared
// scenario state and MediaHub-specific helpers.
//
// To make assertions, use the assert and require packages, passing the *T
// as if it were a *testing.T. The methods in require abort the stage
// immediately; the scenario then skips all later stages and proceeds to
// teardown.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to log a failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a stage should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run executes a stage or sub-stage sharing this scenario's state, and
// reports whether it passed. Once any stage has failed, Run skips the
// stage instead of executing it.
func (t *T) Run(name string, action func(*T)) bool {
	return t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the stage, shown by the console logger
// for failed stages (or for all stages with -debug-all).
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

// API returns the client for bare per-call requests (used with Admin()).
func (t *T) API() *client.MediaHubClient {
	return t.env.api
}

// Admin returns the administrator credential. Administrator calls attach it
// per call and keep no session state.
func (t *T) Admin() client.Credential {
	return t.env.config.Admin
}

// UserSession returns the current authenticated session for the regular
// user, creating one on first use.
func (t *T) UserSession() *client.Session {
	if t.env.userSession == nil {
		t.env.userSession = t.env.api.NewSession(t.env.config.User)
	}
	return t.env.userSession
}

// RenewUserSession discards the user's session and establishes a fresh one.
// This must be called after any server-side change to the account's
// permissions: the old session may be served from a cached authorization
// decision, and reusing it would make a revocation check pass or fail for
// the wrong reason.
func (t *T) RenewUserSession() *client.Session {
	if t.env.userSession != nil {
		t.env.userSession.Close()
	}
	t.env.userSession = t.env.api.NewSession(t.env.config.User)
	return t.env.userSession
}

// RequireStatus fails the stage immediately unless the response carries the
// wanted status, including the response body in the failure message.
func (t *T) RequireStatus(resp client.Response, want int, while string) {
	if resp.Status != want {
		require.Fail(t, fmt.Sprintf("unexpected status while %s", while),
			"expected status %d, got %d; body: %s", want, resp.Status, resp.BodyExcerpt())
	}
}

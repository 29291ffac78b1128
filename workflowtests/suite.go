package workflowtests

import (
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SW-CD/mediahub-workflow-tests/framework"
)

const (
	defaultStartupTimeout = 30 * time.Second
	defaultRequestTimeout = 15 * time.Second
)

// RunWorkflow executes the whole scenario against the configured server and
// returns the per-stage results.
//
// Teardown is not a stage: it runs once before the first stage, to clear
// state a previously aborted run may have left, and once more at the very
// end, unconditionally, whether the scenario passed, failed, or panicked.
// Its progress goes to cleanupLogger (stdout in the command-line harness),
// not to the per-stage debug capture.
func RunWorkflow(cfg Config, stageLogger framework.StageLogger, cleanupLogger framework.Logger) framework.Results {
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = defaultStartupTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cleanupLogger == nil {
		cleanupLogger = framework.NullLogger()
	}

	env := newEnvironment(cfg)
	teardown := NewTeardown(env.api, env.ledger, cfg, cleanupLogger)

	return framework.Run(stageLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}

		defer teardown.Run()
		defer func() {
			if env.userSession != nil {
				env.userSession.Close()
			}
		}()

		t.Run("pre-cleanup", func(t *T) { teardown.Run() })
		t.Run("fixtures", DoFixtureSetup)
		t.Run("server readiness", DoReadinessGate)
		t.Run("user admin ops", DoUserAdminSteps)
		t.Run("database create", DoDatabaseCreateSteps)
		t.Run("entry upload", DoEntryUploadSteps)
		t.Run("entry verify", DoEntryVerifySteps)
		t.Run("role update", DoRoleUpdateSteps)
		t.Run("permission recheck", DoPermissionRecheckSteps)
		t.Run("user delete", DoUserDeleteSteps)
	})
}

// DoFixtureSetup provisions the local upload payloads. Pure local I/O; the
// server is not involved.
func DoFixtureSetup(t *T) {
	f, err := CreateFixtures(t.env.config.FixtureDir)
	require.NoError(t, err, "could not create fixture files")
	t.env.fixtures = f
	for _, fx := range []Fixture{f.Image, f.Audio, f.File} {
		t.Debug("created fixture %s (%d bytes, %s)", fx.Path, len(fx.Bytes), fx.MediaType)
	}
}

// DoReadinessGate blocks until the server accepts requests. If it never
// does, the stage fails and the whole scenario is abandoned; nothing has
// been created yet at this point.
func DoReadinessGate(t *T) {
	ready := WaitUntilReady(t.env.config.BaseURL, t.env.config.StartupTimeout, t.DebugLogger())
	require.True(t, ready, "server did not become ready within %s", t.env.config.StartupTimeout)
}

package workflowtests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SW-CD/mediahub-workflow-tests/client"
	"github.com/SW-CD/mediahub-workflow-tests/framework"
	"github.com/SW-CD/mediahub-workflow-tests/servicedef"
)

// TeardownExecutor removes everything a run may have left behind: ledgered
// resources, the well-known database names, any account with the test
// username, and the local fixture files. All server-side deletions use the
// administrator credential, because the account that created a resource may
// itself have been deleted mid-run.
type TeardownExecutor struct {
	api        *client.MediaHubClient
	admin      client.Credential
	ledger     *ResourceLedger
	username   string
	fixtureDir string
	logger     framework.Logger
}

func NewTeardown(api *client.MediaHubClient, ledger *ResourceLedger, cfg Config, logger framework.Logger) *TeardownExecutor {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &TeardownExecutor{
		api:        api,
		admin:      cfg.Admin,
		ledger:     ledger,
		username:   cfg.User.Username,
		fixtureDir: cfg.FixtureDir,
		logger:     logger,
	}
}

// Run attempts every deletion, in dependency order (entries before their
// databases), logging and skipping past individual failures. Absence of a
// resource counts as success, so Run is idempotent and is invoked both
// before the scenario (to clear a prior aborted run) and after it.
func (td *TeardownExecutor) Run() {
	for _, r := range td.ledger.OfKind(ResourceEntry) {
		q := url.Values{"database_name": {r.Database}, "id": {r.Key}}
		td.deleteResource(r.String(), "/entry?"+q.Encode())
	}

	attempted := make(map[string]bool)
	for _, r := range td.ledger.OfKind(ResourceDatabase) {
		attempted[r.Key] = true
		td.deleteResource(r.String(), "/database?name="+url.QueryEscape(r.Key))
	}
	for _, name := range WellKnownDatabaseNames() {
		if !attempted[name] {
			td.deleteResource(fmt.Sprintf("database %s", name), "/database?name="+url.QueryEscape(name))
		}
	}

	for _, r := range td.ledger.OfKind(ResourceUser) {
		td.deleteResource(r.String(), "/user?id="+url.QueryEscape(r.Key))
	}
	td.sweepTestUser()

	RemoveFixtureFiles(td.fixtureDir, td.logger)
}

func (td *TeardownExecutor) deleteResource(what, path string) {
	resp, err := td.api.Delete(path, td.admin, td.logger)
	switch {
	case err != nil:
		td.logger.Printf("could not delete %s: %s", what, err)
	case resp.Status == http.StatusOK:
		td.logger.Printf("deleted %s", what)
	case resp.Status == http.StatusNotFound:
		td.logger.Printf("%s was already gone", what)
	default:
		td.logger.Printf("unexpected status %d deleting %s: %s", resp.Status, what, resp.BodyExcerpt())
	}
}

// sweepTestUser deletes any account with the well-known test username. The
// ledger only knows ids created by this run; an aborted earlier run can
// have left an account behind that only a listing will find.
func (td *TeardownExecutor) sweepTestUser() {
	resp, err := td.api.Get("/users", td.admin, td.logger)
	if err != nil {
		td.logger.Printf("could not list users (server may be down): %s", err)
		return
	}
	if resp.Status != http.StatusOK {
		td.logger.Printf("could not list users: status %d", resp.Status)
		return
	}
	var users []servicedef.User
	if err := json.Unmarshal(resp.Body, &users); err != nil {
		td.logger.Printf("could not parse user listing: %s", err)
		return
	}
	for _, u := range users {
		if u.Username == td.username {
			td.deleteResource(fmt.Sprintf("user %q (id %d)", u.Username, u.ID), fmt.Sprintf("/user?id=%d", u.ID))
		}
	}
}

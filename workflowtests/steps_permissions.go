package workflowtests

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/SW-CD/mediahub-workflow-tests/servicedef"
)

// DoRoleUpdateSteps revokes the regular user's create and delete
// permissions as administrator, and checks the server reports the new
// value for the revoked create flag.
func DoRoleUpdateSteps(t *T) {
	patch := ldvalue.ObjectBuild().
		Set("can_create", ldvalue.Bool(false)).
		Set("can_delete", ldvalue.Bool(false)).
		Build()

	path := fmt.Sprintf("/user?id=%d", t.env.testUserID)
	resp, err := t.API().PatchJSON(path, t.Admin(), patch, t.DebugLogger())
	require.NoError(t, err, "updating user roles")
	t.RequireStatus(resp, http.StatusOK, "updating user roles")

	var updated servicedef.User
	require.NoError(t, json.Unmarshal(resp.Body, &updated),
		"parsing patched user: %s", resp.BodyExcerpt())
	require.False(t, updated.CanCreate, "server did not report can_create as revoked")
}

// DoPermissionRecheckSteps verifies the revocation actually took effect.
// The attempt must run on a freshly created session: the pre-update session
// may be served from a cached authorization decision, which would make this
// check pass or fail for the wrong reason.
func DoPermissionRecheckSteps(t *T) {
	session := t.RenewUserSession()

	def := servicedef.CreateDatabaseParams{
		Name:         RecheckDatabaseName,
		ContentType:  servicedef.ContentTypeImage,
		CustomFields: []servicedef.CustomField{{Name: "description", Type: "TEXT"}},
	}
	resp, err := session.PostJSON("/database", def, t.DebugLogger())
	require.NoError(t, err, "attempting database create without permission")

	if resp.Status != http.StatusForbidden {
		if resp.Status == http.StatusCreated {
			// The server actually created it; make sure teardown knows.
			t.env.ledger.Record(Resource{Kind: ResourceDatabase, Key: def.Name})
		}
		t.Errorf("database create by a user without create permission returned status %d instead of %d; body: %s",
			resp.Status, http.StatusForbidden, resp.BodyExcerpt())
	}
}

// DoUserDeleteSteps removes the regular user as administrator. The id stays
// in the ledger; teardown's redundant second delete must tolerate the
// account already being gone.
func DoUserDeleteSteps(t *T) {
	path := fmt.Sprintf("/user?id=%d", t.env.testUserID)
	resp, err := t.API().Delete(path, t.Admin(), t.DebugLogger())
	require.NoError(t, err, "deleting user")
	t.RequireStatus(resp, http.StatusOK, "deleting user")
	t.Debug("deleted user id %d", t.env.testUserID)
}

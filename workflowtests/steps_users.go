package workflowtests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/stretchr/testify/require"

	"github.com/SW-CD/mediahub-workflow-tests/servicedef"
)

// DoUserAdminSteps verifies administrator access and creates the regular
// user account the rest of the workflow acts as.
func DoUserAdminSteps(t *T) {
	resp, err := t.API().Get("/users", t.Admin(), t.DebugLogger())
	require.NoError(t, err, "listing users")
	t.RequireStatus(resp, http.StatusOK, "listing users")

	params := servicedef.CreateUserParams{
		Username:  t.env.config.User.Username,
		Password:  t.env.config.User.Password,
		CanView:   true,
		CanCreate: true,
		CanEdit:   true,
		CanDelete: true,
		IsAdmin:   false,
	}
	resp, err = t.API().PostJSON("/user", t.Admin(), params, t.DebugLogger())
	require.NoError(t, err, "creating user %q", params.Username)
	t.RequireStatus(resp, http.StatusCreated, fmt.Sprintf("creating user %q", params.Username))

	var created servicedef.User
	require.NoError(t, json.Unmarshal(resp.Body, &created),
		"parsing create-user response: %s", resp.BodyExcerpt())

	// Ledger the id before asserting anything else about the body, so the
	// account gets cleaned up even if a later check in this stage fails.
	t.env.ledger.Record(Resource{Kind: ResourceUser, Key: strconv.FormatInt(created.ID, 10)})
	t.env.testUserID = created.ID

	require.NotZero(t, created.ID, "server did not assign a user id")
	t.Debug("created user %q with id %d", params.Username, created.ID)
}
